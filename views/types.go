package views

import (
	"html/template"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/editor"
	"github.com/glasscube/glasscube/filter"
	"github.com/glasscube/glasscube/locale"
	"github.com/glasscube/glasscube/settings"
)

// Site holds site-wide settings every page needs.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// Page is the request-scoped frame shared by every template.
type Page struct {
	Site      Site
	Meta      PageMeta
	Loc       *locale.Localizer
	Prefs     settings.Preferences
	Languages []string
	CSRF      string
	Path      string
	Nav       string
	Toast     string
	JSONLD    template.JS
}

type Landing struct {
	Stack    []StackGroup
	Blogs    []content.Blog
	Projects []content.Project
}

type StackGroup struct {
	Key   string
	Items []string
}

type BlogList struct {
	State  api.State[api.BlogList]
	Items  []content.Blog
	Filter filter.State
}

type ProjectList struct {
	State  api.State[api.ProjectList]
	Items  []content.Project
	Filter filter.State
}

type BlogDetail struct {
	State api.State[content.Blog]
}

type ProjectDetail struct {
	State api.State[content.Project]
}

// ContactForm echoes submitted values back on validation failure.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
	Errors  map[string]string
	Sent    bool
}

type Dashboard struct {
	Blogs    api.State[api.BlogList]
	Projects api.State[api.ProjectList]
}

type BlogEditor struct {
	Draft editor.BlogDraft
	// Action is the form's POST target.
	Action string
	Types  []content.BlockType
}

type ProjectEditor struct {
	Draft  editor.ProjectDraft
	Action string
	Types  []content.BlockType
}
