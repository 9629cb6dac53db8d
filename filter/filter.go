// Package filter narrows blog and project listings by selected tags and a
// free-text search term.
package filter

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is anything the filter can match against.
type Entry interface {
	TagList() []string
	SearchFields() []string
}

// State is the current filter selection. The zero value matches everything.
type State struct {
	Tags   []string
	Search string
}

// Active reports whether the state narrows results at all.
func (s State) Active() bool {
	return len(s.Tags) > 0 || s.searching()
}

// searching reports whether the term filters anything. A term of only
// whitespace does not; any other term is matched exactly as entered.
func (s State) searching() bool {
	return strings.TrimSpace(s.Search) != ""
}

// Selected reports whether tag is part of the selection.
func (s State) Selected(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Toggle adds tag to the selection, or removes it if already selected.
// Selection order is kept.
func (s State) Toggle(tag string) State {
	next := State{Search: s.Search}
	if i := slices.Index(s.Tags, tag); i >= 0 {
		next.Tags = slices.Delete(slices.Clone(s.Tags), i, i+1)
	} else {
		next.Tags = append(slices.Clone(s.Tags), tag)
	}
	if len(next.Tags) == 0 {
		next.Tags = nil
	}
	return next
}

// WithSearch replaces the search term.
func (s State) WithSearch(term string) State {
	return State{Tags: slices.Clone(s.Tags), Search: term}
}

// Clear resets tags and search together.
func (s State) Clear() State {
	return State{}
}

// Query encodes the state as URL query values ("tag" repeated, "q").
func (s State) Query() url.Values {
	v := url.Values{}
	for _, t := range s.Tags {
		v.Add("tag", t)
	}
	if s.searching() {
		v.Set("q", s.Search)
	}
	return v
}

// Encode returns the query string for the state, prefixed with '?' when
// non-empty.
func (s State) Encode() string {
	if q := s.Query().Encode(); q != "" {
		return "?" + q
	}
	return ""
}

// FromQuery decodes a State from query values. Empty and repeated tags are
// ignored. The search term keeps its surrounding spaces.
func FromQuery(v url.Values) State {
	var s State
	for _, t := range v["tag"] {
		t = strings.TrimSpace(t)
		if t != "" && !s.Selected(t) {
			s.Tags = append(s.Tags, t)
		}
	}
	if q := v.Get("q"); strings.TrimSpace(q) != "" {
		s.Search = q
	}
	return s
}

// Apply returns the entries that carry at least one selected tag (when tags
// are selected) and contain the search term in any search field, ignoring
// case (when a term is set). The input order is kept and items is never
// modified.
func Apply[T Entry](items []T, s State) []T {
	fold := cases.Lower(language.Und)
	var term string
	if s.searching() {
		term = fold.String(s.Search)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchTags(it, s.Tags) && matchSearch(it, term, fold) {
			out = append(out, it)
		}
	}
	return out
}

func matchTags(e Entry, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range e.TagList() {
		if slices.Contains(selected, t) {
			return true
		}
	}
	return false
}

func matchSearch(e Entry, term string, fold cases.Caser) bool {
	if term == "" {
		return true
	}
	for _, f := range e.SearchFields() {
		if strings.Contains(fold.String(f), term) {
			return true
		}
	}
	return false
}
