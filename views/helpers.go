package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/editor"
	"github.com/glasscube/glasscube/filter"
	"github.com/glasscube/glasscube/settings"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func marshalJSONLD(data map[string]any) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

func person(name string) map[string]string {
	return map[string]string{"@type": "Person", "name": name}
}

// WebsiteJSONLD produces a Schema.org WebSite block for the site root.
func WebsiteJSONLD(s Site) template.JS {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     s.Name,
		"url":      buildURL(s.URL),
	}
	if s.Description != "" {
		data["description"] = s.Description
	}
	if s.Author != "" {
		data["author"] = person(s.Author)
	}
	return marshalJSONLD(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting block for a blog.
func BlogPostingJSONLD(s Site, b content.Blog) template.JS {
	u := buildURL(s.URL, "blog", b.Slug)
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    b.Title,
		"description": b.Description,
		"url":         u,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   u,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  s.Name,
		},
	}
	if !b.CreatedAt.IsZero() {
		data["datePublished"] = b.CreatedAt.Format(time.RFC3339)
	}
	if b.Edited() {
		data["dateModified"] = b.UpdatedAt.Format(time.RFC3339)
	}
	if author := firstNonEmpty(b.Author, s.Author); author != "" {
		data["author"] = person(author)
	}
	if b.Thumbnail != "" {
		data["image"] = b.Thumbnail
	}
	if len(b.Tags) > 0 {
		data["keywords"] = strings.Join(b.Tags, ", ")
	}
	return marshalJSONLD(data)
}

// CreativeWorkJSONLD produces a Schema.org SoftwareSourceCode block for a project.
func CreativeWorkJSONLD(s Site, p content.Project) template.JS {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "SoftwareSourceCode",
		"name":        p.Title,
		"description": p.Short,
		"url":         buildURL(s.URL, "project", p.Slug),
	}
	if p.Github != "" {
		data["codeRepository"] = p.Github
	}
	if len(p.Tech) > 0 {
		data["programmingLanguage"] = p.Tech
	}
	if author := firstNonEmpty(p.Author, s.Author); author != "" {
		data["author"] = person(author)
	}
	return marshalJSONLD(data)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func (v *Views) funcs() template.FuncMap {
	return template.FuncMap{
		"blogBlocks":    v.blocks(content.BlogVariant),
		"projectBlocks": v.blocks(content.ProjectVariant),
		"media":         v.media,
		"date":          formatDate,
		"tagClass":      TagClass,
		"toggleTag": func(path string, s filter.State, tag string) string {
			return path + s.Toggle(tag).Encode()
		},
		"first": func(n int, items []string) []string {
			if len(items) > n {
				return items[:n]
			}
			return items
		},
		"extra": func(n int, items []string) int {
			return max(len(items)-n, 0)
		},
		"fileField":  editor.BlockFileField,
		"isVideo":    editor.IsVideoURL,
		"langName":   func(lang string) string { return "lang." + lang },
		"themes":     func() []string { return settings.Themes },
		"themeLabel": func(theme string) string { return "theme." + theme },
		"args": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
	}
}
