// Package locale loads the site's translated messages and resolves the
// language to display for a request or terminal session.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFS embed.FS

// Default is the fallback language for missing translations.
var Default = language.English

// Bundle holds every loaded translation.
type Bundle struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
}

// Load reads the embedded message files.
func Load() (*Bundle, error) {
	return LoadFS(messageFS, "messages")
}

// LoadFS reads every *.yaml file under dir of fsys. File names follow the
// active.<lang>.yaml convention.
func LoadFS(fsys fs.FS, dir string) (*Bundle, error) {
	b := i18n.NewBundle(Default)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("locale: read %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		if _, err := b.LoadMessageFileFS(fsys, dir+"/"+e.Name()); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", e.Name(), err)
		}
	}
	return &Bundle{bundle: b, matcher: language.NewMatcher(b.LanguageTags())}, nil
}

// Languages returns the base codes of the loaded languages.
func (b *Bundle) Languages() []string {
	tags := b.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		base, _ := t.Base()
		out[i] = base.String()
	}
	return out
}

// Match picks the best supported language for preferences given as
// language codes or Accept-Language headers, in priority order. Empty
// values are skipped.
func (b *Bundle) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return Default.String()
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return Default.String()
	}
	base, _ := b.bundle.LanguageTags()[idx].Base()
	return base.String()
}

// Localizer translates message ids for one language.
func (b *Bundle) Localizer(lang string) *Localizer {
	return &Localizer{Lang: lang, loc: i18n.NewLocalizer(b.bundle, lang)}
}

// Localizer is safe to use from templates: T and N never fail and fall
// back to the message id.
type Localizer struct {
	Lang string
	loc  *i18n.Localizer
}

// T returns the translation of id.
func (l *Localizer) T(id string) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id}, id)
}

// N returns the plural form of id for count, with {{.Count}} available to
// the message.
func (l *Localizer) N(id string, count int) string {
	return l.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	}, id)
}

// F returns the translation of id rendered with data.
func (l *Localizer) F(id string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data}, id)
}

// Lines returns a multi-line message split into lines.
func (l *Localizer) Lines(id string) []string {
	return strings.Split(l.T(id), "\n")
}

// Has reports whether id exists in this language or the default.
func (l *Localizer) Has(id string) bool {
	_, err := l.loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	return err == nil
}

func (l *Localizer) localize(cfg *i18n.LocalizeConfig, fallback string) string {
	s, err := l.loc.Localize(cfg)
	if err != nil && s == "" {
		return fallback
	}
	return s
}
