// Package views renders the site's pages. Pages are html/template files
// embedded in the binary and exposed as templ components so handlers render
// them the same way as any other component.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/glasscube/glasscube/content"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Views holds one parsed template set per page.
type Views struct {
	mediaBase string
	pages     map[string]*template.Template
}

// New parses the embedded templates. mediaBase is prefixed to root-relative
// media references returned by the content API.
func New(mediaBase string) (*Views, error) {
	v := &Views{mediaBase: mediaBase, pages: make(map[string]*template.Template)}

	base, err := template.New("layout").Funcs(v.funcs()).ParseFS(templateFS, layoutFile, partialsFile)
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f == layoutFile || f == partialsFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", f, err)
		}
		v.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return v, nil
}

type frame struct {
	Page
	Body any
}

func (v *Views) page(name string, p Page, body any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := v.pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %q", name)
		}
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, "layout", frame{Page: p, Body: body}); err != nil {
			return fmt.Errorf("views: render %s: %w", name, err)
		}
		_, err := buf.WriteTo(w)
		return err
	})
}

func (v *Views) blocks(variant content.Variant) func([]content.Block) (template.HTML, error) {
	r := content.Renderer{Variant: variant, MediaBase: v.mediaBase}
	return func(blocks []content.Block) (template.HTML, error) {
		return r.HTML(context.Background(), blocks)
	}
}

func (v *Views) media(raw string) string {
	return content.Renderer{MediaBase: v.mediaBase}.MediaURL(raw)
}

func (v *Views) Landing(p Page, d Landing) templ.Component { return v.page("landing", p, d) }
func (v *Views) About(p Page) templ.Component              { return v.page("about", p, nil) }
func (v *Views) Blogs(p Page, d BlogList) templ.Component  { return v.page("blogs", p, d) }
func (v *Views) Blog(p Page, d BlogDetail) templ.Component { return v.page("blog", p, d) }
func (v *Views) Projects(p Page, d ProjectList) templ.Component {
	return v.page("projects", p, d)
}
func (v *Views) Project(p Page, d ProjectDetail) templ.Component {
	return v.page("project", p, d)
}
func (v *Views) Contact(p Page, d ContactForm) templ.Component { return v.page("contact", p, d) }

// Dashboard is the editor landing page under /yoz/.
func (v *Views) Dashboard(p Page, d Dashboard) templ.Component { return v.page("dashboard", p, d) }
func (v *Views) BlogEditor(p Page, d BlogEditor) templ.Component {
	return v.page("blog_editor", p, d)
}
func (v *Views) ProjectEditor(p Page, d ProjectEditor) templ.Component {
	return v.page("project_editor", p, d)
}
func (v *Views) NotFound(p Page) templ.Component    { return v.page("notfound", p, nil) }
func (v *Views) ServerError(p Page) templ.Component { return v.page("error", p, nil) }
