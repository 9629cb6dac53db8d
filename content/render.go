package content

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// Variant selects the rendering rules of a page family.
type Variant int

const (
	// BlogVariant renders h2, p, img, video, code and quote.
	BlogVariant Variant = iota
	// ProjectVariant additionally renders link blocks.
	ProjectVariant
)

func (v Variant) supports(t BlockType) bool {
	switch t {
	case H2, Paragraph, Image, Video, Code, Quote:
		return true
	case Link:
		return v == ProjectVariant
	}
	return false
}

// Renderer turns blocks into HTML fragments. MediaBase is prefixed to
// root-relative img and video sources, which is how the content API returns
// uploaded media.
type Renderer struct {
	Variant   Variant
	MediaBase string
}

// Render renders a single block with no media base.
func Render(b Block, index int, v Variant) templ.Component {
	return Renderer{Variant: v}.Block(b, index)
}

// Block renders one block. Unrecognized types produce a visible placeholder;
// rendering never fails on block content.
func (r Renderer) Block(b Block, index int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		r.writeBlock(&buf, b, index)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Blocks renders blocks in order.
func (r Renderer) Blocks(blocks []Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		for i, b := range blocks {
			r.writeBlock(&buf, b, i)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// HTML renders blocks for embedding into html/template pages.
func (r Renderer) HTML(ctx context.Context, blocks []Block) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Blocks(blocks).Render(ctx, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (r Renderer) writeBlock(buf *bytes.Buffer, b Block, index int) {
	if !r.Variant.supports(b.Type) {
		fmt.Fprintf(buf, `<div class="block block-unknown" data-block-index="%d">Unknown content type: %s</div>`,
			index, html.EscapeString(string(b.Type)))
		return
	}
	data := html.EscapeString(b.Data)
	switch b.Type {
	case H2:
		fmt.Fprintf(buf, `<h2 class="block block-h2" data-block-index="%d">%s</h2>`, index, data)
	case Paragraph:
		fmt.Fprintf(buf, `<p class="block block-p" data-block-index="%d">%s</p>`, index, data)
	case Image:
		fmt.Fprintf(buf, `<figure class="block block-img" data-block-index="%d"><img src="%s" alt="%s" loading="lazy"/></figure>`,
			index, html.EscapeString(r.MediaURL(b.Data)), data)
	case Video:
		fmt.Fprintf(buf, `<figure class="block block-video" data-block-index="%d"><video src="%s" controls>Your browser does not support the video tag.</video><figcaption>%s</figcaption></figure>`,
			index, html.EscapeString(r.MediaURL(b.Data)), data)
	case Code:
		label := data
		if label == "" {
			label = "code"
		}
		fmt.Fprintf(buf, `<div class="block block-code" data-block-index="%d"><div class="code-label">%s</div><pre><code>%s</code></pre></div>`,
			index, label, data)
	case Quote:
		fmt.Fprintf(buf, `<blockquote class="block block-quote" data-block-index="%d">&ldquo;%s&rdquo;</blockquote>`, index, data)
	case Link:
		fmt.Fprintf(buf, `<p class="block block-link" data-block-index="%d"><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></p>`,
			index, html.EscapeString(allowedURL(b.Data)), data)
	}
}

// MediaURL resolves a media reference against MediaBase. Disallowed schemes
// yield "".
func (r Renderer) MediaURL(raw string) string {
	val := strings.TrimSpace(raw)
	if r.MediaBase != "" && strings.HasPrefix(val, "/") && !strings.HasPrefix(val, "//") {
		val = strings.TrimRight(r.MediaBase, "/") + val
	}
	return allowedURL(val)
}

// allowedURL returns the URL when it is relative or uses an allowed scheme,
// and "" otherwise.
func allowedURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}
