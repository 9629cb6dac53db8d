// Package content holds the typed content-block model shared by blogs and
// projects, and the renderer that turns blocks into HTML fragments.
package content

import (
	"strings"
	"time"
)

// BlockType identifies how a Block is rendered and edited.
type BlockType string

const (
	H2        BlockType = "h2"
	Paragraph BlockType = "p"
	Image     BlockType = "img"
	Video     BlockType = "video"
	Code      BlockType = "code"
	Quote     BlockType = "quote"
	Link      BlockType = "link"
)

// EditableTypes lists the types offered by the editor's block selector, in
// display order.
var EditableTypes = []BlockType{H2, Paragraph, Image, Video, Code, Quote}

// IsMedia reports whether data for this type comes from a media upload.
func (t BlockType) IsMedia() bool {
	return t == Image || t == Video
}

// IsText reports whether data for this type is typed in directly.
func (t BlockType) IsText() bool {
	switch t {
	case H2, Paragraph, Code, Quote:
		return true
	}
	return false
}

// Block is one unit of an article body. Block order is significant.
type Block struct {
	Type BlockType `json:"type"`
	Data string    `json:"data"`
}

// Blog is a blog entry as served by the content API.
type Blog struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Content     []Block   `json:"content"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Edited reports whether the blog was modified after creation.
func (b Blog) Edited() bool {
	return edited(b.CreatedAt, b.UpdatedAt)
}

// ReadingTime estimates minutes to read the body at 200 words per minute.
func (b Blog) ReadingTime() int {
	return readingTime(b.Content)
}

func (b Blog) TagList() []string { return b.Tags }

func (b Blog) SearchFields() []string {
	fields := make([]string, 0, len(b.Tags)+2)
	fields = append(fields, b.Title, b.Description)
	return append(fields, b.Tags...)
}

// Project is a portfolio project as served by the content API.
type Project struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Short     string    `json:"short"`
	Thumbnail string    `json:"thumbnail"`
	Full      []Block   `json:"full"`
	Author    string    `json:"author,omitempty"`
	Tags      []string  `json:"tags"`
	Tech      []string  `json:"tech"`
	Demo      string    `json:"demo,omitempty"`
	Github    string    `json:"github,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Edited reports whether the project was modified after creation.
func (p Project) Edited() bool {
	return edited(p.CreatedAt, p.UpdatedAt)
}

func (p Project) TagList() []string { return p.Tags }

// SearchFields includes the tech list so that searching "postgres" finds
// projects built on it even when no tag says so.
func (p Project) SearchFields() []string {
	fields := make([]string, 0, len(p.Tags)+len(p.Tech)+2)
	fields = append(fields, p.Title, p.Short)
	fields = append(fields, p.Tags...)
	return append(fields, p.Tech...)
}

func edited(created, updated time.Time) bool {
	return !updated.IsZero() && !updated.Equal(created)
}

const wordsPerMinute = 200

func readingTime(blocks []Block) int {
	words := 0
	for _, b := range blocks {
		if b.Type.IsText() {
			words += len(strings.Fields(b.Data))
		}
	}
	if words == 0 {
		return 1
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
