package editor

import (
	"slices"

	"github.com/glasscube/glasscube/content"
)

// BlogDraft is the editor's working copy of a blog.
type BlogDraft struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
	Author      string
	Tags        []string
	Content     Blocks
	// NewType is the type preselected for the next appended block.
	NewType content.BlockType
}

// NewBlogDraft starts an empty blog attributed to author.
func NewBlogDraft(author string) BlogDraft {
	return BlogDraft{Author: author, NewType: content.Paragraph}
}

// BlogDraftFrom loads an existing blog for editing.
func BlogDraftFrom(b content.Blog) BlogDraft {
	return BlogDraft{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Thumbnail:   b.Thumbnail,
		Author:      b.Author,
		Tags:        slices.Clone(b.Tags),
		Content:     slices.Clone(Blocks(b.Content)),
		NewType:     content.Paragraph,
	}
}

// Slug is derived from the title and never edited directly.
func (d BlogDraft) Slug() string {
	return content.Slugify(d.Title)
}

// TagsText renders tags the way the tag input expects them.
func (d BlogDraft) TagsText() string {
	return content.FormatList(d.Tags)
}

// Blog builds the complete document sent on save.
func (d BlogDraft) Blog() content.Blog {
	return content.Blog{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug(),
		Description: d.Description,
		Thumbnail:   d.Thumbnail,
		Content:     d.Content.document(),
		Author:      d.Author,
		Tags:        nonNil(d.Tags),
	}
}

// ProjectDraft is the editor's working copy of a project.
type ProjectDraft struct {
	ID        string
	Title     string
	Short     string
	Thumbnail string
	Demo      string
	Github    string
	Author    string
	Tags      []string
	Tech      []string
	Full      Blocks
	NewType   content.BlockType
}

// NewProjectDraft starts an empty project attributed to author.
func NewProjectDraft(author string) ProjectDraft {
	return ProjectDraft{Author: author, NewType: content.Paragraph}
}

// ProjectDraftFrom loads an existing project for editing.
func ProjectDraftFrom(p content.Project) ProjectDraft {
	return ProjectDraft{
		ID:        p.ID,
		Title:     p.Title,
		Short:     p.Short,
		Thumbnail: p.Thumbnail,
		Demo:      p.Demo,
		Github:    p.Github,
		Author:    p.Author,
		Tags:      slices.Clone(p.Tags),
		Tech:      slices.Clone(p.Tech),
		Full:      slices.Clone(Blocks(p.Full)),
		NewType:   content.Paragraph,
	}
}

func (d ProjectDraft) Slug() string {
	return content.Slugify(d.Title)
}

func (d ProjectDraft) TagsText() string {
	return content.FormatList(d.Tags)
}

func (d ProjectDraft) TechText() string {
	return content.FormatList(d.Tech)
}

// Project builds the complete document sent on save.
func (d ProjectDraft) Project() content.Project {
	return content.Project{
		ID:        d.ID,
		Title:     d.Title,
		Slug:      d.Slug(),
		Short:     d.Short,
		Thumbnail: d.Thumbnail,
		Full:      d.Full.document(),
		Author:    d.Author,
		Tags:      nonNil(d.Tags),
		Tech:      nonNil(d.Tech),
		Demo:      d.Demo,
		Github:    d.Github,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
