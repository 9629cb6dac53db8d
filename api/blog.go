package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/glasscube/glasscube/content"
)

// BlogList is the "all blogs" result with the sorted set of unique tags.
type BlogList struct {
	Blogs []content.Blog
	Tags  []string
}

// Blog fetches one blog by slug.
func (c *Client) Blog(ctx context.Context, slug string) (content.Blog, error) {
	var env struct {
		Blog *content.Blog `json:"blog"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: []string{"blog", slug}}, &env); err != nil {
		return content.Blog{}, fmt.Errorf("api: get blog %q: %w", slug, err)
	}
	if env.Blog == nil {
		return content.Blog{}, fmt.Errorf("api: get blog %q: %w", slug, ErrNotFound)
	}
	return *env.Blog, nil
}

// Blogs fetches every blog.
func (c *Client) Blogs(ctx context.Context) (BlogList, error) {
	var env struct {
		Blogs []content.Blog `json:"blogs"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: []string{"blog", "all"}}, &env); err != nil {
		return BlogList{}, fmt.Errorf("api: list blogs: %w", err)
	}
	return BlogList{Blogs: env.Blogs, Tags: content.BlogTags(env.Blogs)}, nil
}

type blogPayload struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	Content     []content.Block `json:"content"`
	Author      string          `json:"author"`
	Tags        []string        `json:"tags"`
	Key         string          `json:"key"`
}

func newBlogPayload(b content.Blog, key string) blogPayload {
	return blogPayload{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Description: b.Description,
		Thumbnail:   b.Thumbnail,
		Content:     b.Content,
		Author:      b.Author,
		Tags:        b.Tags,
		Key:         key,
	}
}

// CreateBlog stores a new blog. Any id on b is ignored.
func (c *Client) CreateBlog(ctx context.Context, b content.Blog, key string) error {
	p := newBlogPayload(b, key)
	p.ID = ""
	if err := c.send(ctx, http.MethodPost, p, nil, "blog"); err != nil {
		return fmt.Errorf("api: create blog %q: %w", b.Slug, err)
	}
	return nil
}

// UpdateBlog replaces the stored blog identified by b.ID with b in full.
func (c *Client) UpdateBlog(ctx context.Context, b content.Blog, key string) error {
	if b.ID == "" {
		return fmt.Errorf("api: update blog %q: missing id", b.Slug)
	}
	if err := c.send(ctx, http.MethodPut, newBlogPayload(b, key), nil, "blog"); err != nil {
		return fmt.Errorf("api: update blog %q: %w", b.Slug, err)
	}
	return nil
}
