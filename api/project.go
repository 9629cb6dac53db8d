package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/glasscube/glasscube/content"
)

// ProjectList is the "all projects" result with the sorted set of unique
// tags.
type ProjectList struct {
	Projects []content.Project
	Tags     []string
}

// Project fetches one project by slug.
func (c *Client) Project(ctx context.Context, slug string) (content.Project, error) {
	var env struct {
		Project *content.Project `json:"project"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: []string{"project", slug}}, &env); err != nil {
		return content.Project{}, fmt.Errorf("api: get project %q: %w", slug, err)
	}
	if env.Project == nil {
		return content.Project{}, fmt.Errorf("api: get project %q: %w", slug, ErrNotFound)
	}
	return *env.Project, nil
}

// Projects fetches every project.
func (c *Client) Projects(ctx context.Context) (ProjectList, error) {
	var env struct {
		Projects []content.Project `json:"projects"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: []string{"project", "all"}}, &env); err != nil {
		return ProjectList{}, fmt.Errorf("api: list projects: %w", err)
	}
	return ProjectList{Projects: env.Projects, Tags: content.ProjectTags(env.Projects)}, nil
}

type projectPayload struct {
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Short     string          `json:"short"`
	Thumbnail string          `json:"thumbnail"`
	Full      []content.Block `json:"full"`
	Author    string          `json:"author,omitempty"`
	Tags      []string        `json:"tags"`
	Tech      []string        `json:"tech"`
	Demo      string          `json:"demo"`
	Github    string          `json:"github"`
	Key       string          `json:"key"`
}

func newProjectPayload(p content.Project, key string) projectPayload {
	return projectPayload{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Short:     p.Short,
		Thumbnail: p.Thumbnail,
		Full:      p.Full,
		Author:    p.Author,
		Tags:      p.Tags,
		Tech:      p.Tech,
		Demo:      p.Demo,
		Github:    p.Github,
		Key:       key,
	}
}

// CreateProject stores a new project. Any id on p is ignored.
func (c *Client) CreateProject(ctx context.Context, p content.Project, key string) error {
	payload := newProjectPayload(p, key)
	payload.ID = ""
	if err := c.send(ctx, http.MethodPost, payload, nil, "project"); err != nil {
		return fmt.Errorf("api: create project %q: %w", p.Slug, err)
	}
	return nil
}

// UpdateProject replaces the stored project identified by p.ID with p in
// full.
func (c *Client) UpdateProject(ctx context.Context, p content.Project, key string) error {
	if p.ID == "" {
		return fmt.Errorf("api: update project %q: missing id", p.Slug)
	}
	if err := c.send(ctx, http.MethodPut, newProjectPayload(p, key), nil, "project"); err != nil {
		return fmt.Errorf("api: update project %q: %w", p.Slug, err)
	}
	return nil
}
