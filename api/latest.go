package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/glasscube/glasscube/content"
)

// Latest is the landing page feed of recent blogs and projects.
type Latest struct {
	Blogs    []content.Blog    `json:"blogs"`
	Projects []content.Project `json:"projects"`
}

// Latest fetches the recent-content feed.
func (c *Client) Latest(ctx context.Context) (Latest, error) {
	var l Latest
	if err := c.do(ctx, request{method: http.MethodGet, path: []string{"latest"}}, &l); err != nil {
		return Latest{}, fmt.Errorf("api: latest: %w", err)
	}
	return l, nil
}
