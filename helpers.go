package glasscube

import (
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/glasscube/glasscube/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// newestBlogs returns blogs ordered by creation time, newest first.
func newestBlogs(blogs []content.Blog) []content.Blog {
	out := slices.Clone(blogs)
	slices.SortStableFunc(out, func(a, b content.Blog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// lastModified is the later of created and updated, formatted for sitemaps.
func lastModified(created, updated time.Time) string {
	t := created
	if updated.After(t) {
		t = updated
	}
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
