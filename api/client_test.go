package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/glasscube/glasscube/content"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	assert.Error(t, err)
}

func TestBlog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/blog/hello-world", r.URL.Path)
		_, _ = io.WriteString(w, `{"blog":{"_id":"1","title":"Hello World","slug":"hello-world","content":[{"type":"p","data":"hi"}]}}`)
	})
	b, err := c.Blog(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "1", b.ID)
	assert.Equal(t, []content.Block{{Type: content.Paragraph, Data: "hi"}}, b.Content)
}

func TestBlogNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Blog not found"}`)
	})
	_, err := c.Blog(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Blog not found", se.Message)

	st := c.LoadBlog(context.Background(), "missing")
	assert.True(t, st.Failed())
	assert.True(t, st.NotFound())
	assert.Equal(t, MsgBlogFailed, st.Message)
}

func TestBlogsDerivesSortedTags(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blog/all", r.URL.Path)
		_, _ = io.WriteString(w, `{"blogs":[{"slug":"a","tags":["react","go"]},{"slug":"b","tags":["go","css"]}]}`)
	})
	l, err := c.Blogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, l.Blogs, 2)
	assert.Equal(t, []string{"css", "go", "react"}, l.Tags)
}

func TestProjectsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	st := c.LoadProjects(context.Background())
	assert.True(t, st.Failed())
	assert.Contains(t, st.Message, "status 500")
	assert.False(t, st.NotFound())
}

func TestCreateAndUpdateBlogPayload(t *testing.T) {
	var got []map[string]any
	var methods []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blog", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = append(got, body)
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusCreated)
	})
	b := content.Blog{ID: "abc", Title: "T", Slug: "t", Tags: []string{"go"}, Content: []content.Block{}}
	ctx := context.Background()
	require.NoError(t, c.CreateBlog(ctx, b, "secret"))
	require.NoError(t, c.UpdateBlog(ctx, b, "secret"))

	assert.Equal(t, []string{http.MethodPost, http.MethodPut}, methods)
	_, hasID := got[0]["id"]
	assert.False(t, hasID, "create must not send an id")
	assert.Equal(t, "abc", got[1]["id"])
	assert.Equal(t, "secret", got[1]["key"])
	assert.Equal(t, "t", got[1]["slug"])
	_, hasMongoID := got[1]["_id"]
	assert.False(t, hasMongoID)
}

func TestUpdateProjectRequiresID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected")
	})
	err := c.UpdateProject(context.Background(), content.Project{Slug: "x"}, "k")
	assert.Error(t, err)
}

func TestWrongKeyIsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	err := c.CreateProject(context.Background(), content.Project{Slug: "p"}, "bad")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestUploadMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/media", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "k", r.FormValue("key"))
		f, hdr, err := r.FormFile("media")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "photo.png", hdr.Filename)
		assert.Equal(t, "bytes", string(data))
		_, _ = io.WriteString(w, `{"url":"/uploads/photo.png"}`)
	})
	url, err := c.UploadMedia(context.Background(), "photo.png", strings.NewReader("bytes"), "k")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photo.png", url)
}

func TestDeleteMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"url": "/uploads/a.png", "key": "k"}, body)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DeleteMedia(context.Background(), "/uploads/a.png", "k"))
}

func TestCookiesAreSent(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "xyz", Path: "/"})
		} else {
			ck, err := r.Cookie("sid")
			require.NoError(t, err)
			assert.Equal(t, "xyz", ck.Value)
		}
		_, _ = io.WriteString(w, `{"blogs":[],"projects":[]}`)
	})
	_, err := c.Latest(context.Background())
	require.NoError(t, err)
	_, err = c.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRateLimitWaitsForTokens(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"blogs":[],"projects":[]}`)
	}))
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, WithRateLimit(rate.Every(50*time.Millisecond), 1))
	require.NoError(t, err)

	start := time.Now()
	for range 3 {
		_, err := c.Latest(context.Background())
		require.NoError(t, err)
	}
	// the first request uses the burst token, the next two wait
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, 3, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Latest(ctx)
	assert.Error(t, err)
	assert.Equal(t, 3, calls, "a cancelled wait must not reach the server")
}
