package glasscube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/mailer"
)

// fakeAPI serves the content API endpoints from memory.
type fakeAPI struct {
	mu           sync.Mutex
	blogs        []content.Blog
	projects     []content.Project
	latestStatus int
	detailStatus int
	writeStatus  int
	writes       []map[string]any
	mediaDeletes int
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blog/all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"blogs": f.blogs})
	})
	mux.HandleFunc("GET /blog/{slug}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.detailStatus != 0 {
			writeJSON(w, f.detailStatus, map[string]string{"message": "boom"})
			return
		}
		for _, b := range f.blogs {
			if b.Slug == r.PathValue("slug") {
				writeJSON(w, http.StatusOK, map[string]any{"blog": b})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	})
	mux.HandleFunc("GET /project/all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"projects": f.projects})
	})
	mux.HandleFunc("GET /latest", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.latestStatus != 0 {
			w.WriteHeader(f.latestStatus)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"blogs": f.blogs, "projects": f.projects})
	})
	write := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.writes = append(f.writes, body)
		if f.writeStatus != 0 {
			writeJSON(w, f.writeStatus, map[string]string{"message": "invalid key"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	}
	mux.HandleFunc("POST /blog", write)
	mux.HandleFunc("PUT /blog", write)
	mux.HandleFunc("POST /project", write)
	mux.HandleFunc("PUT /project", write)
	mux.HandleFunc("DELETE /media", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.mediaDeletes++
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	return mux
}

func (f *fakeAPI) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.ContactMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, m mailer.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m)
	return nil
}

func sampleAPI() *fakeAPI {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &fakeAPI{
		blogs: []content.Blog{
			{ID: "1", Title: "Go Concurrency", Slug: "go-concurrency", Description: "channels", Tags: []string{"go"}, CreatedAt: created, UpdatedAt: created},
			{ID: "2", Title: "Rust Lifetimes", Slug: "rust-lifetimes", Description: "borrowck", Tags: []string{"rust"}, CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour)},
		},
		projects: []content.Project{
			{ID: "p1", Title: "Glasscube", Slug: "glasscube", Short: "portfolio", Tech: []string{"go"}},
		},
	}
}

func newTestApp(t *testing.T, fake *fakeAPI, sender mailer.Sender) http.Handler {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	app := New(SiteConfig{
		Name:          "Glasscube",
		URL:           "https://example.com",
		SessionSecret: "test-secret",
		APIURL:        srv.URL,
	}, WithMailer(sender))
	t.Cleanup(func() { _ = app.Close() })

	h, err := app.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	return h
}

func get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const csrfToken = "test-csrf-token"

func post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	form.Set("_csrf", csrfToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: csrfToken})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLandingShowsLatest(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})
	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `href="/blog/go-concurrency/"`) {
		t.Errorf("latest blog link missing")
	}
	if !strings.Contains(body, `href="/project/glasscube/"`) {
		t.Errorf("latest project link missing")
	}
}

func TestLandingFallsBackWhenFeedFails(t *testing.T) {
	fake := sampleAPI()
	fake.latestStatus = http.StatusInternalServerError
	h := newTestApp(t, fake, &recordingSender{})

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Microservices Architecture with gRPC") {
		t.Fatalf("fallback feed not rendered")
	}
}

func TestBlogListFiltersByQuery(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})
	rec := get(t, h, "/blog/?tag=rust")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Rust Lifetimes") || strings.Contains(body, "Go Concurrency") {
		t.Fatalf("tag filter not applied")
	}

	rec = get(t, h, "/blog/?q=CHANNELS")
	if !strings.Contains(rec.Body.String(), "Go Concurrency") || strings.Contains(rec.Body.String(), "Rust Lifetimes") {
		t.Fatalf("search filter not applied")
	}
}

func TestBlogDetail(t *testing.T) {
	tests := []struct {
		name         string
		detailStatus int
		path         string
		wantCode     int
		wantBody     string
	}{
		{"found", 0, "/blog/go-concurrency/", http.StatusOK, "Go Concurrency"},
		{"missing", 0, "/blog/nope/", http.StatusNotFound, "Page not found"},
		{"upstream error", http.StatusInternalServerError, "/blog/go-concurrency/", http.StatusBadGateway, "Could not load blog."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := sampleAPI()
			fake.detailStatus = tt.detailStatus
			h := newTestApp(t, fake, &recordingSender{})
			rec := get(t, h, tt.path)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("body missing %q", tt.wantBody)
			}
		})
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})
	rec := get(t, h, "/blog")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
}

func TestSettingsPersistInCookie(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})
	rec := post(t, h, "/settings/", url.Values{
		"language": {"ko"},
		"theme":    {"light"},
		"next":     {"/about/"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/about/" {
		t.Fatalf("Location = %q", loc)
	}

	var prefs *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == prefsSession {
			prefs = c
		}
	}
	if prefs == nil {
		t.Fatalf("preferences cookie not set")
	}

	body := get(t, h, "/about/", prefs).Body.String()
	if !strings.Contains(body, `lang="ko"`) || !strings.Contains(body, `data-theme="light"`) {
		t.Fatalf("preferences not applied")
	}
}

func TestSettingsRejectsUnknownLanguage(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})
	rec := post(t, h, "/settings/", url.Values{"language": {"xx"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLocalRedirect(t *testing.T) {
	tests := map[string]string{
		"/blog/":             "/blog/",
		"":                   "/",
		"https://evil.test/": "/",
		"//evil.test/":       "/",
	}
	for in, want := range tests {
		if got := localRedirect(in); got != want {
			t.Errorf("localRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEditorSaveWithoutKeyMakesNoRequest(t *testing.T) {
	fake := sampleAPI()
	h := newTestApp(t, fake, &recordingSender{})
	rec := post(t, h, "/yoz/blog/", url.Values{
		"title":  {"Hello World"},
		"action": {"save"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Secret key is required") {
		t.Fatalf("toast missing")
	}
	if !strings.Contains(rec.Body.String(), `value="Hello World"`) {
		t.Fatalf("draft not preserved")
	}
	if n := fake.writeCount(); n != 0 {
		t.Fatalf("API received %d writes", n)
	}
}

func TestEditorSaveCreatesBlog(t *testing.T) {
	fake := sampleAPI()
	h := newTestApp(t, fake, &recordingSender{})
	rec := post(t, h, "/yoz/blog/", url.Values{
		"title":      {"Hello World"},
		"tags":       {"#go #web"},
		"block_type": {"h2", "p"},
		"block_data": {"Intro", "Body"},
		"key":        {"s3cret"},
		"action":     {"save"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/yoz/?saved=hello-world" {
		t.Fatalf("Location = %q", loc)
	}
	if fake.writeCount() != 1 {
		t.Fatalf("expected one write")
	}
	w := fake.writes[0]
	if w["slug"] != "hello-world" || w["key"] != "s3cret" {
		t.Fatalf("unexpected payload: %v", w)
	}
	if blocks, _ := w["content"].([]any); len(blocks) != 2 {
		t.Fatalf("content = %v", w["content"])
	}
}

func TestEditorAddAndRemoveBlocks(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})

	rec := post(t, h, "/yoz/project/", url.Values{
		"title":      {"Thing"},
		"block_type": {"p"},
		"block_data": {"first"},
		"new_type":   {"code"},
		"action":     {"add"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Count(body, `name="block_type"`) != 2 || !strings.Contains(body, `value="code"`) {
		t.Fatalf("block not appended")
	}

	rec = post(t, h, "/yoz/project/", url.Values{
		"title":      {"Thing"},
		"block_type": {"p", "code"},
		"block_data": {"first", ""},
		"action":     {"remove-0"},
	})
	body = rec.Body.String()
	if strings.Count(body, `name="block_type"`) != 1 || strings.Contains(body, ">first<") {
		t.Fatalf("block not removed")
	}
}

func TestEditorMediaDeleteOnTextBlock(t *testing.T) {
	fake := sampleAPI()
	h := newTestApp(t, fake, &recordingSender{})

	rec := post(t, h, "/yoz/blog/", url.Values{
		"title":      {"Thing"},
		"key":        {"k"},
		"block_type": {"p"},
		"block_data": {"keep me"},
		"action":     {"media-delete-0"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "keep me") {
		t.Fatalf("text block was cleared")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.mediaDeletes != 0 {
		t.Fatalf("media delete reached the API")
	}
}

func TestEditorLimitsRejectedKeys(t *testing.T) {
	fake := sampleAPI()
	fake.writeStatus = http.StatusUnauthorized
	h := newTestApp(t, fake, &recordingSender{})

	form := func() url.Values {
		return url.Values{"title": {"x"}, "key": {"guess"}, "action": {"save"}}
	}
	for i := range 10 {
		rec := post(t, h, "/yoz/blog/", form())
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d", i, rec.Code)
		}
	}
	rec := post(t, h, "/yoz/blog/", form())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if fake.writeCount() != 10 {
		t.Fatalf("limited request reached the API")
	}
}

func TestContactForm(t *testing.T) {
	sender := &recordingSender{}
	h := newTestApp(t, sampleAPI(), sender)

	rec := post(t, h, "/contact/", url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "message": {"hi"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must be a valid email address") {
		t.Fatalf("validation message missing")
	}

	rec = post(t, h, "/contact/", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"hi"}})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Thanks!") {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sender.sent) != 1 || sender.sent[0].Email != "ada@example.com" {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestContactSendFailure(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{err: errors.New("smtp down")})
	rec := post(t, h, "/contact/", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"hi"}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="Ada"`) {
		t.Fatalf("form values lost")
	}
}

func TestFeedSitemapRobots(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})

	feed := get(t, h, "/feed.xml").Body.String()
	if !strings.Contains(feed, "<link>https://example.com/blog/go-concurrency/</link>") {
		t.Errorf("feed missing item: %s", feed)
	}
	// newest first
	if strings.Index(feed, "Rust Lifetimes") > strings.Index(feed, "Go Concurrency") {
		t.Errorf("feed not ordered newest first")
	}

	sitemap := get(t, h, "/sitemap.xml").Body.String()
	if !strings.Contains(sitemap, "<loc>https://example.com/project/glasscube/</loc>") {
		t.Errorf("sitemap missing project")
	}

	robots := get(t, h, "/robots.txt").Body.String()
	if !strings.Contains(robots, "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots = %q", robots)
	}
}

func TestYozIsNotCached(t *testing.T) {
	h := newTestApp(t, sampleAPI(), &recordingSender{})
	rec := get(t, h, "/yoz/")
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("Cache-Control = %q", cc)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}
}
