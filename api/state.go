package api

import (
	"context"
	"errors"
	"sync"

	"github.com/glasscube/glasscube/content"
)

// Status is the lifecycle of a fetch.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "loading"
}

// State is a fetch result as seen by a view: loading, loaded with a value,
// or failed with a message for the user.
type State[T any] struct {
	Status  Status
	Value   T
	Message string
	Err     error
}

func (s State[T]) Loading() bool { return s.Status == StatusLoading }
func (s State[T]) Loaded() bool  { return s.Status == StatusLoaded }
func (s State[T]) Failed() bool  { return s.Status == StatusFailed }

// NotFound reports whether a failed state came from a 404.
func (s State[T]) NotFound() bool {
	return s.Failed() && errors.Is(s.Err, ErrNotFound)
}

func Loaded[T any](v T) State[T] {
	return State[T]{Status: StatusLoaded, Value: v}
}

func Failed[T any](err error, message string) State[T] {
	return State[T]{Status: StatusFailed, Err: err, Message: message}
}

// Resolve maps a fetch outcome to a State. When message is empty the error
// text is shown.
func Resolve[T any](v T, err error, message string) State[T] {
	if err == nil {
		return Loaded(v)
	}
	if message == "" {
		message = err.Error()
	}
	return Failed[T](err, message)
}

const (
	MsgBlogFailed    = "Could not load blog."
	MsgProjectFailed = "Could not load project."
)

// LoadBlog fetches a blog detail as a State with the generic detail
// failure message.
func (c *Client) LoadBlog(ctx context.Context, slug string) State[content.Blog] {
	b, err := c.Blog(ctx, slug)
	return Resolve(b, err, MsgBlogFailed)
}

// LoadProject fetches a project detail as a State.
func (c *Client) LoadProject(ctx context.Context, slug string) State[content.Project] {
	p, err := c.Project(ctx, slug)
	return Resolve(p, err, MsgProjectFailed)
}

// LoadBlogs fetches the blog collection as a State carrying the error
// text on failure.
func (c *Client) LoadBlogs(ctx context.Context) State[BlogList] {
	l, err := c.Blogs(ctx)
	return Resolve(l, err, "")
}

// LoadProjects fetches the project collection as a State.
func (c *Client) LoadProjects(ctx context.Context) State[ProjectList] {
	l, err := c.Projects(ctx)
	return Resolve(l, err, "")
}

// Ticket identifies one request started on a Tracker.
type Ticket struct {
	Key string
	seq uint64
}

// Tracker holds the State of the most recent request for a view and drops
// responses that arrive after a newer request started.
type Tracker[T any] struct {
	mu    sync.Mutex
	seq   uint64
	key   string
	state State[T]
}

// Begin starts a new request for key and moves the state to loading.
// Earlier tickets become stale.
func (t *Tracker[T]) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.key = key
	t.state = State[T]{Status: StatusLoading}
	return Ticket{Key: key, seq: t.seq}
}

// Resolve records the outcome of tk. It returns false and changes nothing
// when tk is stale.
func (t *Tracker[T]) Resolve(tk Ticket, v T, err error, message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk.seq != t.seq {
		return false
	}
	t.state = Resolve(v, err, message)
	return true
}

func (t *Tracker[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Key is the key of the latest request.
func (t *Tracker[T]) Key() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.key
}
