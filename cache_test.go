package glasscube

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/content"
)

type countingLatest struct {
	calls int
	err   error
}

func (c *countingLatest) Latest(context.Context) (api.Latest, error) {
	c.calls++
	if c.err != nil {
		return api.Latest{}, c.err
	}
	return api.Latest{Blogs: []content.Blog{{Title: "one"}}}, nil
}

func TestFeedCacheCachesSuccess(t *testing.T) {
	src := &countingLatest{}
	f := NewFeedCache(src, time.Minute)

	for range 3 {
		l, err := f.Latest(context.Background())
		if err != nil || len(l.Blogs) != 1 {
			t.Fatalf("Latest = %+v, %v", l, err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("calls = %d, want 1", src.calls)
	}

	f.Invalidate()
	if _, err := f.Latest(context.Background()); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Fatalf("calls after invalidate = %d, want 2", src.calls)
	}
}

func TestFeedCacheDoesNotCacheErrors(t *testing.T) {
	src := &countingLatest{err: errors.New("down")}
	f := NewFeedCache(src, time.Minute)

	for range 2 {
		if _, err := f.Latest(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	}
	if src.calls != 2 {
		t.Fatalf("calls = %d, want 2", src.calls)
	}
}
