package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	s := Resolve(3, nil, "ignored")
	assert.True(t, s.Loaded())
	assert.Equal(t, 3, s.Value)

	s = Resolve(0, errors.New("list blogs: status 500"), "")
	assert.True(t, s.Failed())
	assert.Equal(t, "list blogs: status 500", s.Message)

	s = Resolve(0, errors.New("x"), MsgProjectFailed)
	assert.Equal(t, MsgProjectFailed, s.Message)
}

func TestTrackerDiscardsStaleResponses(t *testing.T) {
	var tr Tracker[string]
	first := tr.Begin("go")
	second := tr.Begin("rust")
	assert.True(t, tr.State().Loading())

	assert.True(t, tr.Resolve(second, "rust results", nil, ""))
	assert.False(t, tr.Resolve(first, "go results", nil, ""), "late response for an older request must be dropped")

	st := tr.State()
	assert.True(t, st.Loaded())
	assert.Equal(t, "rust results", st.Value)
	assert.Equal(t, "rust", tr.Key())
}

func TestTrackerFailure(t *testing.T) {
	var tr Tracker[int]
	tk := tr.Begin("all")
	tr.Resolve(tk, 0, errors.New("offline"), "")
	assert.True(t, tr.State().Failed())
	assert.Equal(t, "offline", tr.State().Message)
	assert.Equal(t, "failed", tr.State().Status.String())
}
