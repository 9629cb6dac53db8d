// Package settings keeps user display preferences (language and theme)
// behind a small store with explicit load, update and subscribe steps.
package settings

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// Themes lists the accepted theme values.
var Themes = []string{ThemeDark, ThemeLight, ThemeSystem}

// Languages lists the accepted language codes.
var Languages = []string{"en", "ko", "uz", "ru"}

// Preferences are the user's display choices.
type Preferences struct {
	Language string
	Theme    string
}

// Defaults is used for anything the backend has not stored yet.
var Defaults = Preferences{Language: "en", Theme: ThemeDark}

// Normalize replaces unknown values with defaults.
func (p Preferences) Normalize() Preferences {
	if !slices.Contains(Languages, p.Language) {
		p.Language = Defaults.Language
	}
	if !slices.Contains(Themes, p.Theme) {
		p.Theme = Defaults.Theme
	}
	return p
}

// Backend persists preferences.
type Backend interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
}

// Store reads preferences once at open and notifies subscribers on every
// update.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	prefs   Preferences
	stored  bool
	subs    map[int]func(Preferences)
	nextID  int
}

// Open loads the initial preferences from b.
func Open(ctx context.Context, b Backend) (*Store, error) {
	p, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings: load: %w", err)
	}
	n := p.Normalize()
	return &Store{
		backend: b,
		prefs:   n,
		stored:  p.Language != "" && p.Language == n.Language,
		subs:    make(map[int]func(Preferences)),
	}, nil
}

// Stored reports whether the language came from the backend or an update
// rather than from Defaults.
func (s *Store) Stored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stored
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Update applies fn, rejects unknown values, persists the result and then
// notifies subscribers outside the lock.
func (s *Store) Update(ctx context.Context, fn func(*Preferences)) error {
	s.mu.Lock()
	next := s.prefs
	fn(&next)
	if !slices.Contains(Languages, next.Language) {
		s.mu.Unlock()
		return fmt.Errorf("settings: unknown language %q", next.Language)
	}
	if !slices.Contains(Themes, next.Theme) {
		s.mu.Unlock()
		return fmt.Errorf("settings: unknown theme %q", next.Theme)
	}
	if err := s.backend.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("settings: save: %w", err)
	}
	s.prefs = next
	s.stored = true
	subs := make([]func(Preferences), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Subscribe registers fn for future updates. The returned func removes it.
func (s *Store) Subscribe(fn func(Preferences)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Memory is a Backend that keeps preferences in process memory.
type Memory struct {
	mu    sync.Mutex
	prefs Preferences
}

func NewMemory(p Preferences) *Memory {
	return &Memory{prefs: p}
}

func (m *Memory) Load(context.Context) (Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs, nil
}

func (m *Memory) Save(_ context.Context, p Preferences) error {
	m.mu.Lock()
	m.prefs = p
	m.mu.Unlock()
	return nil
}
