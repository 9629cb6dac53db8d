package shell

import "time"

// Generation identifies one run of a Typewriter. Ticks carrying an older
// generation are ignored.
type Generation uint64

// Typewriter reveals lines one at a time. Driving ticks is left to the
// caller so it works with any timer or event loop.
type Typewriter struct {
	lines    []string
	visible  int
	interval time.Duration
	gen      Generation
}

// RevealInterval is the per-line delay of each tab. Zero means the tab is
// shown at once.
func RevealInterval(t Tab) time.Duration {
	switch t {
	case TabHome, TabContact:
		return 500 * time.Millisecond
	case TabAbout:
		return 400 * time.Millisecond
	case TabSkills:
		return 350 * time.Millisecond
	}
	return 0
}

// Start begins revealing lines and invalidates every earlier generation.
// With a zero interval all lines are visible immediately.
func (t *Typewriter) Start(lines []string, interval time.Duration) Generation {
	t.gen++
	t.lines = lines
	t.interval = interval
	t.visible = 0
	if interval <= 0 {
		t.visible = len(lines)
	}
	return t.gen
}

// Stop invalidates the current generation without changing what is shown.
func (t *Typewriter) Stop() {
	t.gen++
}

// Tick reveals the next line if gen is current. It reports whether another
// tick should be scheduled.
func (t *Typewriter) Tick(gen Generation) bool {
	if gen != t.gen || t.Done() {
		return false
	}
	t.visible++
	return !t.Done()
}

func (t *Typewriter) Done() bool { return t.visible >= len(t.lines) }

func (t *Typewriter) Visible() []string { return t.lines[:t.visible] }

func (t *Typewriter) Interval() time.Duration { return t.interval }

func (t *Typewriter) Generation() Generation { return t.gen }
