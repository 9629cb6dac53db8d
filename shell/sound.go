package shell

import "context"

// Sound is a named cue. Volume is part of the cue, not the player.
type Sound int

const (
	// SoundClick is the navigation click (click1).
	SoundClick Sound = iota
	// SoundConfirm acknowledges a selection (click2).
	SoundConfirm
	// SoundBoot plays after the boot click (run).
	SoundBoot
	// SoundBeep rejects an unexpected key (click1, quieter).
	SoundBeep
)

func (s Sound) String() string {
	switch s {
	case SoundConfirm:
		return "click2"
	case SoundBoot:
		return "run"
	case SoundBeep:
		return "beep"
	}
	return "click1"
}

// Volume in [0, 1].
func (s Sound) Volume() float64 {
	if s == SoundBeep {
		return 0.3
	}
	return 1
}

// Player plays a sound. Implementations may block until playback ends.
type Player interface {
	Play(ctx context.Context, s Sound) error
}

// Emit starts every sound in its own goroutine and returns immediately.
// Playback errors are reported to onErr, if set, and never affect state.
func Emit(ctx context.Context, p Player, sounds []Sound, onErr func(Sound, error)) {
	if p == nil {
		return
	}
	for _, s := range sounds {
		go func(s Sound) {
			if err := p.Play(ctx, s); err != nil && onErr != nil {
				onErr(s, err)
			}
		}(s)
	}
}
