package tui

import (
	"context"
	"io"
	"sync"

	"github.com/glasscube/glasscube/shell"
)

// BellPlayer renders shell sounds as the terminal bell. Quiet cues are
// skipped when the player is muted below their volume.
type BellPlayer struct {
	mu        sync.Mutex
	w         io.Writer
	MinVolume float64
}

func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(ctx context.Context, s shell.Sound) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Volume() < p.MinVolume {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.w, "\a")
	return err
}
