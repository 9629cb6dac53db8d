// Package editor holds the working state of the blog and project editors:
// an ordered list of content blocks plus entity fields, and the operations
// that turn that state into create or update requests.
package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/glasscube/glasscube/content"
)

// ErrBlockIndex is returned when an operation names a block that does not
// exist.
var ErrBlockIndex = errors.New("editor: block index out of range")

// ErrNotMedia is returned when a media operation names a text block.
var ErrNotMedia = errors.New("editor: block is not media")

// Blocks is the editable body of a draft. Every operation returns a new
// slice and leaves the receiver untouched.
type Blocks []content.Block

// Append adds an empty block of type t at the end.
func (b Blocks) Append(t content.BlockType) Blocks {
	out := make(Blocks, len(b), len(b)+1)
	copy(out, b)
	return append(out, content.Block{Type: t})
}

// Update replaces the data of block i. Its type never changes.
func (b Blocks) Update(i int, data string) (Blocks, error) {
	if err := b.check(i); err != nil {
		return b, err
	}
	out := slices.Clone(b)
	out[i].Data = data
	return out, nil
}

// Remove deletes block i, keeping the order of the rest.
func (b Blocks) Remove(i int) (Blocks, error) {
	if err := b.check(i); err != nil {
		return b, err
	}
	return slices.Delete(slices.Clone(b), i, i+1), nil
}

func (b Blocks) check(i int) error {
	if i < 0 || i >= len(b) {
		return fmt.Errorf("%w: %d of %d", ErrBlockIndex, i, len(b))
	}
	return nil
}

func (b Blocks) document() []content.Block {
	out := make([]content.Block, len(b))
	copy(out, b)
	return out
}
