// Package arena holds the intermediate buffers of one operation and releases
// them together.
//
// Buffers are addressed by logical name. A name can alias another name's
// buffer, in which case both names share one physical block and Release wipes
// that block once.
package arena

import (
	"errors"
	"fmt"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
)

var (
	ErrSlotExists  = errors.New("arena: slot already allocated")
	ErrNoSlot      = errors.New("arena: no such slot")
	ErrReleased    = errors.New("arena: already released")
	ErrInvalidSize = errors.New("arena: invalid size")
)

// Name is the logical name of a buffer.
type Name string

type block struct {
	owner Name
	buf   []byte
}

// Arena is not safe for concurrent use.
type Arena struct {
	slots    map[Name]*block
	blocks   []*block
	released bool
}

// New returns an empty arena. Callers defer Release right after New.
func New() *Arena {
	return &Arena{slots: make(map[Name]*block)}
}

// Alloc returns a zeroed buffer of n bytes registered under name.
func (a *Arena) Alloc(name Name, n int) ([]byte, error) {
	if err := a.checkNew(name); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d bytes for %s", ErrInvalidSize, n, name)
	}
	b := &block{owner: name, buf: make([]byte, n)}
	a.slots[name] = b
	a.blocks = append(a.blocks, b)
	return b.buf, nil
}

// Alias registers name as another name for target's buffer and returns it.
func (a *Arena) Alias(name, target Name) ([]byte, error) {
	if err := a.checkNew(name); err != nil {
		return nil, err
	}
	b, ok := a.slots[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSlot, target)
	}
	a.slots[name] = b
	return b.buf, nil
}

func (a *Arena) checkNew(name Name) error {
	if a.released {
		return ErrReleased
	}
	if _, ok := a.slots[name]; ok {
		return fmt.Errorf("%w: %s", ErrSlotExists, name)
	}
	return nil
}

// Bytes returns the buffer registered under name, or nil.
func (a *Arena) Bytes(name Name) []byte {
	if b, ok := a.slots[name]; ok {
		return b.buf
	}
	return nil
}

// Shares reports whether x and y name the same physical block.
func (a *Arena) Shares(x, y Name) bool {
	bx, okx := a.slots[x]
	by, oky := a.slots[y]
	return okx && oky && bx == by
}

// Blocks returns the number of physical blocks held.
func (a *Arena) Blocks() int {
	return len(a.blocks)
}

// Release wipes every physical block exactly once and forgets all names. It
// returns the owning name of each wiped block in allocation order. Releasing
// twice is a no-op that returns nil.
func (a *Arena) Release() []Name {
	if a == nil || a.released {
		return nil
	}
	a.released = true
	freed := make([]Name, 0, len(a.blocks))
	for _, b := range a.blocks {
		pkcaccel.ZeroizeBytes(b.buf)
		b.buf = nil
		freed = append(freed, b.owner)
	}
	a.blocks = nil
	clear(a.slots)
	return freed
}
