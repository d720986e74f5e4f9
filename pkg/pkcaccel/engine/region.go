package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrRegionClaimed is returned by Claim when another owner holds the region.
	ErrRegionClaimed = errors.New("engine: scratch region already claimed")

	// ErrRegionTooSmall is returned by Window when the request does not fit.
	ErrRegionTooSmall = errors.New("engine: scratch region too small")
)

// Region is the device scratch RAM. It is an ownership token: only the holder
// of a successful Claim may carve windows out of it.
type Region struct {
	mem     []byte
	claimed atomic.Bool
}

// NewRegion returns an unclaimed region of size bytes.
func NewRegion(size int) *Region {
	return &Region{mem: make([]byte, size)}
}

// Len returns the region size in bytes.
func (r *Region) Len() int {
	return len(r.mem)
}

// Claim takes exclusive ownership of the region.
func (r *Region) Claim() error {
	if !r.claimed.CompareAndSwap(false, true) {
		return ErrRegionClaimed
	}
	return nil
}

// Release gives up ownership. Releasing an unclaimed region is a no-op.
func (r *Region) Release() {
	r.claimed.Store(false)
}

// Claimed reports whether the region is currently owned.
func (r *Region) Claimed() bool {
	return r.claimed.Load()
}

// Window returns the n bytes starting at off. The slice has its capacity
// capped at n so appends cannot spill into the rest of the region.
func (r *Region) Window(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(r.mem) {
		return nil, fmt.Errorf("%w: want [%d, %d), have %d bytes", ErrRegionTooSmall, off, off+n, len(r.mem))
	}
	return r.mem[off : off+n : off+n], nil
}

// Workarea is a scratch buffer with a high-water mark. Bytes below Used are
// reserved for operands; the engine may use the rest.
type Workarea struct {
	Buf  []byte
	Used int
}

// Free returns the number of bytes above the high-water mark.
func (w *Workarea) Free() int {
	return len(w.Buf) - w.Used
}

// Scratch returns the unreserved part of the workarea.
func (w *Workarea) Scratch() []byte {
	return w.Buf[w.Used:]
}

// SessionDescriptor is the state of one hardware session.
type SessionDescriptor struct {
	CPU Workarea
	PKC Workarea
}
