// Package session manages the lifetime of one coprocessor session.
//
// A Session binds a CPU workarea on the heap and a window of the device
// scratch RAM to the engine. Close always runs cleanup and destroy, so the
// device is free for the next call whatever happened in between.
package session

import (
	"context"
	"fmt"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/invoke"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/layout"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

// Session is an open coprocessor session. It is not safe for concurrent use.
type Session struct {
	desc   engine.SessionDescriptor
	inv    invoke.Invoker
	align  int
	cpu    []byte
	window []byte
	log    logging.Logger
	closed bool
}

// Open sizes the workareas from plan and initializes a session on eng. The
// region must be claimed by the caller. If initialization fails the session
// is destroyed before Open returns.
func Open(ctx context.Context, eng engine.Engine, region *engine.Region, plan *layout.Plan, fam invoke.Family, log logging.Logger) (*Session, error) {
	if log == nil {
		log = logging.Discard()
	}
	if region == nil || !region.Claimed() {
		return nil, fmt.Errorf("%w: scratch RAM not claimed", pkcaccel.ErrHardwareAccelFailed)
	}
	if err := plan.Validate(region.Len()); err != nil {
		return nil, err
	}
	window, err := region.Window(0, plan.PKCSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkcaccel.ErrHardwareAccelFailed, err)
	}

	s := &Session{
		inv:    invoke.Invoker{Engine: eng, Family: fam},
		align:  eng.Alignment(),
		cpu:    make([]byte, plan.CPUSize),
		window: window,
		log:    log.With("family", fam.String()),
	}
	if err := s.inv.SessionInit(&s.desc, s.cpu, s.window); err != nil {
		if derr := s.inv.SessionDestroy(&s.desc); derr != nil {
			log.Warn(ctx, "destroy after failed init", logging.Op("session.Open"), "error", derr)
		}
		s.wipe()
		s.closed = true
		return nil, err
	}
	s.log.Debug(ctx, "session opened",
		"cpu_bytes", plan.CPUSize,
		"pkc_bytes", plan.PKCSize,
		"operand_bytes", plan.OperandSize)
	return s, nil
}

// Descriptor returns the engine session state.
func (s *Session) Descriptor() *engine.SessionDescriptor {
	return &s.desc
}

// Invoker returns the invoker bound to the session's family.
func (s *Session) Invoker() invoke.Invoker {
	return s.inv
}

// Window returns the PKC workarea. Plan slot offsets are relative to its
// start.
func (s *Session) Window() []byte {
	return s.window
}

// Reserve moves the PKC high-water mark up by n bytes rounded up to the
// engine alignment.
func (s *Session) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative reservation %d", pkcaccel.ErrBadInputData, n)
	}
	n = layout.Align(n, s.align)
	if n > s.desc.PKC.Free() {
		return fmt.Errorf("%w: reserving %d bytes, %d free", pkcaccel.ErrHardwareAccelFailed, n, s.desc.PKC.Free())
	}
	s.desc.PKC.Used += n
	return nil
}

// Unreserve moves the PKC high-water mark down by n bytes rounded up to the
// engine alignment, stopping at zero.
func (s *Session) Unreserve(n int) {
	if n <= 0 {
		return
	}
	s.desc.PKC.Used = max(s.desc.PKC.Used-layout.Align(n, s.align), 0)
}

// Close cleans and destroys the session. Both steps always run; the first
// failure is returned. Closing twice is a no-op.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	cerr := s.inv.SessionCleanup(&s.desc)
	derr := s.inv.SessionDestroy(&s.desc)
	s.wipe()

	if cerr != nil && derr != nil {
		s.log.Warn(context.Background(), "session destroy failed", logging.Op("session.Close"), "error", derr)
	}
	if cerr != nil {
		return cerr
	}
	if derr != nil {
		return derr
	}
	s.log.Debug(context.Background(), "session closed")
	return nil
}

func (s *Session) wipe() {
	pkcaccel.ZeroizeBytes(s.cpu)
	pkcaccel.ZeroizeBytes(s.window)
}
