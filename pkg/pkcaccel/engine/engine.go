package engine

// Sizer reports the workarea requirements of an engine. Sizes are in bytes.
type Sizer interface {
	// Alignment is the granularity operand sizes are rounded up to before
	// offsets are assigned in the device RAM.
	Alignment() int

	// PointMultWorkarea returns the CPU and PKC workarea needed by a point
	// multiplication on a curve with the given prime and order byte lengths.
	PointMultWorkarea(pLen, nLen int) (cpu, pkc int)

	// VerifyWorkarea returns the workarea needed by a raw public-key
	// exponentiation with an nBits modulus.
	VerifyWorkarea(nBits int) (cpu, pkc int)

	// SignCRTWorkarea returns the workarea needed by a raw CRT private-key
	// exponentiation with an nBits modulus.
	SignCRTWorkarea(nBits int) (cpu, pkc int)
}

// Engine is a public-key coprocessor.
//
// Engines are not safe for concurrent use. At most one session may be open at
// a time; SessionInit reports StatusBusy otherwise.
type Engine interface {
	Sizer

	// Init brings the accelerator up. It is idempotent and is called at the
	// start of every adapter operation because the device may have been reset
	// in between.
	Init() error

	// RAM returns the device scratch region.
	RAM() *Region

	// SessionInit binds the CPU and PKC workareas to s.
	SessionInit(s *SessionDescriptor, cpu, pkc []byte) Result

	// SessionCleanup wipes the workareas bound to s. Cleaning an already
	// cleaned session is a no-op.
	SessionCleanup(s *SessionDescriptor) Result

	// SessionDestroy unbinds s and frees the device for the next session.
	// Destroying an already destroyed session is a no-op.
	SessionDestroy(s *SessionDescriptor) Result

	// PointMult computes p.Scalar x p.Point on p.Curve into p.Result.
	PointMult(s *SessionDescriptor, p *PointMultParams) Result

	// Sign runs the private-key primitive of key over msg into sig.
	Sign(s *SessionDescriptor, key *Key, msg []byte, mode Mode, sig []byte) Result

	// Verify runs the public-key primitive of key over sig into out.
	Verify(s *SessionDescriptor, key *Key, sig []byte, mode Mode, out []byte) Result
}
