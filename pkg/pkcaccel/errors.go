package pkcaccel

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error returned by an operation matches exactly one of
// the first six sentinels with errors.Is.
var (
	// ErrBadInputData indicates a missing argument or an operand whose byte
	// length disagrees with the length implied by its context.
	ErrBadInputData = errors.New("pkcaccel: bad input data")

	// ErrHardwareAccelFailed indicates that hardware bring-up or session
	// initialization failed.
	ErrHardwareAccelFailed = errors.New("pkcaccel: hardware accelerator failed")

	// ErrRandomFailed indicates that the random source failed.
	ErrRandomFailed = errors.New("pkcaccel: random source failed")

	// ErrCorruptionDetected indicates that a primitive did not execute (its
	// completion token did not match) or reported an unrecognized failure.
	ErrCorruptionDetected = errors.New("pkcaccel: corruption detected")

	// ErrPublicOperationFailed indicates that the RSA public primitive or its
	// session teardown failed.
	ErrPublicOperationFailed = errors.New("pkcaccel: public key operation failed")

	// ErrPrivateOperationFailed indicates that the RSA private primitive or its
	// session teardown failed.
	ErrPrivateOperationFailed = errors.New("pkcaccel: private key operation failed")

	// ErrDeviceClosed is returned when a closed Device is used.
	ErrDeviceClosed = fmt.Errorf("%w: device closed", ErrHardwareAccelFailed)
)

// Kind classifies an error into the taxonomy.
type Kind int

const (
	KindNone Kind = iota
	KindBadInputData
	KindHardwareAccelFailed
	KindRandomFailed
	KindCorruptionDetected
	KindPublicOperationFailed
	KindPrivateOperationFailed
	// KindOther is an error outside the taxonomy, such as a canceled context.
	KindOther
)

var kinds = []struct {
	kind Kind
	err  error
	name string
}{
	{KindBadInputData, ErrBadInputData, "bad_input_data"},
	{KindHardwareAccelFailed, ErrHardwareAccelFailed, "hw_accel_failed"},
	{KindRandomFailed, ErrRandomFailed, "random_failed"},
	{KindCorruptionDetected, ErrCorruptionDetected, "corruption_detected"},
	{KindPublicOperationFailed, ErrPublicOperationFailed, "public_failed"},
	{KindPrivateOperationFailed, ErrPrivateOperationFailed, "private_failed"},
}

// String returns the kind name.
func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	for _, e := range kinds {
		if e.kind == k {
			return e.name
		}
	}
	return "other"
}

// Err returns the sentinel for k, or nil for KindNone and KindOther.
func (k Kind) Err() error {
	for _, e := range kinds {
		if e.kind == k {
			return e.err
		}
	}
	return nil
}

// KindOf returns the taxonomy entry err belongs to.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, e := range kinds {
		if errors.Is(err, e.err) {
			return e.kind
		}
	}
	return KindOther
}

// Error records the operation that failed.
type Error struct {
	Op  string // Operation that failed, e.g. "ecdh.GenerateKeyPair"
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches op to err. It returns nil for a nil err and does not nest an
// *Error inside another.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Op: op, Err: err}
}
