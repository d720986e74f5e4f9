package engine

import "fmt"

// FuncID identifies an engine primitive for completion-token checks.
type FuncID uint16

const (
	FuncSessionInit FuncID = iota + 1
	FuncSessionCleanup
	FuncSessionDestroy
	FuncPointMult
	FuncSign
	FuncVerify
)

// String returns the primitive name.
func (f FuncID) String() string {
	switch f {
	case FuncSessionInit:
		return "session_init"
	case FuncSessionCleanup:
		return "session_cleanup"
	case FuncSessionDestroy:
		return "session_destroy"
	case FuncPointMult:
		return "point_mult"
	case FuncSign:
		return "rsa_sign"
	case FuncVerify:
		return "rsa_verify"
	default:
		return fmt.Sprintf("func(%d)", uint16(f))
	}
}

// Token is the completion token an engine returns from a primitive. A token
// that differs from Called(fn) means fn did not run to completion.
type Token uint32

// Called returns the token a completed call of fn produces. It is never zero,
// so a zero-valued Result never passes the check.
func Called(fn FuncID) Token {
	return Token(uint32(fn)<<16 | uint32(^uint16(fn)))
}

// Status is the result code of a completed primitive. Zero is not a valid
// status.
type Status uint32

const (
	StatusOK            Status = 0x0A5A_0001
	StatusInvalidParams Status = 0x0A5A_0053
	StatusRNGError      Status = 0x0A5A_0055
	StatusBusy          Status = 0x0A5A_0066
	StatusFailure       Status = 0x0A5A_5555
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidParams:
		return "invalid_params"
	case StatusRNGError:
		return "rng_error"
	case StatusBusy:
		return "busy"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%#08x)", uint32(s))
	}
}

// Result is the (token, status) pair every primitive returns.
type Result struct {
	Token  Token
	Status Status
}

// Done returns the Result of a completed call of fn.
func Done(fn FuncID, st Status) Result {
	return Result{Token: Called(fn), Status: st}
}
