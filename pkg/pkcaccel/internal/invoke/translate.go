package invoke

import (
	"fmt"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
)

// Family selects the failure kind a primitive's generic failure maps to.
type Family int

const (
	FamilyECC Family = iota + 1
	FamilyRSAPublic
	FamilyRSAPrivate
)

func (f Family) String() string {
	switch f {
	case FamilyECC:
		return "ecc"
	case FamilyRSAPublic:
		return "rsa_public"
	case FamilyRSAPrivate:
		return "rsa_private"
	default:
		return "unknown"
	}
}

// Failure returns the sentinel a failed primitive of the family maps to.
func (f Family) Failure() error {
	switch f {
	case FamilyRSAPublic:
		return pkcaccel.ErrPublicOperationFailed
	case FamilyRSAPrivate:
		return pkcaccel.ErrPrivateOperationFailed
	default:
		return pkcaccel.ErrCorruptionDetected
	}
}

// Translate maps the outcome of a call of fn to an error. It is nil only for
// a Completed outcome with StatusOK.
func Translate(fam Family, fn engine.FuncID, o Outcome) error {
	var st engine.Status
	switch o := o.(type) {
	case Completed:
		st = o.Status
	case NotExecuted:
		return fmt.Errorf("%w: %s did not execute (token %#08x, want %#08x)",
			pkcaccel.ErrCorruptionDetected, fn, uint32(o.Got), uint32(o.Want))
	default:
		return fmt.Errorf("%w: %s has no outcome", pkcaccel.ErrCorruptionDetected, fn)
	}
	if st == engine.StatusOK {
		return nil
	}

	var kind error
	switch fn {
	case engine.FuncSessionInit:
		kind = pkcaccel.ErrHardwareAccelFailed
	case engine.FuncSessionCleanup, engine.FuncSessionDestroy:
		kind = fam.Failure()
	default:
		switch st {
		case engine.StatusInvalidParams:
			kind = pkcaccel.ErrBadInputData
		case engine.StatusRNGError:
			kind = pkcaccel.ErrRandomFailed
		case engine.StatusFailure:
			kind = fam.Failure()
		default:
			kind = pkcaccel.ErrCorruptionDetected
		}
	}
	return fmt.Errorf("%w: %s returned %s", kind, fn, st)
}
