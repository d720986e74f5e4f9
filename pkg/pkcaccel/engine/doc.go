// Package engine defines the contract between the pkcaccel adapter and a
// public-key coprocessor (PKC).
//
// An Engine works on fixed-layout big-endian byte buffers. Operands either
// live in a window of the device scratch RAM (Region) or in caller memory,
// and every primitive returns a Result pairing a completion Token with a
// Status. The token proves the primitive actually ran: callers compare it
// against Called(fn) before looking at the status.
//
// # Scratch RAM ownership
//
// The device RAM is a process-wide singleton. It is modelled as a Region that
// must be claimed before use; a claimed Region cannot be claimed again until
// it is released:
//
//	ram := eng.RAM()
//	if err := ram.Claim(); err != nil {
//	    return err
//	}
//	defer ram.Release()
//
// # Implementations
//
// Package softpkc provides a software implementation on math/big that is used
// as the default engine and in tests. Drivers for real hardware implement the
// same interface.
package engine
