// Package pkcaccel adapts RSA and ECDH onto a public-key coprocessor that
// works on fixed-layout big-endian buffers in a dedicated scratch RAM.
//
// Open a Device, then call the operations in packages ecdh and rsa with it:
//
//	dev, err := pkcaccel.Open(pkcaccel.Config{})
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	grp, _ := curve.Load(curve.SECP256R1)
//	kp, err := ecdh.GenerateKeyPair(ctx, dev, grp, rand.Reader)
//
// Every operation plans the operand layout inside the scratch RAM, opens one
// hardware session, runs one primitive and always tears the session down
// again. Results are only returned on success.
//
// # Errors
//
// Errors are *Error values whose chain matches one sentinel of the taxonomy
// (ErrBadInputData, ErrHardwareAccelFailed, ErrRandomFailed,
// ErrCorruptionDetected, ErrPublicOperationFailed, ErrPrivateOperationFailed).
// KindOf classifies an error:
//
//	if pkcaccel.KindOf(err) == pkcaccel.KindCorruptionDetected {
//	    // the primitive did not run; treat the device as suspect
//	}
//
// # Engines
//
// The default engine is the software coprocessor in engine/softpkc. Hardware
// drivers implement engine.Engine and are passed in Config.Engine.
package pkcaccel
