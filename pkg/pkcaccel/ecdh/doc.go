// Package ecdh runs elliptic-curve Diffie-Hellman on a pkcaccel Device.
//
// Both operations are a single point multiplication on the coprocessor:
// GenerateKeyPair multiplies the base point by a fresh scalar, and
// ComputeSharedSecret multiplies the peer's public point by the local
// private scalar and returns the X coordinate.
//
//	dev, err := pkcaccel.Open(pkcaccel.Config{})
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	grp, _ := curve.Load(curve.SECP256R1)
//	alice, err := ecdh.GenerateKeyPair(ctx, dev, grp, rand.Reader)
//	...
//	z, err := ecdh.ComputeSharedSecret(ctx, dev, grp, bob.Q, alice.D, nil)
//
// Groups are short Weierstrass curves with affine coordinates. Curve25519
// and Curve448 are not supported; CanDo reports which groups are.
package ecdh
