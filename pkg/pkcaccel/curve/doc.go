// Package curve identifies elliptic-curve groups and holds their domain
// parameters.
//
// # Groups
//
// ID enumerates the recognized groups. ID.Supported is the capability
// predicate of the coprocessor: every recognized group except Curve25519 and
// Curve448 can be used for ECDH.
//
// Load returns built-in parameters for every supported group. The NIST primes
// above 192 bits come from crypto/elliptic and secp256k1 from btcec; the rest
// are the published SEC 2 and Brainpool constants. Other short Weierstrass
// groups are used by filling a Group directly:
//
//	grp := &curve.Group{P: p, A: a, B: b, Gx: gx, Gy: gy, N: n,
//	    PBits: p.BitLen(), NBits: n.BitLen()}
package curve
