package engine

// DomainParams are the curve constants of a point multiplication, each a
// big-endian buffer. A, B and P are pLen bytes, G is X||Y (2*pLen) and N is
// nLen bytes.
type DomainParams struct {
	A, B, P []byte
	G       []byte
	N       []byte
	Misc    uint32
}

// PLen returns the byte length of the field prime.
func (d *DomainParams) PLen() int { return len(d.P) }

// NLen returns the byte length of the group order.
func (d *DomainParams) NLen() int { return len(d.N) }

// PointMultParams describe Result = Scalar x Point. Point may be the same
// buffer as Curve.G.
type PointMultParams struct {
	Curve   DomainParams
	Scalar  []byte
	Point   []byte
	Result  []byte
	Options uint32
}

// KeyType tags the layout of a Key.
type KeyType int

const (
	KeyPublic KeyType = iota + 1
	KeyPrivateCRT
)

func (t KeyType) String() string {
	switch t {
	case KeyPublic:
		return "public"
	case KeyPrivateCRT:
		return "private_crt"
	default:
		return "unknown"
	}
}

// KeyEntry is one big-endian key component. Data has the exact byte length of
// the component and is not owned by the entry.
type KeyEntry struct {
	Data []byte
}

// Len returns the entry length, zero for a nil entry.
func (e *KeyEntry) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Data)
}

// Key is an RSA key as the engine consumes it.
//
// For KeyPublic, Mod1 is the modulus and Exp1 the public exponent. For
// KeyPrivateCRT, Mod1 and Mod2 are the primes p and q, QInv is q^-1 mod p,
// Exp1 and Exp2 are dP and dQ, and Exp3 is the public exponent.
type Key struct {
	Type KeyType
	Mod1 *KeyEntry
	Mod2 *KeyEntry
	QInv *KeyEntry
	Exp1 *KeyEntry
	Exp2 *KeyEntry
	Exp3 *KeyEntry
}

// Mode selects the padding handling of Sign and Verify.
type Mode int

const (
	// ModeSignNoEncode signs the input as-is (raw private-key permutation).
	ModeSignNoEncode Mode = iota + 1
	// ModeVerifyNoVerify returns the raw public-key permutation without
	// checking any encoding.
	ModeVerifyNoVerify
)

func (m Mode) String() string {
	switch m {
	case ModeSignNoEncode:
		return "sign_no_encode"
	case ModeVerifyNoVerify:
		return "verify_no_verify"
	default:
		return "unknown"
	}
}
