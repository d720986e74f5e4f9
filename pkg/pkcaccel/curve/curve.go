package curve

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ErrUnsupportedGroup is returned by Load for groups without built-in
// parameters or whose representation the coprocessor cannot express.
var ErrUnsupportedGroup = errors.New("curve: unsupported group")

// ID identifies an elliptic-curve group.
type ID int

// Recognized groups. The numbering follows the usual TLS library ordering.
const (
	None ID = iota
	SECP192R1
	SECP224R1
	SECP256R1
	SECP384R1
	SECP521R1
	BP256R1
	BP384R1
	BP512R1
	Curve25519
	SECP192K1
	SECP224K1
	SECP256K1
	Curve448
)

var names = map[ID]string{
	SECP192R1:  "secp192r1",
	SECP224R1:  "secp224r1",
	SECP256R1:  "secp256r1",
	SECP384R1:  "secp384r1",
	SECP521R1:  "secp521r1",
	BP256R1:    "brainpoolP256r1",
	BP384R1:    "brainpoolP384r1",
	BP512R1:    "brainpoolP512r1",
	Curve25519: "x25519",
	SECP192K1:  "secp192k1",
	SECP224K1:  "secp224k1",
	SECP256K1:  "secp256k1",
	Curve448:   "x448",
}

// IDs returns every recognized group in numeric order.
func IDs() []ID {
	ids := make([]ID, 0, len(names))
	for id := SECP192R1; id <= Curve448; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseID looks a group up by name.
func ParseID(name string) (ID, error) {
	for id, n := range names {
		if n == name {
			return id, nil
		}
	}
	switch name {
	case "P-224":
		return SECP224R1, nil
	case "P-256":
		return SECP256R1, nil
	case "P-384":
		return SECP384R1, nil
	case "P-521":
		return SECP521R1, nil
	}
	return None, fmt.Errorf("curve: unknown group %q", name)
}

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return "unknown"
}

// Known reports whether id is a recognized group.
func (id ID) Known() bool {
	_, ok := names[id]
	return ok
}

// Supported reports whether the coprocessor can run ECDH on id. Curve25519
// and Curve448 use x-only Montgomery points the buffer convention cannot
// carry; every other recognized group is supported.
func (id ID) Supported() bool {
	switch id {
	case Curve25519, Curve448:
		return false
	default:
		return id.Known()
	}
}

// Group holds the domain parameters of a short Weierstrass curve
// y^2 = x^3 + A*x + B over GF(P) with base point (Gx, Gy) of order N.
type Group struct {
	ID     ID
	P      *big.Int
	A      *big.Int
	B      *big.Int
	Gx, Gy *big.Int
	N      *big.Int
	PBits  int
	NBits  int
}

// PLen returns the byte length of a field element.
func (g *Group) PLen() int { return (g.PBits + 7) / 8 }

// NLen returns the byte length of a scalar.
func (g *Group) NLen() int { return (g.NBits + 7) / 8 }

// Validate checks that every parameter is present and consistent with the
// declared bit lengths.
func (g *Group) Validate() error {
	if g == nil {
		return errors.New("curve: nil group")
	}
	for _, v := range []*big.Int{g.P, g.A, g.B, g.Gx, g.Gy, g.N} {
		if v == nil || v.Sign() < 0 {
			return errors.New("curve: missing or negative parameter")
		}
	}
	if g.PBits <= 0 || g.NBits <= 0 {
		return errors.New("curve: bit lengths not set")
	}
	if g.P.BitLen() != g.PBits || g.N.BitLen() != g.NBits {
		return fmt.Errorf("curve: declared lengths %d/%d disagree with parameters %d/%d",
			g.PBits, g.NBits, g.P.BitLen(), g.N.BitLen())
	}
	return nil
}

// FromCurveParams builds a Group from Go curve parameters. The parameters do
// not carry the a coefficient, so it is passed separately.
func FromCurveParams(id ID, params *elliptic.CurveParams, a *big.Int) *Group {
	return &Group{
		ID:    id,
		P:     new(big.Int).Set(params.P),
		A:     new(big.Int).Set(a),
		B:     new(big.Int).Set(params.B),
		Gx:    new(big.Int).Set(params.Gx),
		Gy:    new(big.Int).Set(params.Gy),
		N:     new(big.Int).Set(params.N),
		PBits: params.P.BitLen(),
		NBits: params.N.BitLen(),
	}
}

// Load returns fresh domain parameters for id.
func Load(id ID) (*Group, error) {
	switch id {
	case SECP224R1:
		return nist(id, elliptic.P224()), nil
	case SECP256R1:
		return nist(id, elliptic.P256()), nil
	case SECP384R1:
		return nist(id, elliptic.P384()), nil
	case SECP521R1:
		return nist(id, elliptic.P521()), nil
	case SECP256K1:
		return FromCurveParams(id, btcec.S256().Params(), new(big.Int)), nil
	case Curve25519, Curve448:
		return nil, fmt.Errorf("%w: %s has no short Weierstrass form here", ErrUnsupportedGroup, id)
	}
	if h, ok := published[id]; ok {
		return h.group(id), nil
	}
	return nil, fmt.Errorf("%w: no built-in parameters for %s", ErrUnsupportedGroup, id)
}

// hexParams are domain parameters as published in SEC 2 and RFC 5639.
type hexParams struct {
	p, a, b, gx, gy, n string
}

func (h hexParams) group(id ID) *Group {
	g := &Group{
		ID: id,
		P:  mustHex(h.p),
		A:  mustHex(h.a),
		B:  mustHex(h.b),
		Gx: mustHex(h.gx),
		Gy: mustHex(h.gy),
		N:  mustHex(h.n),
	}
	g.PBits, g.NBits = g.P.BitLen(), g.N.BitLen()
	return g
}

func mustHex(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: bad parameter " + s)
	}
	return x
}

var published = map[ID]hexParams{
	SECP192R1: {
		p:  "fffffffffffffffffffffffffffffffeffffffffffffffff",
		a:  "fffffffffffffffffffffffffffffffefffffffffffffffc",
		b:  "64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1",
		gx: "188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012",
		gy: "07192b95ffc8da78631011ed6b24cdd573f977a11e794811",
		n:  "ffffffffffffffffffffffff99def836146bc9b1b4d22831",
	},
	SECP192K1: {
		p:  "fffffffffffffffffffffffffffffffffffffffeffffee37",
		a:  "0",
		b:  "3",
		gx: "db4ff10ec057e9ae26b07d0280b7f4341da5d1b1eae06c7d",
		gy: "9b2f2f6d9c5628a7844163d015be86344082aa88d95e2f9d",
		n:  "fffffffffffffffffffffffe26f2fc170f69466a74defd8d",
	},
	SECP224K1: {
		p:  "fffffffffffffffffffffffffffffffffffffffffffffffeffffe56d",
		a:  "0",
		b:  "5",
		gx: "a1455b334df099df30fc28a169a467e9e47075a90f7e650eb6b7a45c",
		gy: "7e089fed7fba344282cafbd6f7e319f7c0b0bd59e2ca4bdb556d61a5",
		n:  "010000000000000000000000000001dce8d2ec6184caf0a971769fb1f7",
	},
	BP256R1: {
		p:  "a9fb57dba1eea9bc3e660a909d838d726e3bf623d52620282013481d1f6e5377",
		a:  "7d5a0975fc2c3057eef67530417affe7fb8055c126dc5c6ce94a4b44f330b5d9",
		b:  "26dc5c6ce94a4b44f330b5d9bbd77cbf958416295cf7e1ce6bccdc18ff8c07b6",
		gx: "8bd2aeb9cb7e57cb2c4b482ffc81b7afb9de27e1e3bd23c23a4453bd9ace3262",
		gy: "547ef835c3dac4fd97f8461a14611dc9c27745132ded8e545c1d54c72f046997",
		n:  "a9fb57dba1eea9bc3e660a909d838d718c397aa3b561a6f7901e0e82974856a7",
	},
	BP384R1: {
		p:  "8cb91e82a3386d280f5d6f7e50e641df152f7109ed5456b412b1da197fb71123acd3a729901d1a71874700133107ec53",
		a:  "7bc382c63d8c150c3c72080ace05afa0c2bea28e4fb22787139165efba91f90f8aa5814a503ad4eb04a8c7dd22ce2826",
		b:  "04a8c7dd22ce28268b39b55416f0447c2fb77de107dcd2a62e880ea53eeb62d57cb4390295dbc9943ab78696fa504c11",
		gx: "1d1c64f068cf45ffa2a63a81b7c13f6b8847a3e77ef14fe3db7fcafe0cbd10e8e826e03436d646aaef87b2e247d4af1e",
		gy: "8abe1d7520f9c2a45cb1eb8e95cfd55262b70b29feec5864e19c054ff99129280e4646217791811142820341263c5315",
		n:  "8cb91e82a3386d280f5d6f7e50e641df152f7109ed5456b31f166e6cac0425a7cf3ab6af6b7fc3103b883202e9046565",
	},
	BP512R1: {
		p:  "aadd9db8dbe9c48b3fd4e6ae33c9fc07cb308db3b3c9d20ed6639cca703308717d4d9b009bc66842aecda12ae6a380e62881ff2f2d82c68528aa6056583a48f3",
		a:  "7830a3318b603b89e2327145ac234cc594cbdd8d3df91610a83441caea9863bc2ded5d5aa8253aa10a2ef1c98b9ac8b57f1117a72bf2c7b9e7c1ac4d77fc94ca",
		b:  "3df91610a83441caea9863bc2ded5d5aa8253aa10a2ef1c98b9ac8b57f1117a72bf2c7b9e7c1ac4d77fc94cadc083e67984050b75ebae5dd2809bd638016f723",
		gx: "81aee4bdd82ed9645a21322e9c4c6a9385ed9f70b5d916c1b43b62eef4d0098eff3b1f78e2d0d48d50d1687b93b97d5f7c6d5047406a5e688b352209bcb9f822",
		gy: "7dde385d566332ecc0eabfa9cf7822fdf209f70024a57b1aa000c55b881f8111b2dcde494a5f485e5bca4bd88a2763aed1ca2b2fa8f0540678cd1e0f3ad80892",
		n:  "aadd9db8dbe9c48b3fd4e6ae33c9fc07cb308db3b3c9d20ed6639cca70330870553e5c414ca92619418661197fac10471db1d381085ddaddb58796829ca90069",
	},
}

// nist builds a NIST prime curve group, where a = -3 mod p.
func nist(id ID, c elliptic.Curve) *Group {
	params := c.Params()
	a := new(big.Int).Sub(params.P, big.NewInt(3))
	return FromCurveParams(id, params, a)
}
