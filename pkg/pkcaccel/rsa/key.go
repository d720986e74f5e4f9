package rsa

import (
	stdrsa "crypto/rsa"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
)

// PublicKey is an RSA public key. Len is the modulus length in bytes; inputs
// and outputs are exactly Len bytes.
type PublicKey struct {
	N   *big.Int
	E   *big.Int
	Len int
}

// PrivateKey is an RSA private key in CRT form. The primes must each be
// (Len+1)/2 bytes long.
type PrivateKey struct {
	PublicKey
	P, Q *big.Int
	DP   *big.Int // d mod (p-1)
	DQ   *big.Int // d mod (q-1)
	QInv *big.Int // q^-1 mod p
}

// PublicKeyFrom converts a crypto/rsa public key.
func PublicKeyFrom(k *stdrsa.PublicKey) (*PublicKey, error) {
	if k == nil || k.N == nil {
		return nil, fmt.Errorf("%w: nil public key", pkcaccel.ErrBadInputData)
	}
	return &PublicKey{
		N:   new(big.Int).Set(k.N),
		E:   big.NewInt(int64(k.E)),
		Len: k.Size(),
	}, nil
}

// PrivateKeyFrom converts a two-prime crypto/rsa private key.
func PrivateKeyFrom(k *stdrsa.PrivateKey) (*PrivateKey, error) {
	if k == nil || k.N == nil {
		return nil, fmt.Errorf("%w: nil private key", pkcaccel.ErrBadInputData)
	}
	if len(k.Primes) != 2 {
		return nil, fmt.Errorf("%w: %d-prime keys are not supported", pkcaccel.ErrBadInputData, len(k.Primes))
	}
	if k.Precomputed.Dp == nil {
		k.Precompute()
	}
	pub, err := PublicKeyFrom(&k.PublicKey)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		PublicKey: *pub,
		P:         new(big.Int).Set(k.Primes[0]),
		Q:         new(big.Int).Set(k.Primes[1]),
		DP:        new(big.Int).Set(k.Precomputed.Dp),
		DQ:        new(big.Int).Set(k.Precomputed.Dq),
		QInv:      new(big.Int).Set(k.Precomputed.Qinv),
	}, nil
}

func positive(x *big.Int) bool {
	return x != nil && x.Sign() > 0
}

// check validates the public part of the key.
func (k *PublicKey) check() error {
	switch {
	case k == nil:
		return fmt.Errorf("%w: nil key", pkcaccel.ErrBadInputData)
	case !positive(k.N) || k.N.Bit(0) == 0:
		return fmt.Errorf("%w: modulus must be positive and odd", pkcaccel.ErrBadInputData)
	case !positive(k.E):
		return fmt.Errorf("%w: public exponent must be positive", pkcaccel.ErrBadInputData)
	case k.Len <= 0:
		return fmt.Errorf("%w: key length %d", pkcaccel.ErrBadInputData, k.Len)
	}
	return nil
}

func (k *PrivateKey) check() error {
	if k == nil {
		return fmt.Errorf("%w: nil key", pkcaccel.ErrBadInputData)
	}
	if err := k.PublicKey.check(); err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		x    *big.Int
	}{
		{"p", k.P}, {"q", k.Q}, {"dp", k.DP}, {"dq", k.DQ}, {"qinv", k.QInv},
	} {
		if !positive(c.x) {
			return fmt.Errorf("%w: %s must be positive", pkcaccel.ErrBadInputData, c.name)
		}
	}
	return nil
}
