package commands

import (
	"context"
	"crypto/rand"
	stdrsa "crypto/rsa"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/ecdh"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/rsa"
)

var errMismatch = errors.New("results disagree")

const kdfInfo = "pkcaccel selftest"

// ecdhResult summarizes a key agreement. Only public values are kept.
type ecdhResult struct {
	Group     curve.ID
	PublicKey string // base64 of X||Y
	KeyBytes  int
}

func (r ecdhResult) String() string {
	return fmt.Sprintf("ecdh %-16s ok  public=%s... derived=%dB", r.Group, r.PublicKey[:16], r.KeyBytes)
}

func runECDH(ctx context.Context, dev *pkcaccel.Device, id curve.ID) (ecdhResult, error) {
	grp, err := curve.Load(id)
	if err != nil {
		return ecdhResult{}, err
	}
	alice, err := ecdh.GenerateKeyPair(ctx, dev, grp, rand.Reader)
	if err != nil {
		return ecdhResult{}, err
	}
	defer pkcaccel.ZeroizeBig(alice.D)
	bob, err := ecdh.GenerateKeyPair(ctx, dev, grp, rand.Reader)
	if err != nil {
		return ecdhResult{}, err
	}
	defer pkcaccel.ZeroizeBig(bob.D)

	za, err := ecdh.ComputeSharedSecret(ctx, dev, grp, bob.Q, alice.D, nil)
	if err != nil {
		return ecdhResult{}, err
	}
	defer pkcaccel.ZeroizeBig(za)
	zb, err := ecdh.ComputeSharedSecret(ctx, dev, grp, alice.Q, bob.D, nil)
	if err != nil {
		return ecdhResult{}, err
	}
	defer pkcaccel.ZeroizeBig(zb)

	ka, err := ecdh.DeriveKey(za, grp, nil, []byte(kdfInfo), 32)
	if err != nil {
		return ecdhResult{}, err
	}
	defer pkcaccel.ZeroizeBytes(ka)
	kb, err := ecdh.DeriveKey(zb, grp, nil, []byte(kdfInfo), 32)
	if err != nil {
		return ecdhResult{}, err
	}
	defer pkcaccel.ZeroizeBytes(kb)
	if subtle.ConstantTimeCompare(ka, kb) != 1 {
		return ecdhResult{}, fmt.Errorf("%s: %w", id, errMismatch)
	}

	pub := make([]byte, 2*grp.PLen())
	alice.Q.X.FillBytes(pub[:grp.PLen()])
	alice.Q.Y.FillBytes(pub[grp.PLen():])
	return ecdhResult{
		Group:     id,
		PublicKey: base64.StdEncoding.EncodeToString(pub),
		KeyBytes:  len(ka),
	}, nil
}

type rsaResult struct {
	Bits int
}

func (r rsaResult) String() string {
	return fmt.Sprintf("rsa  %-16s ok  private/public round trip", fmt.Sprintf("%d-bit", r.Bits))
}

func runRSA(ctx context.Context, dev *pkcaccel.Device, bits int) (rsaResult, error) {
	std, err := stdrsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return rsaResult{}, err
	}
	key, err := rsa.PrivateKeyFrom(std)
	if err != nil {
		return rsaResult{}, err
	}

	m, err := rand.Int(rand.Reader, key.N)
	if err != nil {
		return rsaResult{}, err
	}
	in := m.FillBytes(make([]byte, key.Len))
	sig, err := rsa.Private(ctx, dev, key, rand.Reader, in)
	if err != nil {
		return rsaResult{}, err
	}
	back, err := rsa.Public(ctx, dev, &key.PublicKey, sig)
	if err != nil {
		return rsaResult{}, err
	}
	if subtle.ConstantTimeCompare(in, back) != 1 {
		return rsaResult{}, fmt.Errorf("rsa %d: %w", bits, errMismatch)
	}

	want := new(big.Int).Exp(new(big.Int).SetBytes(sig), key.E, key.N)
	if want.Cmp(m) != 0 {
		return rsaResult{}, fmt.Errorf("rsa %d public permutation: %w", bits, errMismatch)
	}
	return rsaResult{Bits: key.Len * 8}, nil
}
