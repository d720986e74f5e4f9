package ecdh

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
)

// DeriveKey expands a shared secret into n bytes of key material with
// HKDF-SHA256. The secret is encoded as a pLen-byte big-endian field element
// so both parties hash the same input whatever its leading zeros.
func DeriveKey(secret *big.Int, grp *curve.Group, salt, info []byte, n int) ([]byte, error) {
	if secret == nil || grp == nil || n <= 0 {
		return nil, pkcaccel.Wrap("ecdh.DeriveKey", fmt.Errorf("%w: missing secret, group or length", pkcaccel.ErrBadInputData))
	}
	ikm := make([]byte, grp.PLen())
	defer pkcaccel.ZeroizeBytes(ikm)
	if secret.Sign() < 0 || (secret.BitLen()+7)/8 > len(ikm) {
		return nil, pkcaccel.Wrap("ecdh.DeriveKey", fmt.Errorf("%w: secret does not fit the field", pkcaccel.ErrBadInputData))
	}
	secret.FillBytes(ikm)

	out := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), out); err != nil {
		return nil, pkcaccel.Wrap("ecdh.DeriveKey", fmt.Errorf("%w: %w", pkcaccel.ErrBadInputData, err))
	}
	return out, nil
}
