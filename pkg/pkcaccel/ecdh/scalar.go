package ecdh

import (
	"fmt"
	"io"
	"math/big"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
)

// drawScalar reads nLen bytes at a time from rng, masks the bits above the
// order's bit length and retries until the value lies in [1, n-1].
func drawScalar(rng io.Reader, n *big.Int) (*big.Int, error) {
	nBits := n.BitLen()
	buf := make([]byte, (nBits+7)/8)
	defer pkcaccel.ZeroizeBytes(buf)

	excess := uint(len(buf)*8 - nBits)
	for range maxScalarDraws {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("%w: %w", pkcaccel.ErrRandomFailed, err)
		}
		buf[0] &= 0xff >> excess
		k := new(big.Int).SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(n) < 0 {
			return k, nil
		}
		pkcaccel.ZeroizeBig(k)
	}
	return nil, fmt.Errorf("%w: no scalar in range after %d draws", pkcaccel.ErrRandomFailed, maxScalarDraws)
}
