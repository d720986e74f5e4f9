// Package marshal converts between big integers and the fixed-length
// big-endian buffers the coprocessor consumes.
//
// Nothing here truncates. A value that does not fit its buffer, or whose
// exact length disagrees with the length its context requires, is rejected
// with pkcaccel.ErrBadInputData.
package marshal

import (
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/arena"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/layout"
)

// Arena names of the domain parameter buffers.
const (
	CurveA arena.Name = "curve.a"
	CurveB arena.Name = "curve.b"
	CurveP arena.Name = "curve.p"
	CurveG arena.Name = "curve.g"
	CurveN arena.Name = "curve.n"
)

// ByteLen returns the minimal big-endian length of x. Zero has length zero.
func ByteLen(x *big.Int) int {
	return (x.BitLen() + 7) / 8
}

func checkValue(x *big.Int) error {
	if x == nil {
		return fmt.Errorf("%w: missing integer", pkcaccel.ErrBadInputData)
	}
	if x.Sign() < 0 {
		return fmt.Errorf("%w: negative integer", pkcaccel.ErrBadInputData)
	}
	return nil
}

// WriteBinary writes x into buf, left-padded with zeros.
func WriteBinary(x *big.Int, buf []byte) error {
	if err := checkValue(x); err != nil {
		return err
	}
	if n := ByteLen(x); n > len(buf) {
		return fmt.Errorf("%w: %d-byte integer does not fit %d bytes", pkcaccel.ErrBadInputData, n, len(buf))
	}
	x.FillBytes(buf)
	return nil
}

// WriteExact writes x into buf, which must be exactly ByteLen(x) long.
func WriteExact(x *big.Int, buf []byte) error {
	if err := checkValue(x); err != nil {
		return err
	}
	if n := ByteLen(x); n != len(buf) {
		return fmt.Errorf("%w: integer is %d bytes, buffer is %d", pkcaccel.ErrBadInputData, n, len(buf))
	}
	x.FillBytes(buf)
	return nil
}

// ReadBinary returns a fresh integer from the big-endian buf.
func ReadBinary(buf []byte) *big.Int {
	return new(big.Int).SetBytes(buf)
}

// WriteSlot writes x at slot inside window and returns the key entry that
// views it. x must be exactly slot.Len bytes long.
func WriteSlot(window []byte, slot layout.Slot, x *big.Int) (*engine.KeyEntry, error) {
	if slot.Offset < 0 || slot.Len > slot.Cap || slot.Offset+slot.Cap > len(window) {
		return nil, fmt.Errorf("%w: slot %s [%d, %d) outside %d-byte window",
			pkcaccel.ErrBadInputData, slot.Name, slot.Offset, slot.End(), len(window))
	}
	data := window[slot.Offset : slot.Offset+slot.Len : slot.Offset+slot.Len]
	if err := WriteExact(x, data); err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot.Name, err)
	}
	return &engine.KeyEntry{Data: data}, nil
}

// PublicKey builds a public key from written entries.
func PublicKey(mod, exp *engine.KeyEntry) *engine.Key {
	return &engine.Key{Type: engine.KeyPublic, Mod1: mod, Exp1: exp}
}

// PrivateCRTKey builds a CRT private key from written entries.
func PrivateCRTKey(p, q, qInv, dP, dQ, e *engine.KeyEntry) *engine.Key {
	return &engine.Key{
		Type: engine.KeyPrivateCRT,
		Mod1: p,
		Mod2: q,
		QInv: qInv,
		Exp1: dP,
		Exp2: dQ,
		Exp3: e,
	}
}

// DomainParams writes the parameters of g into buffers allocated from a.
// A, B and P are pLen bytes; G is X||Y; N is nLen bytes.
func DomainParams(a *arena.Arena, g *curve.Group) (engine.DomainParams, error) {
	var dp engine.DomainParams
	if err := g.Validate(); err != nil {
		return dp, fmt.Errorf("%w: %w", pkcaccel.ErrBadInputData, err)
	}
	pLen, nLen := g.PLen(), g.NLen()

	fields := []struct {
		name arena.Name
		x    *big.Int
		n    int
		dst  *[]byte
	}{
		{CurveA, g.A, pLen, &dp.A},
		{CurveB, g.B, pLen, &dp.B},
		{CurveP, g.P, pLen, &dp.P},
		{CurveN, g.N, nLen, &dp.N},
	}
	for _, f := range fields {
		buf, err := a.Alloc(f.name, f.n)
		if err != nil {
			return dp, err
		}
		if err := WriteBinary(f.x, buf); err != nil {
			return dp, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = buf
	}

	gBuf, err := a.Alloc(CurveG, 2*pLen)
	if err != nil {
		return dp, err
	}
	if err := WritePoint(gBuf, g.Gx, g.Gy, pLen); err != nil {
		return dp, fmt.Errorf("%s: %w", CurveG, err)
	}
	dp.G = gBuf
	return dp, nil
}

// WritePoint writes the affine point (x, y) into buf as X||Y with pLen-byte
// coordinates.
func WritePoint(buf []byte, x, y *big.Int, pLen int) error {
	if len(buf) != 2*pLen {
		return fmt.Errorf("%w: point buffer is %d bytes, want %d", pkcaccel.ErrBadInputData, len(buf), 2*pLen)
	}
	if err := WriteBinary(x, buf[:pLen]); err != nil {
		return fmt.Errorf("x: %w", err)
	}
	if err := WriteBinary(y, buf[pLen:]); err != nil {
		return fmt.Errorf("y: %w", err)
	}
	return nil
}

// ReadPoint returns fresh coordinates from an X||Y buffer.
func ReadPoint(buf []byte, pLen int) (x, y *big.Int, err error) {
	if pLen <= 0 || len(buf) != 2*pLen {
		return nil, nil, fmt.Errorf("%w: point buffer is %d bytes, want %d", pkcaccel.ErrBadInputData, len(buf), 2*pLen)
	}
	return ReadBinary(buf[:pLen]), ReadBinary(buf[pLen:]), nil
}
