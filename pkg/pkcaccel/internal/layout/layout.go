// Package layout plans where operands go inside the coprocessor scratch RAM.
//
// A Plan lists one Slot per operand, in a fixed order, at ascending offsets.
// Slot capacities are rounded up to the engine alignment before offsets are
// assigned, so slots never overlap. The engine's own workarea follows the
// operands; PKCSize covers both.
package layout

import (
	"fmt"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
)

// SlotName names an operand slot.
type SlotName string

const (
	Modulus   SlotName = "modulus"
	Exponent  SlotName = "exponent"
	PrimeP    SlotName = "p"
	PrimeQ    SlotName = "q"
	QInv      SlotName = "qinv"
	DP        SlotName = "dp"
	DQ        SlotName = "dq"
	PublicExp SlotName = "e"
	Result    SlotName = "result"
)

// Slot is a byte range of the PKC window. Len is the operand length written
// at Offset; Cap is the aligned room reserved for it.
type Slot struct {
	Name   SlotName
	Offset int
	Len    int
	Cap    int
}

// End returns the first offset after the slot.
func (s Slot) End() int { return s.Offset + s.Cap }

// Plan is the sized layout of one operation.
type Plan struct {
	// CPUSize is the CPU workarea in bytes.
	CPUSize int
	// PKCSize is the PKC window in bytes: operands plus engine workarea.
	PKCSize int
	// OperandSize is the aligned size of all slots; the session reserves it
	// before the primitive runs.
	OperandSize int
	Slots       []Slot
}

// Slot returns the slot called name.
func (p *Plan) Slot(name SlotName) (Slot, bool) {
	for _, s := range p.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// Validate fails with ErrHardwareAccelFailed if the plan needs more than
// regionLen bytes of scratch RAM.
func (p *Plan) Validate(regionLen int) error {
	if p.PKCSize > regionLen {
		return fmt.Errorf("%w: plan needs %d bytes of scratch RAM, region has %d",
			pkcaccel.ErrHardwareAccelFailed, p.PKCSize, regionLen)
	}
	return nil
}

// Align rounds n up to a multiple of a. Non-positive a leaves n unchanged.
func Align(n, a int) int {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}

type builder struct {
	align int
	off   int
	slots []Slot
}

func (b *builder) add(name SlotName, length, capacity int) {
	c := Align(capacity, b.align)
	b.slots = append(b.slots, Slot{Name: name, Offset: b.off, Len: length, Cap: c})
	b.off += c
}

func (b *builder) plan(cpu, workarea int) *Plan {
	return &Plan{
		CPUSize:     cpu,
		PKCSize:     b.off + workarea,
		OperandSize: b.off,
		Slots:       b.slots,
	}
}

func badInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", pkcaccel.ErrBadInputData, fmt.Sprintf(format, args...))
}

// PlanPointMult sizes a point multiplication. Its operands live outside the
// scratch RAM, so the plan has no slots.
func PlanPointMult(s engine.Sizer, pLen, nLen int) (*Plan, error) {
	if pLen <= 0 || nLen <= 0 {
		return nil, badInput("curve byte lengths p=%d n=%d", pLen, nLen)
	}
	cpu, pkc := s.PointMultWorkarea(pLen, nLen)
	b := &builder{align: s.Alignment()}
	return b.plan(cpu, Align(pkc, b.align)), nil
}

// PlanRSAPublic lays out modulus, exponent and result for a public-key
// operation with an nLen-byte modulus. modLen and expLen are the actual
// encoded lengths of the key components.
func PlanRSAPublic(s engine.Sizer, nLen, modLen, expLen int) (*Plan, error) {
	switch {
	case nLen <= 0:
		return nil, badInput("modulus length %d", nLen)
	case modLen != nLen:
		return nil, badInput("modulus is %d bytes, context says %d", modLen, nLen)
	case expLen <= 0 || expLen > nLen:
		return nil, badInput("exponent is %d bytes, want 1..%d", expLen, nLen)
	}
	b := &builder{align: s.Alignment()}
	b.add(Modulus, modLen, nLen)
	b.add(Exponent, expLen, nLen)
	b.add(Result, nLen, nLen)
	cpu, pkc := s.VerifyWorkarea(8 * nLen)
	return b.plan(cpu, Align(pkc, b.align)), nil
}

// CRTLengths are the encoded byte lengths of a CRT private key.
type CRTLengths struct {
	P, Q, QInv, DP, DQ, E int
}

// PrimeLen returns the expected byte length of each prime of an nLen-byte
// modulus.
func PrimeLen(nLen int) int {
	return (nLen + 1) / 2
}

// PlanRSAPrivateCRT lays out p, q, q^-1, dP, dQ, e and the result for a CRT
// private-key operation with an nLen-byte modulus.
func PlanRSAPrivateCRT(s engine.Sizer, nLen int, l CRTLengths) (*Plan, error) {
	if nLen <= 0 {
		return nil, badInput("modulus length %d", nLen)
	}
	pq := PrimeLen(nLen)
	if l.P != pq || l.Q != pq {
		return nil, badInput("primes are %d and %d bytes, want %d", l.P, l.Q, pq)
	}
	for _, c := range []struct {
		name SlotName
		n    int
		max  int
	}{
		{QInv, l.QInv, pq},
		{DP, l.DP, pq},
		{DQ, l.DQ, pq},
		{PublicExp, l.E, nLen},
	} {
		if c.n <= 0 || c.n > c.max {
			return nil, badInput("%s is %d bytes, want 1..%d", c.name, c.n, c.max)
		}
	}

	b := &builder{align: s.Alignment()}
	b.add(PrimeP, l.P, pq)
	b.add(PrimeQ, l.Q, pq)
	b.add(QInv, l.QInv, pq)
	b.add(DP, l.DP, pq)
	b.add(DQ, l.DQ, pq)
	b.add(PublicExp, l.E, nLen)
	b.add(Result, nLen, nLen)
	cpu, pkc := s.SignCRTWorkarea(8 * nLen)
	return b.plan(cpu, Align(pkc, b.align)), nil
}
