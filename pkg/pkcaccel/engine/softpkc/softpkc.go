// Package softpkc is a software public-key coprocessor implementing
// engine.Engine on math/big.
//
// It reproduces the coprocessor's observable contract: a fixed scratch RAM, a
// single active session, workarea accounting, completion tokens and status
// codes. The engine overwrites its scratch space above the PKC high-water mark
// before it reads any operand, so a caller that fails to reserve its operands
// gets corrupted results instead of silently passing.
//
// The arithmetic is not constant time. Use it for development, tests and as a
// reference for hardware drivers.
package softpkc

import (
	"math/big"
	"sync/atomic"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
)

const (
	// DefaultRAMSize matches a 16 KiB coprocessor RAM.
	DefaultRAMSize = 16 << 10

	wordSize     = 8
	scratchByte  = 0xA5
	pointMultCPU = 64
	verifyCPU    = 16
	signCRTCPU   = 64
)

// Config configures a software engine.
type Config struct {
	// RAMSize is the scratch RAM size in bytes. Zero selects DefaultRAMSize.
	RAMSize int
}

// Stats counts engine activity.
type Stats struct {
	SessionsCreated   uint64
	SessionsDestroyed uint64
	OpsPerformed      uint64
	OpsRejected       uint64
}

// Engine is the software coprocessor. It is not safe for concurrent use.
type Engine struct {
	ram    *engine.Region
	ready  bool
	active *engine.SessionDescriptor

	created   atomic.Uint64
	destroyed atomic.Uint64
	performed atomic.Uint64
	rejected  atomic.Uint64
}

var _ engine.Engine = (*Engine)(nil)

// New returns an engine with its own scratch RAM.
func New(cfg Config) *Engine {
	size := cfg.RAMSize
	if size <= 0 {
		size = DefaultRAMSize
	}
	return &Engine{ram: engine.NewRegion(size)}
}

// Init marks the engine ready.
func (e *Engine) Init() error {
	e.ready = true
	return nil
}

// RAM returns the scratch RAM.
func (e *Engine) RAM() *engine.Region {
	return e.ram
}

// Stats returns a snapshot of the activity counters.
func (e *Engine) Stats() Stats {
	return Stats{
		SessionsCreated:   e.created.Load(),
		SessionsDestroyed: e.destroyed.Load(),
		OpsPerformed:      e.performed.Load(),
		OpsRejected:       e.rejected.Load(),
	}
}

func align(n int) int {
	return (n + wordSize - 1) / wordSize * wordSize
}

// Alignment is the PKC word size.
func (e *Engine) Alignment() int { return wordSize }

// PointMultWorkarea sizes 22 operand buffers of the wider of p and n, plus
// one word of headroom each.
func (e *Engine) PointMultWorkarea(pLen, nLen int) (cpu, pkc int) {
	return pointMultCPU, 22 * (align(max(pLen, nLen)) + wordSize)
}

// VerifyWorkarea sizes two modulus-length buffers.
func (e *Engine) VerifyWorkarea(nBits int) (cpu, pkc int) {
	return verifyCPU, 2*align((nBits+7)/8) + 2*wordSize
}

// SignCRTWorkarea sizes six prime-length buffers.
func (e *Engine) SignCRTWorkarea(nBits int) (cpu, pkc int) {
	pq := ((nBits+7)/8 + 1) / 2
	return signCRTCPU, 6*align(pq) + 3*wordSize
}

func (e *Engine) SessionInit(s *engine.SessionDescriptor, cpu, pkc []byte) engine.Result {
	switch {
	case !e.ready:
		return e.reject(engine.FuncSessionInit, engine.StatusFailure)
	case s == nil:
		return e.reject(engine.FuncSessionInit, engine.StatusInvalidParams)
	case e.active != nil:
		return e.reject(engine.FuncSessionInit, engine.StatusBusy)
	case len(pkc) > e.ram.Len():
		return e.reject(engine.FuncSessionInit, engine.StatusInvalidParams)
	}
	s.CPU = engine.Workarea{Buf: cpu}
	s.PKC = engine.Workarea{Buf: pkc}
	e.active = s
	e.created.Add(1)
	return engine.Done(engine.FuncSessionInit, engine.StatusOK)
}

func (e *Engine) SessionCleanup(s *engine.SessionDescriptor) engine.Result {
	if s == nil {
		return e.reject(engine.FuncSessionCleanup, engine.StatusInvalidParams)
	}
	clear(s.CPU.Buf)
	clear(s.PKC.Buf)
	return engine.Done(engine.FuncSessionCleanup, engine.StatusOK)
}

func (e *Engine) SessionDestroy(s *engine.SessionDescriptor) engine.Result {
	if s == nil {
		return e.reject(engine.FuncSessionDestroy, engine.StatusInvalidParams)
	}
	if e.active == s {
		e.active = nil
		e.destroyed.Add(1)
	}
	*s = engine.SessionDescriptor{}
	return engine.Done(engine.FuncSessionDestroy, engine.StatusOK)
}

// admit checks the engine state and workarea room for a primitive, then
// overwrites the scratch part of the PKC workarea.
func (e *Engine) admit(fn engine.FuncID, s *engine.SessionDescriptor, cpuNeed, pkcNeed int) (engine.Result, bool) {
	switch {
	case !e.ready:
		return e.reject(fn, engine.StatusFailure), false
	case s == nil || e.active != s:
		return e.reject(fn, engine.StatusInvalidParams), false
	case len(s.CPU.Buf) < cpuNeed, s.PKC.Used < 0, s.PKC.Free() < pkcNeed:
		return e.reject(fn, engine.StatusFailure), false
	}
	scratch := s.PKC.Scratch()[:pkcNeed]
	for i := range scratch {
		scratch[i] = scratchByte
	}
	return engine.Result{}, true
}

func (e *Engine) reject(fn engine.FuncID, st engine.Status) engine.Result {
	e.rejected.Add(1)
	return engine.Done(fn, st)
}

func (e *Engine) complete(fn engine.FuncID) engine.Result {
	e.performed.Add(1)
	return engine.Done(fn, engine.StatusOK)
}

// PointMult computes p.Scalar x p.Point on the short Weierstrass curve given by
// p.Curve. The scalar must lie in [1, n-1] and the point on the curve.
func (e *Engine) PointMult(s *engine.SessionDescriptor, p *engine.PointMultParams) engine.Result {
	const fn = engine.FuncPointMult
	if p == nil {
		return e.reject(fn, engine.StatusInvalidParams)
	}
	dp := &p.Curve
	pLen, nLen := dp.PLen(), dp.NLen()
	if pLen == 0 || nLen == 0 ||
		len(dp.A) != pLen || len(dp.B) != pLen || len(dp.G) != 2*pLen ||
		len(p.Scalar) != nLen || len(p.Point) != 2*pLen || len(p.Result) != 2*pLen {
		return e.reject(fn, engine.StatusInvalidParams)
	}
	cpuNeed, pkcNeed := e.PointMultWorkarea(pLen, nLen)
	if res, ok := e.admit(fn, s, cpuNeed, pkcNeed); !ok {
		return res
	}

	c := &weierstrass{
		p: new(big.Int).SetBytes(dp.P),
		a: new(big.Int).SetBytes(dp.A),
		b: new(big.Int).SetBytes(dp.B),
	}
	n := new(big.Int).SetBytes(dp.N)
	k := new(big.Int).SetBytes(p.Scalar)
	pt := &affine{
		x: new(big.Int).SetBytes(p.Point[:pLen]),
		y: new(big.Int).SetBytes(p.Point[pLen:]),
	}
	if c.p.Bit(0) == 0 || c.p.Cmp(bigThree) <= 0 || !c.inField(c.a) || !c.inField(c.b) {
		return e.reject(fn, engine.StatusInvalidParams)
	}
	if k.Sign() == 0 || k.Cmp(n) >= 0 || !c.onCurve(pt) {
		return e.reject(fn, engine.StatusInvalidParams)
	}

	r := c.scalarMult(k, pt)
	if r == nil {
		return e.reject(fn, engine.StatusFailure)
	}
	r.x.FillBytes(p.Result[:pLen])
	r.y.FillBytes(p.Result[pLen:])
	return e.complete(fn)
}

// Sign computes the raw CRT private-key permutation of msg. The result is
// checked against the public exponent before it is written.
func (e *Engine) Sign(s *engine.SessionDescriptor, key *engine.Key, msg []byte, mode engine.Mode, sig []byte) engine.Result {
	const fn = engine.FuncSign
	if mode != engine.ModeSignNoEncode || key == nil || key.Type != engine.KeyPrivateCRT {
		return e.reject(fn, engine.StatusInvalidParams)
	}
	for _, ent := range []*engine.KeyEntry{key.Mod1, key.Mod2, key.QInv, key.Exp1, key.Exp2, key.Exp3} {
		if ent.Len() == 0 {
			return e.reject(fn, engine.StatusInvalidParams)
		}
	}

	// Operands are read after admit so that a layout overlapping the scratch
	// area is observable.
	nBits := 8 * len(sig)
	cpuNeed, pkcNeed := e.SignCRTWorkarea(nBits)
	if res, ok := e.admit(fn, s, cpuNeed, pkcNeed); !ok {
		return res
	}
	p := new(big.Int).SetBytes(key.Mod1.Data)
	q := new(big.Int).SetBytes(key.Mod2.Data)
	qInv := new(big.Int).SetBytes(key.QInv.Data)
	dP := new(big.Int).SetBytes(key.Exp1.Data)
	dQ := new(big.Int).SetBytes(key.Exp2.Data)
	pubE := new(big.Int).SetBytes(key.Exp3.Data)

	n := new(big.Int).Mul(p, q)
	m := new(big.Int).SetBytes(msg)
	if len(msg) != len(sig) || (n.BitLen()+7)/8 > len(sig) || m.Cmp(n) >= 0 {
		return e.reject(fn, engine.StatusInvalidParams)
	}

	m1 := new(big.Int).Exp(m, dP, p)
	m2 := new(big.Int).Exp(m, dQ, q)
	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, qInv)
	h.Mod(h, p)
	out := h.Mul(h, q)
	out.Add(out, m2)

	if new(big.Int).Exp(out, pubE, n).Cmp(m) != 0 {
		return e.reject(fn, engine.StatusFailure)
	}
	out.FillBytes(sig)
	return e.complete(fn)
}

// Verify computes the raw public-key permutation sig^e mod n.
func (e *Engine) Verify(s *engine.SessionDescriptor, key *engine.Key, sig []byte, mode engine.Mode, out []byte) engine.Result {
	const fn = engine.FuncVerify
	if mode != engine.ModeVerifyNoVerify || key == nil || key.Type != engine.KeyPublic ||
		key.Mod1.Len() == 0 || key.Exp1.Len() == 0 {
		return e.reject(fn, engine.StatusInvalidParams)
	}
	nLen := key.Mod1.Len()
	cpuNeed, pkcNeed := e.VerifyWorkarea(8 * nLen)
	if res, ok := e.admit(fn, s, cpuNeed, pkcNeed); !ok {
		return res
	}
	n := new(big.Int).SetBytes(key.Mod1.Data)
	pubE := new(big.Int).SetBytes(key.Exp1.Data)
	c := new(big.Int).SetBytes(sig)
	if len(sig) != nLen || len(out) != nLen || c.Cmp(n) >= 0 {
		return e.reject(fn, engine.StatusInvalidParams)
	}
	new(big.Int).Exp(c, pubE, n).FillBytes(out)
	return e.complete(fn)
}
