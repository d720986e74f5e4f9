// Package enginetest wraps an engine.Engine with fault injection for tests.
package enginetest

import (
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
)

// BogusToken is the token Mismatch faults report.
const BogusToken engine.Token = 0xDEAD_BEEF

// Fault alters the result of one primitive.
type Fault struct {
	// Skip returns without calling the wrapped engine.
	Skip bool
	// Token replaces the completion token when set.
	Token *engine.Token
	// Status replaces the status when non-zero.
	Status engine.Status
}

// NotExecuted skips the call and reports a zero token.
func NotExecuted() Fault {
	return Fault{Skip: true}
}

// Mismatch runs the call but reports a foreign token next to st.
func Mismatch(st engine.Status) Fault {
	tok := BogusToken
	return Fault{Token: &tok, Status: st}
}

// Status runs the call and reports st with a valid token.
func Status(st engine.Status) Fault {
	return Fault{Status: st}
}

// Engine is a fault-injecting engine. It is not safe for concurrent use.
type Engine struct {
	engine.Engine

	// InitErr is returned by Init when set.
	InitErr error

	faults map[engine.FuncID]Fault
	calls  map[engine.FuncID]int
	inits  int
}

// Wrap returns inner with no faults injected.
func Wrap(inner engine.Engine) *Engine {
	return &Engine{
		Engine: inner,
		faults: make(map[engine.FuncID]Fault),
		calls:  make(map[engine.FuncID]int),
	}
}

// Inject installs f for every later call of fn.
func (e *Engine) Inject(fn engine.FuncID, f Fault) {
	e.faults[fn] = f
}

// Reset removes every fault.
func (e *Engine) Reset() {
	clear(e.faults)
}

// Calls returns how often fn was called.
func (e *Engine) Calls(fn engine.FuncID) int {
	return e.calls[fn]
}

// Inits returns how often Init was called.
func (e *Engine) Inits() int {
	return e.inits
}

func (e *Engine) Init() error {
	e.inits++
	if e.InitErr != nil {
		return e.InitErr
	}
	return e.Engine.Init()
}

func (e *Engine) run(fn engine.FuncID, call func() engine.Result) engine.Result {
	e.calls[fn]++
	f, ok := e.faults[fn]
	if !ok {
		return call()
	}
	var r engine.Result
	if !f.Skip {
		r = call()
	}
	if f.Token != nil {
		r.Token = *f.Token
	}
	if f.Status != 0 {
		r.Status = f.Status
	}
	return r
}

func (e *Engine) SessionInit(s *engine.SessionDescriptor, cpu, pkc []byte) engine.Result {
	return e.run(engine.FuncSessionInit, func() engine.Result { return e.Engine.SessionInit(s, cpu, pkc) })
}

func (e *Engine) SessionCleanup(s *engine.SessionDescriptor) engine.Result {
	return e.run(engine.FuncSessionCleanup, func() engine.Result { return e.Engine.SessionCleanup(s) })
}

func (e *Engine) SessionDestroy(s *engine.SessionDescriptor) engine.Result {
	return e.run(engine.FuncSessionDestroy, func() engine.Result { return e.Engine.SessionDestroy(s) })
}

func (e *Engine) PointMult(s *engine.SessionDescriptor, p *engine.PointMultParams) engine.Result {
	return e.run(engine.FuncPointMult, func() engine.Result { return e.Engine.PointMult(s, p) })
}

func (e *Engine) Sign(s *engine.SessionDescriptor, key *engine.Key, msg []byte, mode engine.Mode, sig []byte) engine.Result {
	return e.run(engine.FuncSign, func() engine.Result { return e.Engine.Sign(s, key, msg, mode, sig) })
}

func (e *Engine) Verify(s *engine.SessionDescriptor, key *engine.Key, sig []byte, mode engine.Mode, out []byte) engine.Result {
	return e.run(engine.FuncVerify, func() engine.Result { return e.Engine.Verify(s, key, sig, mode, out) })
}
