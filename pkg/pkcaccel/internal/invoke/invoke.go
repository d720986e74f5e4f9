// Package invoke calls engine primitives and turns their results into errors.
//
// Every primitive returns a (token, status) pair. Check looks at the token
// first: a token that differs from engine.Called(fn) means the call never ran
// to completion, and its status must not be trusted. Only a Completed outcome
// carries a status.
package invoke

import (
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
)

// Outcome is either Completed or NotExecuted.
type Outcome interface {
	outcome()
}

// Completed reports a primitive that ran and produced Status.
type Completed struct {
	Status engine.Status
}

// NotExecuted reports a primitive whose completion token did not match.
type NotExecuted struct {
	Want engine.Token
	Got  engine.Token
}

func (Completed) outcome()   {}
func (NotExecuted) outcome() {}

// Check classifies the result of a call of fn.
func Check(fn engine.FuncID, r engine.Result) Outcome {
	if want := engine.Called(fn); r.Token != want {
		return NotExecuted{Want: want, Got: r.Token}
	}
	return Completed{Status: r.Status}
}

// Invoker runs primitives for one operation family. Each method calls the
// engine once and returns the translated result.
type Invoker struct {
	Engine engine.Engine
	Family Family
}

func (iv Invoker) result(fn engine.FuncID, r engine.Result) error {
	return Translate(iv.Family, fn, Check(fn, r))
}

func (iv Invoker) SessionInit(s *engine.SessionDescriptor, cpu, pkc []byte) error {
	return iv.result(engine.FuncSessionInit, iv.Engine.SessionInit(s, cpu, pkc))
}

func (iv Invoker) SessionCleanup(s *engine.SessionDescriptor) error {
	return iv.result(engine.FuncSessionCleanup, iv.Engine.SessionCleanup(s))
}

func (iv Invoker) SessionDestroy(s *engine.SessionDescriptor) error {
	return iv.result(engine.FuncSessionDestroy, iv.Engine.SessionDestroy(s))
}

// PointMult runs p.Scalar x p.Point.
func (iv Invoker) PointMult(s *engine.SessionDescriptor, p *engine.PointMultParams) error {
	return iv.result(engine.FuncPointMult, iv.Engine.PointMult(s, p))
}

// Sign runs the raw private-key permutation.
func (iv Invoker) Sign(s *engine.SessionDescriptor, key *engine.Key, msg, sig []byte) error {
	return iv.result(engine.FuncSign, iv.Engine.Sign(s, key, msg, engine.ModeSignNoEncode, sig))
}

// Verify runs the raw public-key permutation.
func (iv Invoker) Verify(s *engine.SessionDescriptor, key *engine.Key, in, out []byte) error {
	return iv.result(engine.FuncVerify, iv.Engine.Verify(s, key, in, engine.ModeVerifyNoVerify, out))
}
