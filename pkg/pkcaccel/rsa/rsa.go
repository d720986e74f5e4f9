package rsa

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/invoke"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/layout"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/marshal"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/session"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

// Public returns input^e mod n. input must be exactly key.Len bytes and,
// read as a big-endian integer, smaller than n.
func Public(ctx context.Context, dev *pkcaccel.Device, key *PublicKey, input []byte) ([]byte, error) {
	const op = "rsa.Public"
	out, err := public(ctx, dev, key, input)
	if err != nil {
		return nil, fail(ctx, dev, op, err)
	}
	return out, nil
}

// Private returns the raw CRT private-key permutation of input. rng is
// accepted for API compatibility and may be nil; no blinding is applied.
func Private(ctx context.Context, dev *pkcaccel.Device, key *PrivateKey, rng io.Reader, input []byte) ([]byte, error) {
	const op = "rsa.Private"
	out, err := private(ctx, dev, key, input)
	if err != nil {
		return nil, fail(ctx, dev, op, err)
	}
	return out, nil
}

func fail(ctx context.Context, dev *pkcaccel.Device, op string, err error) error {
	if dev != nil {
		dev.Logger().Warn(ctx, "operation failed", logging.Op(op), "kind", pkcaccel.KindOf(err).String())
	}
	return pkcaccel.Wrap(op, err)
}

func checkInput(input []byte, n int) error {
	if len(input) != n {
		return fmt.Errorf("%w: input is %d bytes, key is %d", pkcaccel.ErrBadInputData, len(input), n)
	}
	return nil
}

type slotValue struct {
	name layout.SlotName
	x    *big.Int
}

// writeSlots writes each value at its plan slot and returns the entries in
// the same order.
func writeSlots(window []byte, plan *layout.Plan, vals []slotValue) ([]*engine.KeyEntry, error) {
	ents := make([]*engine.KeyEntry, len(vals))
	for i, v := range vals {
		slot, ok := plan.Slot(v.name)
		if !ok {
			return nil, fmt.Errorf("%w: plan has no %s slot", pkcaccel.ErrCorruptionDetected, v.name)
		}
		ent, err := marshal.WriteSlot(window, slot, v.x)
		if err != nil {
			return nil, err
		}
		ents[i] = ent
	}
	return ents, nil
}

// run executes fn inside a session for plan with the operands reserved. The
// result slot is copied out into a fresh buffer on success.
func run(ctx context.Context, dev *pkcaccel.Device, plan *layout.Plan, fam invoke.Family,
	fill func(window []byte) error,
	call func(s *session.Session, result []byte) error,
) (out []byte, err error) {
	res, ok := plan.Slot(layout.Result)
	if !ok {
		return nil, fmt.Errorf("%w: plan has no result slot", pkcaccel.ErrCorruptionDetected)
	}

	s, err := session.Open(ctx, dev.Engine(), dev.Region(), plan, fam, dev.Logger())
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			out, err = nil, cerr
		}
	}()

	window := s.Window()
	if err := fill(window); err != nil {
		return nil, err
	}
	if err := s.Reserve(plan.OperandSize); err != nil {
		return nil, err
	}
	result := window[res.Offset : res.Offset+res.Len]
	err = call(s, result)
	s.Unreserve(plan.OperandSize)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), result...), nil
}

func public(ctx context.Context, dev *pkcaccel.Device, key *PublicKey, input []byte) ([]byte, error) {
	if err := key.check(); err != nil {
		return nil, err
	}
	if err := checkInput(input, key.Len); err != nil {
		return nil, err
	}
	if err := dev.EnsureReady(ctx); err != nil {
		return nil, err
	}
	plan, err := layout.PlanRSAPublic(dev.Engine(), key.Len, marshal.ByteLen(key.N), marshal.ByteLen(key.E))
	if err != nil {
		return nil, err
	}

	var ek *engine.Key
	fill := func(window []byte) error {
		ents, err := writeSlots(window, plan, []slotValue{
			{layout.Modulus, key.N},
			{layout.Exponent, key.E},
		})
		if err != nil {
			return err
		}
		ek = marshal.PublicKey(ents[0], ents[1])
		return nil
	}
	call := func(s *session.Session, result []byte) error {
		return s.Invoker().Verify(s.Descriptor(), ek, input, result)
	}
	return run(ctx, dev, plan, invoke.FamilyRSAPublic, fill, call)
}

func private(ctx context.Context, dev *pkcaccel.Device, key *PrivateKey, input []byte) ([]byte, error) {
	if err := key.check(); err != nil {
		return nil, err
	}
	if err := checkInput(input, key.Len); err != nil {
		return nil, err
	}
	if err := dev.EnsureReady(ctx); err != nil {
		return nil, err
	}
	plan, err := layout.PlanRSAPrivateCRT(dev.Engine(), key.Len, layout.CRTLengths{
		P:    marshal.ByteLen(key.P),
		Q:    marshal.ByteLen(key.Q),
		QInv: marshal.ByteLen(key.QInv),
		DP:   marshal.ByteLen(key.DP),
		DQ:   marshal.ByteLen(key.DQ),
		E:    marshal.ByteLen(key.E),
	})
	if err != nil {
		return nil, err
	}

	var ek *engine.Key
	fill := func(window []byte) error {
		ents, err := writeSlots(window, plan, []slotValue{
			{layout.PrimeP, key.P},
			{layout.PrimeQ, key.Q},
			{layout.QInv, key.QInv},
			{layout.DP, key.DP},
			{layout.DQ, key.DQ},
			{layout.PublicExp, key.E},
		})
		if err != nil {
			return err
		}
		ek = marshal.PrivateCRTKey(ents[0], ents[1], ents[2], ents[3], ents[4], ents[5])
		dev.Logger().Debug(ctx, "key written", logging.Op("rsa.Private"), "bytes", key.Len, logging.Redacted("crt"))
		return nil
	}
	call := func(s *session.Session, result []byte) error {
		return s.Invoker().Sign(s.Descriptor(), ek, input, result)
	}
	return run(ctx, dev, plan, invoke.FamilyRSAPrivate, fill, call)
}
