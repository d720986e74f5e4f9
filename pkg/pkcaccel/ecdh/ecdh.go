package ecdh

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/arena"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/invoke"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/layout"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/marshal"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/session"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

// maxScalarDraws bounds rejection sampling of private scalars.
const maxScalarDraws = 30

// Arena names of the point multiplication buffers.
const (
	slotScalar arena.Name = "scalar"
	slotPoint  arena.Name = "point"
	slotResult arena.Name = "result"
)

// Point is a curve point in projective form. Results always have Z = 1.
type Point struct {
	X, Y, Z *big.Int
}

// KeyPair is a private scalar D and its public point Q = D*G.
type KeyPair struct {
	D *big.Int
	Q Point
}

// CanDo reports whether the coprocessor can run ECDH on group id.
func CanDo(id curve.ID) bool {
	return id.Supported()
}

// GenerateKeyPair draws a private scalar in [1, n-1] from rng and computes
// the matching public point.
func GenerateKeyPair(ctx context.Context, dev *pkcaccel.Device, grp *curve.Group, rng io.Reader) (*KeyPair, error) {
	const op = "ecdh.GenerateKeyPair"
	kp, err := generate(ctx, dev, grp, rng)
	if err != nil {
		return nil, fail(ctx, dev, op, err)
	}
	return kp, nil
}

// ComputeSharedSecret returns the X coordinate of d*peer. rng is accepted for
// API compatibility and may be nil.
func ComputeSharedSecret(ctx context.Context, dev *pkcaccel.Device, grp *curve.Group, peer Point, d *big.Int, rng io.Reader) (*big.Int, error) {
	const op = "ecdh.ComputeSharedSecret"
	z, err := shared(ctx, dev, grp, peer, d)
	if err != nil {
		return nil, fail(ctx, dev, op, err)
	}
	return z, nil
}

func fail(ctx context.Context, dev *pkcaccel.Device, op string, err error) error {
	if dev != nil {
		dev.Logger().Warn(ctx, "operation failed", logging.Op(op), "kind", pkcaccel.KindOf(err).String())
	}
	return pkcaccel.Wrap(op, err)
}

func checkGroup(grp *curve.Group) error {
	if grp == nil {
		return fmt.Errorf("%w: nil group", pkcaccel.ErrBadInputData)
	}
	if grp.ID != curve.None && !grp.ID.Supported() {
		return fmt.Errorf("%w: group %s not supported", pkcaccel.ErrBadInputData, grp.ID)
	}
	return nil
}

// pointMult holds the buffers of one point multiplication.
type pointMult struct {
	arena  *arena.Arena
	params engine.PointMultParams
	plan   *layout.Plan
}

// prepare plans the multiplication and writes the domain parameters. The
// caller releases the arena.
func prepare(dev *pkcaccel.Device, grp *curve.Group) (*pointMult, error) {
	plan, err := layout.PlanPointMult(dev.Engine(), grp.PLen(), grp.NLen())
	if err != nil {
		return nil, err
	}
	pm := &pointMult{arena: arena.New(), plan: plan}
	dp, err := marshal.DomainParams(pm.arena, grp)
	if err == nil {
		pm.params.Scalar, err = pm.arena.Alloc(slotScalar, grp.NLen())
	}
	if err == nil {
		pm.params.Result, err = pm.arena.Alloc(slotResult, 2*grp.PLen())
	}
	if err != nil {
		pm.arena.Release()
		return nil, err
	}
	pm.params.Curve = dp
	return pm, nil
}

// run executes the multiplication in a fresh session and returns the result
// point.
func (pm *pointMult) run(ctx context.Context, dev *pkcaccel.Device, pLen int) (x, y *big.Int, err error) {
	s, err := session.Open(ctx, dev.Engine(), dev.Region(), pm.plan, invoke.FamilyECC, dev.Logger())
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			x, y, err = nil, nil, cerr
		}
	}()

	if err := s.Invoker().PointMult(s.Descriptor(), &pm.params); err != nil {
		return nil, nil, err
	}
	return marshal.ReadPoint(pm.params.Result, pLen)
}

func generate(ctx context.Context, dev *pkcaccel.Device, grp *curve.Group, rng io.Reader) (_ *KeyPair, err error) {
	if err := checkGroup(grp); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", pkcaccel.ErrBadInputData)
	}
	if err := dev.EnsureReady(ctx); err != nil {
		return nil, err
	}
	if err := grp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", pkcaccel.ErrBadInputData, err)
	}

	pm, err := prepare(dev, grp)
	if err != nil {
		return nil, err
	}
	defer pm.arena.Release()

	d, err := drawScalar(rng, grp.N)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			pkcaccel.ZeroizeBig(d)
		}
	}()
	dev.Logger().Debug(ctx, "scalar drawn", logging.Op("ecdh.GenerateKeyPair"), "group", grp.ID.String(), logging.Redacted("d"))
	if err := marshal.WriteBinary(d, pm.params.Scalar); err != nil {
		return nil, err
	}

	// Base-point multiplication: the input point is G itself.
	if pm.params.Point, err = pm.arena.Alias(slotPoint, marshal.CurveG); err != nil {
		return nil, err
	}
	x, y, err := pm.run(ctx, dev, grp.PLen())
	if err != nil {
		return nil, err
	}
	return &KeyPair{D: d, Q: Point{X: x, Y: y, Z: big.NewInt(1)}}, nil
}

func shared(ctx context.Context, dev *pkcaccel.Device, grp *curve.Group, peer Point, d *big.Int) (*big.Int, error) {
	if err := checkGroup(grp); err != nil {
		return nil, err
	}
	if peer.X == nil || peer.Y == nil || d == nil {
		return nil, fmt.Errorf("%w: missing peer point or private scalar", pkcaccel.ErrBadInputData)
	}
	if peer.Z != nil && peer.Z.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("%w: peer point is not affine", pkcaccel.ErrBadInputData)
	}
	if err := dev.EnsureReady(ctx); err != nil {
		return nil, err
	}
	if err := grp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", pkcaccel.ErrBadInputData, err)
	}

	pm, err := prepare(dev, grp)
	if err != nil {
		return nil, err
	}
	defer pm.arena.Release()

	if err := marshal.WriteBinary(d, pm.params.Scalar); err != nil {
		return nil, err
	}
	pLen := grp.PLen()
	if pm.params.Point, err = pm.arena.Alloc(slotPoint, 2*pLen); err != nil {
		return nil, err
	}
	if err := marshal.WritePoint(pm.params.Point, peer.X, peer.Y, pLen); err != nil {
		return nil, err
	}
	x, _, err := pm.run(ctx, dev, pLen)
	if err != nil {
		return nil, err
	}
	return x, nil
}
