package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine/softpkc"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/enginetest"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/invoke"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/internal/layout"
)

type fixture struct {
	soft *softpkc.Engine
	eng  *enginetest.Engine
	plan *layout.Plan
}

func newFixture(t *testing.T, ramSize int) *fixture {
	t.Helper()
	soft := softpkc.New(softpkc.Config{RAMSize: ramSize})
	eng := enginetest.Wrap(soft)
	require.NoError(t, eng.Init())
	require.NoError(t, eng.RAM().Claim())
	t.Cleanup(eng.RAM().Release)

	plan, err := layout.PlanRSAPublic(eng, 128, 128, 3)
	require.NoError(t, err)
	return &fixture{soft: soft, eng: eng, plan: plan}
}

func (f *fixture) open(fam invoke.Family) (*Session, error) {
	return Open(context.Background(), f.eng, f.eng.RAM(), f.plan, fam, nil)
}

func TestOpenClose(t *testing.T) {
	f := newFixture(t, 0)
	s, err := f.open(invoke.FamilyRSAPublic)
	require.NoError(t, err)
	assert.Len(t, s.Window(), f.plan.PKCSize)
	assert.Len(t, s.Descriptor().CPU.Buf, f.plan.CPUSize)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second close is a no-op")
	assert.Equal(t, 1, f.eng.Calls(engine.FuncSessionCleanup))
	assert.Equal(t, 1, f.eng.Calls(engine.FuncSessionDestroy))

	st := f.soft.Stats()
	assert.Equal(t, st.SessionsCreated, st.SessionsDestroyed)
}

func TestOpenRequiresClaim(t *testing.T) {
	eng := softpkc.New(softpkc.Config{})
	require.NoError(t, eng.Init())
	plan, err := layout.PlanPointMult(eng, 32, 32)
	require.NoError(t, err)

	_, err = Open(context.Background(), eng, eng.RAM(), plan, invoke.FamilyECC, nil)
	require.ErrorIs(t, err, pkcaccel.ErrHardwareAccelFailed)
}

func TestOpenRegionTooSmall(t *testing.T) {
	f := newFixture(t, 64)
	_, err := f.open(invoke.FamilyRSAPublic)
	require.ErrorIs(t, err, pkcaccel.ErrHardwareAccelFailed)
	assert.Zero(t, f.eng.Calls(engine.FuncSessionInit))
}

func TestOpenInitFailureDestroys(t *testing.T) {
	tests := []struct {
		name  string
		fault enginetest.Fault
		want  error
	}{
		{"busy", enginetest.Status(engine.StatusBusy), pkcaccel.ErrHardwareAccelFailed},
		{"failure", enginetest.Status(engine.StatusFailure), pkcaccel.ErrHardwareAccelFailed},
		{"token mismatch", enginetest.Mismatch(engine.StatusOK), pkcaccel.ErrCorruptionDetected},
		{"not executed", enginetest.NotExecuted(), pkcaccel.ErrCorruptionDetected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 0)
			f.eng.Inject(engine.FuncSessionInit, tt.fault)

			_, err := f.open(invoke.FamilyRSAPrivate)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, f.eng.Calls(engine.FuncSessionDestroy))

			// The device is free again.
			f.eng.Reset()
			s, err := f.open(invoke.FamilyRSAPrivate)
			require.NoError(t, err)
			require.NoError(t, s.Close())
		})
	}
}

func TestCloseRunsBothSteps(t *testing.T) {
	f := newFixture(t, 0)
	f.eng.Inject(engine.FuncSessionCleanup, enginetest.Status(engine.StatusFailure))

	s, err := f.open(invoke.FamilyRSAPublic)
	require.NoError(t, err)
	err = s.Close()
	require.ErrorIs(t, err, pkcaccel.ErrPublicOperationFailed)
	assert.Equal(t, 1, f.eng.Calls(engine.FuncSessionDestroy))

	st := f.soft.Stats()
	assert.Equal(t, st.SessionsCreated, st.SessionsDestroyed)
}

func TestCloseFailureKinds(t *testing.T) {
	tests := []struct {
		fam   invoke.Family
		fault enginetest.Fault
		want  error
	}{
		{invoke.FamilyECC, enginetest.Status(engine.StatusFailure), pkcaccel.ErrCorruptionDetected},
		{invoke.FamilyRSAPublic, enginetest.Status(engine.StatusFailure), pkcaccel.ErrPublicOperationFailed},
		{invoke.FamilyRSAPrivate, enginetest.Status(engine.StatusInvalidParams), pkcaccel.ErrPrivateOperationFailed},
		{invoke.FamilyRSAPrivate, enginetest.Mismatch(engine.StatusOK), pkcaccel.ErrCorruptionDetected},
	}
	for _, tt := range tests {
		f := newFixture(t, 0)
		f.eng.Inject(engine.FuncSessionDestroy, tt.fault)
		s, err := f.open(tt.fam)
		require.NoError(t, err)
		require.ErrorIs(t, s.Close(), tt.want, "%s", tt.fam)
	}
}

func TestReserve(t *testing.T) {
	f := newFixture(t, 0)
	s, err := f.open(invoke.FamilyRSAPublic)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Reserve(13))
	assert.Equal(t, 16, s.Descriptor().PKC.Used)
	require.NoError(t, s.Reserve(f.plan.OperandSize))
	assert.Equal(t, 16+f.plan.OperandSize, s.Descriptor().PKC.Used)

	s.Unreserve(f.plan.OperandSize)
	assert.Equal(t, 16, s.Descriptor().PKC.Used)
	s.Unreserve(1000)
	assert.Zero(t, s.Descriptor().PKC.Used, "never below zero")

	require.ErrorIs(t, s.Reserve(-1), pkcaccel.ErrBadInputData)
	require.ErrorIs(t, s.Reserve(f.plan.PKCSize+1), pkcaccel.ErrHardwareAccelFailed)
}

func TestCloseWipesWorkareas(t *testing.T) {
	f := newFixture(t, 0)
	f.eng.Inject(engine.FuncSessionCleanup, enginetest.NotExecuted())

	s, err := f.open(invoke.FamilyRSAPublic)
	require.NoError(t, err)
	w := s.Window()
	for i := range w {
		w[i] = 0x5c
	}
	require.ErrorIs(t, s.Close(), pkcaccel.ErrCorruptionDetected)
	assert.Equal(t, make([]byte, len(w)), w)
}
