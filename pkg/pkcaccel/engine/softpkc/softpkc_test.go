package softpkc

import (
	"crypto/rand"
	stdrsa "crypto/rsa"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
)

func newSession(t *testing.T, e *Engine, cpu, pkc int) *engine.SessionDescriptor {
	t.Helper()
	require.NoError(t, e.Init())
	window, err := e.RAM().Window(0, pkc)
	require.NoError(t, err)
	s := &engine.SessionDescriptor{}
	require.Equal(t, engine.Done(engine.FuncSessionInit, engine.StatusOK), e.SessionInit(s, make([]byte, cpu), window))
	t.Cleanup(func() { e.SessionDestroy(s) })
	return s
}

func secp256k1Params(t *testing.T) engine.DomainParams {
	t.Helper()
	p := btcec.S256().Params()
	g := make([]byte, 64)
	p.Gx.FillBytes(g[:32])
	p.Gy.FillBytes(g[32:])
	return engine.DomainParams{
		A: make([]byte, 32),
		B: p.B.FillBytes(make([]byte, 32)),
		P: p.P.FillBytes(make([]byte, 32)),
		G: g,
		N: p.N.FillBytes(make([]byte, 32)),
	}
}

func TestSessionLifecycle(t *testing.T) {
	e := New(Config{RAMSize: 1024})
	s := &engine.SessionDescriptor{}
	window, err := e.RAM().Window(0, 512)
	require.NoError(t, err)

	r := e.SessionInit(s, nil, window)
	assert.Equal(t, engine.Called(engine.FuncSessionInit), r.Token)
	assert.Equal(t, engine.StatusFailure, r.Status, "not initialized")

	require.NoError(t, e.Init())
	require.Equal(t, engine.StatusOK, e.SessionInit(s, nil, window).Status)
	other := &engine.SessionDescriptor{}
	assert.Equal(t, engine.StatusBusy, e.SessionInit(other, nil, window).Status)

	window[0] = 0x77
	assert.Equal(t, engine.Done(engine.FuncSessionCleanup, engine.StatusOK), e.SessionCleanup(s))
	assert.Zero(t, window[0])
	assert.Equal(t, engine.Done(engine.FuncSessionDestroy, engine.StatusOK), e.SessionDestroy(s))
	assert.Equal(t, engine.StatusOK, e.SessionDestroy(s).Status, "destroy is idempotent")
	assert.Equal(t, engine.StatusInvalidParams, e.SessionInit(other, nil, make([]byte, 2048)).Status)
	assert.Equal(t, engine.StatusOK, e.SessionInit(other, nil, window).Status)

	st := e.Stats()
	assert.Equal(t, uint64(2), st.SessionsCreated)
	assert.Equal(t, uint64(1), st.SessionsDestroyed)
	assert.Equal(t, uint64(3), st.OpsRejected)
}

func TestPointMultMatchesBtcec(t *testing.T) {
	e := New(Config{})
	cpu, pkc := e.PointMultWorkarea(32, 32)
	s := newSession(t, e, cpu, pkc)

	dp := secp256k1Params(t)
	for range 3 {
		priv, err := btcec.NewPrivateKey()
		require.NoError(t, err)
		k := priv.Key.Bytes()
		p := &engine.PointMultParams{
			Curve:  dp,
			Scalar: k[:],
			Point:  dp.G,
			Result: make([]byte, 64),
		}
		require.Equal(t, engine.Done(engine.FuncPointMult, engine.StatusOK), e.PointMult(s, p))

		pub := priv.PubKey()
		assert.Equal(t, pub.X().FillBytes(make([]byte, 32)), p.Result[:32])
		assert.Equal(t, pub.Y().FillBytes(make([]byte, 32)), p.Result[32:])
	}
}

func TestPointMultRejects(t *testing.T) {
	e := New(Config{})
	cpu, pkc := e.PointMultWorkarea(32, 32)
	s := newSession(t, e, cpu, pkc)
	dp := secp256k1Params(t)

	offCurve := append([]byte(nil), dp.G...)
	offCurve[63] ^= 1

	tests := []struct {
		name   string
		scalar []byte
		point  []byte
	}{
		{"zero scalar", make([]byte, 32), dp.G},
		{"scalar equals order", dp.N, dp.G},
		{"short scalar", make([]byte, 31), dp.G},
		{"off-curve point", big.NewInt(5).FillBytes(make([]byte, 32)), offCurve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &engine.PointMultParams{Curve: dp, Scalar: tt.scalar, Point: tt.point, Result: make([]byte, 64)}
			assert.Equal(t, engine.StatusInvalidParams, e.PointMult(s, p).Status)
		})
	}

	p := &engine.PointMultParams{Curve: dp, Scalar: big.NewInt(5).FillBytes(make([]byte, 32)), Point: dp.G, Result: make([]byte, 64)}
	assert.Equal(t, engine.StatusInvalidParams, e.PointMult(&engine.SessionDescriptor{}, p).Status, "unbound session")
}

func rsaKey(t *testing.T) *stdrsa.PrivateKey {
	t.Helper()
	k, err := stdrsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	return k
}

func entry(x *big.Int) *engine.KeyEntry {
	return &engine.KeyEntry{Data: x.Bytes()}
}

func TestSignVerify(t *testing.T) {
	k := rsaKey(t)
	e := New(Config{})
	nLen := k.Size()
	_, pkc := e.SignCRTWorkarea(8 * nLen)
	s := newSession(t, e, 64, pkc+2*nLen)

	priv := &engine.Key{
		Type: engine.KeyPrivateCRT,
		Mod1: entry(k.Primes[0]), Mod2: entry(k.Primes[1]),
		QInv: entry(k.Precomputed.Qinv),
		Exp1: entry(k.Precomputed.Dp), Exp2: entry(k.Precomputed.Dq),
		Exp3: entry(big.NewInt(int64(k.E))),
	}
	pub := &engine.Key{Type: engine.KeyPublic, Mod1: entry(k.N), Exp1: entry(big.NewInt(int64(k.E)))}

	m, err := rand.Int(rand.Reader, k.N)
	require.NoError(t, err)
	msg := m.FillBytes(make([]byte, nLen))
	sig := make([]byte, nLen)
	require.Equal(t, engine.Done(engine.FuncSign, engine.StatusOK), e.Sign(s, priv, msg, engine.ModeSignNoEncode, sig))

	want := new(big.Int).Exp(m, k.D, k.N)
	assert.Equal(t, want.FillBytes(make([]byte, nLen)), sig)

	out := make([]byte, nLen)
	require.Equal(t, engine.Done(engine.FuncVerify, engine.StatusOK), e.Verify(s, pub, sig, engine.ModeVerifyNoVerify, out))
	assert.Equal(t, msg, out)

	assert.Equal(t, engine.StatusInvalidParams, e.Verify(s, pub, sig, engine.ModeSignNoEncode, out).Status, "wrong mode")
	assert.Equal(t, engine.StatusInvalidParams, e.Sign(s, pub, msg, engine.ModeSignNoEncode, sig).Status, "public key")

	broken := *priv
	broken.QInv = entry(new(big.Int).Add(k.Precomputed.Qinv, big.NewInt(1)))
	assert.Equal(t, engine.StatusFailure, e.Sign(s, &broken, msg, engine.ModeSignNoEncode, sig).Status, "fault check")
}

func TestUnreservedOperandsAreClobbered(t *testing.T) {
	k := rsaKey(t)
	e := New(Config{})
	nLen := k.Size()
	_, pkc := e.VerifyWorkarea(8 * nLen)
	s := newSession(t, e, 16, pkc+nLen)

	// The modulus lives at the start of the PKC window but is not reserved.
	mod := s.PKC.Buf[:nLen]
	k.N.FillBytes(mod)
	pub := &engine.Key{Type: engine.KeyPublic, Mod1: &engine.KeyEntry{Data: mod}, Exp1: entry(big.NewInt(int64(k.E)))}

	m, err := rand.Int(rand.Reader, k.N)
	require.NoError(t, err)
	in := m.FillBytes(make([]byte, nLen))
	out := make([]byte, nLen)

	r := e.Verify(s, pub, in, engine.ModeVerifyNoVerify, out)
	want := new(big.Int).Exp(m, big.NewInt(int64(k.E)), k.N).FillBytes(make([]byte, nLen))
	assert.False(t, r.Status == engine.StatusOK && string(out) == string(want), "unreserved modulus was used intact")

	// Reserved, the same layout works.
	k.N.FillBytes(mod)
	s.PKC.Used = nLen
	require.Equal(t, engine.StatusOK, e.Verify(s, pub, in, engine.ModeVerifyNoVerify, out).Status)
	assert.Equal(t, want, out)
}
