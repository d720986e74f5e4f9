package curve_test

import (
	"crypto/elliptic"
	"errors"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
)

func TestSupported(t *testing.T) {
	for _, id := range curve.IDs() {
		t.Run(id.String(), func(t *testing.T) {
			want := id != curve.Curve25519 && id != curve.Curve448
			assert.Equal(t, want, id.Supported())
		})
	}
	assert.False(t, curve.None.Supported())
	assert.False(t, curve.ID(99).Supported())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		want curve.ID
	}{
		{"secp256r1", curve.SECP256R1},
		{"P-256", curve.SECP256R1},
		{"P-521", curve.SECP521R1},
		{"secp256k1", curve.SECP256K1},
		{"x448", curve.Curve448},
	}
	for _, tt := range tests {
		got, err := curve.ParseID(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := curve.ParseID("ed25519")
	assert.Error(t, err)
}

// onCurve checks y^2 = x^3 + a*x + b mod p for the group's base point.
func onCurve(g *curve.Group) bool {
	lhs := new(big.Int).Mul(g.Gy, g.Gy)
	lhs.Mod(lhs, g.P)
	rhs := new(big.Int).Exp(g.Gx, big.NewInt(3), g.P)
	rhs.Add(rhs, new(big.Int).Mul(g.A, g.Gx))
	rhs.Add(rhs, g.B)
	rhs.Mod(rhs, g.P)
	return lhs.Cmp(rhs) == 0
}

func TestLoad(t *testing.T) {
	tests := []struct {
		id    curve.ID
		pBits int
		nLen  int
	}{
		{curve.SECP192R1, 192, 24},
		{curve.SECP192K1, 192, 24},
		{curve.SECP224R1, 224, 28},
		{curve.SECP224K1, 224, 29},
		{curve.SECP256R1, 256, 32},
		{curve.SECP384R1, 384, 48},
		{curve.SECP521R1, 521, 66},
		{curve.SECP256K1, 256, 32},
		{curve.BP256R1, 256, 32},
		{curve.BP384R1, 384, 48},
		{curve.BP512R1, 512, 64},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			g, err := curve.Load(tt.id)
			require.NoError(t, err)
			require.NoError(t, g.Validate())
			assert.Equal(t, tt.id, g.ID)
			assert.Equal(t, tt.pBits, g.PBits)
			assert.Equal(t, tt.nLen, g.NLen())
			assert.True(t, onCurve(g), "base point not on curve")
		})
	}
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	g1, err := curve.Load(curve.SECP256R1)
	require.NoError(t, err)
	g1.P.SetInt64(7)

	g2, err := curve.Load(curve.SECP256R1)
	require.NoError(t, err)
	assert.Equal(t, 0, g2.P.Cmp(elliptic.P256().Params().P))
}

func TestLoadSecp256k1MatchesBtcec(t *testing.T) {
	g, err := curve.Load(curve.SECP256K1)
	require.NoError(t, err)

	params := btcec.S256().Params()
	assert.Equal(t, 0, g.P.Cmp(params.P))
	assert.Equal(t, 0, g.N.Cmp(params.N))
	assert.Equal(t, 0, g.A.Sign())
	assert.Equal(t, 0, g.B.Cmp(big.NewInt(7)))
}

func TestLoadUnsupported(t *testing.T) {
	for _, id := range []curve.ID{curve.Curve25519, curve.Curve448, curve.None, curve.ID(99)} {
		_, err := curve.Load(id)
		assert.True(t, errors.Is(err, curve.ErrUnsupportedGroup), id.String())
	}
}

func TestEverySupportedGroupLoads(t *testing.T) {
	for _, id := range curve.IDs() {
		g, err := curve.Load(id)
		if !id.Supported() {
			assert.Error(t, err, id.String())
			continue
		}
		require.NoError(t, err, id.String())
		require.NoError(t, g.Validate(), id.String())
		assert.True(t, onCurve(g), "%s base point not on curve", id)
	}
}

func TestLoadCoefficientForms(t *testing.T) {
	// secp192r1 keeps the NIST a = p - 3.
	g, err := curve.Load(curve.SECP192R1)
	require.NoError(t, err)
	assert.Equal(t, 0, new(big.Int).Sub(g.P, big.NewInt(3)).Cmp(g.A))

	// Koblitz groups have a = 0.
	for _, id := range []curve.ID{curve.SECP192K1, curve.SECP224K1} {
		g, err := curve.Load(id)
		require.NoError(t, err)
		assert.Zero(t, g.A.Sign(), id.String())
	}
}

func TestValidate(t *testing.T) {
	g, err := curve.Load(curve.SECP256R1)
	require.NoError(t, err)

	g.PBits = 255
	assert.Error(t, g.Validate())

	g.PBits = 256
	g.B = nil
	assert.Error(t, g.Validate())

	var nilGroup *curve.Group
	assert.Error(t, nilGroup.Validate())
}
