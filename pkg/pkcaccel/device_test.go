package pkcaccel

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine/softpkc"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

func TestVersionFallback(t *testing.T) {
	if got := ModuleVersion(); got != "v0.0.0-in-progress" {
		t.Fatalf("expected fallback version, got %q", got)
	}
}

func TestOpenClose(t *testing.T) {
	dev, err := Open(Config{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !dev.Region().Claimed() {
		t.Fatal("region not claimed after Open")
	}
	if got := dev.Region().Len(); got != softpkc.DefaultRAMSize {
		t.Fatalf("region size %d, want %d", got, softpkc.DefaultRAMSize)
	}
	if err := dev.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if err := dev.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if dev.Region().Claimed() {
		t.Fatal("region still claimed after Close")
	}
	if err := dev.Close(); !errors.Is(err, ErrDeviceClosed) {
		t.Fatalf("second Close: got %v, want ErrDeviceClosed", err)
	}
	if err := dev.EnsureReady(context.Background()); !errors.Is(err, ErrDeviceClosed) {
		t.Fatalf("EnsureReady after Close: got %v", err)
	}
}

func TestRegionClaimedOnce(t *testing.T) {
	eng := softpkc.New(softpkc.Config{RAMSize: 4096})

	var (
		g      errgroup.Group
		opened atomic.Int32
		devs   = make([]*Device, 16)
	)
	for i := range devs {
		g.Go(func() error {
			dev, err := Open(Config{Engine: eng, Logger: logging.Discard()})
			if err != nil {
				if KindOf(err) != KindHardwareAccelFailed {
					return err
				}
				return nil
			}
			opened.Add(1)
			devs[i] = dev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error kind: %v", err)
	}
	if n := opened.Load(); n != 1 {
		t.Fatalf("%d devices opened on one engine, want 1", n)
	}

	for _, d := range devs {
		if d != nil {
			if err := d.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
		}
	}
	dev, err := Open(Config{Engine: eng, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("reopen after Close: %v", err)
	}
	_ = dev.Close()
}

func TestEnsureReadyNilDevice(t *testing.T) {
	var dev *Device
	if err := dev.EnsureReady(context.Background()); !errors.Is(err, ErrBadInputData) {
		t.Fatalf("got %v, want ErrBadInputData", err)
	}
	if err := dev.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrBadInputData, KindBadInputData},
		{Wrap("rsa.Public", ErrPublicOperationFailed), KindPublicOperationFailed},
		{Wrap("rsa.Private", errors.Join(errors.New("x"), ErrPrivateOperationFailed)), KindPrivateOperationFailed},
		{ErrDeviceClosed, KindHardwareAccelFailed},
		{context.Canceled, KindOther},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
		if tt.want != KindOther && tt.want != KindNone && !errors.Is(tt.err, tt.want.Err()) {
			t.Errorf("%v does not match %s sentinel", tt.err, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
	inner := Wrap("inner", ErrRandomFailed)
	outer := Wrap("outer", inner)
	var pe *Error
	if !errors.As(outer, &pe) || pe.Op != "inner" {
		t.Fatalf("Wrap nested an *Error: %v", outer)
	}
	if got, want := inner.Error(), "inner: pkcaccel: random source failed"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestZeroize(t *testing.T) {
	buf := []byte{1, 2, 3}
	ZeroizeBytes(buf)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("buffer not zeroized: %v", buf)
		}
	}

	x := new(big.Int).Lsh(big.NewInt(0xabcdef), 200)
	words := x.Bits()
	ZeroizeBig(x)
	if x.Sign() != 0 {
		t.Fatalf("ZeroizeBig left %v", x)
	}
	for _, w := range words {
		if w != 0 {
			t.Fatal("backing words not wiped")
		}
	}
	ZeroizeBig(nil)
}
