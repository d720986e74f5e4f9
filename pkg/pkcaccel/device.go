package pkcaccel

import (
	"context"
	"fmt"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine/softpkc"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

// Device is an opened accelerator. It holds the claim on the engine's scratch
// RAM, so at most one Device per engine exists at a time. A Device is not safe
// for concurrent use; callers serialize operations on it.
type Device struct {
	eng    engine.Engine
	region *engine.Region
	log    logging.Logger
	closed bool
}

// Open claims the scratch RAM of the configured engine. It fails with
// ErrHardwareAccelFailed if another Device already holds it.
func Open(cfg Config) (*Device, error) {
	eng := cfg.Engine
	if eng == nil {
		eng = softpkc.New(softpkc.Config{RAMSize: cfg.RegionSize})
	}
	region := eng.RAM()
	if region == nil {
		return nil, Wrap("Open", fmt.Errorf("%w: engine has no scratch RAM", ErrHardwareAccelFailed))
	}
	if err := region.Claim(); err != nil {
		return nil, Wrap("Open", fmt.Errorf("%w: %w", ErrHardwareAccelFailed, err))
	}

	log := cfg.logger()
	log.Debug(context.Background(), "device opened", "region_bytes", region.Len())
	return &Device{eng: eng, region: region, log: log}, nil
}

// Close releases the scratch RAM. It returns ErrDeviceClosed when called
// twice.
func (d *Device) Close() error {
	if d == nil {
		return nil
	}
	if d.closed {
		return ErrDeviceClosed
	}
	d.region.Release()
	d.closed = true
	d.log.Debug(context.Background(), "device closed")
	return nil
}

// EnsureReady brings the hardware up. Operations call it every time because
// the device may have been reset since the last call.
func (d *Device) EnsureReady(ctx context.Context) error {
	if d == nil {
		return fmt.Errorf("%w: nil device", ErrBadInputData)
	}
	if d.closed {
		return ErrDeviceClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.eng.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrHardwareAccelFailed, err)
	}
	return nil
}

// Engine returns the driver.
func (d *Device) Engine() engine.Engine { return d.eng }

// Region returns the claimed scratch RAM.
func (d *Device) Region() *engine.Region { return d.region }

// Logger returns the device logger.
func (d *Device) Logger() logging.Logger { return d.log }
