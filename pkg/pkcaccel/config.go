package pkcaccel

import (
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

// Config describes the accelerator a Device drives.
type Config struct {
	// Engine is the coprocessor driver. Nil selects the software engine from
	// package softpkc.
	Engine engine.Engine

	// RegionSize is the scratch RAM size of the default software engine. It
	// is ignored when Engine is set, since hardware fixes its own RAM size.
	RegionSize int

	// Logger receives session and failure events. Nil binds to slog.Default().
	Logger logging.Logger
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.New(nil)
	}
	return c.Logger
}
