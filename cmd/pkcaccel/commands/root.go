package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine/softpkc"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/logging"
)

var (
	configPath string
	regionSize int
	logLevel   string

	logger logging.Logger
)

// Execute runs the CLI.
func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "pkcaccel",
		Short:        "Exercise the public-key coprocessor adapter",
		SilenceUsage: true,
		Version:      pkcaccel.ModuleVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := LoadConfig(configPath)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("region-size") && cfg.RegionSize != 0 {
					regionSize = cfg.RegionSize
				}
				if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
					logLevel = cfg.LogLevel
				}
			}
			lvl, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "JSON config file with region_size and log_level")
	root.PersistentFlags().IntVar(&regionSize, "region-size", softpkc.DefaultRAMSize, "scratch RAM size of the software engine in bytes")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(curvesCmd(), ecdhCmd(), rsaCmd(), selftestCmd())
	return root
}

// openDevice opens a device on a fresh software engine.
func openDevice() (*pkcaccel.Device, error) {
	return pkcaccel.Open(pkcaccel.Config{
		Engine: softpkc.New(softpkc.Config{RAMSize: regionSize}),
		Logger: logger,
	})
}
