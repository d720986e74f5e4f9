package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
)

func selftestCmd() *cobra.Command {
	var rsaBits []int
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run every check, each on its own device",
		RunE: func(cmd *cobra.Command, args []string) error {
			var checks []func(context.Context) (fmt.Stringer, error)
			for _, id := range curve.IDs() {
				if _, err := curve.Load(id); err != nil || !id.Supported() {
					continue
				}
				checks = append(checks, func(ctx context.Context) (fmt.Stringer, error) {
					dev, err := openDevice()
					if err != nil {
						return nil, err
					}
					defer dev.Close()
					res, err := runECDH(ctx, dev, id)
					if err != nil {
						return nil, err
					}
					return res, nil
				})
			}
			for _, bits := range rsaBits {
				checks = append(checks, func(ctx context.Context) (fmt.Stringer, error) {
					dev, err := openDevice()
					if err != nil {
						return nil, err
					}
					defer dev.Close()
					res, err := runRSA(ctx, dev, bits)
					if err != nil {
						return nil, err
					}
					return res, nil
				})
			}

			results := make([]fmt.Stringer, len(checks))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, check := range checks {
				g.Go(func() error {
					res, err := check(ctx)
					if err != nil {
						return err
					}
					results[i] = res
					return nil
				})
			}
			err := g.Wait()
			for _, r := range results {
				if r != nil {
					fmt.Fprintln(cmd.OutOrStdout(), r)
				}
			}
			if err != nil {
				return fmt.Errorf("selftest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d checks passed\n", len(checks))
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&rsaBits, "rsa-bits", []int{2048}, "RSA modulus sizes to check")
	return cmd
}
