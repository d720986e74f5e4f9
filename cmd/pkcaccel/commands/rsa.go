package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rsaCmd() *cobra.Command {
	var bits int
	cmd := &cobra.Command{
		Use:   "rsa",
		Short: "Run the raw RSA permutations on a fresh key",
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := openDevice()
			if err != nil {
				return err
			}
			defer dev.Close()

			res, err := runRSA(cmd.Context(), dev, bits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 2048, "modulus size in bits")
	return cmd
}
