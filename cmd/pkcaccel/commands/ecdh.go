package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
)

func ecdhCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "ecdh",
		Short: "Agree on a key between two fresh key pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := curve.ParseID(group)
			if err != nil {
				return err
			}
			dev, err := openDevice()
			if err != nil {
				return err
			}
			defer dev.Close()

			res, err := runECDH(cmd.Context(), dev, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			fmt.Fprintf(cmd.OutOrStdout(), "public key: %s\n", res.PublicKey)
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "curve", "secp256r1", "group name, see 'pkcaccel curves'")
	return cmd
}
