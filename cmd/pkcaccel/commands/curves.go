package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/curve"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/ecdh"
	"github.com/hsiuhsiu/pkcaccel-go/pkg/pkcaccel/engine/softpkc"
)

func curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List recognized groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := softpkc.New(softpkc.Config{RAMSize: regionSize})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tSUPPORTED\tBUILT-IN\tP BITS\tWORKAREA BYTES")
			for _, id := range curve.IDs() {
				bits, scratch := "-", "-"
				g, err := curve.Load(id)
				builtin := err == nil
				if builtin {
					bits = fmt.Sprint(g.PBits)
					_, pkc := eng.PointMultWorkarea(g.PLen(), g.NLen())
					scratch = fmt.Sprint(pkc)
				}
				fmt.Fprintf(w, "%s\t%t\t%t\t%s\t%s\n", id, ecdh.CanDo(id), builtin, bits, scratch)
			}
			return w.Flush()
		},
	}
}
