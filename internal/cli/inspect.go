package cli

import (
	"fmt"

	"github.com/caroline-insar/caroline-download/pkg/archive"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command, which checks a downloaded SAFE archive.
func NewInspectCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "inspect ZIP",
		Short: "Check that a downloaded product is a readable SAFE archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector := archive.NewInspector()
			out := cmd.OutOrStdout()

			if err := inspector.InspectSAFE(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s: valid SAFE archive (%s)\n", args[0], archive.SAFEDir(args[0]))

			if !list {
				return nil
			}
			entries, err := inspector.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				_, _ = fmt.Fprintln(out, e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list the archive contents")

	return cmd
}
