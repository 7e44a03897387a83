package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caroline-insar/caroline-download/pkg/product"
	"github.com/spf13/cobra"
)

// NewPathCmd creates the path command, which prints where a product would be stored.
func NewPathCmd() *cobra.Command {
	var (
		base         string
		orbit        int
		direction    string
		polarization string
	)

	cmd := &cobra.Command{
		Use:   "path FILE_NAME",
		Short: "Print the storage path of a product",
		Long: `Print the target file a product would be downloaded to, composed from
its file name and orbit metadata.`,
		Example: "  caroline-download path S1A_IW_SLC__1SDV_20190103T170131_20190103T170158_025306_02CC4C_519D.zip \\\n" +
			"    --base /data --orbit 88 --direction ASCENDING --polarization VV+VH",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := product.ComposePath(base, args[0], orbit, strings.ToUpper(direction), polarization)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, args[0]))
			return err
		},
	}

	cmd.Flags().StringVar(&base, "base", ".", "download base directory")
	cmd.Flags().IntVar(&orbit, "orbit", 0, "relative orbit number")
	cmd.Flags().StringVar(&direction, "direction", string(product.Ascending), "orbit direction (ASCENDING or DESCENDING)")
	cmd.Flags().StringVar(&polarization, "polarization", "", "polarization, e.g. VV+VH")
	_ = cmd.MarkFlagRequired("orbit")
	_ = cmd.MarkFlagRequired("polarization")

	return cmd
}
