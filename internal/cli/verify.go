package cli

import (
	"fmt"

	"github.com/caroline-insar/caroline-download/pkg/checksum"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command. Without an expected digest it
// prints the digest of the file.
func NewVerifyCmd() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "verify FILE [CHECKSUM]",
		Short: "Verify or print the checksum of a downloaded product",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := checksum.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				sum, err := checksum.Sum(alg, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s  %s\n", sum, args[0])
				return err
			}

			ok, err := checksum.VerifyWith(alg, args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return errors.Wrapf(errors.ErrVerificationFailed, "%s", args[0])
			}
			_, err = fmt.Fprintf(out, "%s: OK\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", string(checksum.MD5), "checksum algorithm (md5 or sha256)")

	return cmd
}
