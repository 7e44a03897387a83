package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caroline-insar/caroline-download/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	flags := &cli.Flags{}

	cmd := &cobra.Command{
		Use:          cli.ProgramName,
		Short:        "Download Sentinel-1 SLC products for CAROLINE",
		Long:         cli.Description,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.RunDownload(cmd.Context(), flags)
		},
	}

	flags.Bind(cmd.PersistentFlags(), cmd.Flags())

	cmd.AddCommand(
		cli.NewConfigCmd(flags),
		cli.NewPathCmd(),
		cli.NewVerifyCmd(),
		cli.NewInspectCmd(),
		cli.NewHooksCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
