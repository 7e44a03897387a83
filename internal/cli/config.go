package cli

import (
	"fmt"
	"os"

	"github.com/caroline-insar/caroline-download/pkg/config"
	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/fsutil"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long:  "Show the effective configuration or write a starting configuration file",
	}

	cmd.AddCommand(
		newConfigShowCmd(flags),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration a run would use after merging the geo search
file and the environment. The archive token is redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.ToYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		baseDir string
	)

	cmd := &cobra.Command{
		Use:   "init FILE",
		Short: "Write a starting configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, args[0], baseDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&baseDir, "base-directory", "/data/sentinel1", "download base directory to put in the file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path, baseDir string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	cfg.Download.BaseDirectory = baseDir
	data, err := cfg.ToYAML()
	if err != nil {
		return err
	}

	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrap(errors.ErrIO, err.Error())
	}
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrap(errors.ErrIO, err.Error())
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return err
}
