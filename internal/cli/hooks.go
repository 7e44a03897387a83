package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caroline-insar/caroline-download/pkg/errors"
	"github.com/caroline-insar/caroline-download/pkg/fsutil"
	"github.com/caroline-insar/caroline-download/pkg/hooks"
	"github.com/spf13/cobra"
)

// NewHooksCmd creates the hooks command.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage hook scripts",
	}
	cmd.AddCommand(newHooksInitCmd())
	return cmd
}

func newHooksInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init DIR",
		Short: "Write template hook scripts",
		Long: `Write a commented template for every hook event into DIR. Point
download.hooks_dir at DIR to have them run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := fsutil.EnsureDir(dir); err != nil {
				return errors.Wrap(errors.ErrIO, err.Error())
			}
			for _, hookType := range []hooks.HookType{hooks.PostDownload, hooks.VerificationFailed} {
				path := filepath.Join(dir, string(hookType)+hooks.HookFileExtension)
				if _, err := os.Stat(path); err == nil && !force {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s exists, skipping\n", path)
					continue
				}
				if err := fsutil.WriteFileAtomic(path, []byte(hooks.HookTemplate(hookType)+"\n"), fsutil.FileModeDefault); err != nil {
					return errors.Wrap(errors.ErrIO, err.Error())
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hook scripts")

	return cmd
}
