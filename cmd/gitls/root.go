package main

import (
	"github.com/loosegit/loosegit/config"
	"github.com/loosegit/loosegit/internal/tracelog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags carries the flags every subcommand needs to load a
// repository and decide how verbose to be.
type globalFlags struct {
	C pflag.Value

	env     *config.Env
	verbose bool
	tracer  *tracelog.Tracer

	// fs overrides the filesystem used to load the repository; nil means
	// the real filesystem. Only ever set by tests.
	fs afero.Fs
	// gitDir, when non-empty, skips the usual upward .git lookup and
	// uses this path directly. Only ever set by tests, since the real
	// lookup walks the real filesystem regardless of fs.
	gitDir string
}

func newRootCmd(cwd string, e *config.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gitls",
		Short:         "read-only inspector for a git object database",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := &globalFlags{
		env: e,
	}
	flags.C = newDirPathFlagWithDefault(cwd)
	cmd.PersistentFlags().VarP(flags.C, "C", "C", "run as if started in the given path instead of the current directory")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "trace revision resolution steps to stderr")

	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		flags.tracer = tracelog.New(flags.verbose)
	}

	cmd.AddCommand(newCatFileCmd(flags))
	cmd.AddCommand(newLogCmd(flags))
	cmd.AddCommand(newRevParseCmd(flags))
	cmd.AddCommand(newBranchCmd(flags))
	cmd.AddCommand(newLsFilesCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))

	return cmd
}
