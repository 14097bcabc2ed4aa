package main

import (
	"fmt"
	"io"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
)

func newBranchCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "list local branches, marking the current one",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return branchCmd(cmd.OutOrStdout(), flags)
	}
	return cmd
}

func branchCmd(out io.Writer, flags *globalFlags) error {
	r, err := loadRepository(flags)
	if err != nil {
		return err
	}

	names, err := r.Branches()
	if err != nil {
		return err
	}

	current, ok, err := r.CurrentBranch()
	if err != nil {
		return err
	}

	for _, name := range names {
		if ok && name == current {
			fmt.Fprintf(out, "%s* %s%s\n", ansi.ColorCode("green"), name, ansi.Reset)
			continue
		}
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
