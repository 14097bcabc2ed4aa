package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRevParseCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse <revision>...",
		Short: "resolve one or more revisions to their object identifier",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return revParseCmd(cmd.OutOrStdout(), flags, args)
	}
	return cmd
}

func revParseCmd(out io.Writer, flags *globalFlags, revs []string) error {
	r, err := loadRepository(flags)
	if err != nil {
		return err
	}

	for _, rev := range revs {
		id, err := r.Resolve(rev)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, id.String())
	}
	return nil
}
