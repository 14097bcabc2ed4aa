package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/loosegit/loosegit/object"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
)

const commitDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

func newLogCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <rev>",
		Short: "walk the first-parent chain starting at rev",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPaged(cmd.OutOrStdout(), flags, func(w io.Writer) error {
			return logCmd(w, flags, args[0])
		})
	}
	return cmd
}

func logCmd(out io.Writer, flags *globalFlags, rev string) error {
	r, err := loadRepository(flags)
	if err != nil {
		return err
	}

	id, err := r.Resolve(rev)
	if err != nil {
		return err
	}

	return r.Log(id.String(), func(c object.CommitRecord) bool {
		printCommit(out, c)
		return true
	})
}

func printCommit(out io.Writer, c object.CommitRecord) {
	fmt.Fprintf(out, "%scommit %s%s\n", ansi.ColorCode("yellow"), c.Name, ansi.Reset)
	fmt.Fprintf(out, "Author: %s\n", c.Author.Name)
	fmt.Fprintf(out, "Date:   %s\n", c.Author.Date.Format(commitDateLayout))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "    %s\n", strings.ReplaceAll(c.Message, "\n", "\n    "))
	fmt.Fprintln(out)
}
