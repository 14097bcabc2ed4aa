package main

import (
	"fmt"
	"io"

	"github.com/loosegit/loosegit/object"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newCatFileCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat-file (-t|-s|-e|-p) <rev>",
		Short: "provide type, size, existence, or pretty-printed contents of a revision",
		Args:  cobra.ExactArgs(1),
	}

	typeOnly := cmd.Flags().BoolP("t", "t", false, "print the object type")
	sizeOnly := cmd.Flags().BoolP("s", "s", false, "print the object's content length")
	checkExists := cmd.Flags().BoolP("e", "e", false, "check the object exists; print nothing")
	prettyPrint := cmd.Flags().BoolP("p", "p", false, "pretty-print the object's contents")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		set := 0
		for _, b := range []bool{*typeOnly, *sizeOnly, *checkExists, *prettyPrint} {
			if b {
				set++
			}
		}
		if set != 1 {
			return newUsageError("exactly one of -t, -s, -e, -p is required")
		}

		mode := catFileMode{
			typeOnly: *typeOnly, sizeOnly: *sizeOnly, checkExists: *checkExists, prettyPrint: *prettyPrint,
		}
		if mode.prettyPrint {
			return runPaged(cmd.OutOrStdout(), flags, func(w io.Writer) error {
				return catFileCmd(w, flags, args[0], mode)
			})
		}
		return catFileCmd(cmd.OutOrStdout(), flags, args[0], mode)
	}
	return cmd
}

type catFileMode struct {
	typeOnly, sizeOnly, checkExists, prettyPrint bool
}

func catFileCmd(out io.Writer, flags *globalFlags, rev string, mode catFileMode) error {
	r, err := loadRepository(flags)
	if err != nil {
		return err
	}

	if mode.checkExists {
		id, err := r.Resolve(rev)
		if err != nil {
			return err
		}
		ok, err := r.Exists(id)
		if err != nil {
			return err
		}
		if !ok {
			return xerrors.Errorf("object %s does not exist", id)
		}
		return nil
	}

	o, err := r.Object(rev)
	if err != nil {
		return err
	}

	switch {
	case mode.typeOnly:
		fmt.Fprintln(out, o.Header.Type.String())
	case mode.sizeOnly:
		fmt.Fprintln(out, o.Header.ContentLength)
	case mode.prettyPrint:
		return prettyPrintObject(out, o)
	}
	return nil
}

func prettyPrintObject(out io.Writer, o *object.Object) error {
	switch o.Header.Type {
	case object.TypeCommit:
		c, ok := o.AsCommit()
		if !ok {
			return xerrors.Errorf("object %s is not a commit", o.ID)
		}
		fmt.Fprintf(out, "tree %s\n", c.Tree)
		if c.Parent != nil {
			fmt.Fprintf(out, "parent %s\n", *c.Parent)
		}
		fmt.Fprintf(out, "author %s %d %s\n", c.Author.Name, c.Author.Date.Unix(), c.Author.Date.Format("-0700"))
		fmt.Fprintf(out, "committer %s %d %s\n", c.Committer.Name, c.Committer.Date.Unix(), c.Committer.Date.Format("-0700"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, c.Message)
		return nil
	default:
		return xerrors.Errorf("pretty-print not supported for type %s", o.Header.Type)
	}
}
