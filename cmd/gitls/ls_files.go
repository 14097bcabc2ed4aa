package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/loosegit/loosegit/index"
	"github.com/spf13/cobra"
)

func newLsFilesCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "list cached (default) or untracked paths",
		Args:  cobra.NoArgs,
	}

	cached := cmd.Flags().BoolP("c", "c", false, "show cached (tracked) files")
	others := cmd.Flags().BoolP("o", "o", false, "show untracked files")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if *cached && *others {
			return newUsageError("only one of -c, -o may be given")
		}
		return lsFilesCmd(cmd.OutOrStdout(), flags, *others)
	}
	return cmd
}

func lsFilesCmd(out io.Writer, flags *globalFlags, showOthers bool) error {
	r, err := loadRepository(flags)
	if err != nil {
		return err
	}

	var paths []string
	if showOthers {
		paths, err = r.Untracked()
	} else {
		var idx *index.Index
		idx, err = r.Index()
		if err == nil {
			for _, e := range idx.Entries {
				paths = append(paths, e.Path)
			}
		}
	}
	if err != nil {
		return err
	}

	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}
	return nil
}
