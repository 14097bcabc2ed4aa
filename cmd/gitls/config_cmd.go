package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the merged repository configuration",
		Args:  cobra.NoArgs,
	}

	listAll := cmd.Flags().BoolP("l", "l", false, "list all merged config entries")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !*listAll {
			return newUsageError("only -l is supported")
		}
		return configCmd(cmd.OutOrStdout(), flags)
	}
	return cmd
}

func configCmd(out io.Writer, flags *globalFlags) error {
	r, err := loadRepository(flags)
	if err != nil {
		return err
	}

	all := r.Config().Merged().All()
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "%s=%s\n", k, all[k])
	}
	return nil
}
