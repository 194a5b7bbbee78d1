package main

import (
	"fmt"
	"strconv"

	"github.com/helixml/delve/domain/linerange"
	"github.com/spf13/cobra"
)

func lineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Work with line fragments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parse FRAGMENT",
		Short: "Print the start and end lines of a fragment such as #L10-L20",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := linerange.Parse(args[0])
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no selection")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %s\n", r.Start(), r.End(), r.Fragment())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "expand LINE FRAGMENT",
		Short: "Print the fragment after shift-clicking LINE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[0])
			if err != nil || line < 1 {
				return fmt.Errorf("invalid line %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), linerange.Expand(line, args[1]))
			return nil
		},
	})

	return cmd
}
