package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect routing documents",
	}

	cmd.AddCommand(newRoutesCheckCmd())

	return cmd
}

func newRoutesCheckCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a routing document and list its services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read routing document: %w", err)
			}

			table, err := route.ParseDocument(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if asJSON {
				normalized, err := route.MarshalDocument(table)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(out, string(normalized))

				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SERVICE\tQUEUE\tURL\tAUDIENCE\tDEADLINE")

			for _, name := range table.Names() {
				e, _ := table.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%ds\n", name, e.QueueID(), e.TargetURL(), e.Audience(), e.DefaultDeadlineSeconds())
			}

			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the normalized document instead of a table")

	return cmd
}
