package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAnnotatorsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotators",
		Short: "Inspect known annotators",
	}

	var jsonOut bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List known annotators",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := ctx.annotators()
			if err != nil {
				return err
			}

			names, err := sys.List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, names)
			}

			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No annotators")
				return nil
			}

			rows := make([][]string, len(names))
			for i, n := range names {
				rows[i] = []string{n}
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Annotator"}, rows, nil))
			return nil
		},
	}
	list.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	add := &cobra.Command{
		Use:   "add <name>...",
		Short: "Register annotators before they submit anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := ctx.annotators()
			if err != nil {
				return err
			}

			for _, name := range args {
				if err := sys.EnsureRegistered(cmd.Context(), name); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d annotators\n", len(args))
			return nil
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(add)
	return cmd
}

func newResultsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Print resolved labels on assigned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := ctx.results()
			if err != nil {
				return err
			}

			rows, err := sys.Report(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, rows)
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resolved results")
				return nil
			}

			table := make([][]string, len(rows))
			for i, r := range rows {
				table[i] = []string{r.FullFilepath, labelName(r.IsSuspectedAdManual), r.ClassificationIssuer}
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"Filepath", "Label", "Annotator"},
				table,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show summary counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := ctx.results()
			if err != nil {
				return err
			}

			stats, err := sys.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, stats)
			}

			rows := [][]string{
				{"Catalog items", strconv.Itoa(stats.Items)},
				{"Classifications", strconv.Itoa(stats.Classifications)},
				{"Resolved", strconv.Itoa(stats.Resolved)},
				{"Flagged", strconv.Itoa(stats.Flagged)},
				{"Annotators", strconv.Itoa(stats.Annotators)},
				{"Assignments", strconv.Itoa(stats.Assignments)},
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func labelName(v int) string {
	if v == 1 {
		return "ad"
	}
	return "not-ad"
}
