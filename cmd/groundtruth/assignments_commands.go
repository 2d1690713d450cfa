package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/groundtruth/internal/assignments"
)

func newAssignmentsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Manage per-annotator item assignments",
	}

	cmd.AddCommand(newAssignmentsImportCommand(ctx))
	cmd.AddCommand(newAssignmentsSetCommand(ctx))
	cmd.AddCommand(newAssignmentsShowCommand(ctx))

	return cmd
}

func newAssignmentsImportCommand(ctx *commandContext) *cobra.Command {
	var (
		annotator string
		replace   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import assignments from a YAML file or a legacy allow-list",
		Long: `Import assignments into the database.

Without --annotator the file is YAML mapping each annotator to a list of filepaths:

  alice:
    - a.png
    - b.png

With --annotator the file is a legacy allow-list of one filepath per line,
all assigned to that annotator.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := assignments.ParseFile(args[0], annotator)
			if err != nil {
				return err
			}

			sys, err := ctx.assignments()
			if err != nil {
				return err
			}

			result, err := sys.Import(cmd.Context(), set, replace)
			if err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"Imported %d assignments for %d annotators (%d removed)\n",
				result.Inserted, result.Annotators, result.Removed,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&annotator, "annotator", "a", "", "Treat the file as a legacy allow-list for this annotator")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace each listed annotator's existing assignments")

	return cmd
}

func newAssignmentsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <annotator> [filepath]...",
		Short: "Replace an annotator's assignments with the given filepaths",
		Long: `Replace an annotator's assignments with the given filepaths.
With no filepaths the annotator's assignments are cleared and they are served
every unresolved item.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := ctx.assignments()
			if err != nil {
				return err
			}

			result, err := sys.Replace(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"Assigned %d filepaths to %s (%d removed)\n",
				result.Inserted, args[0], result.Removed,
			)
			return nil
		},
	}
}

func newAssignmentsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <annotator>",
		Short: "List the filepaths assigned to an annotator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := ctx.assignments()
			if err != nil {
				return err
			}

			paths, err := sys.ForAnnotator(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, paths)
			}

			if len(paths) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no assignments (unrestricted)\n", args[0])
				return nil
			}

			rows := make([][]string, len(paths))
			for i, p := range paths {
				rows[i] = []string{p}
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Filepath"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
