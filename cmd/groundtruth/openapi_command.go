package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/groundtruth/internal/api"
	"github.com/JaimeStill/groundtruth/pkg/openapi"
)

func newOpenAPICommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document served at /openapi.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			spec := api.NewSpec(cfg)
			if output == "" {
				return openapi.Encode(cmd.OutOrStdout(), spec)
			}

			if err := openapi.WriteJSON(spec, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
