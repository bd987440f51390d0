package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"backlot/internal/api"
)

type versionAction func(ctx context.Context, artifactID string, versionID int64) (*api.VersionResponse, error)

func newVersionActionCommand(ctx *commandContext, use, short string, pick func(*api.VersionService) versionAction) *cobra.Command {
	var artifactID string
	var versionID int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.VersionService) error {
				resp, err := pick(svc)(cmd.Context(), artifactID, versionID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				printVersion(cmd, resp.Version)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&artifactID, "artifact", "", "Artifact identifier")
	cmd.Flags().Int64Var(&versionID, "version", 0, "Version identifier")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	_ = cmd.MarkFlagRequired("artifact")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func printVersion(cmd *cobra.Command, version api.Version) {
	status := version.Status
	if version.Active {
		status += " (active)"
	}
	label := version.Label
	if label == "" {
		label = "-"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "v%d  %s  %s\n", version.Number, status, label)
}
