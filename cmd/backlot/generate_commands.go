package main

import (
	"github.com/spf13/cobra"

	"backlot/internal/api"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var artifactID string
	var feedback string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate an artifact with creative feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.VersionService) error {
				resp, err := svc.Regenerate(cmd.Context(), artifactID, feedback)
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
	cmd.Flags().StringVar(&feedback, "feedback", "", "Creative feedback to steer the regeneration")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	_ = cmd.MarkFlagRequired("artifact")
	return cmd
}

func newRetryCommand(ctx *commandContext) *cobra.Command {
	var artifactID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Regenerate the active version without feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.VersionService) error {
				resp, err := svc.Retry(cmd.Context(), artifactID)
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
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	_ = cmd.MarkFlagRequired("artifact")
	return cmd
}

func newApproveCommand(ctx *commandContext) *cobra.Command {
	return newVersionActionCommand(ctx, "approve", "Approve a version as canon",
		func(svc *api.VersionService) versionAction { return svc.Approve })
}
