package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"backlot/internal/api"
	"backlot/internal/artifact"
)

func newVersionsCommand(ctx *commandContext) *cobra.Command {
	versionsCmd := &cobra.Command{
		Use:   "versions",
		Short: "Inspect and manage artifact versions",
	}

	versionsCmd.AddCommand(newVersionsListCommand(ctx))
	versionsCmd.AddCommand(newVersionsActivateCommand(ctx))
	versionsCmd.AddCommand(newVersionsRestoreCommand(ctx))

	return versionsCmd
}

func newVersionsListCommand(ctx *commandContext) *cobra.Command {
	var partID string
	var kindValue string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an artifact's version history",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := artifact.ParseKind(kindValue)
			if !ok {
				return fmt.Errorf("unknown artifact kind %q", kindValue)
			}
			return ctx.withService(func(svc *api.VersionService) error {
				resp, err := svc.List(cmd.Context(), partID, kind)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				renderVersionList(cmd, resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&partID, "part", "", "Part identifier")
	cmd.Flags().StringVar(&kindValue, "kind", "", "Artifact kind (beat_map, shot_list, storyboard)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	_ = cmd.MarkFlagRequired("part")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func renderVersionList(cmd *cobra.Command, resp *api.VersionListResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s for part %s (%s)\n", resp.Artifact.KindLabel, resp.Artifact.PartID, resp.Artifact.ID)
	if len(resp.Versions) == 0 {
		fmt.Fprintln(out, "No versions yet; run `backlot generate` to create one.")
		return
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(resp.Versions))
	for _, version := range resp.Versions {
		rows = append(rows, []string{
			strconv.FormatInt(version.ID, 10),
			fmt.Sprintf("v%d", version.Number),
			colorizeStatus(version.Status, colorize),
			activeMarker(version.Active),
			version.Label,
			version.CreatedAt,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Version", "Status", "Active", "Label", "Created"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func activeMarker(active bool) string {
	if active {
		return "*"
	}
	return ""
}

func newVersionsActivateCommand(ctx *commandContext) *cobra.Command {
	return newVersionActionCommand(ctx, "activate", "Make a version the active one",
		func(svc *api.VersionService) versionAction { return svc.Activate })
}

func newVersionsRestoreCommand(ctx *commandContext) *cobra.Command {
	return newVersionActionCommand(ctx, "restore", "Reactivate an older version with an audit label",
		func(svc *api.VersionService) versionAction { return svc.Restore })
}
