package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"backlot/internal/api"
	"backlot/internal/hierarchy"
)

func newBreadcrumbCommand(ctx *commandContext) *cobra.Command {
	var projectID string
	var episodeID string
	var partID string
	var sceneID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "breadcrumb",
		Short: "Resolve the navigation trail for a hierarchy location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := hierarchy.Location{
				ProjectID: projectID,
				EpisodeID: episodeID,
				PartID:    partID,
				SceneID:   sceneID,
			}
			return ctx.withService(func(svc *api.VersionService) error {
				resp, err := svc.Breadcrumb(cmd.Context(), loc)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				if resp.Empty {
					fmt.Fprintln(out, "(no trail)")
					return nil
				}
				labels := make([]string, 0, len(resp.Crumbs))
				for _, crumb := range resp.Crumbs {
					labels = append(labels, crumb.Label)
				}
				fmt.Fprintln(out, strings.Join(labels, " > "))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project identifier")
	cmd.Flags().StringVar(&episodeID, "episode", "", "Episode identifier")
	cmd.Flags().StringVar(&partID, "part", "", "Part identifier")
	cmd.Flags().StringVar(&sceneID, "scene", "", "Legacy scene identifier")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
