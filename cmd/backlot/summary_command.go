package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"backlot/internal/api"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var scope string
	var projectID string
	var episodeID string
	var partID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Roll up content counts for a project, episode, or part",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch scope {
			case "project", "episode", "part":
			default:
				return fmt.Errorf("scope must be project, episode, or part (got %q)", scope)
			}
			return ctx.withService(func(svc *api.VersionService) error {
				resp, err := svc.Summary(cmd.Context(), scope, projectID, episodeID, partID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				renderSummary(cmd, resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "project", "Roll-up scope: project, episode, or part")
	cmd.Flags().StringVar(&projectID, "project", "", "Project identifier")
	cmd.Flags().StringVar(&episodeID, "episode", "", "Episode identifier")
	cmd.Flags().StringVar(&partID, "part", "", "Part identifier")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func renderSummary(cmd *cobra.Command, summary *api.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Summary for %s %s\n", summary.Scope, summary.ID)
	rows := [][]string{
		{"Beats", strconv.Itoa(summary.Beats)},
		{"Shots", strconv.Itoa(summary.Shots)},
		{"Storyboards", strconv.Itoa(summary.Storyboards)},
		{"Images", strconv.Itoa(summary.Images)},
		{"Clips", strconv.Itoa(summary.Clips)},
		{"Screenplay lines", strconv.Itoa(summary.ScreenplayLines)},
		{"Beats per shot", summary.BeatsPerShot},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}
