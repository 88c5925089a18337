package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var releaseVersion string

func init() {
	rootCmd.AddCommand(releaseDateCmd)

	releaseDateCmd.Flags().StringVar(&releaseVersion, "version", "", "release version to look up (default 4.20)")
}

var releaseDateCmd = &cobra.Command{
	Use:   "release-date",
	Short: "Look up when an OpenShift release was published",
	Long: `Look up when an OpenShift release was published.

The release date anchors lookback windows: regressions are only
meaningful relative to when a version started producing nightly runs.

Examples:
  orionctl release-date
  orionctl release-date --version 4.18`,
	RunE: runReleaseDate,
}

func runReleaseDate(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolGetReleaseDate, func(ctx context.Context, a *app) error {
		res, err := a.client.GetReleaseDate(ctx, releaseVersion)
		if err != nil {
			return err
		}
		return printResult(res)
	})
}
