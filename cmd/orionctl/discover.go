package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var (
	// discovery command flags
	discConfig     string
	discOutputJSON bool
)

func init() {
	rootCmd.AddCommand(configsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(resourcesCmd)

	metricsCmd.Flags().StringVar(&discConfig, "config", "", "test configuration to inspect (default small-scale-udn-l3.yaml)")
	toolsCmd.Flags().BoolVar(&discOutputJSON, "json", false, "output the tool list as JSON")
	resourcesCmd.Flags().BoolVar(&discOutputJSON, "json", false, "output the resource list as JSON")
}

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List the test configurations the server can analyze",
	Long: `List the test configurations the server can analyze.

Each configuration names a benchmark scenario (scale, UDN, node density)
whose historical runs Orion holds data for.

Examples:
  orionctl configs`,
	RunE: runConfigs,
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List the metrics captured by a test configuration",
	Long: `List the metrics captured by a test configuration.

Any metric listed here can be passed to report or correlate.

Examples:
  orionctl metrics
  orionctl metrics --config trt-external-payload-cluster-density.yaml`,
	RunE: runMetrics,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools the server exposes",
	Long: `List the MCP tools the server exposes.

Tools not covered by a dedicated orionctl command can still be invoked
through the orion library's CallTool.

Examples:
  orionctl tools
  orionctl tools --json`,
	RunE: runTools,
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the MCP resources the server exposes",
	Long: `List the MCP resources the server exposes.

Examples:
  orionctl resources
  orionctl resources --json`,
	RunE: runResources,
}

func runConfigs(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolGetConfigs, func(ctx context.Context, a *app) error {
		res, err := a.client.GetConfigs(ctx)
		if err != nil {
			return err
		}
		return printResult(res)
	})
}

func runMetrics(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolGetMetrics, func(ctx context.Context, a *app) error {
		res, err := a.client.GetMetrics(ctx, discConfig)
		if err != nil {
			return err
		}
		return printResult(res)
	})
}

func runTools(cmd *cobra.Command, args []string) error {
	return runTool(cmd, "", func(ctx context.Context, a *app) error {
		tools, err := a.client.ListTools(ctx)
		if err != nil {
			return err
		}

		if discOutputJSON {
			return outputJSON(tools)
		}
		writeToolTable(os.Stdout, tools)
		return nil
	})
}

func runResources(cmd *cobra.Command, args []string) error {
	return runTool(cmd, "", func(ctx context.Context, a *app) error {
		resources, err := a.client.ListResources(ctx)
		if err != nil {
			return err
		}

		if discOutputJSON {
			return outputJSON(resources)
		}
		writeResourceTable(os.Stdout, resources)
		return nil
	})
}

// writeToolTable renders the tool list as an aligned table.
func writeToolTable(w io.Writer, tools []orion.ToolInfo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tDESCRIPTION")
	for _, t := range tools {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Description)
	}
	tw.Flush()
}

// writeResourceTable renders the resource list as an aligned table.
func writeResourceTable(w io.Writer, resources []orion.ResourceInfo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tURI\tDESCRIPTION")
	for _, r := range resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.URI, r.Description)
	}
	tw.Flush()
}
