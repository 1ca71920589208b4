package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/app"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/tools"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/version"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "raindrop-mcp",
		Short:         "Raindrop.io tools for MCP clients",
		Long:          "raindrop-mcp exposes Raindrop.io bookmarks, collections, highlights and tags as MCP tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runStdio,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "stdio",
			Short: "Serve MCP over stdin/stdout (default)",
			Args:  cobra.NoArgs,
			RunE:  runStdio,
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API and the OAuth endpoints",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := app.New()
				if err != nil {
					return err
				}
				return a.RunHTTP(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "tools",
			Short: "Print the tool catalog as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tools.NewCatalog().Tools())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version and build metadata",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)
	return root
}

func runStdio(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	return a.RunStdio(cmd.Context())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ raindrop-mcp: %v\n", err)
		os.Exit(1)
	}
}
