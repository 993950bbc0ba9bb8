package main

import (
	"bemanai/internal/app"
	"bemanai/internal/mcp"
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and websocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			return a.Serve(ctx, version)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides the config")
	return cmd
}

func newMCPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analysis tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			s := mcp.NewServer(mcp.ServerConfig{
				Emotion:    a.Emotion,
				Decoder:    a.Decoder,
				Sandbox:    a.Sandbox,
				Dialogue:   a.Dialogue,
				Moderation: a.Moderation,
				Version:    version,
			})
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
