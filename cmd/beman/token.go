package main

import (
	"bemanai/internal/service"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token username",
		Short: "Issue an API token for a user",
		Long:  `Token signs a token with the configured jwt_secret without checking a password. It is meant for operators.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			auth := service.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, cfg.JWTSecret, cfg.JWTTTL)
			tok, err := auth.IssueToken(args[0])
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}
			return opts.render(cmd.OutOrStdout(), tok, func(w io.Writer) {
				fmt.Fprintln(w, tok.Token)
				dimColor.Fprintf(w, "user %s", tok.UserID)
				if tok.ExpiresAt > 0 {
					dimColor.Fprintf(w, ", expires %s", time.Unix(tok.ExpiresAt, 0).UTC().Format(time.RFC3339))
				}
				fmt.Fprintln(w)
			})
		},
	}
}
