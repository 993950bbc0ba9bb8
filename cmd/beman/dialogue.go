package main

import (
	"bemanai/internal/cache"
	"bemanai/internal/classify"
	"bemanai/internal/model"
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newModerateCmd(opts *globalOptions) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "moderate [text...]",
		Short: "Rate the risk of a text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			res, err := a.Moderation.Moderate(cmd.Context(), text, contentType)
			if err != nil {
				return serviceError(err)
			}
			return opts.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "risk: %s (%.1f)\n", riskColor(res.RiskLevel).Sprint(res.RiskLevel), res.RiskScore)
				if len(res.FlaggedKeywords) > 0 {
					fmt.Fprintf(w, "flagged: %s\n", strings.Join(res.FlaggedKeywords, ", "))
				}
				headColor.Fprintln(w, "Suggestions")
				bullet(w, res.Suggestions)
			})
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (general|comment|post|message)")
	return cmd
}

func newChatCmd(opts *globalOptions) *cobra.Command {
	var dialogueType string

	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Chat with the dialogue assistant",
		Long: `Chat answers one message, or with no message reads one message per line
from stdin and keeps the conversation as context. An empty line or EOF ends it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				res, err := a.Dialogue.Chat(cmd.Context(), model.ChatRequest{
					Message:      strings.Join(args, " "),
					DialogueType: dialogueType,
				})
				if err != nil {
					return serviceError(err)
				}
				return opts.render(out, res, func(w io.Writer) { printReply(w, res) })
			}

			var history []model.ChatTurn
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				if opts.format == "pretty" {
					dimColor.Fprint(out, "> ")
				}
				if !scanner.Scan() {
					break
				}
				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					break
				}

				res, err := a.Dialogue.Chat(cmd.Context(), model.ChatRequest{
					Message:      message,
					Context:      history,
					DialogueType: dialogueType,
				})
				if err != nil {
					badColor.Fprintln(out, serviceError(err))
					continue
				}
				if err := opts.render(out, res, func(w io.Writer) { printReply(w, res) }); err != nil {
					return err
				}

				now := time.Now().UTC().Format(time.RFC3339)
				history = append(history,
					model.ChatTurn{Role: "user", Content: message, Timestamp: now},
					model.ChatTurn{Role: "assistant", Content: res.Response, Timestamp: now},
				)
				if len(history) > cache.MaxChatTurns {
					history = history[len(history)-cache.MaxChatTurns:]
				}
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVar(&dialogueType, "type", "", "dialogue type (general|emotional_support|advice)")
	return cmd
}

func printReply(w io.Writer, res *model.ChatResponse) {
	fmt.Fprintln(w, goodColor.Sprint(res.Response))
	dimColor.Fprintf(w, "  [%s, %s, confidence %.1f]\n", res.ResponseType, res.EmotionalTone, res.Confidence)
	for _, q := range res.FollowUpQuestions {
		dimColor.Fprintf(w, "  ? %s\n", q)
	}
}

func riskColor(r classify.RiskLevel) *color.Color {
	switch r {
	case classify.RiskLow:
		return goodColor
	case classify.RiskMedium:
		return warnColor
	default:
		return badColor
	}
}
