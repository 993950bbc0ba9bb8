package main

import (
	"bemanai/internal/classify"
	"bemanai/internal/model"
	"bemanai/internal/service"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify the emotion of a text",
		Long:  `Analyze classifies a text as positive, negative or neutral. With no text, or "-", it reads stdin.`,
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

			res, err := a.Emotion.Analyze(cmd.Context(), text)
			if err != nil {
				return serviceError(err)
			}
			return opts.render(cmd.OutOrStdout(), res, func(w io.Writer) { printEmotion(w, res) })
		},
	}
}

func newBatchCmd(opts *globalOptions) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Analyze every line of a file",
		Long:  `Batch analyzes each non-blank line of a file, or stdin when no file is given. Failed lines are reported in place.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			texts, err := readLines(in)
			if err != nil {
				return err
			}

			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if decode {
				batch, err := a.Decoder.DecodeBatch(cmd.Context(), texts, nil)
				if err != nil {
					return serviceError(err)
				}
				return opts.render(cmd.OutOrStdout(), batch, func(w io.Writer) {
					for i := range batch.Results {
						res := &batch.Results[i]
						if !res.Success {
							badColor.Fprintf(w, "%3d  %s: %s\n", i+1, res.ErrorType, res.Message)
							continue
						}
						level := res.RelationshipHealth.HealthLevel
						fmt.Fprintf(w, "%3d  %s  %s\n", i+1, levelColor(level).Sprintf("%-9s", level), res.Text)
					}
					printTally(w, batch.TotalCount, batch.SuccessCount, batch.FailedCount)
				})
			}

			batch, err := a.Emotion.AnalyzeBatch(cmd.Context(), texts)
			if err != nil {
				return serviceError(err)
			}
			return opts.render(cmd.OutOrStdout(), batch, func(w io.Writer) {
				for i := range batch.Results {
					res := &batch.Results[i]
					if !res.Success {
						badColor.Fprintf(w, "%3d  %s: %s\n", i+1, res.ErrorType, res.Message)
						continue
					}
					fmt.Fprintf(w, "%3d  %s %.2f  %s\n", i+1,
						emotionColor(res.Category).Sprintf("%-8s", res.Category), res.Intensity, res.Text)
				}
				printTally(w, batch.TotalCount, batch.SuccessCount, batch.FailedCount)
			})
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "decode relationship health instead of emotion")
	return cmd
}

func newDecodeCmd(opts *globalOptions) *cobra.Command {
	var analysisType, focus string

	cmd := &cobra.Command{
		Use:   "decode [text...]",
		Short: "Decode emotional state and relationship health",
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

			var ctxData map[string]any
			if focus != "" {
				ctxData = map[string]any{service.FocusKey: focus}
			}
			res, err := a.Decoder.Decode(cmd.Context(), text, ctxData, analysisType)
			if err != nil {
				return serviceError(err)
			}
			return opts.render(cmd.OutOrStdout(), res, func(w io.Writer) { printDecode(w, res) })
		},
	}
	cmd.Flags().StringVar(&analysisType, "type", "", "analysis type (comprehensive|emotion_only|relationship_only)")
	cmd.Flags().StringVar(&focus, "focus", "", "relationship dimension to put first in the suggestions")
	return cmd
}

func printEmotion(w io.Writer, res *model.EmotionResult) {
	headColor.Fprintln(w, "Emotion")
	fmt.Fprintf(w, "  category:  %s\n", emotionColor(res.Category).Sprint(res.Category))
	fmt.Fprintf(w, "  intensity: %.2f\n", res.Intensity)
	for _, e := range res.Scores {
		fmt.Fprintf(w, "  %-10s %.3f\n", e.Dimension+":", e.Value)
	}
	if len(res.Keywords) > 0 {
		fmt.Fprintf(w, "  keywords:  %s\n", dimColor.Sprint(res.Keywords))
	}
	headColor.Fprintln(w, "Suggestions")
	bullet(w, res.Suggestions)
}

func printDecode(w io.Writer, res *model.DecodeResult) {
	if es := res.EmotionState; es != nil {
		headColor.Fprintln(w, "Emotional state")
		fmt.Fprintf(w, "  primary:   %s\n", es.PrimaryEmotion)
		fmt.Fprintf(w, "  intensity: %.2f\n", es.Intensity)
		if len(es.EmotionKeywords) > 0 {
			fmt.Fprintf(w, "  keywords:  %s\n", dimColor.Sprint(es.EmotionKeywords))
		}
	}
	if rh := res.RelationshipHealth; rh != nil {
		headColor.Fprintln(w, "Relationship health")
		fmt.Fprintf(w, "  overall:   %.1f (%s)\n", rh.OverallScore, levelColor(rh.HealthLevel).Sprint(rh.HealthLevel))
		for _, d := range rh.DimensionScores {
			fmt.Fprintf(w, "  %-14s %5.1f\n", d.Dimension+":", d.Score)
		}
		if len(rh.Strengths) > 0 {
			goodColor.Fprintln(w, "  strengths")
			bullet(w, rh.Strengths)
		}
		if len(rh.Weaknesses) > 0 {
			warnColor.Fprintln(w, "  weaknesses")
			bullet(w, rh.Weaknesses)
		}
	}
	headColor.Fprintln(w, "Suggestions")
	bullet(w, res.Suggestions)
	fmt.Fprintf(w, "confidence: %.2f\n", res.Confidence)
}

func printTally(w io.Writer, total, success, failed int) {
	fmt.Fprintf(w, "total %d, %s, %s\n", total,
		goodColor.Sprintf("%d ok", success), badColor.Sprintf("%d failed", failed))
}

func emotionColor(e classify.Emotion) *color.Color {
	switch e {
	case classify.Positive:
		return goodColor
	case classify.Negative:
		return badColor
	default:
		return warnColor
	}
}

func levelColor(l classify.HealthLevel) *color.Color {
	switch l {
	case classify.Excellent, classify.Good:
		return goodColor
	case classify.Fair:
		return warnColor
	default:
		return badColor
	}
}

// serviceError turns a pipeline error into its user-facing message
func serviceError(err error) error {
	return fmt.Errorf("%s: %s", service.KindOf(err), service.MessageOf(err))
}
