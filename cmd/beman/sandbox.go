package main

import (
	"bemanai/internal/model"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newScenariosCmd(opts *globalOptions) *cobra.Command {
	var category, difficulty string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List communication practice scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			list, err := a.Sandbox.Scenarios(category, difficulty)
			if err != nil {
				return serviceError(err)
			}
			return opts.render(cmd.OutOrStdout(), list, func(w io.Writer) {
				headColor.Fprintf(w, "%s\n", list.Category)
				dimColor.Fprintf(w, "%s\n", list.Description)
				for _, sc := range list.Scenarios {
					fmt.Fprintf(w, "  %s  %-6s  %s\n", sc.ID, sc.Difficulty, sc.Title)
				}
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category key (default: every category)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "difficulty (easy|medium|hard)")
	return cmd
}

func newSkillCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "skill [skill...]",
		Short: "Show tips and exercises for communication skills",
		Long:  `Skill prints the practice card for each named skill. With no skill it lists the skills.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			switch len(args) {
			case 0:
				skills := a.Sandbox.Skills()
				return opts.render(cmd.OutOrStdout(), skills, func(w io.Writer) {
					for _, sk := range skills {
						fmt.Fprintf(w, "  %-26s %d tips, %d exercises\n", sk.Key, sk.TipCount, sk.Exercises)
					}
				})
			case 1:
				practice, err := a.Sandbox.PracticeSkill(args[0])
				if err != nil {
					return serviceError(err)
				}
				return opts.render(cmd.OutOrStdout(), practice, func(w io.Writer) { printSkill(w, practice) })
			default:
				batch, err := a.Sandbox.PracticeSkills(cmd.Context(), args)
				if err != nil {
					return serviceError(err)
				}
				return opts.render(cmd.OutOrStdout(), batch, func(w io.Writer) {
					for i := range batch.Results {
						p := &batch.Results[i]
						if !p.Success {
							badColor.Fprintf(w, "%s: %s\n", p.SkillType, p.Message)
							continue
						}
						printSkill(w, p)
					}
					printTally(w, batch.TotalCount, batch.SuccessCount, batch.FailedCount)
				})
			}
		},
	}
}

func newConflictCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "conflict [escalation|resolution|all]",
		Short: "Show the conflict handling guide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}
			guide, err := a.Sandbox.ConflictGuide(kind)
			if err != nil {
				return serviceError(err)
			}
			return opts.render(cmd.OutOrStdout(), guide, func(w io.Writer) {
				if e := guide.Escalation; e != nil {
					warnColor.Fprintln(w, "Warning signs")
					bullet(w, e.WarningSigns)
					headColor.Fprintln(w, "Immediate actions")
					bullet(w, e.ImmediateActions)
				}
				if r := guide.Resolution; r != nil {
					headColor.Fprintln(w, "Resolution steps")
					for i, step := range r.StepByStepProcess {
						fmt.Fprintf(w, "  %d. %s\n", i+1, step)
					}
				}
				if len(guide.GeneralTips) > 0 {
					headColor.Fprintln(w, "Tips")
					bullet(w, guide.GeneralTips)
				}
			})
		},
	}
}

func newTemplateCmd(opts *globalOptions) *cobra.Command {
	var situation, emotion string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Suggest sentence templates for a situation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			tpl := a.Sandbox.DialogueTemplate(situation, emotion)
			return opts.render(cmd.OutOrStdout(), tpl, func(w io.Writer) {
				t := tpl.Templates
				fmt.Fprintf(w, "%s %s\n", headColor.Sprint("opening:      "), t.Opening)
				fmt.Fprintf(w, "%s %s\n", headColor.Sprint("feeling:      "), t.FeelingExpression)
				fmt.Fprintf(w, "%s %s\n", headColor.Sprint("understanding:"), t.Understanding)
				fmt.Fprintf(w, "%s %s\n", headColor.Sprint("resolution:   "), t.Resolution)
				dimColor.Fprintln(w, "Tips")
				bullet(w, tpl.UsageTips)
			})
		},
	}
	cmd.Flags().StringVar(&situation, "situation", "", "situation in a few words")
	cmd.Flags().StringVar(&emotion, "emotion", "", "how you feel")
	return cmd
}

func printSkill(w io.Writer, p *model.SkillPractice) {
	headColor.Fprintln(w, p.SkillType)
	bullet(w, p.Tips)
	goodColor.Fprintln(w, "  exercises")
	for i, ex := range p.PracticeExercises {
		fmt.Fprintf(w, "  %d. %s\n", i+1, ex)
	}
	dimColor.Fprintf(w, "  %s\n", p.DailyGoal)
}
