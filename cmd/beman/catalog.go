package main

import (
	"bemanai/internal/catalog"
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the lexicon and content catalog",
	}

	var as string
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the active catalog",
		Long:  `Dump prints the configured catalog, or the embedded one, in YAML, TOML or JSON. The output can be edited and loaded back with catalog_path.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return err
			}
			return catalog.Dump(cmd.OutOrStdout(), cat, as)
		},
	}
	dump.Flags().StringVar(&as, "as", catalog.FormatYAML, "output format (yaml|toml|json)")

	validate := &cobra.Command{
		Use:   "validate file",
		Short: "Check that a catalog file loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			skills, scenarios := len(cat.Sandbox.Skills), 0
			for _, c := range cat.Sandbox.Categories {
				scenarios += len(c.Scenarios)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d scenarios, %d skills\n",
				goodColor.Sprint("ok"), args[0], scenarios, skills)
			return nil
		},
	}

	cmd.AddCommand(dump, validate)
	return cmd
}
