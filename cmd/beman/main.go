package main

import (
	"bemanai/internal/app"
	"bemanai/internal/config"
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	headColor = color.New(color.FgCyan, color.Bold)
	goodColor = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	badColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configFile string
	format     string
	colorMode  string
	tokenizer  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "beman",
		Short: "Relationship emotion analysis toolkit",
		Long: `beman analyzes the emotion of Chinese texts, decodes relationship health
and offers communication practice from the terminal. It also serves the
bemanai HTTP API and MCP tools.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.apply()
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().StringVar(&opts.format, "format", "pretty", "output format (pretty|json)")
	root.PersistentFlags().StringVar(&opts.colorMode, "color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().StringVar(&opts.tokenizer, "tokenizer", "", "tokenizer mode, overrides the config (lexical|lexical+gse|gse)")

	// Add commands
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMCPCmd(opts))
	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newBatchCmd(opts))
	root.AddCommand(newDecodeCmd(opts))
	root.AddCommand(newScenariosCmd(opts))
	root.AddCommand(newSkillCmd(opts))
	root.AddCommand(newConflictCmd(opts))
	root.AddCommand(newTemplateCmd(opts))
	root.AddCommand(newModerateCmd(opts))
	root.AddCommand(newChatCmd(opts))
	root.AddCommand(newCatalogCmd(opts))
	root.AddCommand(newTokenCmd(opts))

	return root
}

func (o *globalOptions) apply() error {
	switch o.format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format %q (want pretty or json)", o.format)
	}
	switch o.colorMode {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unknown color mode %q (want auto, on or off)", o.colorMode)
	}
	return nil
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.tokenizer != "" {
		cfg.Tokenizer = o.tokenizer
	}
	return cfg, nil
}

// loadApp builds the services. Offline apps skip Redis and MongoDB even
// when they are configured.
func (o *globalOptions) loadApp(ctx context.Context, offline bool) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if offline {
		cfg.RedisURI = ""
		cfg.MongoURI = ""
	}
	return app.New(ctx, cfg)
}

// render writes v as indented JSON, or through pretty in pretty mode
func (o *globalOptions) render(w io.Writer, v any, pretty func(w io.Writer)) error {
	if o.format == "json" || pretty == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	pretty(w)
	return nil
}

// inputText joins the arguments, or reads stdin when there are none or
// the only one is "-"
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}

// readLines returns the non-blank lines of r
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

func bullet(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
