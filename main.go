package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sansecio/dicego/config"
	"github.com/sansecio/dicego/dice"
	"github.com/sansecio/dicego/format"
	"github.com/sansecio/dicego/roll"
)

var (
	configPath string
	formatName string
	maxDice    int
	seed       uint64
	render     bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dicego [expression...]",
	Short: "Roll dice notation such as 4d6kh3 or {1d20+5,1d20+5}kh",
	Long: `dicego evaluates dice expressions and prints the result with a trace of
every die rolled.

Arguments are joined into a single expression. Without arguments one
expression is read per line from standard input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("format") {
			cfg.Format = formatName
		}
		if flags.Changed("max-dice") {
			cfg.MaxDice = maxDice
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if verbose || cfg.Debug {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		a.out = cmd.OutOrStdout()
		a.errOut = cmd.ErrOrStderr()

		if len(args) > 0 {
			return a.rollOne(strings.Join(args, " "))
		}
		return a.rollLines(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "markdown", "Trace format: plain, markdown or ansi")
	rootCmd.PersistentFlags().IntVar(&maxDice, "max-dice", 1000, "Maximum dice per expression (0 for unlimited)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for reproducible rolls (0 for random)")
	rootCmd.PersistentFlags().BoolVar(&render, "render", false, "Render markdown output for the terminal")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	roller   *dice.Roller
	markdown bool
	renderer *glamour.TermRenderer
	maxLen   int
	out      io.Writer
	errOut   io.Writer
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	f, err := format.ByName(cfg.Format)
	if err != nil {
		return nil, err
	}

	var src roll.Source
	if cfg.Seed != 0 {
		src = roll.NewSeeded(cfg.Seed)
	} else if src, err = roll.NewSource(); err != nil {
		return nil, err
	}

	a := &app{
		roller: &dice.Roller{
			MaxDice:   cfg.MaxDice,
			Formatter: f,
			Source:    src,
			Logger:    logger,
		},
		markdown: isMarkdown(f),
		maxLen:   cfg.MaxMessageLength,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	if render && a.markdown {
		a.renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
	}
	return a, nil
}

func isMarkdown(f any) bool {
	_, ok := f.(format.Markdown)
	return ok
}

func (a *app) rollOne(input string) error {
	res, err := a.roller.Roll(input)
	if err != nil {
		return err
	}
	return a.print(res)
}

// rollLines rolls one expression per non-blank line. Failed lines are
// reported and skipped.
func (a *app) rollLines(r io.Reader) error {
	red := color.New(color.FgRed)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := a.rollOne(line); err != nil {
			red.Fprintln(a.errOut, err)
		}
	}
	return scanner.Err()
}

func (a *app) print(res *dice.Result) error {
	var msg string
	if a.markdown {
		msg = dice.Report(res)
	} else {
		msg = res.Input + " = " + dice.Describe(res.Number)
		if res.Number.Text != "" {
			msg += "\n  " + res.Number.Text
		}
	}
	msg = dice.Truncate(msg, a.maxLen)

	if a.renderer != nil {
		out, err := a.renderer.Render(msg)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		_, err = fmt.Fprint(a.out, out)
		return err
	}
	_, err := fmt.Fprintln(a.out, msg)
	return err
}
