package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cliffscope/cliffscope/internal/benefits"
	"github.com/cliffscope/cliffscope/internal/calculation"
	"github.com/cliffscope/cliffscope/internal/compare"
	"github.com/cliffscope/cliffscope/internal/config"
	"github.com/cliffscope/cliffscope/internal/domain"
	"github.com/cliffscope/cliffscope/internal/output"
	"github.com/cliffscope/cliffscope/internal/radar"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	rulesFile    string
	formatFlag   string
	prettyOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cliffscope",
	Short: "Benefit cliff calculator CLI",
	Long:  "Computes federal tax liability, benefit program eligibility, and benefit-cliff comparisons for a household",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "cliffscope %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadRules resolves the rule dataset: the built-in 2024 tables unless the
// user supplies a YAML rules file.
func loadRules() (*domain.RuleSet, error) {
	if rulesFile == "" {
		return config.DefaultRules(), nil
	}
	return config.NewInputParser().LoadRules(rulesFile)
}

func render(v any, table func() string) error {
	switch formatFlag {
	case "json":
		out, err := (&output.JSONFormatter{Pretty: prettyOutput}).Format(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, out)
	case "table", "":
		fmt.Fprint(os.Stdout, table())
	default:
		return fmt.Errorf("unknown format %q (want table or json)", formatFlag)
	}
	return nil
}

var taxCmd = &cobra.Command{
	Use:   "tax [household-file]",
	Short: "Evaluate federal tax liability for a household",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules()
		if err != nil {
			return err
		}
		input, err := config.NewInputParser().LoadHousehold(args[0])
		if err != nil {
			return err
		}
		result, err := calculation.NewEngine(rules).EvaluateTax(cmd.Context(), input)
		if err != nil {
			return err
		}
		tf := &output.TableFormatter{}
		return render(result, func() string { return tf.FormatTaxResult(result) })
	},
}

var benefitsCmd = &cobra.Command{
	Use:   "benefits [household-file]",
	Short: "Evaluate benefit program eligibility for a household",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules()
		if err != nil {
			return err
		}
		input, err := config.NewInputParser().LoadHousehold(args[0])
		if err != nil {
			return err
		}
		programs, err := benefits.NewEvaluator(rules).Evaluate(cmd.Context(), input)
		if err != nil {
			return err
		}
		tf := &output.TableFormatter{}
		return render(programs, func() string { return tf.FormatPrograms(programs) })
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [current-file] [proposed-file]",
	Short: "Compare two household scenarios for a benefit cliff",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules()
		if err != nil {
			return err
		}
		parser := config.NewInputParser()
		current, err := parser.LoadHousehold(args[0])
		if err != nil {
			return err
		}
		proposed, err := parser.LoadHousehold(args[1])
		if err != nil {
			return err
		}
		cmp, err := compare.NewEngine(rules).Compare(cmd.Context(), current, proposed)
		if err != nil {
			return err
		}
		tf := &output.TableFormatter{}
		return render(cmp, func() string { return tf.FormatComparison(cmp) })
	},
}

// watchCmd replays a series of household revisions through the radar
// service and prints the change alerts each accepted evaluation produced.
func watchCmd(settings *config.Settings, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [household-file...]",
		Short: "Replay household revisions through the change radar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}
			responses := make(chan radar.Response, settings.AlertBuffer)
			svc := radar.NewService(rules, func(r radar.Response) { responses <- r },
				logger, radar.Options{
					Debounce: settings.DebounceWindow,
					Timeout:  settings.EvaluationTimeout,
				})

			parser := config.NewInputParser()
			sessionID := ""
			deadline := settings.DebounceWindow + settings.EvaluationTimeout + time.Second
			for _, path := range args {
				input, err := parser.LoadHousehold(path)
				if err != nil {
					return err
				}
				sessionID, err = svc.Update(sessionID, *input)
				if err != nil {
					return err
				}
				select {
				case resp := <-responses:
					fmt.Fprintf(os.Stdout, "revision %d (%s)\n", resp.Seq, path)
					if len(resp.Alerts) == 0 {
						fmt.Fprintln(os.Stdout, "  no material changes")
					}
					for _, a := range resp.Alerts {
						fmt.Fprintf(os.Stdout, "  [%s] %s\n", a.Kind, a.Message)
					}
				case <-time.After(deadline):
					svc.EndSession(sessionID)
					return fmt.Errorf("no evaluation result for %s within %s", path, deadline)
				}
			}
			svc.EndSession(sessionID)
			return nil
		},
	}
}

// buildLogger wires the runtime settings into a zap logger for anything
// that needs one (the radar service embeds it when run as a library).
func buildLogger(settings *config.Settings) *zap.Logger {
	level := zapcore.InfoLevel
	switch settings.LogLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}
	var cfg zap.Config
	if settings.LogFormat == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings error:", err)
		os.Exit(1)
	}
	logger := buildLogger(settings)
	defer func() { _ = logger.Sync() }()

	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML rule tables (default: built-in 2024 dataset)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVar(&prettyOutput, "pretty", false, "indent JSON output")
	rootCmd.AddCommand(taxCmd, benefitsCmd, compareCmd, watchCmd(settings, logger), versionCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
