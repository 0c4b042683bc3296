// Command regkit fits linear and logistic regressions on CSV data and
// reports coefficients, intervals, residual diagnostics and ROC/AUC.
//
//	regkit linear --data ads.csv --response sales --predict 6
//	regkit logistic --data admit.csv --response admit --seed 1 --plots out/
//	regkit run --config run.yaml
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/pkg/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run は引数 args でコマンドを実行する。ログファイルは終了時に閉じる
func run(args []string, stdout, stderr io.Writer) error {
	g := &globalOptions{}
	defer g.close()

	root := newRootCmd(g)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

type globalOptions struct {
	logLevel  string
	logFormat string
	logFile   string

	closer io.Closer
}

func (g *globalOptions) close() {
	if g.closer != nil {
		_ = g.closer.Close()
		g.closer = nil
	}
}

// setupLogging はログの出力先と形式を設定する。
// json は slog の JSON ハンドラ、console は zerolog の ConsoleWriter を使う。
func (g *globalOptions) setupLogging(stderr io.Writer) error {
	var w io.Writer = stderr
	if g.logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   g.logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		g.closer = lj
		w = lj
	}

	switch g.logFormat {
	case "json":
		if err := log.SetupLogger(w, g.logLevel, "json"); err != nil {
			return err
		}
		logger := log.NewSlogLogger(nil)
		log.SetLogger(logger)
		errors.SetZerologWarnFunc(nil)
		errors.SetWarningHandler(func(warning error) {
			logger.Warn("warning", log.ErrAttrKey, warning)
		})
	case "console":
		level, err := zerolog.ParseLevel(g.logLevel)
		if err != nil {
			return errors.NewValidationError("log-level", err.Error(), g.logLevel)
		}
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: g.logFile != ""}).
			Level(level).
			With().Timestamp().Logger()
		log.SetLogger(log.NewZerologLogger(zl))
		log.EnableZerologWarnings(zl)
	default:
		return errors.NewValidationError("log-format", "must be json or console", g.logFormat)
	}
	return nil
}

func newRootCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "regkit",
		Short:         "Linear and logistic regression with diagnostics and ROC evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setupLogging(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&g.logFormat, "log-format", "console", "log format (json or console)")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file, rotated by size")

	cmd.AddCommand(newLinearCmd(), newLogisticCmd(), newRunCmd())
	return cmd
}

// addDataFlags は両モデル共通のフラグを登録する
func addDataFlags(cmd *cobra.Command, cfg *RunConfig) {
	f := cmd.Flags()
	f.StringVar(&cfg.Data, "data", "", "CSV file with a header row (required)")
	f.StringVar(&cfg.Response, "response", "", "response column (required)")
	f.StringSliceVar(&cfg.Predictors, "predictors", nil, "predictor columns (default: all other columns)")
	f.Float64SliceVar(&cfg.Predict, "predict", nil, "predictor values of one observation to predict")
	f.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "significance level of the intervals")
	f.StringVar(&cfg.Plots, "plots", "", "directory to write plots to")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("response")
}

func newLinearCmd() *cobra.Command {
	cfg := DefaultRunConfig()
	cfg.Model = modelLinear

	cmd := &cobra.Command{
		Use:   "linear",
		Short: "Fit ordinary least squares and run residual diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cfg, cmd.OutOrStdout())
		},
	}
	addDataFlags(cmd, &cfg)
	cmd.Flags().BoolVar(&cfg.Diagnostics, "diagnostics", cfg.Diagnostics, "run Breusch-Pagan and Shapiro-Wilk tests")
	return cmd
}

func newLogisticCmd() *cobra.Command {
	cfg := DefaultRunConfig()
	cfg.Model = modelLogistic

	cmd := &cobra.Command{
		Use:   "logistic",
		Short: "Fit a logit model and evaluate it on a random holdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cfg, cmd.OutOrStdout())
		},
	}
	addDataFlags(cmd, &cfg)
	f := cmd.Flags()
	f.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "probability cutoff, -1 searches the Youden-optimal one")
	f.Float64Var(&cfg.TrainFraction, "train-fraction", cfg.TrainFraction, "fraction of observations used for training")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for the split, negative for a random one")
	f.StringVar(&cfg.Split, "split", cfg.Split, "split policy for ROC sweeps (once or per-threshold)")
	f.StringVar(&cfg.Metric, "metric", cfg.Metric, "ROC axes (rates or counts)")
	f.IntVar(&cfg.MaxIter, "max-iter", 0, "Newton iteration limit (0 uses the default)")
	f.Float64Var(&cfg.Tol, "tol", 0, "gradient tolerance (0 uses the default)")
	return cmd
}

func newRunCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fit described by a YAML config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadRunConfig(path)
			if err != nil {
				return err
			}
			return execute(cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "YAML run config (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
