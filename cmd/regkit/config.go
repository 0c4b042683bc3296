package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/regression"
)

// モデルの種類
const (
	modelLinear   = "linear"
	modelLogistic = "logistic"
)

// RunConfig は1回の推定と評価の設定。regkit run では YAML から読み込む。
type RunConfig struct {
	Model      string   `yaml:"model"`
	Data       string   `yaml:"data"`
	Response   string   `yaml:"response"`
	Predictors []string `yaml:"predictors"`

	// Predict は予測と区間推定を行う1行分の説明変数
	Predict []float64 `yaml:"predict"`
	Alpha   float64   `yaml:"alpha"`

	// 線形回帰のみ
	Diagnostics bool `yaml:"diagnostics"`

	// ロジスティック回帰のみ
	Threshold     float64 `yaml:"threshold"`
	TrainFraction float64 `yaml:"train_fraction"`
	Seed          int64   `yaml:"seed"`
	Split         string  `yaml:"split"`
	Metric        string  `yaml:"metric"`
	MaxIter       int     `yaml:"max_iter"`
	Tol           float64 `yaml:"tol"`

	// Plots が空でなければ図をこのディレクトリに png で保存する
	Plots string `yaml:"plots"`
}

// DefaultRunConfig はフラグと YAML の既定値を返す
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Alpha:         0.05,
		Diagnostics:   true,
		Threshold:     regression.AutoThreshold,
		TrainFraction: regression.DefaultTrainFraction,
		Seed:          -1,
		Split:         regression.SplitOnce.String(),
		Metric:        regression.MetricRates.String(),
	}
}

// LoadRunConfig は path の YAML を既定値の上に読み込み、検証する
func LoadRunConfig(path string) (RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return RunConfig{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate は設定値の範囲を確認する
func (c RunConfig) Validate() error {
	switch c.Model {
	case modelLinear, modelLogistic:
	default:
		return errors.NewValidationError("model", "must be linear or logistic", c.Model)
	}
	if c.Data == "" {
		return errors.NewValidationError("data", "path is required", c.Data)
	}
	if c.Response == "" {
		return errors.NewValidationError("response", "column name is required", c.Response)
	}
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return errors.NewValidationError("alpha", "must be in (0, 1)", c.Alpha)
	}
	if c.Model == modelLogistic {
		if c.Threshold != regression.AutoThreshold && !(c.Threshold >= 0 && c.Threshold <= 1) {
			return errors.NewValidationError("threshold", "must be in [0, 1] or -1", c.Threshold)
		}
		if !(c.TrainFraction > 0 && c.TrainFraction < 1) {
			return errors.NewValidationError("train_fraction", "must be in (0, 1)", c.TrainFraction)
		}
		if _, err := regression.ParseSplitPolicy(c.Split); err != nil {
			return err
		}
		if _, err := regression.ParseCurveMetric(c.Metric); err != nil {
			return err
		}
	}
	return nil
}
