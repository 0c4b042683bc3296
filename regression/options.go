package regression

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/pkg/log"
	"github.com/YuminosukeSato/regkit/plotting"
	"github.com/YuminosukeSato/regkit/stats"
)

// SplitPolicy は閾値探索や ROC で学習/テスト分割をどう共有するか
type SplitPolicy int

const (
	// SplitOnce は1回の探索・スイープで1つの分割を全閾値に共有する
	SplitOnce SplitPolicy = iota
	// SplitPerThreshold は閾値を評価するたびに新しい分割で学習し直す。
	// ROC スイープでは各軸ごとに1回ずつ、閾値あたり2回学習する。
	SplitPerThreshold
)

func (p SplitPolicy) String() string {
	switch p {
	case SplitOnce:
		return "once"
	case SplitPerThreshold:
		return "per-threshold"
	default:
		return fmt.Sprintf("SplitPolicy(%d)", int(p))
	}
}

// ParseSplitPolicy は "once" / "per-threshold" を解釈する
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return SplitOnce, nil
	case "per-threshold", "per_threshold":
		return SplitPerThreshold, nil
	}
	return 0, errors.NewValidationError("split", "must be once or per-threshold", s)
}

// CurveMetric は ROC 曲線の軸に使う量
type CurveMetric int

const (
	// MetricRates は感度 TP/(TP+FN) と特異度 TN/(TN+FP) を使う
	MetricRates CurveMetric = iota
	// MetricCounts は TP と TN の件数をそのまま感度・特異度として使う
	MetricCounts
)

func (m CurveMetric) String() string {
	switch m {
	case MetricRates:
		return "rates"
	case MetricCounts:
		return "counts"
	default:
		return fmt.Sprintf("CurveMetric(%d)", int(m))
	}
}

// ParseCurveMetric は "rates" / "counts" を解釈する
func ParseCurveMetric(s string) (CurveMetric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rates":
		return MetricRates, nil
	case "counts":
		return MetricCounts, nil
	}
	return 0, errors.NewValidationError("metric", "must be rates or counts", s)
}

type config struct {
	logger      log.Logger
	renderer    plotting.Renderer
	randomState int64
	logit       stats.LogitSettings
	splitPolicy SplitPolicy
	curveMetric CurveMetric
}

func defaultConfig() config {
	return config{
		renderer:    plotting.Discard,
		randomState: -1,
		logit: stats.LogitSettings{
			MaxIter: stats.DefaultLogitMaxIter,
			Tol:     stats.DefaultLogitTol,
		},
		splitPolicy: SplitOnce,
		curveMetric: MetricRates,
	}
}

func (c config) newRand() *rand.Rand {
	if c.randomState >= 0 {
		return rand.New(rand.NewSource(c.randomState))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// Option は回帰モデルの設定を変更する
type Option func(*config)

// WithLogger sets the logger. nil keeps the package logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRenderer sets where plots go. nil discards them.
func WithRenderer(r plotting.Renderer) Option {
	return func(c *config) {
		if r == nil {
			r = plotting.Discard
		}
		c.renderer = r
	}
}

// WithRandomState sets the seed for train/test splits. Negative means random.
func WithRandomState(seed int64) Option {
	return func(c *config) {
		c.randomState = seed
	}
}

// WithMaxIter sets the Newton iteration limit of the logistic fit
func WithMaxIter(maxIter int) Option {
	return func(c *config) {
		c.logit.MaxIter = maxIter
	}
}

// WithTol sets the gradient tolerance of the logistic fit
func WithTol(tol float64) Option {
	return func(c *config) {
		c.logit.Tol = tol
	}
}

// WithSplitPolicy sets how threshold evaluations share train/test splits
func WithSplitPolicy(p SplitPolicy) Option {
	return func(c *config) {
		c.splitPolicy = p
	}
}

// WithCurveMetric sets the quantity on the ROC axes
func WithCurveMetric(m CurveMetric) Option {
	return func(c *config) {
		c.curveMetric = m
	}
}
