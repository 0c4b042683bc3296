package metrics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// Quality はAUCによるモデルの評価区分
type Quality string

const (
	QualityFailed    Quality = "failed"
	QualityPoor      Quality = "poor"
	QualityFair      Quality = "fair"
	QualityGood      Quality = "good"
	QualityExcellent Quality = "excellent"
)

// ClassifyAUC は AUC を区分する:
// <=0.6 failed, (0.6,0.7] poor, (0.7,0.8] fair, (0.8,0.9] good, >0.9 excellent
func ClassifyAUC(auc float64) Quality {
	switch {
	case auc <= 0.6:
		return QualityFailed
	case auc <= 0.7:
		return QualityPoor
	case auc <= 0.8:
		return QualityFair
	case auc <= 0.9:
		return QualityGood
	default:
		return QualityExcellent
	}
}

// TrapezoidAUC は点列 (x, y) の下の面積を台形則で求める。
// x は単調（増加でも減少でも可）でなければならない。
func TrapezoidAUC(x, y []float64) (float64, error) {
	const op = "TrapezoidAUC"

	if len(x) != len(y) {
		return 0, errors.NewDimensionError(op, len(x), len(y), 0)
	}
	if len(x) < 2 {
		return 0, errors.NewValueError(op, fmt.Sprintf("at least 2 points are needed to compute area under curve, got %d", len(x)))
	}

	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	if !sort.Float64sAreSorted(xs) {
		reverse(xs)
		reverse(ys)
		if !sort.Float64sAreSorted(xs) {
			return 0, errors.NewValueError(op, "x is neither increasing nor decreasing")
		}
	}
	return integrate.Trapezoidal(xs, ys), nil
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
