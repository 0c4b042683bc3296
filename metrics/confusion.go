package metrics

import (
	"fmt"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// ConfusionMatrix は2x2の混同行列。
// 行は予測 {陽性, 陰性}、列は実際 {陽性, 陰性}: [[TP, FP], [FN, TN]]
type ConfusionMatrix [2][2]int

// TP は真陽性の数
func (m ConfusionMatrix) TP() int { return m[0][0] }

// FP は偽陽性の数
func (m ConfusionMatrix) FP() int { return m[0][1] }

// FN は偽陰性の数
func (m ConfusionMatrix) FN() int { return m[1][0] }

// TN は真陰性の数
func (m ConfusionMatrix) TN() int { return m[1][1] }

// Total は観測数の合計
func (m ConfusionMatrix) Total() int {
	return m[0][0] + m[0][1] + m[1][0] + m[1][1]
}

// Sensitivity は TP/(TP+FN)。実際の陽性が無い場合は0を返し UndefinedMetricWarning を出す
func (m ConfusionMatrix) Sensitivity() float64 {
	pos := m.TP() + m.FN()
	if pos == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("sensitivity", "no positive samples in y_true", 0))
		return 0
	}
	return float64(m.TP()) / float64(pos)
}

// Specificity は TN/(TN+FP)。実際の陰性が無い場合は0を返し UndefinedMetricWarning を出す
func (m ConfusionMatrix) Specificity() float64 {
	neg := m.TN() + m.FP()
	if neg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("specificity", "no negative samples in y_true", 0))
		return 0
	}
	return float64(m.TN()) / float64(neg)
}

// Youden は sensitivity + specificity - 1
func (m ConfusionMatrix) Youden() float64 {
	return m.Sensitivity() + m.Specificity() - 1
}

// Accuracy は (TP+TN)/Total
func (m ConfusionMatrix) Accuracy() float64 {
	if m.Total() == 0 {
		return 0
	}
	return float64(m.TP()+m.TN()) / float64(m.Total())
}

func (m ConfusionMatrix) String() string {
	return fmt.Sprintf("[[%d %d] [%d %d]]", m[0][0], m[0][1], m[1][0], m[1][1])
}

// Binarize は prob >= threshold を1、それ以外を0とする
func Binarize(prob []float64, threshold float64) []float64 {
	out := make([]float64, len(prob))
	for i, p := range prob {
		if p >= threshold {
			out[i] = 1
		}
	}
	return out
}

// NewConfusionMatrix は 0/1 の正解 yTrue と陽性確率 prob から、
// threshold で二値化した混同行列を作る
func NewConfusionMatrix(yTrue, prob []float64, threshold float64) (ConfusionMatrix, error) {
	var m ConfusionMatrix
	if len(yTrue) != len(prob) {
		return m, errors.NewDimensionError("NewConfusionMatrix", len(yTrue), len(prob), 0)
	}
	if err := checkBinary("NewConfusionMatrix", yTrue); err != nil {
		return m, err
	}

	for i, p := range prob {
		predicted := 1
		if p >= threshold {
			predicted = 0
		}
		actual := 1
		if yTrue[i] == 1 {
			actual = 0
		}
		m[predicted][actual]++
	}
	return m, nil
}

func checkBinary(op string, y []float64) error {
	for i, v := range y {
		if v != 0 && v != 1 {
			return errors.NewValueError(op, fmt.Sprintf("labels must be 0 or 1, got %v at index %d", v, i))
		}
	}
	return nil
}
