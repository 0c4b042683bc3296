package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// logLossEps は log(0) を避けるための確率のクリップ幅
const logLossEps = 1e-15

// AUC は順位に基づく ROC 曲線下面積（Mann-Whitney U / (n_pos * n_neg)）を計算する。
// 同順位は0.5として数える。陽性か陰性しか無い場合は0.5を返す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := checkPair("AUC", yTrue, yPred); err != nil {
		return 0, err
	}
	y := mat.Col(nil, 0, yTrue)
	score := mat.Col(nil, 0, yPred)
	if err := checkBinary("AUC", y); err != nil {
		return 0, err
	}

	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return score[idx[a]] < score[idx[b]] })

	// 同順位は平均順位
	ranks := make([]float64, len(y))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && score[idx[j+1]] == score[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}

	var nPos, nNeg, rankSum float64
	for i, v := range y {
		if v == 1 {
			nPos++
			rankSum += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in y_true", 0.5))
		return 0.5, nil
	}
	return (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg), nil
}

// BinaryLogLoss は二値交差エントロピーを計算する。確率は [eps, 1-eps] にクリップする
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	y := mat.Col(nil, 0, yTrue)
	if err := checkBinary("BinaryLogLoss", y); err != nil {
		return 0, err
	}

	var sum float64
	for i, v := range y {
		p := errors.ClipValue(yPred.AtVec(i), logLossEps, 1-logLossEps)
		sum -= v*math.Log(p) + (1-v)*math.Log(1-p)
	}
	return sum / float64(n), nil
}

// Accuracy は一致したラベルの割合を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var hit int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			hit++
		}
	}
	return float64(hit) / float64(n), nil
}
