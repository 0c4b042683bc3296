package regression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/dataset"
	"github.com/YuminosukeSato/regkit/metrics"
	"github.com/YuminosukeSato/regkit/pkg/log"
)

// RegressionScores は線形回帰の予測誤差
type RegressionScores struct {
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
}

// Evaluate は学習済みモデルで data を予測し、予測誤差を返す。
// data の説明変数は学習時と同じ列数でなければならない。
func (lr *LinearRegressor) Evaluate(data *dataset.Dataset) (*RegressionScores, error) {
	if err := lr.RequireFitted(lr.name, "Evaluate"); err != nil {
		return nil, err
	}
	if data == nil || data.Len() == 0 {
		return nil, errEmpty(lr.name + ".Evaluate")
	}
	pred, err := lr.Predict(data.X())
	if err != nil {
		return nil, err
	}

	yTrue := mat.NewVecDense(data.Len(), data.Y())
	yPred := mat.NewVecDense(len(pred), pred)

	var s RegressionScores
	if s.MSE, err = metrics.MSE(yTrue, yPred); err != nil {
		return nil, err
	}
	if s.RMSE, err = metrics.RMSE(yTrue, yPred); err != nil {
		return nil, err
	}
	if s.MAE, err = metrics.MAE(yTrue, yPred); err != nil {
		return nil, err
	}
	if s.R2, err = metrics.R2Score(yTrue, yPred); err != nil {
		return nil, err
	}

	lr.logger.Info("model evaluated",
		log.OperationKey, log.OperationEvaluate,
		log.SamplesKey, data.Len(),
		log.RMSEKey, s.RMSE,
		log.R2ScoreKey, s.R2)
	return &s, nil
}

// HoldoutScores はテストデータに対する分類性能
type HoldoutScores struct {
	Threshold float64
	Accuracy  float64
	LogLoss   float64
	// RankAUC は順位（Mann-Whitney U）から求めた AUC。閾値グリッドに依存しない
	RankAUC float64
}

// Scores は threshold で二値化した正解率と、確率そのものに対する
// 交差エントロピーと順位 AUC を計算する
func (h *Holdout) Scores(threshold float64) (*HoldoutScores, error) {
	if h == nil || len(h.Y) == 0 {
		return nil, errEmpty("Holdout.Scores")
	}
	yTrue := mat.NewVecDense(len(h.Y), h.Y)
	prob := mat.NewVecDense(len(h.Prob), h.Prob)
	labels := mat.NewVecDense(len(h.Prob), metrics.Binarize(h.Prob, threshold))

	s := HoldoutScores{Threshold: threshold}
	var err error
	if s.Accuracy, err = metrics.Accuracy(yTrue, labels); err != nil {
		return nil, err
	}
	if s.LogLoss, err = metrics.BinaryLogLoss(yTrue, prob); err != nil {
		return nil, err
	}
	if s.RankAUC, err = metrics.AUC(yTrue, prob); err != nil {
		return nil, err
	}
	return &s, nil
}
