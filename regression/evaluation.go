package regression

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/regkit/metrics"
	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/pkg/log"
	"github.com/YuminosukeSato/regkit/plotting"
)

const (
	// AutoThreshold は ConfusionMatrix で Youden 指数が最大の閾値を探すことを示す
	AutoThreshold = -1.0

	// DefaultTrainFraction は学習用に使う観測の割合の既定値
	DefaultTrainFraction = 0.8

	// 閾値グリッドの点数（[0, 1] の等間隔）
	gridSize = 100
)

// Holdout は学習用データで推定したモデルのテストデータに対する予測
type Holdout struct {
	// Y はテストデータの真の応答
	Y []float64
	// Prob はテストデータの予測陽性確率
	Prob []float64
	// TrainSize は学習に使った観測数
	TrainSize int
}

// ThresholdResult は閾値探索の結果
type ThresholdResult struct {
	Threshold float64
	Youden    float64
	Matrix    metrics.ConfusionMatrix
	// Holdout は閾値探索に使ったテストデータの予測
	Holdout *Holdout
}

// ROCCurve は閾値グリッド上の ROC 曲線。
// FPR は 1-特異度、TPR は感度（MetricCounts では件数から計算した値）。
type ROCCurve struct {
	Thresholds []float64
	FPR        []float64
	TPR        []float64
	AUC        float64
	Quality    metrics.Quality
}

// ThresholdGrid は [0, 1] を等間隔に分けた100個の閾値を返す
func ThresholdGrid() []float64 {
	return floats.Span(make([]float64, gridSize), 0, 1)
}

// Train は観測を非復元抽出で学習用（割合 k）とテスト用に分け、
// 学習用データで新しく Logit を推定してテストデータの予測確率を返す。
// Fit の状態には依存しない。
func (lr *LogisticRegressor) Train(k float64) (*Holdout, error) {
	if err := lr.checkData("Train"); err != nil {
		return nil, err
	}

	train, test, err := lr.data.Split(k, lr.rng)
	if err != nil {
		lr.logger.Error("train/test split failed",
			log.OperationKey, log.OperationTrain,
			log.DataKindKey, lr.data.Kind().String(),
			log.ErrAttrKey, err)
		return nil, err
	}

	res, err := lr.fitLogit(train)
	if err != nil {
		return nil, err
	}
	prob, err := res.Predict(test.Design())
	if err != nil {
		return nil, err
	}

	lr.logger.Debug("holdout trained",
		log.OperationKey, log.OperationTrain,
		log.DataKindKey, lr.data.Kind().String(),
		log.TrainSamplesKey, train.Len(),
		log.TestSamplesKey, test.Len())
	return &Holdout{Y: test.Y(), Prob: prob, TrainSize: train.Len()}, nil
}

// bestThreshold はグリッド上で Youden 指数が真に最大となる最初の閾値を返す。
// どの閾値でも Youden 指数が正にならなければ最初の閾値（0）の結果を返す。
func bestThreshold(h *Holdout, grid []float64) (ThresholdResult, error) {
	var first, best ThresholdResult
	found := false
	for i, th := range grid {
		m, err := metrics.NewConfusionMatrix(h.Y, h.Prob, th)
		if err != nil {
			return ThresholdResult{}, err
		}
		j := m.Youden()
		if i == 0 {
			first = ThresholdResult{Threshold: th, Youden: j, Matrix: m}
		}
		if j > best.Youden {
			best = ThresholdResult{Threshold: th, Youden: j, Matrix: m}
			found = true
		}
	}
	if !found {
		return first, nil
	}
	return best, nil
}

// OptimalThreshold は Train(k) の1つの分割について Youden 指数
// （感度 + 特異度 - 1）が最大となる閾値とその混同行列を返す。
func (lr *LogisticRegressor) OptimalThreshold(k float64) (*ThresholdResult, error) {
	h, err := lr.Train(k)
	if err != nil {
		return nil, err
	}
	res, err := bestThreshold(h, ThresholdGrid())
	if err != nil {
		return nil, err
	}
	res.Holdout = h
	lr.logger.Info("optimal threshold",
		log.OperationKey, log.OperationConfusion,
		log.ThresholdKey, res.Threshold,
		log.YoudenKey, res.Youden,
		log.TestSamplesKey, len(h.Y))
	return &res, nil
}

// ConfusionMatrix は Train(k) の予測を閾値 p で2値化した混同行列
// [[TP, FP], [FN, TN]] を返す（確率 >= p を陽性とする）。
// p が AutoThreshold なら OptimalThreshold の閾値を使う。
func (lr *LogisticRegressor) ConfusionMatrix(p, k float64) (metrics.ConfusionMatrix, error) {
	if p == AutoThreshold {
		res, err := lr.OptimalThreshold(k)
		if err != nil {
			return metrics.ConfusionMatrix{}, err
		}
		return res.Matrix, nil
	}
	if !(p >= 0 && p <= 1) {
		return metrics.ConfusionMatrix{}, errors.NewValidationError("p", "threshold must be in [0, 1] or AutoThreshold", p)
	}

	h, err := lr.Train(k)
	if err != nil {
		return metrics.ConfusionMatrix{}, err
	}
	m, err := metrics.NewConfusionMatrix(h.Y, h.Prob, p)
	if err != nil {
		return metrics.ConfusionMatrix{}, err
	}
	lr.logger.Debug("confusion matrix",
		log.OperationKey, log.OperationConfusion,
		log.ThresholdKey, p,
		"matrix", m.String())
	return m, nil
}

// axes は混同行列から (感度, 特異度) を CurveMetric に従って取り出す
func (lr *LogisticRegressor) axes(sensM, specM metrics.ConfusionMatrix) (sens, spec float64) {
	if lr.cfg.curveMetric == MetricCounts {
		return float64(sensM.TP()), float64(specM.TN())
	}
	return sensM.Sensitivity(), specM.Specificity()
}

// ROCCurve は閾値グリッド上の (1-特異度, 感度) を求め、台形則で AUC を計算する。
//
// SplitOnce では1つの分割を全閾値で共有する。SplitPerThreshold では
// 感度と特異度のそれぞれについて閾値ごとに学習し直すため、点は分割ごとに
// ばらつく。積分の前に (FPR, TPR, 閾値) の組を FPR の昇順に並べ替える。
func (lr *LogisticRegressor) ROCCurve(k float64) (*ROCCurve, error) {
	grid := ThresholdGrid()
	curve := &ROCCurve{
		Thresholds: grid,
		FPR:        make([]float64, len(grid)),
		TPR:        make([]float64, len(grid)),
	}

	var shared *Holdout
	if lr.cfg.splitPolicy == SplitOnce {
		h, err := lr.Train(k)
		if err != nil {
			return nil, err
		}
		shared = h
	}
	matrixAt := func(th float64) (metrics.ConfusionMatrix, error) {
		h := shared
		if h == nil {
			var err error
			if h, err = lr.Train(k); err != nil {
				return metrics.ConfusionMatrix{}, err
			}
		}
		return metrics.NewConfusionMatrix(h.Y, h.Prob, th)
	}

	for i, th := range grid {
		sensM, err := matrixAt(th)
		if err != nil {
			return nil, err
		}
		specM := sensM
		if shared == nil {
			if specM, err = matrixAt(th); err != nil {
				return nil, err
			}
		}
		sens, spec := lr.axes(sensM, specM)
		curve.TPR[i] = sens
		curve.FPR[i] = 1 - spec
	}

	if shared == nil {
		sortByFPR(curve)
	}

	auc, err := metrics.TrapezoidAUC(curve.FPR, curve.TPR)
	if err != nil {
		return nil, err
	}
	curve.AUC = auc
	curve.Quality = metrics.ClassifyAUC(auc)
	return curve, nil
}

// sortByFPR は曲線の点を組のまま FPR の昇順に並べ替える
func sortByFPR(curve *ROCCurve) {
	idx := make([]int, len(curve.FPR))
	floats.ArgsortStable(curve.FPR, idx)
	tpr := make([]float64, len(idx))
	th := make([]float64, len(idx))
	for i, j := range idx {
		tpr[i] = curve.TPR[j]
		th[i] = curve.Thresholds[j]
	}
	curve.TPR, curve.Thresholds = tpr, th
}

// ROC は ROCCurve を計算して曲線を描き、AUC によるモデルの品質を記録して AUC を返す。
// 品質: <=0.6 failed, (0.6,0.7] poor, (0.7,0.8] fair, (0.8,0.9] good, >0.9 excellent
func (lr *LogisticRegressor) ROC(k float64) (float64, error) {
	start := time.Now()
	curve, err := lr.ROCCurve(k)
	if err != nil {
		lr.logger.Error("roc computation failed",
			log.OperationKey, log.OperationROC,
			log.SplitPolicyKey, lr.cfg.splitPolicy.String(),
			log.CurveMetricKey, lr.cfg.curveMetric.String(),
			log.ErrAttrKey, err)
		return 0, err
	}

	p, err := plotting.ROC(curve.FPR, curve.TPR, curve.AUC)
	if err != nil {
		return 0, err
	}
	if err := lr.cfg.renderer.Render(plotting.NameROC, p); err != nil {
		return 0, err
	}

	lr.logger.Info("roc computed",
		log.OperationKey, log.OperationROC,
		log.AUCKey, curve.AUC,
		log.QualityKey, string(curve.Quality),
		log.SplitPolicyKey, lr.cfg.splitPolicy.String(),
		log.CurveMetricKey, lr.cfg.curveMetric.String(),
		log.DurationMsKey, time.Since(start).Milliseconds())
	return curve.AUC, nil
}
