package regression

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/core/model"
	"github.com/YuminosukeSato/regkit/dataset"
	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/pkg/log"
	"github.com/YuminosukeSato/regkit/stats"
)

// LogisticRegressor は最尤法による2値ロジスティック回帰。
// 応答は 0/1 でなければならない。
type LogisticRegressor struct {
	Regressor

	result *stats.LogitResult
}

var _ model.Estimator = (*LogisticRegressor)(nil)

// NewLogisticRegressor は data に対するロジスティック回帰モデルを作成する（未学習）
func NewLogisticRegressor(data *dataset.Dataset, opts ...Option) *LogisticRegressor {
	return &LogisticRegressor{Regressor: newRegressor("LogisticRegressor", data, opts)}
}

// fitLogit は d に Logit を当てはめる。gonum の panic はエラーに変換する
func (lr *LogisticRegressor) fitLogit(d *dataset.Dataset) (*stats.LogitResult, error) {
	var res *stats.LogitResult
	err := errors.SafeExecute(lr.name+".Fit", func() error {
		var ferr error
		res, ferr = stats.Logit(d.Design(), d.Y(), lr.cfg.logit)
		return ferr
	})
	if err != nil {
		return nil, errors.NewFitError(lr.name, err)
	}
	return res, nil
}

// Fit は Newton 法でロジスティック回帰を推定する。
// 収束しなかった場合は ConvergenceWarning を出し、最後の反復値を使う。
// 失敗した場合は未学習状態に戻り FitError を返す。
func (lr *LogisticRegressor) Fit() error {
	lr.clearFit()
	lr.result = nil
	if err := lr.checkData("Fit"); err != nil {
		return err
	}

	start := time.Now()
	data := lr.data
	res, err := lr.fitLogit(data)
	if err != nil {
		lr.logger.Error("model fit failed",
			log.OperationKey, log.OperationFit,
			log.ErrAttrKey, err)
		return err
	}

	lr.result = res
	lr.setFit(fitState{
		model:    res,
		data:     data,
		params:   res.Params,
		stderr:   res.StdErr,
		tvalues:  res.ZValues,
		pvalues:  res.PValues,
		statName: "z",
		stats: []summaryStat{
			{"No. Observations", float64(res.NObs)},
			{"Df Residuals", float64(res.DFResid)},
			{"Pseudo R-squ.", res.PseudoR2},
			{"Log-Likelihood", res.LogLike},
			{"LL-Null", res.LLNull},
			{"Iterations", float64(res.Iterations)},
		},
	})

	lr.logger.Info("model fitted",
		log.OperationKey, log.OperationFit,
		log.DataKindKey, data.Kind().String(),
		log.SamplesKey, res.NObs,
		log.FeaturesKey, res.DFModel,
		log.PseudoR2Key, res.PseudoR2,
		log.LogLikelihoodKey, res.LogLike,
		log.IterationKey, res.Iterations,
		log.ConvergedKey, res.Converged,
		log.DurationMsKey, time.Since(start).Milliseconds())
	lr.logSummary()
	return nil
}

// PseudoR2 は McFadden の疑似決定係数を返す
func (lr *LogisticRegressor) PseudoR2() (float64, error) {
	if err := lr.RequireFitted(lr.name, "PseudoR2"); err != nil {
		return 0, err
	}
	return lr.result.PseudoR2, nil
}

// LogLikelihood は最大化された対数尤度を返す
func (lr *LogisticRegressor) LogLikelihood() (float64, error) {
	if err := lr.RequireFitted(lr.name, "LogLikelihood"); err != nil {
		return 0, err
	}
	return lr.result.LogLike, nil
}

// Converged は Newton 法が収束したかを返す。未学習なら false
func (lr *LogisticRegressor) Converged() bool {
	return lr.result != nil && lr.result.Converged
}

// Result は Logit の推定結果を返す。未学習なら nil
func (lr *LogisticRegressor) Result() *stats.LogitResult {
	return lr.result
}

// ConfidenceInterval は X の最初の行の陽性確率について水準 1-alpha の
// Wald 信頼区間を返す（線形予測子上の区間をシグモイドで写したもの）。
func (lr *LogisticRegressor) ConfidenceInterval(X mat.Matrix, alpha float64) (stats.Interval, error) {
	if err := lr.RequireFitted(lr.name, "ConfidenceInterval"); err != nil {
		return stats.Interval{}, err
	}
	design, err := lr.designFor("ConfidenceInterval", X)
	if err != nil {
		return stats.Interval{}, err
	}
	ci, err := lr.result.ConfidenceInterval(design.RawRowView(0), alpha)
	if err != nil {
		return stats.Interval{}, err
	}
	lr.logger.Debug("confidence interval computed",
		log.OperationKey, log.OperationIntervals,
		"alpha", alpha,
		"confidence", ci.String())
	return ci, nil
}
