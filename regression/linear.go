package regression

import (
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/regkit/core/model"
	"github.com/YuminosukeSato/regkit/dataset"
	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/pkg/log"
	"github.com/YuminosukeSato/regkit/plotting"
	"github.com/YuminosukeSato/regkit/stats"
)

// LinearRegressor は最小二乗法による線形回帰
type LinearRegressor struct {
	Regressor

	result *stats.OLSResult
}

var _ model.Estimator = (*LinearRegressor)(nil)

// NewLinearRegressor は data に対する線形回帰モデルを作成する（未学習）
func NewLinearRegressor(data *dataset.Dataset, opts ...Option) *LinearRegressor {
	return &LinearRegressor{Regressor: newRegressor("LinearRegressor", data, opts)}
}

// Fit は計画行列に対する応答の OLS 推定を行う。
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用。
// 失敗した場合は未学習状態に戻り FitError を返す。
func (lr *LinearRegressor) Fit() error {
	lr.clearFit()
	lr.result = nil
	if err := lr.checkData("Fit"); err != nil {
		return err
	}

	start := time.Now()
	data := lr.data
	var res *stats.OLSResult
	err := errors.SafeExecute(lr.name+".Fit", func() error {
		var ferr error
		res, ferr = stats.OLS(data.Design(), data.Y())
		return ferr
	})
	if err != nil {
		lr.logger.Error("model fit failed",
			log.OperationKey, log.OperationFit,
			log.ErrAttrKey, err)
		return errors.NewFitError(lr.name, err)
	}

	lr.result = res
	lr.setFit(fitState{
		model:    res,
		data:     data,
		params:   res.Params,
		stderr:   res.StdErr,
		tvalues:  res.TValues,
		pvalues:  res.PValues,
		resid:    res.Residuals,
		statName: "t",
		stats: []summaryStat{
			{"No. Observations", float64(res.NObs)},
			{"Df Residuals", float64(res.DFResid)},
			{"R-squared", res.R2},
			{"Adj. R-squared", res.AdjR2},
			{"F-statistic", res.FValue},
			{"Prob (F-statistic)", res.FPValue},
			{"Residual variance", res.Scale},
		},
	})

	lr.logger.Info("model fitted",
		log.OperationKey, log.OperationFit,
		log.DataKindKey, data.Kind().String(),
		log.SamplesKey, res.NObs,
		log.FeaturesKey, res.DFModel,
		log.R2ScoreKey, res.R2,
		log.AdjR2Key, res.AdjR2,
		log.DurationMsKey, time.Since(start).Milliseconds())
	lr.logSummary()
	return nil
}

// R2 は決定係数を返す
func (lr *LinearRegressor) R2() (float64, error) {
	if err := lr.RequireFitted(lr.name, "R2"); err != nil {
		return 0, err
	}
	return lr.result.R2, nil
}

// AdjR2 は自由度調整済み決定係数を返す
func (lr *LinearRegressor) AdjR2() (float64, error) {
	if err := lr.RequireFitted(lr.name, "AdjR2"); err != nil {
		return 0, err
	}
	return lr.result.AdjR2, nil
}

// Scale は残差分散 SSR/(n-p) を返す
func (lr *LinearRegressor) Scale() (float64, error) {
	if err := lr.RequireFitted(lr.name, "Scale"); err != nil {
		return 0, err
	}
	return lr.result.Scale, nil
}

// Residuals は学習データの残差を返す
func (lr *LinearRegressor) Residuals() []float64 {
	return clone(lr.resid)
}

// Result は OLS の推定結果を返す。未学習なら nil
func (lr *LinearRegressor) Result() *stats.OLSResult {
	return lr.result
}

// PlotFittedLine は説明変数ごとの散布図と当てはめ直線を描く。
// 説明変数が1つならモデルの直線、複数なら各列ごとに y ~ x_j の単回帰直線。
func (lr *LinearRegressor) PlotFittedLine() error {
	if err := lr.RequireFitted(lr.name, "PlotFittedLine"); err != nil {
		return err
	}

	_, k := lr.fitX.Dims()
	series := make([]plotting.FittedSeries, k)
	for j := 0; j < k; j++ {
		x := mat.Col(nil, j, lr.fitX)
		var intercept, slope float64
		if k == 1 {
			intercept, slope = lr.params[0], lr.params[1]
		} else {
			intercept, slope = stat.LinearRegression(x, lr.fitY, nil, false)
		}
		series[j] = plotting.FittedSeries{
			Name:      lr.names[j+1],
			X:         x,
			Y:         lr.fitY,
			Intercept: intercept,
			Slope:     slope,
		}
	}

	p, err := plotting.FittedLines(series)
	if err != nil {
		return err
	}
	if err := lr.cfg.renderer.Render(plotting.NameFittedLine, p); err != nil {
		return err
	}
	lr.logger.Debug("fitted line plotted",
		log.OperationKey, log.OperationPlot,
		log.FeaturesKey, k)
	return nil
}
