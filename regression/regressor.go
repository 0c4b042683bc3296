// Package regression wraps ordinary least squares and logistic regression
// with prediction, interval estimation, residual diagnostics and
// threshold/ROC evaluation.
//
// A regressor is built over a dataset.Dataset and must be fitted before
// any method that reads the fitted model is called; those methods return a
// NotFittedError otherwise. Fitting itself is delegated to package stats.
//
// Example:
//
//	ds, _ := dataset.FromSlices([][]float64{{1}, {2}, {3}, {4}, {5}}, []float64{2, 4, 6, 8, 10})
//	lr := regression.NewLinearRegressor(ds)
//	if err := lr.Fit(); err != nil {
//	    return err
//	}
//	pred, _ := lr.Predict(mat.NewDense(1, 1, []float64{6})) // ~12
//
// Regressors are not safe for concurrent use.
package regression

import (
	"context"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/core/model"
	"github.com/YuminosukeSato/regkit/dataset"
	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/pkg/log"
	"github.com/YuminosukeSato/regkit/plotting"
	"github.com/YuminosukeSato/regkit/stats"
)

// 学習済みモデルの予測（計画行列を受け取る）
type fittedModel interface {
	Predict(design mat.Matrix) ([]float64, error)
}

// 予測区間を持つモデル（OLS のみ）
type intervalModel interface {
	Intervals(x0 []float64, alpha float64) (conf, pred stats.Interval, err error)
}

// summaryStat は Summary の上段に並べる当てはめ統計量
type summaryStat struct {
	label string
	value float64
}

// Regressor は線形・ロジスティック回帰に共通の状態と操作を持つ
type Regressor struct {
	model.BaseEstimator

	name   string
	data   *dataset.Dataset
	cfg    config
	logger log.Logger
	rng    *rand.Rand

	// Fit が成功したときだけ設定される
	fitted    fittedModel
	fitX      *mat.Dense
	fitY      []float64
	design    *mat.Dense
	names     []string
	params    []float64
	stderr    []float64
	tvalues   []float64
	pvalues   []float64
	resid     []float64
	statName  string
	fitStats  []summaryStat
	nFeatures int
}

func newRegressor(name string, data *dataset.Dataset, opts []Option) Regressor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("regression")
	}
	return Regressor{
		name:   name,
		data:   data,
		cfg:    cfg,
		logger: logger.With(log.ModelNameKey, name),
		rng:    cfg.newRand(),
	}
}

// fitState は Fit の結果として Regressor に保存される値
type fitState struct {
	model    fittedModel
	data     *dataset.Dataset
	params   []float64
	stderr   []float64
	tvalues  []float64
	pvalues  []float64
	resid    []float64
	statName string
	stats    []summaryStat
}

func (r *Regressor) setFit(s fitState) {
	r.fitted = s.model
	r.fitX = s.data.X()
	r.fitY = s.data.Y()
	r.design = s.data.Design()
	r.names = s.data.TermNames()
	r.params = s.params
	r.stderr = s.stderr
	r.tvalues = s.tvalues
	r.pvalues = s.pvalues
	r.resid = s.resid
	r.statName = s.statName
	r.fitStats = s.stats
	r.nFeatures = s.data.NumFeatures()
	r.SetFitted()
}

// clearFit は未学習状態に戻す
func (r *Regressor) clearFit() {
	r.Reset()
	r.fitted = nil
	r.fitX, r.fitY, r.design = nil, nil, nil
	r.names = nil
	r.params, r.stderr, r.tvalues, r.pvalues, r.resid = nil, nil, nil, nil, nil
	r.fitStats = nil
	r.nFeatures = 0
}

func (r *Regressor) checkData(method string) error {
	if r.data == nil || r.data.Len() == 0 {
		return errEmpty(r.name + "." + method)
	}
	return nil
}

func errEmpty(op string) error {
	return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
}

// designFor は予測入力（定数列なし）に定数列を加える
func (r *Regressor) designFor(method string, X mat.Matrix) (*mat.Dense, error) {
	if X == nil {
		return nil, errEmpty(r.name + "." + method)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errEmpty(r.name + "." + method)
	}
	if cols != r.nFeatures {
		return nil, errors.NewDimensionError(r.name+"."+method, r.nFeatures, cols, 1)
	}
	return dataset.AddConstant(X), nil
}

func (r *Regressor) logSummary() {
	if !r.logger.Enabled(context.Background(), log.LevelDebug) {
		return
	}
	summary, err := r.Summary()
	if err != nil {
		return
	}
	r.logger.Debug("model summary", "summary", summary)
}

// Name はモデル名を返す
func (r *Regressor) Name() string {
	return r.name
}

// Dataset は学習に使うデータセットを返す
func (r *Regressor) Dataset() *dataset.Dataset {
	return r.data
}

// Predict は X（定数列なし、学習時と同じ列数）の各行の予測値を返す。
// 線形回帰では線形予測子、ロジスティック回帰では陽性確率。
func (r *Regressor) Predict(X mat.Matrix) ([]float64, error) {
	if err := r.RequireFitted(r.name, "Predict"); err != nil {
		return nil, err
	}
	design, err := r.designFor("Predict", X)
	if err != nil {
		return nil, err
	}
	return r.fitted.Predict(design)
}

// Intervals は X の最初の行について、平均の信頼区間と新しい観測の
// 予測区間を水準 1-alpha で返す。予測区間を持たないモデルでは ErrNotSupported。
func (r *Regressor) Intervals(X mat.Matrix, alpha float64) (conf, pred stats.Interval, err error) {
	if err := r.RequireFitted(r.name, "Intervals"); err != nil {
		return stats.Interval{}, stats.Interval{}, err
	}
	im, ok := r.fitted.(intervalModel)
	if !ok {
		return stats.Interval{}, stats.Interval{},
			errors.Wrapf(errors.ErrNotSupported, "%s.Intervals: prediction intervals", r.name)
	}
	design, err := r.designFor("Intervals", X)
	if err != nil {
		return stats.Interval{}, stats.Interval{}, err
	}
	conf, pred, err = im.Intervals(design.RawRowView(0), alpha)
	if err != nil {
		return stats.Interval{}, stats.Interval{}, err
	}
	r.logger.Debug("intervals computed",
		log.OperationKey, log.OperationIntervals,
		"alpha", alpha,
		"confidence", conf.String(),
		"prediction", pred.String())
	return conf, pred, nil
}

func (r *Regressor) residuals(method string) ([]float64, error) {
	if err := r.RequireFitted(r.name, method); err != nil {
		return nil, err
	}
	if r.resid == nil {
		return nil, errors.Wrapf(errors.ErrNotSupported, "%s.%s: model has no residuals", r.name, method)
	}
	return r.resid, nil
}

// HomoscedasticityTest は残差の Breusch-Pagan 検定を行う。
// 帰無仮説: 誤差の分散は一定。
func (r *Regressor) HomoscedasticityTest() (*stats.BreuschPaganResult, error) {
	resid, err := r.residuals("HomoscedasticityTest")
	if err != nil {
		return nil, err
	}
	res, err := stats.BreuschPagan(resid, r.design)
	if err != nil {
		return nil, err
	}
	r.logger.Info("homoscedasticity test",
		log.OperationKey, log.OperationDiagnostics,
		log.TestNameKey, "breusch_pagan",
		log.StatisticKey, res.LM,
		log.PValueKey, res.LMPValue)
	return res, nil
}

// NormalityTest は標準化した残差の正規 Q-Q プロットを描き、
// 残差に Shapiro-Wilk 検定を行う。帰無仮説: 残差は正規分布に従う。
func (r *Regressor) NormalityTest() (*stats.ShapiroWilkResult, error) {
	resid, err := r.residuals("NormalityTest")
	if err != nil {
		return nil, err
	}

	qq, err := stats.NormalQQ(resid)
	if err != nil {
		return nil, err
	}
	p, err := plotting.QQ(qq.Theoretical, qq.Sample)
	if err != nil {
		return nil, err
	}
	if err := r.cfg.renderer.Render(plotting.NameQQ, p); err != nil {
		return nil, err
	}

	res, err := stats.ShapiroWilk(resid)
	if err != nil {
		return nil, err
	}
	r.logger.Info("normality test",
		log.OperationKey, log.OperationDiagnostics,
		log.TestNameKey, "shapiro_wilk",
		log.StatisticKey, res.W,
		log.PValueKey, res.PValue)
	return res, nil
}

func clone(s []float64) []float64 {
	if s == nil {
		return nil
	}
	return append([]float64(nil), s...)
}

// Params は切片を先頭に含む係数を返す。未学習なら nil
func (r *Regressor) Params() []float64 { return clone(r.params) }

// StdErr は係数の標準誤差を返す
func (r *Regressor) StdErr() []float64 { return clone(r.stderr) }

// TValues は係数の t 値（ロジスティック回帰では z 値）を返す
func (r *Regressor) TValues() []float64 { return clone(r.tvalues) }

// PValues は係数の両側 p 値を返す
func (r *Regressor) PValues() []float64 { return clone(r.pvalues) }

// FeatureNames は係数の名前を返す（先頭は "const"）
func (r *Regressor) FeatureNames() []string {
	if r.names == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

var (
	_ model.Coefficients = (*Regressor)(nil)
	_ model.Summarizer   = (*Regressor)(nil)
)
