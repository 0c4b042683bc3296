package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

const (
	// DefaultLogitMaxIter は Newton 法の最大反復回数
	DefaultLogitMaxIter = 35
	// DefaultLogitTol は勾配ノルムの収束閾値
	DefaultLogitTol = 1e-8
)

// LogitSettings は Logit 推定の設定
type LogitSettings struct {
	MaxIter int
	Tol     float64
}

func (s LogitSettings) withDefaults() LogitSettings {
	if s.MaxIter <= 0 {
		s.MaxIter = DefaultLogitMaxIter
	}
	if s.Tol <= 0 {
		s.Tol = DefaultLogitTol
	}
	return s
}

// LogitResult は Logit 最尤推定の結果
type LogitResult struct {
	Params  []float64
	StdErr  []float64
	ZValues []float64
	PValues []float64

	NObs    int
	DFModel int
	DFResid int

	LogLike  float64
	LLNull   float64
	PseudoR2 float64

	Iterations int
	Converged  bool
	Status     optimize.Status

	// Cov は逆Fisher情報量。特異な場合は nil
	Cov *mat.Dense
}

// Sigmoid はロジスティック関数
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}

// Logit は design（定数列を含む）に対する 0/1 応答 y のロジスティック回帰を
// Newton 法で推定する。
//
// 反復上限やライン探索の停止で収束しなかった場合も、推定値が有限なら
// ConvergenceWarning を出して結果を返す（Converged == false）。
func Logit(design mat.Matrix, y []float64, settings LogitSettings) (*LogitResult, error) {
	const op = "stats.Logit"
	settings = settings.withDefaults()

	n, p := design.Dims()
	if n == 0 || p == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, errors.NewDimensionError(op, n, len(y), 0)
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, errors.NewValidationError("y", fmt.Sprintf("response must be 0 or 1 (row %d)", i), v)
		}
	}
	if n <= p {
		return nil, errors.NewValueError(op,
			fmt.Sprintf("%d observations are not enough to estimate %d parameters", n, p))
	}

	X := mat.DenseCopyOf(design)
	ll := &logLikelihood{X: X, y: y, eta: make([]float64, n), resid: make([]float64, n)}

	problem := optimize.Problem{
		Func: ll.negFunc,
		Grad: ll.negGrad,
		Hess: ll.negHess,
	}
	opts := &optimize.Settings{
		GradientThreshold: settings.Tol,
		MajorIterations:   settings.MaxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Relative:   1e-12,
			Iterations: settings.MaxIter,
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, p), opts, &optimize.Newton{})
	if result == nil {
		return nil, errors.Wrap(err, "newton optimisation failed")
	}
	if cerr := errors.CheckNumericalStability("logit_newton", result.X, result.MajorIterations); cerr != nil {
		return nil, cerr
	}

	res := &LogitResult{
		Params:     append([]float64(nil), result.X...),
		NObs:       n,
		DFModel:    p - 1,
		DFResid:    n - p,
		LogLike:    -result.F,
		Iterations: result.MajorIterations,
		Status:     result.Status,
		Converged:  err == nil && converged(result.Status),
	}
	msg := result.Status.String()
	if err != nil {
		msg = err.Error()
	}
	// 完全分離では最尤推定値が存在しない
	if ll.separates(res.Params) {
		res.Converged = false
		msg = "perfect separation detected, parameters are not identified"
	}
	if !res.Converged {
		errors.Warn(errors.NewConvergenceWarning("Newton", res.Iterations, msg))
	}
	if err := errors.CheckScalar("logit_loglike", res.LogLike, res.Iterations); err != nil {
		return nil, err
	}

	res.LLNull = nullLogLikelihood(y)
	res.PseudoR2 = 1 - res.LogLike/res.LLNull
	res.fillStdErr(ll)
	return res, nil
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence,
		optimize.FunctionThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	default:
		return false
	}
}

// fillStdErr は sqrt(diag((X'WX)^-1)) から標準誤差と z 値を計算する
func (r *LogitResult) fillStdErr(ll *logLikelihood) {
	p := len(r.Params)
	r.StdErr = make([]float64, p)
	r.ZValues = make([]float64, p)
	r.PValues = make([]float64, p)

	info := mat.NewSymDense(p, nil)
	ll.negHess(info, r.Params)

	var cov mat.Dense
	if err := cov.Inverse(info); err != nil {
		// 完全分離などで情報行列が特異
		for j := 0; j < p; j++ {
			r.StdErr[j] = math.NaN()
			r.ZValues[j] = math.NaN()
			r.PValues[j] = math.NaN()
		}
		return
	}
	r.Cov = &cov

	norm := distuv.UnitNormal
	for j := 0; j < p; j++ {
		r.StdErr[j] = math.Sqrt(cov.At(j, j))
		r.ZValues[j] = r.Params[j] / r.StdErr[j]
		r.PValues[j] = 2 * norm.Survival(math.Abs(r.ZValues[j]))
	}
}

// Predict は design の各行の陽性確率を返す
func (r *LogitResult) Predict(design mat.Matrix) ([]float64, error) {
	eta, err := linearPredictor("LogitResult.Predict", design, r.Params)
	if err != nil {
		return nil, err
	}
	for i, v := range eta {
		eta[i] = Sigmoid(v)
	}
	return eta, nil
}

// ConfidenceInterval は計画行列の1行 x0 の陽性確率について、線形予測子上の
// Wald 区間をシグモイドで写した水準 1-alpha の区間を返す。
func (r *LogitResult) ConfidenceInterval(x0 []float64, alpha float64) (Interval, error) {
	if err := checkAlpha(alpha); err != nil {
		return Interval{}, err
	}
	if len(x0) != len(r.Params) {
		return Interval{}, errors.NewDimensionError("LogitResult.ConfidenceInterval", len(r.Params), len(x0), 1)
	}
	if r.Cov == nil {
		return Interval{}, errors.Wrap(errors.ErrSingularMatrix, "covariance of the estimates is not available")
	}

	eta := floats.Dot(x0, r.Params)
	v := mat.NewVecDense(len(x0), append([]float64(nil), x0...))
	se := math.Sqrt(mat.Inner(v, r.Cov, v))
	z := distuv.UnitNormal.Quantile(1 - alpha/2)

	return Interval{
		Estimate: Sigmoid(eta),
		Lower:    Sigmoid(eta - z*se),
		Upper:    Sigmoid(eta + z*se),
	}, nil
}

// logLikelihood は Newton 法に渡す負の対数尤度
type logLikelihood struct {
	X     *mat.Dense
	y     []float64
	eta   []float64
	resid []float64
}

func (l *logLikelihood) linear(beta []float64) {
	b := mat.NewVecDense(len(beta), beta)
	e := mat.NewVecDense(len(l.eta), l.eta)
	e.MulVec(l.X, b)
}

// negFunc: sum(log(1+exp(eta)) - y*eta)
func (l *logLikelihood) negFunc(beta []float64) float64 {
	l.linear(beta)
	var f float64
	for i, eta := range l.eta {
		f += errors.Log1pExp(eta) - l.y[i]*eta
	}
	return f
}

// negGrad: X'(mu - y)
func (l *logLikelihood) negGrad(grad, beta []float64) {
	l.linear(beta)
	for i, eta := range l.eta {
		l.resid[i] = Sigmoid(eta) - l.y[i]
	}
	g := mat.NewVecDense(len(grad), grad)
	g.MulVec(l.X.T(), mat.NewVecDense(len(l.resid), l.resid))
}

// negHess: X' diag(mu(1-mu)) X
func (l *logLikelihood) negHess(hess *mat.SymDense, beta []float64) {
	l.linear(beta)
	n, p := l.X.Dims()
	for a := 0; a < p; a++ {
		for b := a; b < p; b++ {
			var s float64
			for i := 0; i < n; i++ {
				mu := Sigmoid(l.eta[i])
				s += mu * (1 - mu) * l.X.At(i, a) * l.X.At(i, b)
			}
			hess.SetSym(a, b, s)
		}
	}
}

// separates は beta の線形予測子の符号が全観測の応答と一致するかを返す
func (l *logLikelihood) separates(beta []float64) bool {
	l.linear(beta)
	for i, eta := range l.eta {
		if eta == 0 || (eta > 0) != (l.y[i] == 1) {
			return false
		}
	}
	return true
}

func nullLogLikelihood(y []float64) float64 {
	pBar := stat.Mean(y, nil)
	if pBar == 0 || pBar == 1 {
		return 0
	}
	n := float64(len(y))
	return n * (pBar*math.Log(pBar) + (1-pBar)*math.Log(1-pBar))
}
