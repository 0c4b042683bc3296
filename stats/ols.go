// Package stats は回帰の数値計算を担う。
//
// OLS（正規方程式）、Logit最尤推定（gonum/optimize のNewton法）、
// Breusch-Pagan検定、Shapiro-Wilk検定、Q-Qプロット用の分位点、
// 予測区間を提供する。分布はすべて gonum/stat/distuv を使う。
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// OLSResult は最小二乗推定の結果
type OLSResult struct {
	// 係数（計画行列の列順、先頭は定数項）
	Params  []float64
	StdErr  []float64
	TValues []float64
	PValues []float64

	Fitted    []float64
	Residuals []float64

	NObs    int
	DFModel int
	DFResid int

	// SSR は残差平方和、Scale は残差分散 SSR/DFResid
	SSR   float64
	Scale float64

	R2    float64
	AdjR2 float64

	FValue  float64
	FPValue float64

	// XTXInv は (X'X)^-1
	XTXInv *mat.Dense
}

// OLS は design（定数列を含む）に対する y の最小二乗推定を行う。
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用。
func OLS(design mat.Matrix, y []float64) (*OLSResult, error) {
	const op = "stats.OLS"

	n, p := design.Dims()
	if n == 0 || p == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, errors.NewDimensionError(op, n, len(y), 0)
	}
	if n <= p {
		return nil, errors.NewValueError(op,
			fmt.Sprintf("%d observations are not enough to estimate %d parameters", n, p))
	}

	var XTX mat.Dense
	XTX.Mul(design.T(), design)

	// 逆行列を計算
	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return nil, errors.Wrap(errors.ErrSingularMatrix, err.Error())
	}
	if err := errors.CheckMatrix("ols_xtx_inverse", &XTXInv, p, p, 0); err != nil {
		return nil, err
	}

	yVec := mat.NewVecDense(n, append([]float64(nil), y...))
	var XTy mat.VecDense
	XTy.MulVec(design.T(), yVec)

	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&XTXInv, &XTy)

	var fittedVec mat.VecDense
	fittedVec.MulVec(design, beta)

	res := &OLSResult{
		Params:    mat.Col(nil, 0, beta),
		Fitted:    mat.Col(nil, 0, &fittedVec),
		Residuals: make([]float64, n),
		NObs:      n,
		DFModel:   p - 1,
		DFResid:   n - p,
		XTXInv:    &XTXInv,
	}
	if err := errors.CheckNumericalStability("ols_solve", res.Params, 0); err != nil {
		return nil, err
	}

	floats.SubTo(res.Residuals, y, res.Fitted)
	res.SSR = floats.Dot(res.Residuals, res.Residuals)
	res.Scale = res.SSR / float64(res.DFResid)

	res.StdErr = make([]float64, p)
	res.TValues = make([]float64, p)
	res.PValues = make([]float64, p)
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(res.DFResid)}
	for j := 0; j < p; j++ {
		res.StdErr[j] = math.Sqrt(res.Scale * XTXInv.At(j, j))
		res.TValues[j] = res.Params[j] / res.StdErr[j]
		res.PValues[j] = 2 * tdist.Survival(math.Abs(res.TValues[j]))
	}

	// 定数項ありの中心化全平方和
	mean := stat.Mean(y, nil)
	var tss float64
	for _, v := range y {
		tss += (v - mean) * (v - mean)
	}
	res.R2 = 1 - res.SSR/tss
	res.AdjR2 = 1 - float64(n-1)/float64(res.DFResid)*(1-res.R2)

	res.FValue, res.FPValue = math.NaN(), math.NaN()
	if res.DFModel > 0 {
		ess := tss - res.SSR
		res.FValue = (ess / float64(res.DFModel)) / res.Scale
		fdist := distuv.F{D1: float64(res.DFModel), D2: float64(res.DFResid)}
		res.FPValue = fdist.Survival(res.FValue)
	}
	return res, nil
}

// Predict は design の各行の予測値を返す
func (r *OLSResult) Predict(design mat.Matrix) ([]float64, error) {
	return linearPredictor("OLSResult.Predict", design, r.Params)
}

// Intervals は計画行列の1行 x0 に対して、平均の信頼区間と
// 新しい観測の予測区間を水準 1-alpha で返す（t分布、自由度 DFResid）。
func (r *OLSResult) Intervals(x0 []float64, alpha float64) (conf, pred Interval, err error) {
	if err := checkAlpha(alpha); err != nil {
		return Interval{}, Interval{}, err
	}
	if len(x0) != len(r.Params) {
		return Interval{}, Interval{}, errors.NewDimensionError("OLSResult.Intervals", len(r.Params), len(x0), 1)
	}

	mean := floats.Dot(x0, r.Params)
	v := mat.NewVecDense(len(x0), append([]float64(nil), x0...))
	seMean := math.Sqrt(r.Scale * mat.Inner(v, r.XTXInv, v))
	seObs := math.Sqrt(seMean*seMean + r.Scale)

	q := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DFResid)}.Quantile(1 - alpha/2)
	conf = Interval{Estimate: mean, Lower: mean - q*seMean, Upper: mean + q*seMean}
	pred = Interval{Estimate: mean, Lower: mean - q*seObs, Upper: mean + q*seObs}
	return conf, pred, nil
}

func linearPredictor(op string, design mat.Matrix, params []float64) ([]float64, error) {
	_, p := design.Dims()
	if p != len(params) {
		return nil, errors.NewDimensionError(op, len(params), p, 1)
	}
	var out mat.VecDense
	out.MulVec(design, mat.NewVecDense(p, append([]float64(nil), params...)))
	return mat.Col(nil, 0, &out), nil
}
