package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// BreuschPaganResult は Breusch-Pagan 検定（Koenker の studentized 版）の結果。
// 帰無仮説: 誤差の分散は一定。
type BreuschPaganResult struct {
	LM       float64
	LMPValue float64
	FValue   float64
	FPValue  float64
	DF       int
}

// BreuschPagan は残差の二乗を design（定数列を含む）に回帰し、
// LM = n*R^2 を自由度 k-1 のカイ二乗分布で検定する。F 版も併せて返す。
func BreuschPagan(resid []float64, design mat.Matrix) (*BreuschPaganResult, error) {
	const op = "stats.BreuschPagan"

	n, p := design.Dims()
	if len(resid) != n {
		return nil, errors.NewDimensionError(op, n, len(resid), 0)
	}
	if p < 2 {
		return nil, errors.NewValueError(op, "design matrix needs at least one column besides the constant")
	}

	sq := make([]float64, n)
	for i, e := range resid {
		sq[i] = e * e
	}
	// 完全な当てはめでは残差の二乗に変動がなく R^2 が定まらない
	if floats.Max(sq) == floats.Min(sq) {
		return nil, errors.NewValueError(op, "squared residuals have zero variance")
	}
	aux, err := OLS(design, sq)
	if err != nil {
		return nil, errors.Wrap(err, "auxiliary regression")
	}

	df := p - 1
	lm := float64(n) * aux.R2
	if err := errors.CheckScalar("breusch_pagan_lm", lm, 0); err != nil {
		return nil, err
	}
	f := (aux.R2 / float64(df)) / ((1 - aux.R2) / float64(n-p))

	return &BreuschPaganResult{
		LM:       lm,
		LMPValue: distuv.ChiSquared{K: float64(df)}.Survival(lm),
		FValue:   f,
		FPValue:  distuv.F{D1: float64(df), D2: float64(n - p)}.Survival(f),
		DF:       df,
	}, nil
}
