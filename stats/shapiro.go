package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// ShapiroWilk の標本サイズの上限（Royston の近似が有効な範囲）
const (
	shapiroMinN = 3
	shapiroMaxN = 5000
)

// Royston (1995) AS R94 の係数
var (
	swC1 = []float64{0.0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	swC2 = []float64{0.0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

// ShapiroWilkResult は Shapiro-Wilk 検定の結果。帰無仮説: 正規分布に従う。
type ShapiroWilkResult struct {
	W      float64
	PValue float64
}

// ShapiroWilk は x の正規性を検定する（3 <= n <= 5000）
func ShapiroWilk(x []float64) (*ShapiroWilkResult, error) {
	const op = "stats.ShapiroWilk"

	n := len(x)
	if n < shapiroMinN {
		return nil, errors.NewValueError(op, "at least 3 observations are required")
	}
	if n > shapiroMaxN {
		return nil, errors.NewValueError(op, "p-value approximation is not valid for more than 5000 observations")
	}
	if err := errors.CheckNumericalStability("shapiro_wilk", x, 0); err != nil {
		return nil, err
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	if sorted[n-1]-sorted[0] < 1e-19 {
		return nil, errors.NewValueError(op, "all observations are identical")
	}

	a := shapiroCoefficients(n)

	mean := stat.Mean(sorted, nil)
	var ssq, b float64
	for _, v := range sorted {
		ssq += (v - mean) * (v - mean)
	}
	for i, ai := range a {
		b += ai * (sorted[n-1-i] - sorted[i])
	}
	w := math.Min(b*b/ssq, 1)

	return &ShapiroWilkResult{W: w, PValue: shapiroPValue(w, n)}, nil
}

// shapiroCoefficients は下半分の係数 a_1..a_{n/2} を返す
func shapiroCoefficients(n int) []float64 {
	nn2 := n / 2
	a := make([]float64, nn2)
	if n == 3 {
		a[0] = math.Sqrt2 / 2
		return a
	}

	an := float64(n)
	m := make([]float64, nn2)
	var summ2 float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	a1 := poly(swC1, rsn) - m[0]/ssumm2
	i1 := 1
	var fac float64
	if n > 5 {
		i1 = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := i1; i < nn2; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

func shapiroPValue(w float64, n int) float64 {
	an := float64(n)
	if n == 3 {
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Pi/3)
		return math.Max(p, 0)
	}

	y := math.Log(1 - w)
	var m, s float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		xx := math.Log(an)
		m = poly(swC5, xx)
		s = math.Exp(poly(swC6, xx))
	}
	return distuv.Normal{Mu: m, Sigma: s}.Survival(y)
}

// poly は c[0] + c[1]x + c[2]x^2 + ... を計算する
func poly(c []float64, x float64) float64 {
	var r float64
	for i := len(c) - 1; i >= 0; i-- {
		r = r*x + c[i]
	}
	return r
}
