package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regkit/preprocessing"
)

// QQPoints は正規 Q-Q プロットの点列。どちらも昇順
type QQPoints struct {
	Theoretical []float64
	Sample      []float64
}

// NormalQQ は x を標準化（母標準偏差）して並べ替え、
// 理論分位点 Phi^-1(i/(n+1)), i=1..n と組にする
func NormalQQ(x []float64) (*QQPoints, error) {
	z, err := preprocessing.Standardize(x)
	if err != nil {
		return nil, err
	}
	sort.Float64s(z)

	n := len(z)
	theo := make([]float64, n)
	for i := range theo {
		theo[i] = distuv.UnitNormal.Quantile(float64(i+1) / float64(n+1))
	}
	return &QQPoints{Theoretical: theo, Sample: z}, nil
}
