package regression

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/dataset"
	"github.com/YuminosukeSato/regkit/pkg/log"
	"github.com/YuminosukeSato/regkit/stats"
)

var discardLogger, _ = log.NewTestLogger(log.LevelError)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int, logistic bool) *dataset.Dataset {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		eta := 1.0 // 切片
		for j := 0; j < cols; j++ {
			v := rng.Float64()*2.0 - 1.0
			X.Set(i, j, v)
			eta += v * float64(j+1) * 0.5
		}
		switch {
		case logistic && rng.Float64() < stats.Sigmoid(eta):
			y[i] = 1
		case logistic:
			y[i] = 0
		default:
			y[i] = eta + (rng.Float64()-0.5)*0.1
		}
	}

	ds, err := dataset.FromMatrix(X, y)
	if err != nil {
		panic(err)
	}
	return ds
}

// BenchmarkLinearRegressorFit はFitメソッドのベンチマークを実行する
func BenchmarkLinearRegressorFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Medium_1000x10", 1000, 10}, // 並列処理の閾値
		{"Large_10000x20", 10000, 20},
		{"XLarge_50000x50", 50000, 50},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			ds := createBenchmarkData(size.rows, size.cols, false)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := NewLinearRegressor(ds, WithLogger(discardLogger))
				if err := lr.Fit(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLogisticRegressorFit(b *testing.B) {
	for _, rows := range []int{100, 1000, 10000} {
		ds := createBenchmarkData(rows, 5, true)
		b.Run(fmt.Sprintf("Rows_%d", rows), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				lr := NewLogisticRegressor(ds, WithLogger(discardLogger))
				if err := lr.Fit(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkROC は共有分割と閾値ごとの分割の ROC スイープを比較する
func BenchmarkROC(b *testing.B) {
	ds := createBenchmarkData(1000, 5, true)
	for _, policy := range []SplitPolicy{SplitOnce, SplitPerThreshold} {
		b.Run(policy.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				lr := NewLogisticRegressor(ds, WithLogger(discardLogger),
					WithRandomState(int64(i)), WithSplitPolicy(policy))
				if _, err := lr.ROCCurve(DefaultTrainFraction); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
