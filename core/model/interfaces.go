// Package model provides the estimator state machine and the capability
// interfaces shared by the regressors.
package model

// Coefficients は推定された係数とその標準誤差を公開するモデル
type Coefficients interface {
	// Params は切片を先頭に含む係数を返す
	Params() []float64
	// StdErr は係数の標準誤差を返す
	StdErr() []float64
	// TValues は係数のt値（Logitではz値）を返す
	TValues() []float64
	// FeatureNames は係数に対応する名前を返す（先頭は "const"）
	FeatureNames() []string
}

// Summarizer は学習結果を人が読める表にするモデル
type Summarizer interface {
	Summary() (string, error)
}
