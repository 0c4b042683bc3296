package model

import "gonum.org/v1/gonum/mat"

// Fitter は保持しているデータセットで学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを学習させる。失敗時は未学習状態に戻る
	Fit() error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データ（定数列なし）の各行に対する予測値を返す
	Predict(X mat.Matrix) ([]float64, error)
}

// Estimator は学習と予測を持ち、学習状態を公開するモデル
type Estimator interface {
	Fitter
	Predictor
	IsFitted() bool
}
