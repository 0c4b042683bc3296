// Package dataset はregressorが扱う観測データを保持する。
//
// 説明変数は行列形式(matrix)か列名付きの表形式(table)のどちらかで与えられ、
// その種類はtrain/test分割の大きさの決め方に影響する。計画行列は
// 先頭に定数列を付けた説明変数で、説明変数が変わるたびに作り直される。
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/core/parallel"
	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// ConstName は計画行列の定数列の名前
const ConstName = "const"

// Kind はデータコンテナの種類
type Kind int

const (
	// KindUnknown は種類が判別できないコンテナ。分割できない
	KindUnknown Kind = iota
	// KindMatrix は列名を持たない配列形式
	KindMatrix
	// KindTable は列名付きの表形式
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindMatrix:
		return "matrix"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// Dataset は説明変数、応答変数と計画行列の組
type Dataset struct {
	kind   Kind
	x      *mat.Dense
	y      []float64
	names  []string
	design *mat.Dense
}

// New は種類を明示してDatasetを作成する。names が nil なら x1..xk を使う。
// x と y の行数が異なる場合は DimensionError を返す。
func New(kind Kind, x mat.Matrix, y []float64, names []string) (*Dataset, error) {
	if x == nil {
		return nil, errors.NewModelError("dataset.New", "empty data", errors.ErrEmptyData)
	}
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("dataset.New", "empty data", errors.ErrEmptyData)
	}
	if len(y) != r {
		return nil, errors.NewDimensionError("dataset.New", r, len(y), 0)
	}
	if names == nil {
		names = DefaultNames(c)
	}
	if len(names) != c {
		return nil, errors.NewDimensionError("dataset.New", c, len(names), 1)
	}

	d := &Dataset{
		kind:  kind,
		x:     mat.DenseCopyOf(x),
		y:     append([]float64(nil), y...),
		names: append([]string(nil), names...),
	}
	d.design = AddConstant(d.x)
	return d, nil
}

// FromMatrix は配列形式のDatasetを作成する
func FromMatrix(x mat.Matrix, y []float64) (*Dataset, error) {
	return New(KindMatrix, x, y, nil)
}

// FromSlices は行スライスから配列形式のDatasetを作成する
func FromSlices(x [][]float64, y []float64) (*Dataset, error) {
	m, err := denseFromRows("dataset.FromSlices", x)
	if err != nil {
		return nil, err
	}
	return FromMatrix(m, y)
}

// DefaultNames は x1..xk を返す
func DefaultNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i+1)
	}
	return names
}

// AddConstant は x の先頭に1の列を加えた計画行列を返す
func AddConstant(x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	design := mat.NewDense(r, c+1, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0) // 切片項
			for j := 0; j < c; j++ {
				design.Set(i, j+1, x.At(i, j))
			}
		}
	})
	return design
}

// Kind はコンテナの種類を返す
func (d *Dataset) Kind() Kind {
	if d == nil {
		return KindUnknown
	}
	return d.kind
}

// Len は観測数を返す
func (d *Dataset) Len() int {
	return len(d.y)
}

// NumFeatures は定数列を除いた説明変数の数を返す
func (d *Dataset) NumFeatures() int {
	_, c := d.x.Dims()
	return c
}

// X は説明変数を返す。呼び出し側で変更しないこと
func (d *Dataset) X() *mat.Dense {
	return d.x
}

// Y は応答変数を返す。呼び出し側で変更しないこと
func (d *Dataset) Y() []float64 {
	return d.y
}

// Design は定数列付きの計画行列を返す。呼び出し側で変更しないこと
func (d *Dataset) Design() *mat.Dense {
	return d.design
}

// FeatureNames は説明変数の名前を返す
func (d *Dataset) FeatureNames() []string {
	return append([]string(nil), d.names...)
}

// TermNames は計画行列の列名（先頭は const）を返す
func (d *Dataset) TermNames() []string {
	return append([]string{ConstName}, d.names...)
}

// SetPredictors は説明変数を置き換え、計画行列を作り直す。
// 行数は応答変数と一致しなければならない。列数が変わる場合は名前を x1..xk に戻す。
func (d *Dataset) SetPredictors(x mat.Matrix) error {
	r, c := x.Dims()
	if r != len(d.y) {
		return errors.NewDimensionError("Dataset.SetPredictors", len(d.y), r, 0)
	}
	if c == 0 {
		return errors.NewModelError("Dataset.SetPredictors", "empty data", errors.ErrEmptyData)
	}
	if c != len(d.names) {
		d.names = DefaultNames(c)
	}
	d.x = mat.DenseCopyOf(x)
	d.design = AddConstant(d.x)
	return nil
}

// Subset は rows で指定した行だけを持つ同じ種類のDatasetを返す
// rows が空の場合は ErrEmptyData を返す。
func (d *Dataset) Subset(rows []int) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewModelError("Dataset.Subset", "empty data", errors.ErrEmptyData)
	}
	x := mat.NewDense(len(rows), d.NumFeatures(), nil)
	y := make([]float64, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(d.y) {
			return nil, errors.NewValueError("Dataset.Subset", fmt.Sprintf("row index %d out of range [0, %d)", r, len(d.y)))
		}
		x.SetRow(i, d.x.RawRowView(r))
		y[i] = d.y[r]
	}
	return &Dataset{
		kind:   d.kind,
		x:      x,
		y:      y,
		names:  d.FeatureNames(),
		design: AddConstant(x),
	}, nil
}

// Rows は予測入力の行スライスを行列に変換する
func Rows(x [][]float64) (*mat.Dense, error) {
	return denseFromRows("dataset.Rows", x)
}

func denseFromRows(op string, x [][]float64) (*mat.Dense, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	c := len(x[0])
	m := mat.NewDense(len(x), c, nil)
	for i, row := range x {
		if len(row) != c {
			return nil, errors.NewDimensionError(op, c, len(row), 1)
		}
		m.SetRow(i, row)
	}
	return m, nil
}
