package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// 浮動小数点の表現誤差で floor が1つ下がるのを防ぐ
const splitEps = 1e-9

// SplitSizes は観測数 n と学習割合 k から (train, test) の行数を返す。
//
// 表形式は floor(n*k) 行を学習用に、配列形式は floor(n*(1-k)) 行を
// テスト用に非復元抽出する。それ以外の種類は UnsupportedDataError。
func SplitSizes(kind Kind, n int, k float64) (train, test int, err error) {
	const op = "Dataset.Split"

	if !(k > 0 && k < 1) {
		return 0, 0, errors.NewValidationError("k", "training fraction must be in (0, 1)", k)
	}
	switch kind {
	case KindTable:
		train = int(math.Floor(float64(n)*k + splitEps))
		test = n - train
	case KindMatrix:
		test = int(math.Floor(float64(n)*(1-k) + splitEps))
		train = n - test
	default:
		return 0, 0, errors.NewUnsupportedDataError(op, kind.String())
	}
	if train == 0 || test == 0 {
		return 0, 0, errors.NewValueError(op,
			fmt.Sprintf("split of %d observations with k=%g leaves %d train and %d test rows", n, k, train, test))
	}
	return train, test, nil
}

// Split は rng で行を非復元抽出し、学習用とテスト用のDatasetに分ける。
// 各部分の行は元の順序を保つ。
func (d *Dataset) Split(k float64, rng *rand.Rand) (train, test *Dataset, err error) {
	nTrain, nTest, err := SplitSizes(d.Kind(), d.Len(), k)
	if err != nil {
		return nil, nil, err
	}

	perm := rng.Perm(d.Len())
	var trainRows, testRows []int
	switch d.kind {
	case KindTable:
		trainRows = perm[:nTrain]
		testRows = perm[nTrain:]
	default:
		testRows = perm[:nTest]
		trainRows = perm[nTest:]
	}
	sort.Ints(trainRows)
	sort.Ints(testRows)

	if train, err = d.Subset(trainRows); err != nil {
		return nil, nil, err
	}
	if test, err = d.Subset(testRows); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
