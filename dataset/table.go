package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// Table は列名付きの数値表。Records は行優先で、各行の長さは Header と等しい
type Table struct {
	Header  []string
	Records [][]float64
}

// Column は列名から列番号を返す
func (t Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// FromTable は response 列を応答変数、predictors 列を説明変数とする表形式のDatasetを作成する。
// predictors が空なら response 以外の全列を使う。
func FromTable(t Table, response string, predictors ...string) (*Dataset, error) {
	const op = "dataset.FromTable"

	if len(t.Records) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	yIdx, ok := t.Column(response)
	if !ok {
		return nil, errors.NewValidationError("response", "column not found", response)
	}
	if len(predictors) == 0 {
		for _, h := range t.Header {
			if h != response {
				predictors = append(predictors, h)
			}
		}
	}
	if len(predictors) == 0 {
		return nil, errors.NewValidationError("predictors", "no predictor columns", predictors)
	}

	cols := make([]int, len(predictors))
	for j, name := range predictors {
		idx, ok := t.Column(name)
		if !ok {
			return nil, errors.NewValidationError("predictors", "column not found", name)
		}
		cols[j] = idx
	}

	x := mat.NewDense(len(t.Records), len(cols), nil)
	y := make([]float64, len(t.Records))
	for i, rec := range t.Records {
		if len(rec) != len(t.Header) {
			return nil, errors.NewDimensionError(op, len(t.Header), len(rec), 1)
		}
		y[i] = rec[yIdx]
		for j, c := range cols {
			x.Set(i, j, rec[c])
		}
	}
	return New(KindTable, x, y, predictors)
}

// ReadCSV は1行目をヘッダとする数値CSVを読み込む
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, errors.NewModelError("dataset.ReadCSV", "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return Table{}, errors.Wrap(err, "read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := Table{Header: header}
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errors.Wrapf(err, "read csv line %d", line+1)
		}
		line++

		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return Table{}, errors.NewValueError("dataset.ReadCSV",
					fmt.Sprintf("line %d, column %q: %v", line, header[j], err))
			}
			row[j] = v
		}
		t.Records = append(t.Records, row)
	}
	if len(t.Records) == 0 {
		return Table{}, errors.NewModelError("dataset.ReadCSV", "empty data", errors.ErrEmptyData)
	}
	return t, nil
}
