package plotting

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("plotting.xys", len(x), len(y), 0)
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

// QQ は理論分位点と標本分位点の散布図に y=x の参照線を重ねる
func QQ(theoretical, sample []float64) (*plot.Plot, error) {
	pts, err := xys(theoretical, sample)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, errors.NewModelError("plotting.QQ", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Normal Q-Q"
	p.X.Label.Text = "Theoretical quantiles"
	p.Y.Label.Text = "Sample quantiles"

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "qq scatter")
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	ref, err := plotter.NewLine(plotter.XYs{
		{X: floats.Min(theoretical), Y: floats.Min(theoretical)},
		{X: floats.Max(theoretical), Y: floats.Max(theoretical)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "qq reference line")
	}
	ref.LineStyle.Color = plotutil.Color(1)

	p.Add(s, ref)
	return p, nil
}

// FittedSeries は1つの説明変数についての散布データと当てはめ直線
type FittedSeries struct {
	Name      string
	X         []float64
	Y         []float64
	Intercept float64
	Slope     float64
}

// FittedLines は各系列の散布図と直線 Intercept + Slope*x を1枚に重ねる
func FittedLines(series []FittedSeries) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.NewModelError("plotting.FittedLines", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Fitted line"
	p.Y.Label.Text = "y"
	if len(series) == 1 {
		p.X.Label.Text = series[0].Name
	} else {
		p.X.Label.Text = "x"
	}

	for i, s := range series {
		pts, err := xys(s.X, s.Y)
		if err != nil {
			return nil, err
		}
		if len(pts) == 0 {
			return nil, errors.NewModelError("plotting.FittedLines", "empty data", errors.ErrEmptyData)
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "scatter %s", s.Name)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)

		lo, hi := floats.Min(s.X), floats.Max(s.X)
		line, err := plotter.NewLine(plotter.XYs{
			{X: lo, Y: s.Intercept + s.Slope*lo},
			{X: hi, Y: s.Intercept + s.Slope*hi},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "line %s", s.Name)
		}
		line.LineStyle.Color = plotutil.Color(i)

		p.Add(sc, line)
		p.Legend.Add(s.Name, sc, line)
	}
	return p, nil
}

// ROC は (1-specificity, sensitivity) の曲線と対角線を描く
func ROC(fpr, tpr []float64, auc float64) (*plot.Plot, error) {
	pts, err := xys(fpr, tpr)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, errors.NewModelError("plotting.ROC", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("ROC curve (AUC = %.3f)", auc)
	p.X.Label.Text = "1 - specificity"
	p.Y.Label.Text = "sensitivity"

	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "roc curve")
	}
	curve.LineStyle.Color = plotutil.Color(0)

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, errors.Wrap(err, "roc diagonal")
	}
	diag.LineStyle.Color = plotutil.Color(1)
	diag.LineStyle.Dashes = plotutil.Dashes(1)

	p.Add(curve, diag)
	return p, nil
}
