package main

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/dataset"
	"github.com/YuminosukeSato/regkit/metrics"
	"github.com/YuminosukeSato/regkit/pkg/errors"
	"github.com/YuminosukeSato/regkit/plotting"
	"github.com/YuminosukeSato/regkit/regression"
)

func loadDataset(cfg RunConfig) (*dataset.Dataset, error) {
	f, err := os.Open(cfg.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Data)
	}
	defer f.Close()

	table, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", cfg.Data)
	}
	return dataset.FromTable(table, cfg.Response, cfg.Predictors...)
}

func options(cfg RunConfig) ([]regression.Option, error) {
	split, err := regression.ParseSplitPolicy(cfg.Split)
	if err != nil {
		return nil, err
	}
	metric, err := regression.ParseCurveMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}
	opts := []regression.Option{
		regression.WithRandomState(cfg.Seed),
		regression.WithSplitPolicy(split),
		regression.WithCurveMetric(metric),
	}
	if cfg.MaxIter > 0 {
		opts = append(opts, regression.WithMaxIter(cfg.MaxIter))
	}
	if cfg.Tol > 0 {
		opts = append(opts, regression.WithTol(cfg.Tol))
	}
	if cfg.Plots != "" {
		opts = append(opts, regression.WithRenderer(plotting.NewFileRenderer(cfg.Plots)))
	}
	return opts, nil
}

// execute は cfg に従って推定と評価を行い、結果を out に書く
func execute(cfg RunConfig, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	opts, err := options(cfg)
	if err != nil {
		return err
	}

	if cfg.Model == modelLinear {
		return runLinear(regression.NewLinearRegressor(ds, opts...), cfg, out)
	}
	return runLogistic(regression.NewLogisticRegressor(ds, opts...), cfg, out)
}

func predictRow(cfg RunConfig) *mat.Dense {
	return mat.NewDense(1, len(cfg.Predict), append([]float64(nil), cfg.Predict...))
}

func printSummary(out io.Writer, s interface{ Summary() (string, error) }) error {
	summary, err := s.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, summary)
	return nil
}

func runLinear(lr *regression.LinearRegressor, cfg RunConfig, out io.Writer) error {
	if err := lr.Fit(); err != nil {
		return err
	}
	if err := printSummary(out, lr); err != nil {
		return err
	}

	if len(cfg.Predict) > 0 {
		x := predictRow(cfg)
		pred, err := lr.Predict(x)
		if err != nil {
			return err
		}
		conf, predInt, err := lr.Intervals(x, cfg.Alpha)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "prediction:          %.6f\n", pred[0])
		fmt.Fprintf(out, "confidence interval: %s\n", conf)
		fmt.Fprintf(out, "prediction interval: %s\n", predInt)
	}

	fit, err := lr.Evaluate(lr.Dataset())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "in-sample error:     rmse=%.4f mae=%.4f\n", fit.RMSE, fit.MAE)

	if cfg.Diagnostics {
		bp, err := lr.HomoscedasticityTest()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "breusch-pagan:       LM=%.4f p=%.4f\n", bp.LM, bp.LMPValue)

		sw, err := lr.NormalityTest()
		if err != nil {
			// 残差が3個未満などで検定できない場合は報告だけして続ける
			fmt.Fprintf(out, "shapiro-wilk:        skipped (%v)\n", err)
		} else {
			fmt.Fprintf(out, "shapiro-wilk:        W=%.4f p=%.4f\n", sw.W, sw.PValue)
		}
	}

	if cfg.Plots != "" {
		if err := lr.PlotFittedLine(); err != nil {
			return err
		}
	}
	return nil
}

func runLogistic(lr *regression.LogisticRegressor, cfg RunConfig, out io.Writer) error {
	if err := lr.Fit(); err != nil {
		return err
	}
	if err := printSummary(out, lr); err != nil {
		return err
	}

	if len(cfg.Predict) > 0 {
		x := predictRow(cfg)
		prob, err := lr.Predict(x)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "probability:         %.6f\n", prob[0])
		if ci, err := lr.ConfidenceInterval(x, cfg.Alpha); err == nil {
			fmt.Fprintf(out, "confidence interval: %s\n", ci)
		}
	}

	var (
		m       metrics.ConfusionMatrix
		holdout *regression.Holdout
	)
	threshold := cfg.Threshold
	if threshold == regression.AutoThreshold {
		res, err := lr.OptimalThreshold(cfg.TrainFraction)
		if err != nil {
			return err
		}
		m, threshold, holdout = res.Matrix, res.Threshold, res.Holdout
		fmt.Fprintf(out, "optimal threshold:   %.4f (youden %.4f)\n", res.Threshold, res.Youden)
	} else {
		// 混同行列とスコアは同じ分割から求める
		var err error
		if holdout, err = lr.Train(cfg.TrainFraction); err != nil {
			return err
		}
		if m, err = metrics.NewConfusionMatrix(holdout.Y, holdout.Prob, threshold); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "confusion matrix at %.4f: [[TP=%d FP=%d] [FN=%d TN=%d]]\n",
		threshold, m.TP(), m.FP(), m.FN(), m.TN())

	scores, err := holdout.Scores(threshold)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "holdout:             accuracy=%.4f log-loss=%.4f rank-auc=%.4f\n",
		scores.Accuracy, scores.LogLoss, scores.RankAUC)

	auc, err := lr.ROC(cfg.TrainFraction)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "auc:                 %.4f (%s)\n", auc, metrics.ClassifyAUC(auc))
	return nil
}
