// Package regkit is a small regression toolkit for Go: ordinary least
// squares and logistic regression with the inference and evaluation helpers
// usually reached for right after a fit.
//
// regkit wraps gonum's linear algebra, distributions and optimisers behind
// two regressors that keep their fitted state, log what they did, and fail
// with typed errors when used out of order.
//
// # Features
//
//   - OLS by normal equations with standard errors, t statistics, R², F test
//   - Logit by Newton's method with z statistics and McFadden pseudo R²
//   - Confidence and prediction intervals for new observations
//   - Breusch-Pagan heteroscedasticity and Shapiro-Wilk normality tests,
//     with a normal Q-Q plot of the residuals
//   - Random train/test splits, confusion matrices, Youden-optimal
//     thresholds, ROC curves and AUC quality bands
//   - Plots through gonum/plot, summaries through lipgloss tables
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/regkit/dataset"
//	    "github.com/YuminosukeSato/regkit/regression"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    ds, err := dataset.FromSlices([][]float64{{1}, {2}, {3}, {4}, {5}}, []float64{2, 4, 6, 8, 10})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lr := regression.NewLinearRegressor(ds)
//	    if err := lr.Fit(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := lr.Predict(mat.NewDense(1, 1, []float64{6}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", pred[0]) // 12
//	}
//
// # Packages
//
//   - regression: LinearRegressor and LogisticRegressor
//   - dataset: matrix and table datasets, CSV loading, train/test splits
//   - stats: OLS, Logit, Breusch-Pagan, Shapiro-Wilk, Q-Q points, intervals
//   - metrics: confusion matrices, trapezoid and rank AUC, regression metrics
//   - plotting: Q-Q, fitted-line and ROC plots and their renderers
//   - preprocessing: standardisation
//   - core/model: estimator state and capability interfaces
//   - core/parallel: chunked parallel loops
//   - pkg/errors, pkg/log: typed errors and structured logging
//
// The regkit command (cmd/regkit) runs the same workflow on CSV files.
//
// # Error Handling
//
// Methods that need a fitted model return *errors.NotFittedError before Fit
// succeeds. Numerical failures during fitting are reported as
// *errors.FitError; use errors.Is / errors.As from pkg/errors to inspect the
// cause (for example errors.ErrSingularMatrix).
//
// # License
//
// regkit is released under the MIT License.
package regkit
