package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

func design1(x []float64) *mat.Dense {
	d := mat.NewDense(len(x), 2, nil)
	for i, v := range x {
		d.Set(i, 0, 1)
		d.Set(i, 1, v)
	}
	return d
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.10g, want %.10g (tol %g)", name, got, want, tol)
	}
}

func TestOLSReferenceValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.2, 4.1, 6.3, 7.9, 10.1}

	res, err := OLS(design1(x), y)
	if err != nil {
		t.Fatalf("OLS: %v", err)
	}

	approx(t, "const", res.Params[0], 0.24, 1e-10)
	approx(t, "slope", res.Params[1], 1.96, 1e-10)
	approx(t, "se const", res.StdErr[0], 0.16248076809271914, 1e-10)
	approx(t, "se slope", res.StdErr[1], 0.048989794855663536, 1e-10)
	approx(t, "R2", res.R2, 0.9981292870505093, 1e-10)
	approx(t, "AdjR2", res.AdjR2, 0.9975057160673457, 1e-10)
	approx(t, "scale", res.Scale, 0.024, 1e-10)
	approx(t, "F", res.FValue, 1600.666666666668, 1e-6)
	if res.DFResid != 3 || res.DFModel != 1 {
		t.Errorf("df = (%d, %d), want (1, 3)", res.DFModel, res.DFResid)
	}
	if res.PValues[1] > 1e-4 {
		t.Errorf("slope p-value = %v, expected highly significant", res.PValues[1])
	}

	conf, pred, err := res.Intervals([]float64{1, 6}, 0.05)
	if err != nil {
		t.Fatalf("Intervals: %v", err)
	}
	approx(t, "mean", conf.Estimate, 12.0, 1e-10)
	approx(t, "conf lower", conf.Lower, 11.482913679903577, 1e-6)
	approx(t, "conf upper", conf.Upper, 12.517086320096423, 1e-6)
	approx(t, "pred lower", pred.Lower, 11.285542576429302, 1e-6)
	approx(t, "pred upper", pred.Upper, 12.714457423570698, 1e-6)
	if !pred.Contains(conf) {
		t.Errorf("prediction interval %v should contain confidence interval %v", pred, conf)
	}
}

func TestOLSPerfectFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}

	res, err := OLS(design1(x), y)
	if err != nil {
		t.Fatalf("OLS: %v", err)
	}
	approx(t, "const", res.Params[0], 0, 1e-9)
	approx(t, "slope", res.Params[1], 2, 1e-9)
	approx(t, "AdjR2", res.AdjR2, 1, 1e-9)

	pred, err := res.Predict(design1([]float64{6}))
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "Predict(6)", pred[0], 12, 1e-9)
}

func TestOLSErrors(t *testing.T) {
	t.Run("singular", func(t *testing.T) {
		d := mat.NewDense(4, 3, []float64{
			1, 1, 2,
			1, 2, 4,
			1, 3, 6,
			1, 4, 8,
		})
		_, err := OLS(d, []float64{1, 2, 3, 4})
		if !errors.Is(err, errors.ErrSingularMatrix) {
			t.Fatalf("expected ErrSingularMatrix, got %v", err)
		}
	})
	t.Run("length mismatch", func(t *testing.T) {
		_, err := OLS(design1([]float64{1, 2, 3}), []float64{1, 2})
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Fatalf("expected DimensionError, got %v", err)
		}
	})
	t.Run("too few rows", func(t *testing.T) {
		_, err := OLS(design1([]float64{1, 2}), []float64{1, 2})
		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected ValueError, got %v", err)
		}
	})
	t.Run("bad alpha", func(t *testing.T) {
		res, err := OLS(design1([]float64{1, 2, 3, 4}), []float64{1, 3, 2, 5})
		if err != nil {
			t.Fatal(err)
		}
		for _, alpha := range []float64{0, 1, -0.1, 1.5} {
			if _, _, err := res.Intervals([]float64{1, 2}, alpha); err == nil {
				t.Errorf("alpha=%v: expected error", alpha)
			}
		}
	})
}

func TestIntervalsNestedAcrossAlphas(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	n := 60
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64() * 10
		y[i] = 1.5 + 0.7*x[i] + rng.NormFloat64()
	}
	res, err := OLS(design1(x), y)
	if err != nil {
		t.Fatal(err)
	}
	for _, alpha := range []float64{0.01, 0.05, 0.1, 0.5} {
		for _, x0 := range []float64{-5, 0, 5, 20} {
			conf, pred, err := res.Intervals([]float64{1, x0}, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if !pred.Contains(conf) || conf.Width() <= 0 {
				t.Errorf("alpha=%v x0=%v: conf %v not inside pred %v", alpha, x0, conf, pred)
			}
		}
	}
}

func TestLogitReferenceValues(t *testing.T) {
	x := []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5}
	y := []float64{0, 0, 1, 0, 0, 1, 0, 1, 1, 1}

	res, err := Logit(design1(x), y, LogitSettings{})
	if err != nil {
		t.Fatalf("Logit: %v", err)
	}
	if !res.Converged {
		t.Errorf("expected convergence, status %v", res.Status)
	}
	approx(t, "const", res.Params[0], -2.990331925646122, 1e-5)
	approx(t, "slope", res.Params[1], 1.0873934275076806, 1e-5)
	approx(t, "se const", res.StdErr[0], 2.009493818493835, 1e-4)
	approx(t, "se slope", res.StdErr[1], 0.6723285955320384, 1e-4)
	approx(t, "loglike", res.LogLike, -4.941579983434302, 1e-8)
	approx(t, "llnull", res.LLNull, -6.931471805599453, 1e-12)
	approx(t, "pseudo R2", res.PseudoR2, 0.2870807063743167, 1e-6)

	p, err := res.Predict(design1([]float64{6}))
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "P(y=1|x=6)", p[0], 0.9716406331015094, 1e-5)

	ci, err := res.ConfidenceInterval([]float64{1, 6}, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if !(ci.Lower < ci.Estimate && ci.Estimate < ci.Upper && ci.Lower > 0 && ci.Upper < 1) {
		t.Errorf("unexpected interval %v", ci)
	}
}

func TestLogitRejectsNonBinaryResponse(t *testing.T) {
	_, err := Logit(design1([]float64{1, 2, 3, 4}), []float64{0, 1, 2, 1}, LogitSettings{})
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLogitSeparableWarns(t *testing.T) {
	var warned error
	prev := errors.GetWarningHandler()
	errors.SetWarningHandler(func(w error) { warned = w })
	defer errors.SetWarningHandler(prev)

	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	res, err := Logit(design1(x), y, LogitSettings{MaxIter: 20})
	if err != nil {
		t.Fatalf("separable data should still return finite estimates, got %v", err)
	}
	if res.Converged {
		t.Error("separable data should not report convergence")
	}
	var cw *errors.ConvergenceWarning
	if !errors.As(warned, &cw) {
		t.Fatalf("expected ConvergenceWarning, got %v", warned)
	}

	p, err := res.Predict(design1(x))
	if err != nil {
		t.Fatal(err)
	}
	for i := range p {
		if (y[i] == 1) != (p[i] > 0.5) {
			t.Errorf("row %d: p=%v does not separate y=%v", i, p[i], y[i])
		}
	}
}

func TestSigmoid(t *testing.T) {
	approx(t, "sigmoid(0)", Sigmoid(0), 0.5, 0)
	approx(t, "sigmoid(800)", Sigmoid(800), 1, 0)
	approx(t, "sigmoid(-800)", Sigmoid(-800), 0, 1e-300)
	approx(t, "sigmoid(2)+sigmoid(-2)", Sigmoid(2)+Sigmoid(-2), 1, 1e-15)
}

func TestBreuschPaganReferenceValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.2, 4.1, 6.3, 7.9, 10.1}
	ols, err := OLS(design1(x), y)
	if err != nil {
		t.Fatal(err)
	}

	bp, err := BreuschPagan(ols.Residuals, design1(x))
	if err != nil {
		t.Fatalf("BreuschPagan: %v", err)
	}
	approx(t, "LM", bp.LM, 0.5952380952380992, 1e-8)
	approx(t, "LM p", bp.LMPValue, 0.4404006981390016, 1e-6)
	approx(t, "F", bp.FValue, 0.4054054054054085, 1e-8)
	if bp.DF != 1 {
		t.Errorf("DF = %d, want 1", bp.DF)
	}
}

func TestBreuschPaganZeroResiduals(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	_, err := BreuschPagan(make([]float64, len(x)), design1(x))
	var ve *errors.ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValueError for zero residuals, got %v", err)
	}
}

func TestBreuschPaganDetectsHeteroscedasticity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	n := 200
	x := make([]float64, n)
	hetero := make([]float64, n)
	homo := make([]float64, n)
	for i := range x {
		x[i] = 1 + 9*float64(i)/float64(n)
		hetero[i] = 2 + 3*x[i] + x[i]*x[i]*rng.NormFloat64()
		homo[i] = 2 + 3*x[i] + rng.NormFloat64()
	}

	check := func(y []float64) float64 {
		ols, err := OLS(design1(x), y)
		if err != nil {
			t.Fatal(err)
		}
		bp, err := BreuschPagan(ols.Residuals, design1(x))
		if err != nil {
			t.Fatal(err)
		}
		return bp.LMPValue
	}
	if p := check(hetero); p > 1e-4 {
		t.Errorf("heteroscedastic p-value = %v, want < 1e-4", p)
	}
	if p := check(homo); p < 1e-4 {
		t.Errorf("homoscedastic p-value = %v unexpectedly small", p)
	}
}

func TestShapiroWilkReferenceValues(t *testing.T) {
	tests := []struct {
		name  string
		x     []float64
		wantW float64
		wantP float64
	}{
		{
			name:  "skewed sample",
			x:     []float64{0.11, 7.87, 4.61, 10.14, 7.95, 3.14, 0.46, 4.43, 0.21, 4.75, 0.71, 1.52, 3.24, 0.93, 0.42, 4.97, 9.53, 4.55, 0.47, 6.66},
			wantW: 0.90047299861907959,
			wantP: 0.042089745402336121,
		},
		{
			name:  "near normal sample",
			x:     []float64{1.36, 1.14, 2.92, 2.55, 1.46, 1.06, 5.27, -1.11, 3.48, 1.10, 0.88, -0.51, 1.46, 0.52, 6.20, 1.69, 0.08, 3.67, 2.81, 3.49},
			wantW: 0.9590270,
			wantP: 0.52460,
		},
		{
			name:  "small sample",
			x:     []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236},
			wantW: 0.7888146948353878,
			wantP: 0.006703814056502999,
		},
		{
			name:  "n=3",
			x:     []float64{1, 2, 4},
			wantW: 0.9642857142857146,
			wantP: 0.6368868450289714,
		},
		{
			name:  "n=5",
			x:     []float64{1, 2, 3, 4, 5},
			wantW: 0.9867621554477195,
			wantP: 0.9671739359680402,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ShapiroWilk(tt.x)
			if err != nil {
				t.Fatalf("ShapiroWilk: %v", err)
			}
			approx(t, "W", res.W, tt.wantW, 1e-5)
			approx(t, "p", res.PValue, tt.wantP, 1e-4)
		})
	}
}

func TestShapiroWilkErrors(t *testing.T) {
	if _, err := ShapiroWilk([]float64{1, 2}); err == nil {
		t.Error("expected error for n < 3")
	}
	if _, err := ShapiroWilk([]float64{3, 3, 3, 3}); err == nil {
		t.Error("expected error for identical observations")
	}
	if _, err := ShapiroWilk([]float64{1, math.NaN(), 3}); err == nil {
		t.Error("expected error for NaN input")
	}
}

func TestNormalQQ(t *testing.T) {
	qq, err := NormalQQ([]float64{3, -1, 2, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(qq.Theoretical) != 5 || len(qq.Sample) != 5 {
		t.Fatalf("lengths = %d, %d", len(qq.Theoretical), len(qq.Sample))
	}
	// 中央の理論分位点は Phi^-1(0.5) = 0
	approx(t, "theoretical[2]", qq.Theoretical[2], 0, 1e-12)
	approx(t, "theoretical symmetry", qq.Theoretical[0]+qq.Theoretical[4], 0, 1e-12)
	// 標準化: 平均1、母標準偏差 sqrt(2)
	approx(t, "sample[0]", qq.Sample[0], -2/math.Sqrt2, 1e-12)
	for i := 1; i < 5; i++ {
		if qq.Sample[i] < qq.Sample[i-1] || qq.Theoretical[i] <= qq.Theoretical[i-1] {
			t.Fatal("quantiles must be sorted")
		}
	}
}
