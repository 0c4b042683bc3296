// Package log defines standard attribute keys for regression operations.
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") so that fit, diagnostic and evaluation records can be
// filtered uniformly.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of regressor.
	// Examples: "LinearRegressor", "LogisticRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "train", "roc", ...
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of observations.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of predictors, excluding the intercept.
	FeaturesKey = "data.features"

	// DataKindKey is the container kind of the dataset ("matrix" or "table").
	DataKindKey = "data.kind"

	// TrainSamplesKey and TestSamplesKey describe a train/test split.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"
)

// Fit statistics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² for linear fits.
	R2ScoreKey = "metrics.r2_score"

	// AdjR2Key records the adjusted R² for linear fits.
	AdjR2Key = "metrics.adj_r2"

	// PseudoR2Key records McFadden's pseudo R² for logistic fits.
	PseudoR2Key = "metrics.pseudo_r2"

	// LogLikelihoodKey records the maximised log-likelihood.
	LogLikelihoodKey = "metrics.log_likelihood"

	// IterationKey records the number of optimiser iterations.
	IterationKey = "training.iteration"

	// ConvergedKey reports whether the optimiser converged.
	ConvergedKey = "training.converged"
)

// Diagnostics and evaluation
const (
	// TestNameKey names a hypothesis test ("breusch_pagan", "shapiro_wilk").
	TestNameKey = "test.name"

	// StatisticKey records a test statistic.
	StatisticKey = "test.statistic"

	// PValueKey records a test p-value.
	PValueKey = "test.p_value"

	// ThresholdKey records the probability cutoff used for classification.
	ThresholdKey = "preds.threshold"

	// YoudenKey records the Youden index at ThresholdKey.
	YoudenKey = "metrics.youden"

	// AUCKey records the area under the ROC curve.
	AUCKey = "metrics.auc"

	// QualityKey records the AUC quality band.
	QualityKey = "metrics.quality"

	// RMSEKey and LogLossKey record out-of-sample errors.
	RMSEKey    = "metrics.rmse"
	LogLossKey = "metrics.log_loss"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Configuration
const (
	// RandomSeedKey records the random seed used for splitting.
	RandomSeedKey = "config.random_seed"

	// SplitPolicyKey records how thresholds share train/test splits.
	SplitPolicyKey = "config.split_policy"

	// CurveMetricKey records whether curves use rates or raw counts.
	CurveMetricKey = "config.curve_metric"
)

// Standard attribute values.
const (
	OperationFit         = "fit"
	OperationPredict     = "predict"
	OperationIntervals   = "intervals"
	OperationTrain       = "train"
	OperationEvaluate    = "evaluate"
	OperationConfusion   = "confusion_matrix"
	OperationROC         = "roc"
	OperationDiagnostics = "diagnostics"
	OperationPlot        = "plot"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
