package log

// Operation context.
const (
	// ComponentKey identifies the package emitting the record.
	// Examples: "metrics", "display", "plotting"
	ComponentKey = "ml.component"

	// OperationKey names the operation being performed.
	OperationKey = "ml.operation"
)

// Data shape.
const (
	// SamplesKey is the number of labels/probabilities in the input.
	SamplesKey = "data.samples"

	// TablesKey is the number of tables passed to a renderer.
	TablesKey = "data.tables"

	// MatricesKey is the number of confusion matrices being aggregated.
	MatricesKey = "data.matrices"

	// BytesKey is the size of an emitted payload in bytes.
	BytesKey = "data.size_bytes"
)

// Metrics and predictions.
const (
	// ThresholdKey records the decision threshold applied to probabilities.
	ThresholdKey = "preds.threshold"

	// PositivesKey is the number of predicted positives.
	PositivesKey = "preds.positives"

	TPRKey = "metrics.tpr"
	FPRKey = "metrics.fpr"
	AUCKey = "metrics.auc"
)

// Error context.
const (
	// ErrorKey holds the error value itself.
	ErrorKey = "error"

	// StacktraceKey holds the stack trace extracted from a cockroachdb error.
	StacktraceKey = "error.stacktrace"

	// ErrorTypeKey categorizes the error, e.g. "DimensionError".
	ErrorTypeKey = "error.type"
)

// Standard operation names.
const (
	OperationConfusionMatrix = "confusion_matrix"
	OperationThresholdSweep  = "threshold_sweep"
	OperationTPRFPR          = "tpr_fpr"
	OperationAUC             = "auc"
	OperationRender          = "render"
	OperationPlot            = "plot"
)
