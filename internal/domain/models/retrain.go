package models

import "encoding/json"

// RetrainModelStatus says whether one model is due for retraining and why.
type RetrainModelStatus struct {
	ShouldRetrain bool     `json:"should_retrain"`
	Reasons       []string `json:"reasons"`
	DataAvailable int      `json:"data_available"`
	DataRequired  int      `json:"data_required"`
}

// RetrainThresholds are the trigger levels the backend evaluates against.
type RetrainThresholds struct {
	AccuracyDegradation float64 `json:"accuracy_degradation"`
	DriftSeverity       string  `json:"drift_severity"`
	MinSamples          int     `json:"min_samples"`
	MinPredictions      int     `json:"min_predictions"`
}

// RetrainChecks groups the per-model verdicts with the thresholds used.
type RetrainChecks struct {
	Vader      RetrainModelStatus `json:"vader"`
	Finbert    RetrainModelStatus `json:"finbert"`
	Thresholds RetrainThresholds  `json:"thresholds"`
}

// RetrainStatus mirrors GET /retrain/status.
type RetrainStatus struct {
	Success   bool          `json:"success"`
	Status    RetrainChecks `json:"status"`
	Timestamp string        `json:"timestamp"`
}

// RetrainResult mirrors POST /retrain/execute. The result payload is shaped
// by whichever trainer ran, so it is kept raw for display.
type RetrainResult struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}
