package models

// Probability carries the class probabilities behind a prediction.
type Probability struct {
	Down float64 `json:"down"`
	Up   float64 `json:"up"`
}

// ModelPrediction is the direction call one model made.
type ModelPrediction struct {
	Direction        string      `json:"direction"`
	DirectionNumeric int         `json:"direction_numeric"`
	Probability      Probability `json:"probability"`
	Accuracy         *float64    `json:"accuracy"`
	AccuracyPeriod   string      `json:"accuracy_period"`
}

// ModelInfo identifies which trained artifact produced a prediction.
type ModelInfo struct {
	FeatureSet   string `json:"feature_set"`
	ModelType    string `json:"model_type"`
	ModelVersion string `json:"model_version"`
}

// ModelResult is one model's half of a dual prediction.
type ModelResult struct {
	Success      bool            `json:"success"`
	Prediction   ModelPrediction `json:"prediction"`
	ModelInfo    ModelInfo       `json:"model_info"`
	PredictionID *int64          `json:"prediction_id"`
}

// PredictPerformance reports how long the backend spent serving the call.
type PredictPerformance struct {
	TotalResponseTimeMs float64 `json:"total_response_time_ms"`
}

// DualPrediction mirrors POST /predict/both: both models score the same
// feature snapshot in one round trip.
type DualPrediction struct {
	Vader       ModelResult        `json:"vader"`
	Finbert     ModelResult        `json:"finbert"`
	Performance PredictPerformance `json:"performance"`
}
