package models

// PredictionLog is one logged prediction with its eventual outcome. Outcome
// fields stay nil until the backend grades the prediction an hour later.
type PredictionLog struct {
	ID                       int64    `json:"id"`
	FeatureSet               string   `json:"feature_set"`
	ModelType                string   `json:"model_type"`
	ModelVersion             string   `json:"model_version"`
	Prediction               int      `json:"prediction"`
	ProbabilityDown          float64  `json:"probability_down"`
	ProbabilityUp            float64  `json:"probability_up"`
	Confidence               float64  `json:"confidence"`
	ActualDirection          *int     `json:"actual_direction"`
	PredictionCorrect        *bool    `json:"prediction_correct"`
	BitcoinPriceAtPrediction *float64 `json:"bitcoin_price_at_prediction"`
	BitcoinPrice1hLater      *float64 `json:"bitcoin_price_1h_later"`
	PriceChangePct           *float64 `json:"price_change_pct"`
	ResponseTimeMs           *float64 `json:"response_time_ms"`
	PredictedAt              string   `json:"predicted_at"`
	OutcomeRecordedAt        *string  `json:"outcome_recorded_at"`
}

// Up reports whether the logged prediction called the price up.
func (p PredictionLog) Up() bool { return p.Prediction == 1 }

// Graded reports whether the outcome has been recorded.
func (p PredictionLog) Graded() bool { return p.PredictionCorrect != nil }

// PredictionQuery selects which predictions to fetch. Zero values mean no
// filter, matching the API's query parameter defaults.
type PredictionQuery struct {
	FeatureSet       string
	ModelType        string
	Limit            int
	OnlyWithOutcomes bool
}

// PredictionFilters echoes back the query filters the API applied.
type PredictionFilters struct {
	FeatureSet       *string `json:"feature_set"`
	ModelType        *string `json:"model_type"`
	OnlyWithOutcomes bool    `json:"only_with_outcomes"`
}

// RecentPredictions mirrors GET /predictions/recent, newest first.
type RecentPredictions struct {
	Success     bool              `json:"success"`
	Count       int               `json:"count"`
	Predictions []PredictionLog   `json:"predictions"`
	Filters     PredictionFilters `json:"filters"`
}
