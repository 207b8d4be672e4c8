package models

// Statistics is the dashboard-wide prediction summary. OverallAccuracy and
// AvgResponseTimeMs are nil until at least one outcome is recorded.
type Statistics struct {
	TotalPredictions        int      `json:"total_predictions"`
	PredictionsWithOutcomes int      `json:"predictions_with_outcomes"`
	CorrectPredictions      int      `json:"correct_predictions"`
	OverallAccuracy         *float64 `json:"overall_accuracy"`
	VaderPredictions        int      `json:"vader_predictions"`
	FinbertPredictions      int      `json:"finbert_predictions"`
	AvgResponseTimeMs       *float64 `json:"avg_response_time_ms"`
	PendingOutcomes         int      `json:"pending_outcomes"`
}

// StatisticsResponse mirrors GET /predictions/statistics.
type StatisticsResponse struct {
	Success    bool       `json:"success"`
	Statistics Statistics `json:"statistics"`
}
