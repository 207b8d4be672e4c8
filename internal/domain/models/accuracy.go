package models

// AccuracyStats is the graded performance breakdown for one model. When no
// graded predictions exist the API returns zero totals, a nil accuracy and a
// message instead of the full breakdown; decoding tolerates either shape.
type AccuracyStats struct {
	FeatureSet             string   `json:"feature_set"`
	ModelType              string   `json:"model_type"`
	PeriodDays             int      `json:"period_days"`
	TotalPredictions       int      `json:"total_predictions"`
	CorrectPredictions     int      `json:"correct_predictions"`
	IncorrectPredictions   int      `json:"incorrect_predictions"`
	Accuracy               *float64 `json:"accuracy"`
	UpPredictions          int      `json:"up_predictions"`
	UpCorrect              int      `json:"up_correct"`
	UpAccuracy             *float64 `json:"up_accuracy"`
	DownPredictions        int      `json:"down_predictions"`
	DownCorrect            int      `json:"down_correct"`
	DownAccuracy           *float64 `json:"down_accuracy"`
	AvgConfidence          *float64 `json:"avg_confidence"`
	AvgConfidenceCorrect   *float64 `json:"avg_confidence_when_correct"`
	AvgConfidenceIncorrect *float64 `json:"avg_confidence_when_incorrect"`
	Message                string   `json:"message,omitempty"`
}

// AccuracyResponse mirrors GET /predictions/accuracy.
type AccuracyResponse struct {
	Success       bool          `json:"success"`
	AccuracyStats AccuracyStats `json:"accuracy_stats"`
}

// DailyAccuracyPoint is one calendar day of graded outcomes. Accuracy is nil
// on days with predictions but no recorded outcomes yet.
type DailyAccuracyPoint struct {
	Date        string   `json:"date"`
	Accuracy    *float64 `json:"accuracy"`
	Predictions int      `json:"predictions"`
	Correct     int      `json:"correct"`
}

// DailyAccuracy mirrors GET /predictions/daily-accuracy.
type DailyAccuracy struct {
	Success       bool                 `json:"success"`
	FeatureSet    string               `json:"feature_set"`
	ModelType     string               `json:"model_type"`
	Days          int                  `json:"days"`
	DailyAccuracy []DailyAccuracyPoint `json:"daily_accuracy"`
}

// AccuracyWindowPoint is one rolling-window accuracy sample.
type AccuracyWindowPoint struct {
	Timestamp  string  `json:"timestamp"`
	Accuracy   float64 `json:"accuracy"`
	WindowSize int     `json:"window_size"`
}

// AccuracyTimeline mirrors GET /predictions/accuracy-timeline with one
// rolling series per model.
type AccuracyTimeline struct {
	Success         bool                  `json:"success"`
	Hours           int                   `json:"hours"`
	VaderAccuracy   []AccuracyWindowPoint `json:"vader_accuracy"`
	FinbertAccuracy []AccuracyWindowPoint `json:"finbert_accuracy"`
}
