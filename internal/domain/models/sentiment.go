package models

// SentimentPoint is one scored sample on a sentiment timeline. Scores are
// model outputs in [-1, 1].
type SentimentPoint struct {
	Timestamp string  `json:"timestamp"`
	Score     float64 `json:"score"`
}

// SentimentSeries is the per-model half of the timeline response.
type SentimentSeries struct {
	Count       int              `json:"count"`
	LatestScore *float64         `json:"latest_score"`
	Data        []SentimentPoint `json:"data"`
}

// SentimentTimeline mirrors GET /sentiment/timeline. The API always returns
// both model series, empty when no rows matched the window.
type SentimentTimeline struct {
	Success bool            `json:"success"`
	Hours   int             `json:"hours"`
	Vader   SentimentSeries `json:"vader"`
	Finbert SentimentSeries `json:"finbert"`
}
