package models

import "time"

// Panel holds one dashboard panel's latest payload plus where it came from.
// AsOf is when the payload was produced: fetch time for live and golden data,
// snapshot time for cached data.
type Panel[T any] struct {
	Data      T         `json:"data"`
	Source    Source    `json:"source"`
	AsOf      time.Time `json:"as_of"`
	FromCache bool      `json:"from_cache"`
}

// Set applies a fetch result produced at the given time.
func (p *Panel[T]) Set(r Result[T], at time.Time) {
	p.Data = r.Payload
	p.Source = r.Source
	p.AsOf = at
	p.FromCache = false
}

// SetCached hydrates the panel from a snapshot. Snapshots only ever hold
// live payloads, so the source stays live.
func (p *Panel[T]) SetCached(data T, cachedAt time.Time) {
	p.Data = data
	p.Source = SourceLive
	p.AsOf = cachedAt
	p.FromCache = true
}

// IsGolden reports whether the panel currently shows generated sample data.
func (p Panel[T]) IsGolden() bool { return p.Source == SourceGolden }

// Empty reports whether the panel has never been populated.
func (p Panel[T]) Empty() bool { return p.AsOf.IsZero() }

// ConfidencePoint is one prediction's confidence at the time it was made.
type ConfidencePoint struct {
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}

// ConfidenceSeries is the confidence history for one feature set, oldest
// first, with the most recent value pulled out for the headline.
type ConfidenceSeries struct {
	FeatureSet string            `json:"feature_set"`
	Latest     *float64          `json:"latest"`
	Data       []ConfidencePoint `json:"data"`
}

// ConfidenceBundle pairs both models' confidence histories. It is derived
// from the recent predictions feed rather than fetched.
type ConfidenceBundle struct {
	Vader   ConfidenceSeries `json:"vader"`
	Finbert ConfidenceSeries `json:"finbert"`
}

// Board is the full dashboard state: every panel plus the last refresh time.
type Board struct {
	UpdatedAt   time.Time                 `json:"updated_at"`
	Prices      Panel[PriceHistory]       `json:"prices"`
	Sentiment   Panel[SentimentTimeline]  `json:"sentiment"`
	Predictions Panel[RecentPredictions]  `json:"predictions"`
	Confidence  Panel[ConfidenceBundle]   `json:"confidence"`
	Statistics  Panel[StatisticsResponse] `json:"statistics"`
	Timeline    Panel[AccuracyTimeline]   `json:"timeline"`
	Retrain     Panel[RetrainStatus]      `json:"retrain"`
}

// HasGolden reports whether any panel is showing generated sample data.
func (b Board) HasGolden() bool {
	return b.Prices.IsGolden() || b.Sentiment.IsGolden() || b.Predictions.IsGolden() ||
		b.Confidence.IsGolden() || b.Statistics.IsGolden() || b.Timeline.IsGolden() ||
		b.Retrain.IsGolden()
}
