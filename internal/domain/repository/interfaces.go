package repository

import (
	"context"

	"BitSense/internal/domain/models"
)

// Feed methods never return an error: on any failure they substitute
// generated data and tag the result golden.
type Feed interface {
	RecentPrices(ctx context.Context, symbol string, hours, limit int) models.Result[models.PriceHistory]
	SentimentTimeline(ctx context.Context, hours, limit int) models.Result[models.SentimentTimeline]
	RecentPredictions(ctx context.Context, q models.PredictionQuery) models.Result[models.RecentPredictions]
	Statistics(ctx context.Context) models.Result[models.StatisticsResponse]
	ModelAccuracy(ctx context.Context, featureSet, modelType string, days int) models.Result[models.AccuracyResponse]
	DailyAccuracy(ctx context.Context, featureSet, modelType string, days int) models.Result[models.DailyAccuracy]
	AccuracyTimeline(ctx context.Context, hours int) models.Result[models.AccuracyTimeline]
	RetrainStatus(ctx context.Context) models.Result[models.RetrainStatus]
}

// Actions mutate backend state and fail closed: no substitution.
type Actions interface {
	PredictBoth(ctx context.Context) (*models.DualPrediction, error)
	ExecuteRetrain(ctx context.Context, featureSet, modelType string, deployIfBetter bool) (*models.RetrainResult, error)
}

type Prober interface {
	Health(ctx context.Context) (*models.Health, error) // liveness, no fallback
}

type Metrics interface {
	RecordRequest(endpoint, source string)
	RecordFallback(endpoint, reason string)
	RecordLatency(endpoint string, seconds float64)
	RecordSnapshot(op, result string)
	RecordRefreshCompleted()
}
