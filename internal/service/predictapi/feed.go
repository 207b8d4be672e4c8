package predictapi

import (
	"context"
	"net/url"
	"strconv"

	"BitSense/internal/domain/models"
)

// Backend paths with the short endpoint names used in logs and metrics.
const (
	pathPrices           = "/price/recent"
	pathSentiment        = "/sentiment/timeline"
	pathPredictions      = "/predictions/recent"
	pathStatistics       = "/predictions/statistics"
	pathAccuracy         = "/predictions/accuracy"
	pathDailyAccuracy    = "/predictions/daily-accuracy"
	pathAccuracyTimeline = "/predictions/accuracy-timeline"
	pathRetrainStatus    = "/retrain/status"

	epPrices           = "prices"
	epSentiment        = "sentiment"
	epPredictions      = "predictions"
	epStatistics       = "statistics"
	epAccuracy         = "accuracy"
	epDailyAccuracy    = "daily_accuracy"
	epAccuracyTimeline = "accuracy_timeline"
	epRetrainStatus    = "retrain_status"
)

// windowQuery builds the shared hours/limit lookback filter. Zero values
// are omitted so the backend applies its own defaults.
func windowQuery(hours, limit int) url.Values {
	q := url.Values{}
	if hours > 0 {
		q.Set("hours", strconv.Itoa(hours))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// modelQuery builds the shared feature-set/model-type/days filter.
func modelQuery(featureSet, modelType string, days int) url.Values {
	q := url.Values{}
	if featureSet != "" {
		q.Set("feature_set", featureSet)
	}
	if modelType != "" {
		q.Set("model_type", modelType)
	}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return q
}

// RecentPrices fetches the recent price history, golden on failure.
func (c *Client) RecentPrices(ctx context.Context, symbol string, hours, limit int) models.Result[models.PriceHistory] {
	query := windowQuery(hours, limit)
	if symbol != "" {
		query.Set("symbol", symbol)
	}

	out, err := fetch[models.PriceHistory](ctx, c, epPrices, pathPrices, query)
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epPrices, err)
		return models.Golden(c.golden.Prices(symbol, hours, limit))
	}
	c.live(epPrices)
	return models.Live(out)
}

// SentimentTimeline fetches both models' sentiment series, golden on failure.
func (c *Client) SentimentTimeline(ctx context.Context, hours, limit int) models.Result[models.SentimentTimeline] {
	out, err := fetch[models.SentimentTimeline](ctx, c, epSentiment, pathSentiment, windowQuery(hours, limit))
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epSentiment, err)
		return models.Golden(c.golden.Sentiment(hours, limit))
	}
	c.live(epSentiment)
	return models.Live(out)
}

// RecentPredictions fetches the latest logged predictions, golden on failure.
func (c *Client) RecentPredictions(ctx context.Context, q models.PredictionQuery) models.Result[models.RecentPredictions] {
	query := modelQuery(q.FeatureSet, q.ModelType, 0)
	query.Set("only_with_outcomes", strconv.FormatBool(q.OnlyWithOutcomes))
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	out, err := fetch[models.RecentPredictions](ctx, c, epPredictions, pathPredictions, query)
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epPredictions, err)
		return models.Golden(c.golden.Predictions(q))
	}
	c.live(epPredictions)
	return models.Live(out)
}

// Statistics fetches the overall prediction summary, golden on failure.
func (c *Client) Statistics(ctx context.Context) models.Result[models.StatisticsResponse] {
	out, err := fetch[models.StatisticsResponse](ctx, c, epStatistics, pathStatistics, nil)
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epStatistics, err)
		return models.Golden(c.golden.Statistics())
	}
	c.live(epStatistics)
	return models.Live(out)
}

// ModelAccuracy fetches one model's accuracy breakdown, golden on failure.
func (c *Client) ModelAccuracy(ctx context.Context, featureSet, modelType string, days int) models.Result[models.AccuracyResponse] {
	out, err := fetch[models.AccuracyResponse](ctx, c, epAccuracy, pathAccuracy, modelQuery(featureSet, modelType, days))
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epAccuracy, err)
		return models.Golden(c.golden.Accuracy(featureSet, modelType, days))
	}
	c.live(epAccuracy)
	return models.Live(out)
}

// DailyAccuracy fetches one model's per-day accuracy, golden on failure.
func (c *Client) DailyAccuracy(ctx context.Context, featureSet, modelType string, days int) models.Result[models.DailyAccuracy] {
	out, err := fetch[models.DailyAccuracy](ctx, c, epDailyAccuracy, pathDailyAccuracy, modelQuery(featureSet, modelType, days))
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epDailyAccuracy, err)
		return models.Golden(c.golden.DailyAccuracy(featureSet, modelType, days))
	}
	c.live(epDailyAccuracy)
	return models.Live(out)
}

// AccuracyTimeline fetches the rolling accuracy series, golden on failure.
func (c *Client) AccuracyTimeline(ctx context.Context, hours int) models.Result[models.AccuracyTimeline] {
	out, err := fetch[models.AccuracyTimeline](ctx, c, epAccuracyTimeline, pathAccuracyTimeline, windowQuery(hours, 0))
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epAccuracyTimeline, err)
		return models.Golden(c.golden.AccuracyTimeline(hours))
	}
	c.live(epAccuracyTimeline)
	return models.Live(out)
}

// RetrainStatus fetches the retraining checks, golden on failure.
func (c *Client) RetrainStatus(ctx context.Context) models.Result[models.RetrainStatus] {
	out, err := fetch[models.RetrainStatus](ctx, c, epRetrainStatus, pathRetrainStatus, nil)
	if err == nil && !out.Success {
		err = errShape()
	}
	if err != nil {
		c.fallback(epRetrainStatus, err)
		return models.Golden(c.golden.RetrainStatus())
	}
	c.live(epRetrainStatus)
	return models.Live(out)
}
