package predictapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"BitSense/internal/domain/models"
	xhttp "BitSense/pkg/http"
	"BitSense/pkg/logger"
)

const (
	pathPredictBoth    = "/predict/both"
	pathRetrainExecute = "/retrain/execute"
	pathHealth         = "/health"

	epPredictBoth    = "predict_both"
	epRetrainExecute = "retrain_execute"
	epHealth         = "health"

	// sourceError labels fail-closed calls that returned an error.
	sourceError = "error"
)

// PredictBoth asks both models to score the current features. Mutating
// calls get no golden substitute; failures propagate.
func (c *Client) PredictBoth(ctx context.Context) (*models.DualPrediction, error) {
	var out models.DualPrediction
	start := time.Now()
	err := c.call(ctx, xhttp.MethodPost, pathPredictBoth, nil, &out)
	c.metrics.RecordLatency(epPredictBoth, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordRequest(epPredictBoth, sourceError)
		c.log.Error("dual prediction failed", logger.Error(err))
		return nil, fmt.Errorf("predict both: %w", err)
	}
	c.live(epPredictBoth)
	return &out, nil
}

// ExecuteRetrain triggers retraining for one model. Fail closed.
func (c *Client) ExecuteRetrain(ctx context.Context, featureSet, modelType string, deployIfBetter bool) (*models.RetrainResult, error) {
	if featureSet == "" {
		return nil, fmt.Errorf("execute retrain: feature set required")
	}
	query := url.Values{
		"feature_set":      {featureSet},
		"deploy_if_better": {strconv.FormatBool(deployIfBetter)},
	}
	if modelType != "" {
		query.Set("model_type", modelType)
	}

	var out models.RetrainResult
	start := time.Now()
	err := c.call(ctx, xhttp.MethodPost, pathRetrainExecute, query, &out)
	c.metrics.RecordLatency(epRetrainExecute, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordRequest(epRetrainExecute, sourceError)
		c.log.Error("retrain trigger failed",
			logger.String("feature_set", featureSet),
			logger.Error(err),
		)
		return nil, fmt.Errorf("execute retrain: %w", err)
	}
	c.live(epRetrainExecute)
	return &out, nil
}

// Health probes the backend liveness. Fail closed, never substituted.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	start := time.Now()
	err := c.call(ctx, xhttp.MethodGet, pathHealth, nil, &out)
	c.metrics.RecordLatency(epHealth, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordRequest(epHealth, sourceError)
		return nil, fmt.Errorf("health: %w", err)
	}
	c.live(epHealth)
	return &out, nil
}
