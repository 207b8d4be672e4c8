package usecase

import "BitSense/internal/domain/models"

// DeriveConfidence splits a prediction log (newest first, as the API serves
// it) into chart-ready per-model confidence series, oldest first.
func DeriveConfidence(rows []models.PredictionLog) models.ConfidenceBundle {
	return models.ConfidenceBundle{
		Vader:   confidenceSeries("vader", rows),
		Finbert: confidenceSeries("finbert", rows),
	}
}

func confidenceSeries(featureSet string, rows []models.PredictionLog) models.ConfidenceSeries {
	s := models.ConfidenceSeries{
		FeatureSet: featureSet,
		Data:       []models.ConfidencePoint{},
	}
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if r.FeatureSet != featureSet {
			continue
		}
		s.Data = append(s.Data, models.ConfidencePoint{
			Timestamp:  r.PredictedAt,
			Confidence: r.Confidence,
		})
	}
	if len(s.Data) > 0 {
		latest := s.Data[len(s.Data)-1].Confidence
		s.Latest = &latest
	}
	return s
}
