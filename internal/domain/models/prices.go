package models

// PricePoint is one market data sample as the API serves it. Timestamps stay
// strings end to end: the backend emits zone-less ISO and payloads must
// survive a snapshot round trip unchanged.
type PricePoint struct {
	Timestamp string   `json:"timestamp"`
	Price     float64  `json:"price"`
	Volume24h *float64 `json:"volume_24h"`
	Change24h *float64 `json:"change_24h"`
}

// PriceHistory mirrors GET /price/recent.
type PriceHistory struct {
	Success         bool         `json:"success"`
	Symbol          string       `json:"symbol"`
	Hours           int          `json:"hours"`
	Count           int          `json:"count"`
	LatestPrice     *float64     `json:"latest_price"`
	LatestTimestamp *string      `json:"latest_timestamp"`
	Data            []PricePoint `json:"data"`
}
