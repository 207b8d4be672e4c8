package usecase

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"BitSense/internal/domain/models"
	"BitSense/pkg/cache"
	"BitSense/pkg/logger"
)

type fakeFeed struct {
	source models.Source
	gate   chan struct{}
	calls  int32
}

func (f *fakeFeed) enter() {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeFeed) RecentPrices(ctx context.Context, symbol string, hours, limit int) models.Result[models.PriceHistory] {
	f.enter()
	price := 67000.5
	return models.Result[models.PriceHistory]{Source: f.source, Payload: models.PriceHistory{
		Success:     true,
		Symbol:      symbol,
		Hours:       hours,
		Count:       1,
		LatestPrice: &price,
		Data:        []models.PricePoint{{Timestamp: "2026-08-25T10:00:00.000000", Price: price}},
	}}
}

func (f *fakeFeed) SentimentTimeline(ctx context.Context, hours, limit int) models.Result[models.SentimentTimeline] {
	f.enter()
	return models.Result[models.SentimentTimeline]{Source: f.source, Payload: models.SentimentTimeline{
		Success: true,
		Hours:   hours,
	}}
}

func (f *fakeFeed) RecentPredictions(ctx context.Context, q models.PredictionQuery) models.Result[models.RecentPredictions] {
	f.enter()
	rows := []models.PredictionLog{
		{ID: 2, FeatureSet: "finbert", Confidence: 0.81, PredictedAt: "2026-08-25T10:00:00.000000"},
		{ID: 1, FeatureSet: "vader", Confidence: 0.64, PredictedAt: "2026-08-25T09:00:00.000000"},
	}
	return models.Result[models.RecentPredictions]{Source: f.source, Payload: models.RecentPredictions{
		Success:     true,
		Count:       len(rows),
		Predictions: rows,
	}}
}

func (f *fakeFeed) Statistics(ctx context.Context) models.Result[models.StatisticsResponse] {
	f.enter()
	return models.Result[models.StatisticsResponse]{Source: f.source, Payload: models.StatisticsResponse{
		Success:    true,
		Statistics: models.Statistics{TotalPredictions: 12, PredictionsWithOutcomes: 9, PendingOutcomes: 3},
	}}
}

func (f *fakeFeed) ModelAccuracy(ctx context.Context, featureSet, modelType string, days int) models.Result[models.AccuracyResponse] {
	f.enter()
	return models.Result[models.AccuracyResponse]{Source: f.source, Payload: models.AccuracyResponse{Success: true}}
}

func (f *fakeFeed) DailyAccuracy(ctx context.Context, featureSet, modelType string, days int) models.Result[models.DailyAccuracy] {
	f.enter()
	return models.Result[models.DailyAccuracy]{Source: f.source, Payload: models.DailyAccuracy{Success: true}}
}

func (f *fakeFeed) AccuracyTimeline(ctx context.Context, hours int) models.Result[models.AccuracyTimeline] {
	f.enter()
	return models.Result[models.AccuracyTimeline]{Source: f.source, Payload: models.AccuracyTimeline{
		Success: true,
		Hours:   hours,
	}}
}

func (f *fakeFeed) RetrainStatus(ctx context.Context) models.Result[models.RetrainStatus] {
	f.enter()
	return models.Result[models.RetrainStatus]{Source: f.source, Payload: models.RetrainStatus{Success: true}}
}

type fakeMetrics struct {
	snapshots map[string]int
	refreshes int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{snapshots: map[string]int{}}
}

func (m *fakeMetrics) RecordRequest(string, string)  {}
func (m *fakeMetrics) RecordFallback(string, string) {}
func (m *fakeMetrics) RecordLatency(string, float64) {}

func (m *fakeMetrics) RecordSnapshot(op, result string) {
	m.snapshots[op+"|"+result]++
}

func (m *fakeMetrics) RecordRefreshCompleted() {
	m.refreshes++
}

func newTestRefresher(feed *fakeFeed) (*Refresher, *cache.MemoryStore, *fakeMetrics) {
	store := cache.NewMemoryStore()
	fm := newFakeMetrics()
	r := NewRefresher(feed, store, fm, logger.Nop(), RefreshConfig{PredictionLimit: 20})
	return r, store, fm
}

func TestRefreshPopulatesBoardAndSavesSnapshots(t *testing.T) {
	ctx := context.Background()
	r, store, fm := newTestRefresher(&fakeFeed{source: models.SourceLive})

	r.RefreshNow(ctx)

	board := r.Board()
	if board.UpdatedAt.IsZero() {
		t.Fatalf("expected board update time")
	}
	if board.HasGolden() {
		t.Fatalf("live feed should not leave golden panels")
	}
	if board.Prices.Empty() || board.Prices.FromCache {
		t.Fatalf("prices panel not refreshed: %+v", board.Prices)
	}
	if board.Confidence.Source != models.SourceLive {
		t.Fatalf("confidence should inherit the prediction source")
	}
	if board.Confidence.Data.Vader.Latest == nil || *board.Confidence.Data.Vader.Latest != 0.64 {
		t.Fatalf("confidence not derived from predictions: %+v", board.Confidence.Data.Vader)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{KeyConfidence, KeyPriceData, KeyPredictions, KeySentiment, KeyStatistics}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("snapshot keys = %v, want %v", keys, want)
	}
	if fm.snapshots["save|ok"] != 5 {
		t.Fatalf("expected 5 snapshot saves, got %v", fm.snapshots)
	}
	if fm.refreshes != 1 {
		t.Fatalf("expected 1 completed refresh, got %d", fm.refreshes)
	}

	entry, ok := cache.Load[models.PriceHistory](ctx, store, KeyPriceData)
	if !ok || entry.Data.Symbol != "BTC" {
		t.Fatalf("price snapshot missing or wrong: ok=%v data=%+v", ok, entry.Data)
	}
}

func TestRefreshNeverCachesGolden(t *testing.T) {
	ctx := context.Background()
	r, store, fm := newTestRefresher(&fakeFeed{source: models.SourceGolden})

	r.RefreshNow(ctx)

	board := r.Board()
	if !board.HasGolden() {
		t.Fatalf("expected golden panels")
	}
	if board.Confidence.Source != models.SourceGolden {
		t.Fatalf("confidence should inherit the golden source")
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("golden payloads must not be cached, found %v", keys)
	}
	if fm.snapshots["save|ok"] != 0 {
		t.Fatalf("expected no snapshot saves, got %v", fm.snapshots)
	}
}

func TestPrimeHydratesCachedPanels(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	cachedAt := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	snapshot := models.PriceHistory{Success: true, Symbol: "BTC", Count: 3}
	if err := cache.SaveAt(ctx, store, KeyPriceData, snapshot, cachedAt); err != nil {
		t.Fatalf("save: %v", err)
	}

	fm := newFakeMetrics()
	r := NewRefresher(&fakeFeed{source: models.SourceLive}, store, fm, logger.Nop(), RefreshConfig{})

	r.Prime(ctx)

	board := r.Board()
	if board.Prices.Empty() || !board.Prices.FromCache {
		t.Fatalf("prices panel should be hydrated from cache: %+v", board.Prices)
	}
	if !board.Prices.AsOf.Equal(cachedAt) {
		t.Fatalf("panel as-of = %v, want %v", board.Prices.AsOf, cachedAt)
	}
	if board.Prices.Source != models.SourceLive {
		t.Fatalf("snapshots hold live data, got source %q", board.Prices.Source)
	}
	if board.Prices.Data.Count != 3 {
		t.Fatalf("snapshot payload lost: %+v", board.Prices.Data)
	}
	if !board.Timeline.Empty() {
		t.Fatalf("timeline is not a cached panel, should stay empty")
	}
	if !board.UpdatedAt.Equal(cachedAt) {
		t.Fatalf("board updated-at should track the newest snapshot")
	}
	if fm.snapshots["load|ok"] != 1 || fm.snapshots["load|miss"] != 4 {
		t.Fatalf("unexpected load metrics %v", fm.snapshots)
	}
}

func TestRefreshNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRefresher(&fakeFeed{source: models.SourceLive})

	var got []models.Board
	r.OnUpdate(func(b models.Board) { got = append(got, b) })

	r.Prime(ctx)
	if len(got) != 1 {
		t.Fatalf("expected notification after prime, got %d", len(got))
	}

	r.RefreshNow(ctx)
	if len(got) != 2 {
		t.Fatalf("expected notification after refresh, got %d", len(got))
	}
	if got[1].UpdatedAt.IsZero() {
		t.Fatalf("refresh notification should carry the refreshed board")
	}
}

func TestOverlappingRefreshSkipped(t *testing.T) {
	ctx := context.Background()
	feed := &fakeFeed{source: models.SourceLive, gate: make(chan struct{})}
	r, _, _ := newTestRefresher(feed)

	done := make(chan struct{})
	go func() {
		r.RefreshNow(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&feed.calls) < 6 {
		if time.Now().After(deadline) {
			t.Fatalf("first cycle never fanned out, calls=%d", atomic.LoadInt32(&feed.calls))
		}
		time.Sleep(time.Millisecond)
	}

	// Second cycle while the first is blocked must be a no-op.
	r.RefreshNow(ctx)
	if n := atomic.LoadInt32(&feed.calls); n != 6 {
		t.Fatalf("overlapping cycle issued requests, calls=%d", n)
	}

	close(feed.gate)
	<-done
	if n := atomic.LoadInt32(&feed.calls); n != 6 {
		t.Fatalf("expected exactly one cycle of requests, calls=%d", n)
	}
}

func TestDeriveConfidence(t *testing.T) {
	rows := []models.PredictionLog{
		{FeatureSet: "finbert", Confidence: 0.90, PredictedAt: "2026-08-25T10:00:00.000000"},
		{FeatureSet: "vader", Confidence: 0.80, PredictedAt: "2026-08-25T09:00:00.000000"},
		{FeatureSet: "vader", Confidence: 0.70, PredictedAt: "2026-08-25T08:00:00.000000"},
	}

	got := DeriveConfidence(rows)

	if len(got.Vader.Data) != 2 {
		t.Fatalf("expected 2 vader points, got %d", len(got.Vader.Data))
	}
	if got.Vader.Data[0].Confidence != 0.70 || got.Vader.Data[1].Confidence != 0.80 {
		t.Fatalf("vader series should be oldest first: %+v", got.Vader.Data)
	}
	if got.Vader.Latest == nil || *got.Vader.Latest != 0.80 {
		t.Fatalf("vader latest should be the newest confidence")
	}
	if got.Finbert.Latest == nil || *got.Finbert.Latest != 0.90 {
		t.Fatalf("finbert latest should be the newest confidence")
	}

	empty := DeriveConfidence(nil)
	if empty.Vader.Latest != nil || empty.Vader.Data == nil {
		t.Fatalf("empty input should give an empty series, got %+v", empty.Vader)
	}
}
