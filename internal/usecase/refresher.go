package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"BitSense/internal/domain/models"
	drepo "BitSense/internal/domain/repository"
	"BitSense/pkg/cache"
	"BitSense/pkg/logger"
)

// Snapshot keys, one per cached panel. Timeline and retrain status are
// cheap to refetch and age fast, so they are kept out of the snapshot store.
const (
	KeyStatistics  = "statistics"
	KeyPriceData   = "price_data"
	KeySentiment   = "sentiment_data"
	KeyConfidence  = "prediction_confidence"
	KeyPredictions = "recent_predictions"
)

// RefreshConfig carries the fetch windows for one refresh cycle.
type RefreshConfig struct {
	Symbol          string
	Interval        time.Duration
	StaleAfter      time.Duration
	PriceHours      int
	PriceLimit      int
	SentimentHours  int
	PredictionLimit int
	TimelineHours   int
}

// Refresher keeps the dashboard board current: it primes panels from the
// snapshot store for an instant paint, then refetches everything on a fixed
// interval. Live payloads are written back to the store; golden substitutes
// never are, so snapshots only ever hold data the backend actually served.
type Refresher struct {
	feed    drepo.Feed
	store   cache.Store
	metrics drepo.Metrics
	log     *logger.Logger
	cfg     RefreshConfig
	cron    *cron.Cron

	// inFlight prevents a second cycle while one is outstanding. Different
	// endpoints still fan out concurrently inside a cycle.
	inFlight atomic.Bool

	mu    sync.RWMutex
	board models.Board
	subs  []func(models.Board)
}

// NewRefresher wires a refresher; zero config fields get working defaults.
func NewRefresher(feed drepo.Feed, store cache.Store, metrics drepo.Metrics, log *logger.Logger, cfg RefreshConfig) *Refresher {
	if cfg.Symbol == "" {
		cfg.Symbol = "BTC"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 5 * time.Minute
	}
	if cfg.PriceHours <= 0 {
		cfg.PriceHours = 24
	}
	if cfg.SentimentHours <= 0 {
		cfg.SentimentHours = 24
	}
	if cfg.PredictionLimit <= 0 {
		cfg.PredictionLimit = 20
	}
	if cfg.TimelineHours <= 0 {
		cfg.TimelineHours = 24
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Refresher{
		feed:    feed,
		store:   store,
		metrics: metrics,
		log:     log,
		cfg:     cfg,
		cron:    cron.New(),
	}
}

// StaleAfter is the freshness threshold consumers label panels against.
func (r *Refresher) StaleAfter() time.Duration { return r.cfg.StaleAfter }

// Board returns the current board state.
func (r *Refresher) Board() models.Board {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.board
}

// OnUpdate registers a callback invoked with a board copy after every prime
// and refresh. Callbacks run on the refresh goroutine and must not block.
func (r *Refresher) OnUpdate(fn func(models.Board)) {
	r.mu.Lock()
	r.subs = append(r.subs, fn)
	r.mu.Unlock()
}

// Start primes the board from snapshots, kicks one immediate refresh in the
// background, and schedules the periodic cycle.
func (r *Refresher) Start(ctx context.Context) error {
	r.Prime(ctx)
	go r.RefreshNow(ctx)
	if _, err := r.cron.AddFunc("@every "+r.cfg.Interval.String(), func() {
		r.RefreshNow(ctx)
	}); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	r.cron.Start()
	r.log.Info("refresher started",
		logger.Duration("interval", r.cfg.Interval),
		logger.Duration("stale_after", r.cfg.StaleAfter),
	)
	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info("refresher stopped")
}

// Prime hydrates the cached panels from the snapshot store. Missing or
// corrupt snapshots are fine: the panel just waits for the first refresh.
func (r *Refresher) Prime(ctx context.Context) {
	r.mu.Lock()
	loaded := 0
	newest := time.Time{}
	if e, ok := loadSnapshot[models.PriceHistory](ctx, r, KeyPriceData); ok {
		r.board.Prices.SetCached(e.Data, e.Metadata.CachedAt)
		loaded++
		newest = laterOf(newest, e.Metadata.CachedAt)
	}
	if e, ok := loadSnapshot[models.SentimentTimeline](ctx, r, KeySentiment); ok {
		r.board.Sentiment.SetCached(e.Data, e.Metadata.CachedAt)
		loaded++
		newest = laterOf(newest, e.Metadata.CachedAt)
	}
	if e, ok := loadSnapshot[models.RecentPredictions](ctx, r, KeyPredictions); ok {
		r.board.Predictions.SetCached(e.Data, e.Metadata.CachedAt)
		loaded++
		newest = laterOf(newest, e.Metadata.CachedAt)
	}
	if e, ok := loadSnapshot[models.ConfidenceBundle](ctx, r, KeyConfidence); ok {
		r.board.Confidence.SetCached(e.Data, e.Metadata.CachedAt)
		loaded++
		newest = laterOf(newest, e.Metadata.CachedAt)
	}
	if e, ok := loadSnapshot[models.StatisticsResponse](ctx, r, KeyStatistics); ok {
		r.board.Statistics.SetCached(e.Data, e.Metadata.CachedAt)
		loaded++
		newest = laterOf(newest, e.Metadata.CachedAt)
	}
	if loaded > 0 && r.board.UpdatedAt.IsZero() {
		r.board.UpdatedAt = newest
	}
	board := r.board
	r.mu.Unlock()

	r.log.Info("snapshots primed", logger.Int("panels", loaded))
	r.notify(board)
}

// RefreshNow runs one full refresh cycle, skipping if one is in flight.
func (r *Refresher) RefreshNow(ctx context.Context) {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.log.Debug("refresh already in flight, skipped")
		return
	}
	defer r.inFlight.Store(false)
	r.refreshOnce(ctx)
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	started := time.Now()

	var (
		prices      models.Result[models.PriceHistory]
		sentiment   models.Result[models.SentimentTimeline]
		predictions models.Result[models.RecentPredictions]
		statistics  models.Result[models.StatisticsResponse]
		timeline    models.Result[models.AccuracyTimeline]
		retrain     models.Result[models.RetrainStatus]
	)

	var wg sync.WaitGroup
	wg.Add(6)
	go func() {
		defer wg.Done()
		prices = r.feed.RecentPrices(ctx, r.cfg.Symbol, r.cfg.PriceHours, r.cfg.PriceLimit)
	}()
	go func() {
		defer wg.Done()
		sentiment = r.feed.SentimentTimeline(ctx, r.cfg.SentimentHours, 0)
	}()
	go func() {
		defer wg.Done()
		predictions = r.feed.RecentPredictions(ctx, models.PredictionQuery{Limit: r.cfg.PredictionLimit})
	}()
	go func() {
		defer wg.Done()
		statistics = r.feed.Statistics(ctx)
	}()
	go func() {
		defer wg.Done()
		timeline = r.feed.AccuracyTimeline(ctx, r.cfg.TimelineHours)
	}()
	go func() {
		defer wg.Done()
		retrain = r.feed.RetrainStatus(ctx)
	}()
	wg.Wait()

	// Confidence is derived from the prediction feed and inherits its source.
	confidence := models.Result[models.ConfidenceBundle]{
		Payload: DeriveConfidence(predictions.Payload.Predictions),
		Source:  predictions.Source,
	}

	now := time.Now().UTC()
	r.mu.Lock()
	r.board.Prices.Set(prices, now)
	r.board.Sentiment.Set(sentiment, now)
	r.board.Predictions.Set(predictions, now)
	r.board.Confidence.Set(confidence, now)
	r.board.Statistics.Set(statistics, now)
	r.board.Timeline.Set(timeline, now)
	r.board.Retrain.Set(retrain, now)
	r.board.UpdatedAt = now
	board := r.board
	r.mu.Unlock()

	saveSnapshot(ctx, r, KeyPriceData, prices)
	saveSnapshot(ctx, r, KeySentiment, sentiment)
	saveSnapshot(ctx, r, KeyPredictions, predictions)
	saveSnapshot(ctx, r, KeyConfidence, confidence)
	saveSnapshot(ctx, r, KeyStatistics, statistics)

	r.metrics.RecordRefreshCompleted()
	r.log.Info("refresh completed",
		logger.Duration("took", time.Since(started)),
		logger.Bool("degraded", board.HasGolden()),
	)
	r.notify(board)
}

func (r *Refresher) notify(b models.Board) {
	r.mu.RLock()
	subs := make([]func(models.Board), len(r.subs))
	copy(subs, r.subs)
	r.mu.RUnlock()
	for _, fn := range subs {
		fn(b)
	}
}

// saveSnapshot persists a live payload. Golden substitutes are never
// written: snapshots must only hold what the backend actually served.
func saveSnapshot[T any](ctx context.Context, r *Refresher, key string, res models.Result[T]) {
	if res.Source != models.SourceLive {
		return
	}
	if err := cache.Save(ctx, r.store, key, res.Payload); err != nil {
		r.metrics.RecordSnapshot("save", "error")
		r.log.Warn("snapshot save failed", logger.String("key", key), logger.Error(err))
		return
	}
	r.metrics.RecordSnapshot("save", "ok")
}

func loadSnapshot[T any](ctx context.Context, r *Refresher, key string) (cache.Entry[T], bool) {
	e, ok := cache.Load[T](ctx, r.store, key)
	if ok {
		r.metrics.RecordSnapshot("load", "ok")
	} else {
		r.metrics.RecordSnapshot("load", "miss")
	}
	return e, ok
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
