package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "BitSense/internal/domain/models"
	"BitSense/internal/usecase"
	"BitSense/pkg/cache"
	xlogger "BitSense/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// feedStub serves fixed payloads tagged with one source.
type feedStub struct {
	source models.Source
}

func (f feedStub) RecentPrices(context.Context, string, int, int) models.Result[models.PriceHistory] {
	latest := 67120.5
	return models.Result[models.PriceHistory]{
		Payload: models.PriceHistory{
			Success:     true,
			Symbol:      "BTC",
			Hours:       24,
			Count:       1,
			LatestPrice: &latest,
			Data:        []models.PricePoint{{Timestamp: "2026-08-25T10:00:00", Price: latest}},
		},
		Source: f.source,
	}
}

func (f feedStub) SentimentTimeline(context.Context, int, int) models.Result[models.SentimentTimeline] {
	return models.Result[models.SentimentTimeline]{
		Payload: models.SentimentTimeline{Success: true, Hours: 24},
		Source:  f.source,
	}
}

func (f feedStub) RecentPredictions(context.Context, models.PredictionQuery) models.Result[models.RecentPredictions] {
	return models.Result[models.RecentPredictions]{
		Payload: models.RecentPredictions{
			Success: true,
			Count:   1,
			Predictions: []models.PredictionLog{{
				ID:          1,
				FeatureSet:  "vader",
				ModelType:   "random_forest",
				Prediction:  1,
				Confidence:  0.72,
				PredictedAt: "2026-08-25T10:00:00",
			}},
		},
		Source: f.source,
	}
}

func (f feedStub) Statistics(context.Context) models.Result[models.StatisticsResponse] {
	acc := 0.57
	return models.Result[models.StatisticsResponse]{
		Payload: models.StatisticsResponse{
			Success: true,
			Statistics: models.Statistics{
				TotalPredictions:        40,
				PredictionsWithOutcomes: 35,
				CorrectPredictions:      20,
				OverallAccuracy:         &acc,
				PendingOutcomes:         5,
			},
		},
		Source: f.source,
	}
}

func (f feedStub) ModelAccuracy(context.Context, string, string, int) models.Result[models.AccuracyResponse] {
	return models.Result[models.AccuracyResponse]{
		Payload: models.AccuracyResponse{Success: true},
		Source:  f.source,
	}
}

func (f feedStub) DailyAccuracy(context.Context, string, string, int) models.Result[models.DailyAccuracy] {
	return models.Result[models.DailyAccuracy]{
		Payload: models.DailyAccuracy{Success: true},
		Source:  f.source,
	}
}

func (f feedStub) AccuracyTimeline(context.Context, int) models.Result[models.AccuracyTimeline] {
	return models.Result[models.AccuracyTimeline]{
		Payload: models.AccuracyTimeline{Success: true, Hours: 24},
		Source:  f.source,
	}
}

func (f feedStub) RetrainStatus(context.Context) models.Result[models.RetrainStatus] {
	return models.Result[models.RetrainStatus]{
		Payload: models.RetrainStatus{Success: true},
		Source:  f.source,
	}
}

type stubMetrics struct{}

func (stubMetrics) RecordRequest(string, string) {}
func (stubMetrics) RecordFallback(string, string) {}
func (stubMetrics) RecordLatency(string, float64) {}
func (stubMetrics) RecordSnapshot(string, string) {}
func (stubMetrics) RecordRefreshCompleted() {}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestBoard(t *testing.T, source models.Source) (*BoardHandler, *Stream, *echo.Echo) {
	t.Helper()
	ref := usecase.NewRefresher(feedStub{source: source}, cache.NewMemoryStore(), stubMetrics{}, xlogger.Nop(), usecase.RefreshConfig{})
	ref.RefreshNow(context.Background())

	stream := NewStream(xlogger.Nop())
	h := NewBoardHandler(xlogger.Nop(), ref, stream)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, stream, e
}

func doGet(t *testing.T, e *echo.Echo, path string) envelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: http status = %d, want %d", path, rec.Code, http.StatusOK)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: decode envelope: %v", path, err)
	}
	return env
}

func TestBoardEndpoint(t *testing.T) {
	_, _, e := newTestBoard(t, models.SourceLive)

	env := doGet(t, e, "/api/board")
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, want 200", env.Status)
	}

	var view struct {
		UpdatedAt time.Time `json:"updated_at"`
		Degraded  bool      `json:"degraded"`
		Stale     bool      `json:"stale"`
		Prices    struct {
			Source    string `json:"source"`
			FromCache bool   `json:"from_cache"`
			Data      struct {
				Symbol string `json:"symbol"`
			} `json:"data"`
		} `json:"prices"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if view.UpdatedAt.IsZero() {
		t.Fatal("updated_at should be set after a refresh")
	}
	if view.Degraded {
		t.Fatal("all-live board should not be degraded")
	}
	if view.Stale {
		t.Fatal("freshly refreshed board should not be stale")
	}
	if view.Prices.Source != "live" {
		t.Fatalf("prices source = %q, want live", view.Prices.Source)
	}
	if view.Prices.FromCache {
		t.Fatal("refreshed panel should not be marked from_cache")
	}
	if view.Prices.Data.Symbol != "BTC" {
		t.Fatalf("prices symbol = %q, want BTC", view.Prices.Data.Symbol)
	}
}

func TestBoardEndpointFlagsGolden(t *testing.T) {
	_, _, e := newTestBoard(t, models.SourceGolden)

	env := doGet(t, e, "/api/board")
	var view struct {
		Degraded bool `json:"degraded"`
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if !view.Degraded {
		t.Fatal("all-golden board should be degraded")
	}
}

func TestPanelEndpoint(t *testing.T) {
	_, _, e := newTestBoard(t, models.SourceLive)

	for _, panel := range []string{"prices", "sentiment", "predictions", "confidence", "statistics", "timeline", "retrain"} {
		env := doGet(t, e, "/api/board/"+panel)
		if env.Status != http.StatusOK {
			t.Fatalf("panel %s: envelope status = %d, want 200", panel, env.Status)
		}
		var p struct {
			Source string    `json:"source"`
			AsOf   time.Time `json:"as_of"`
		}
		if err := json.Unmarshal(env.Data, &p); err != nil {
			t.Fatalf("panel %s: decode: %v", panel, err)
		}
		if p.Source != "live" {
			t.Fatalf("panel %s: source = %q, want live", panel, p.Source)
		}
		if p.AsOf.IsZero() {
			t.Fatalf("panel %s: as_of should be set", panel)
		}
	}
}

func TestPanelEndpointRejectsUnknownPanel(t *testing.T) {
	_, _, e := newTestBoard(t, models.SourceLive)

	env := doGet(t, e, "/api/board/weather")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
	var verrs []struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal(env.Data, &verrs); err != nil {
		t.Fatalf("decode validation errors: %v", err)
	}
	if len(verrs) != 1 || verrs[0].Code != "ERR_ONEOF" {
		t.Fatalf("validation errors = %+v, want single ERR_ONEOF", verrs)
	}
}

func TestHealthzReportsDegradedState(t *testing.T) {
	_, _, e := newTestBoard(t, models.SourceGolden)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rec.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Degraded bool   `json:"degraded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("healthz status field = %q, want ok", body.Status)
	}
	if !body.Degraded {
		t.Fatal("healthz should report degraded while panels are golden")
	}
}

func TestStreamPushesBoardUpdates(t *testing.T) {
	h, stream, e := newTestBoard(t, models.SourceLive)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial stream: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	// The server registers the client inside Serve; wait for it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		stream.mu.Lock()
		n := len(stream.clients)
		stream.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("stream clients = %d, want 1", n)
		}
		time.Sleep(5 * time.Millisecond)
	}

	stream.Broadcast(h.refresher.Board())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	var pushed struct {
		UpdatedAt time.Time `json:"updated_at"`
		Prices    struct {
			Source string `json:"source"`
		} `json:"prices"`
	}
	if err := json.Unmarshal(payload, &pushed); err != nil {
		t.Fatalf("decode broadcast: %v", err)
	}
	if pushed.UpdatedAt.IsZero() {
		t.Fatal("pushed board should carry updated_at")
	}
	if pushed.Prices.Source != "live" {
		t.Fatalf("pushed prices source = %q, want live", pushed.Prices.Source)
	}
}

func TestStreamDropsClosedClients(t *testing.T) {
	h, stream, e := newTestBoard(t, models.SourceLive)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial stream: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	conn.Close()

	// The server side notices the close on its read loop; broadcasting
	// afterwards must not panic and the registry must drain.
	deadline := time.Now().Add(2 * time.Second)
	for {
		stream.Broadcast(h.refresher.Board())
		stream.mu.Lock()
		n := len(stream.clients)
		stream.mu.Unlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("stream clients = %d, want 0 after close", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
