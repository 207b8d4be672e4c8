// Package api exposes the refresher's board over a localhost HTTP surface so
// renderers other than the bundled terminal UI can consume it.
package api

import (
	"net/http"
	"time"

	models "BitSense/internal/domain/models"
	"BitSense/internal/usecase"
	xhttp "BitSense/pkg/http"
	xlogger "BitSense/pkg/logger"
	"BitSense/pkg/staleness"

	"github.com/labstack/echo/v4"
)

// BoardHandler serves the current dashboard state. It never talks to the
// upstream API itself; everything comes from the refresher's board.
type BoardHandler struct {
	logger    *xlogger.Logger
	refresher *usecase.Refresher
	stream    *Stream
	started   time.Time
}

func NewBoardHandler(logger *xlogger.Logger, refresher *usecase.Refresher, stream *Stream) *BoardHandler {
	return &BoardHandler{
		logger:    logger,
		refresher: refresher,
		stream:    stream,
		started:   time.Now(),
	}
}

func (h *BoardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/board", h.Board)
	g.GET("/board/:panel", h.Panel)
	if h.stream != nil {
		g.GET("/stream", h.stream.Serve)
	}
	e.GET("/healthz", h.Healthz)
}

// boardView is the board plus the summary flags renderers key badges off.
type boardView struct {
	models.Board
	Degraded bool `json:"degraded"`
	Stale    bool `json:"stale"`
}

func (h *BoardHandler) view() boardView {
	b := h.refresher.Board()
	return boardView{
		Board:    b,
		Degraded: b.HasGolden(),
		Stale:    staleness.IsStale(b.UpdatedAt, h.refresher.StaleAfter()),
	}
}

func (h *BoardHandler) Board(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.view())
}

func (h *BoardHandler) Panel(c echo.Context) error {
	req := &models.PanelRequest{}
	if verr := xhttp.BindAndValidate(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	b := h.refresher.Board()
	var panel interface{}
	switch req.Panel {
	case "prices":
		panel = b.Prices
	case "sentiment":
		panel = b.Sentiment
	case "predictions":
		panel = b.Predictions
	case "confidence":
		panel = b.Confidence
	case "statistics":
		panel = b.Statistics
	case "timeline":
		panel = b.Timeline
	case "retrain":
		panel = b.Retrain
	default:
		return xhttp.NotFoundResponse(c, xhttp.NotFoundErrorf("unknown panel %q", req.Panel))
	}
	return xhttp.SuccessResponse(c, panel)
}

// Healthz reports process liveness, not the upstream's health. The board is
// expected to keep serving while the upstream is down.
func (h *BoardHandler) Healthz(c echo.Context) error {
	b := h.refresher.Board()
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "ok",
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"updated_at": b.UpdatedAt,
		"degraded":   b.HasGolden(),
	})
}
