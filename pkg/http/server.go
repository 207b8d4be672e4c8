package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"BitSense/pkg/http/middleware"
	applogger "BitSense/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler registers routes on the shared Echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// ServerOption configures Server.
type ServerOption func(*Server)

// WithHost binds the listener host.
func WithHost(host string) ServerOption {
	return func(s *Server) {
		if host != "" {
			s.host = host
		}
	}
}

// WithPort binds the listener port.
func WithPort(port int) ServerOption {
	return func(s *Server) {
		if port > 0 {
			s.port = port
		}
	}
}

// WithTimeouts sets the read and write timeouts.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// WithLogger sets the server logger.
func WithLogger(l *applogger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// Server hosts the board API on Echo. It runs alongside the terminal UI so
// headless deployments and external renderers consume the same refreshed
// state.
type Server struct {
	echo         *echo.Echo
	host         string
	port         int
	readTimeout  time.Duration
	writeTimeout time.Duration
	log          *applogger.Logger
}

// NewServer assembles the Echo instance: recovery, request logging, request
// metrics, read-only CORS, the handler's routes, and the Prometheus scrape
// endpoint.
func NewServer(handler Handler, opts ...ServerOption) *Server {
	s := &Server{
		host:         "127.0.0.1",
		port:         8090,
		readTimeout:  10 * time.Second,
		writeTimeout: 10 * time.Second,
		log:          applogger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = s.readTimeout
	e.Server.WriteTimeout = s.writeTimeout
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if werr := ErrorResponse(c, err); werr != nil {
			s.log.Error("write error response", applogger.Error(werr))
		}
	}

	e.Use(middleware.Recover(s.log))
	e.Use(middleware.RequestLogging(s.log))
	e.Use(middleware.Metrics(s.log, 2*time.Second))

	// The board surface feeds alternative renderers, browser ones included,
	// so reads must work cross-origin.
	e.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
	}))

	if handler != nil {
		handler.RegisterRoutes(e)
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo = e
	return s
}

// Start begins serving in the background. A failed listen surfaces in the
// log; the process keeps running on its in-memory state either way.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	go func() {
		s.log.Info("board server listening", applogger.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("board server failed", applogger.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("board server stopped")
	return nil
}
