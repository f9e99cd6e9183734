package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/events-board/internal/event"
	"github.com/pfrederiksen/events-board/internal/logger"
	"github.com/pfrederiksen/events-board/internal/metrics"
)

// Options configures a Server
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Source   event.Source
	ShowTime bool
	Now      func() time.Time

	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Server serves the events board over HTTP
type Server struct {
	opts   Options
	engine *gin.Engine
	http   *http.Server
}

// New builds the gin engine and routes
func New(opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, errors.New("server: no event source")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	views, err := parseViews()
	if err != nil {
		return nil, fmt.Errorf("parsing views: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(views)
	engine.Use(
		gin.Recovery(),
		requestID(),
		accessLog(opts.Logger),
		traced(),
		observe(opts.Metrics),
	)

	events := &EventsController{
		Source:   opts.Source,
		Now:      opts.Now,
		ShowTime: opts.ShowTime,
		metrics:  opts.Metrics,
		log:      opts.Logger,
	}

	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/events")
	})
	engine.GET("/events", events.Index)
	engine.GET("/events.json", events.IndexJSON)
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	engine.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound, "No such page.")
	})

	return &Server{
		opts:   opts,
		engine: engine,
		http: &http.Server{
			Addr:         opts.Addr,
			Handler:      engine,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
	}, nil
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("Serving events board", logger.Fields{
			"addr": ln.Addr().String(),
		})
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.opts.Logger.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
