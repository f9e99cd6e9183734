package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/events-board/internal/config"
	"github.com/pfrederiksen/events-board/internal/logger"
	"github.com/pfrederiksen/events-board/internal/metrics"
	"github.com/pfrederiksen/events-board/internal/server"
	"github.com/pfrederiksen/events-board/internal/tracing"
)

var serviceActions = map[string]bool{
	"install":   true,
	"uninstall": true,
	"start":     true,
	"stop":      true,
	"restart":   true,
}

// program adapts the HTTP server to the service manager.
// Start must not block, so the server runs in its own goroutine.
type program struct {
	cfg *config.Config
	log *logger.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		if err := runServer(ctx, p.cfg, p.log); err != nil {
			// Exit so the service manager can restart us
			p.log.Error("Server stopped", nil, err)
			os.Exit(ExitError)
		}
	}()
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.log.Info("Stopping service", nil)
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	return nil
}

func newServeCmd(a *app) *cobra.Command {
	var (
		flagListen  string
		flagService string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the events board HTTP server",
		Long: `Starts the HTTP server exposing /events, /events.json, /healthz and /metrics.
Use --service to install or control it as a system service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagService != "" && !serviceActions[flagService] {
				return fmt.Errorf("invalid service action: %s", flagService)
			}
			if flagListen != "" {
				a.cfg.ListenAddress = flagListen
			}

			if flagService == "" && service.Interactive() {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runServer(ctx, a.cfg, a.log)
			}

			svcConfig := &service.Config{
				Name:        "events-board",
				DisplayName: "Events Board",
				Description: "Serves the community events listing over HTTP",
				Arguments:   serviceArguments(a.cfgFile, a.cfg.ListenAddress),
			}

			prg := &program{cfg: a.cfg, log: a.log}
			s, err := service.New(prg, svcConfig)
			if err != nil {
				return fmt.Errorf("creating service: %w", err)
			}

			if flagService != "" {
				if err := service.Control(s, flagService); err != nil {
					return fmt.Errorf("failed to %s service: %w", flagService, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Service action '%s' completed successfully.\n", flagService)
				return nil
			}

			// Blocks until the service manager stops us
			return s.Run()
		},
	}

	cmd.Flags().StringVar(&flagListen, "listen", "", "Listen address, overrides listen_address")
	cmd.Flags().StringVar(&flagService, "service", "", "Service action: install, uninstall, start, stop or restart")

	return cmd
}

// serviceArguments are passed to the binary when the service manager starts it
func serviceArguments(cfgFile, listen string) []string {
	args := []string{"serve", "--listen", listen}
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			cfgFile = abs
		}
		args = append(args, "--config", cfgFile)
	}
	return args
}

// runServer opens the configured source and serves until ctx is cancelled
func runServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("Flushing traces failed", logger.Fields{"error": err.Error()})
		}
	}()

	src, closeSource, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource() // nolint:errcheck

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(server.Options{
		Addr:            cfg.ListenAddress,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Source:          src,
		ShowTime:        cfg.ShowTime,
		Logger:          log,
		Metrics:         metrics.New(),
	})
	if err != nil {
		return err
	}

	log.Info("Starting events board", logger.Fields{
		"addr":      cfg.ListenAddress,
		"source":    cfg.Source,
		"show_time": cfg.ShowTime,
	})
	return srv.Run(ctx)
}
