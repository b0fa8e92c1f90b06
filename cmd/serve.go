package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mattojjo/graphz/server"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the live market over HTTP and WebSocket" }
func (*serveCmd) Usage() string {
	return `graphz serve [-addr <host:port>]

  Starts the market simulation and serves it until interrupted:

    GET  /api/v1/snapshot             the whole state
    GET  /api/v1/instruments          quotes, ?candles=N trims the histories
    GET  /api/v1/instruments/:symbol  one instrument
    GET  /api/v1/portfolio            cash, holdings and valuation
    GET  /api/v1/transactions         latest transactions first
    POST /api/v1/select               {"symbol": "AAPL"}
    POST /api/v1/buy                  {"symbol": "AAPL", "quantity": 10}
    POST /api/v1/sell                 {"symbol": "AAPL", "quantity": 10}
    GET  /api/v1/stream               WebSocket, one JSON snapshot per change
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides GRAPHZ_HTTP_ADDR.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.HTTPAddr = c.addr
	}
	logger := cfg.Logger(os.Stderr)
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := newEngine(cfg, logger, nil, nil)
	if err != nil {
		logger.WithError(err).Error("failed to create the market")
		return subcommands.ExitFailure
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.NewHandler(engine, logger),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Start(ctx)
	})
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		defer engine.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped")
		return subcommands.ExitFailure
	}
	logger.Info("server stopped")
	return subcommands.ExitSuccess
}
