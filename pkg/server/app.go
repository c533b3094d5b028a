package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "TermPulse/internal/domain/repository"
	"TermPulse/internal/service/stream"
	"TermPulse/pkg/cache"
	"TermPulse/pkg/config"
	xhttp "TermPulse/pkg/http"
	applogger "TermPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	stream      *stream.Finnhub
	publisher   domrepo.Publisher
	store       cache.Store
}

// New creates a new App instance with all dependencies. stream, publisher
// and store may be nil when the corresponding feature is disabled.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	httpHandler xhttp.Handler,
	st *stream.Finnhub,
	publisher domrepo.Publisher,
	store cache.Store,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		httpHandler: httpHandler,
		stream:      st,
		publisher:   publisher,
		store:       store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.stream != nil {
		go a.stream.Run(ctx)
		a.logger.Info("price stream started", applogger.Strings("symbols", a.cfg.Stream.Symbols))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.logger.Warn("stream close error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
