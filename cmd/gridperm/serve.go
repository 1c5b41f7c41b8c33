package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/metrics"
	"github.com/san-kum/gridperm/internal/server"
)

func serve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	col := metrics.NewCollector()
	eng, err := engine.New(cfg,
		engine.WithLogger(logger),
		engine.WithObserver(col),
		engine.WithTokenHook(col.TokenStarted),
		engine.WithBusyListener(col.SetBusy),
		engine.WithFinishHook(col.ScriptFinished),
	)
	if err != nil {
		return err
	}

	dt := 1 / float64(cfg.Animation.FPS)
	handler := server.NewHandler(&server.Server{
		Engine:  eng,
		Clock:   func() clock.Clock { return clock.Virtual{Dt: dt} },
		Metrics: col.Handler(),
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
