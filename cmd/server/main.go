package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpapi "cardclash/internal/api/http"
	"cardclash/internal/api/ws"
	"cardclash/internal/config"
	"cardclash/internal/logging"
	"cardclash/internal/room"
	"cardclash/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	gin.SetMode(cfg.GinMode)

	results, err := store.OpenResults(cfg.ResultsDB)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer func() { _ = results.Close() }()

	rec, err := room.NewAsyncRecorder(results, cfg.RecorderWorkers, log.Named("recorder"))
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Close(shutdownTimeout); err != nil {
			log.Warn("recorder did not drain", zap.Error(err))
		}
	}()

	rm := room.NewManager(store.NewMemoryStore(), cfg.Game, rec, log.Named("room"))
	hub := ws.NewHub(rm, log.Named("ws"))
	rm.SetHub(hub)

	janitor := room.NewJanitor(rm, cfg.Rooms.SweepInterval, cfg.Rooms.IdleTTL, log.Named("janitor"))
	janitor.Start()
	defer janitor.Stop()

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.RouterDeps{
			Rooms:     rm,
			Results:   results,
			Hub:       hub,
			PublicDir: cfg.PublicDir,
			Log:       log.Named("http"),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
