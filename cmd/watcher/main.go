// cmd/watcher/main.go
//
// Tails the tap file the BLE bridge writes on every RFID tap and feeds
// each new tap straight into the recommendation engine for the configured
// wallet owner.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calistaannelise/wallzy/internal/config"
	"github.com/calistaannelise/wallzy/internal/engine"
	"github.com/calistaannelise/wallzy/internal/storage/postgres"
	"github.com/calistaannelise/wallzy/internal/watcher"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := postgres.NewStorage(pool)
	recommender := engine.NewService(store, engine.Evaluator{})

	w := watcher.New(cfg.TapFile, func(ctx context.Context, tap watcher.Tap) error {
		rec, err := recommender.Recommend(ctx, engine.Purchase{
			UserID:      cfg.TapUserID,
			MCCCode:     tap.MCC,
			AmountCents: cfg.TapAmountCents,
			Description: "RFID tap " + tap.UID,
		}, time.Now())
		if err != nil {
			return err
		}
		slog.Info("tap processed",
			"uid", tap.UID,
			"ts", tap.TS,
			"category", rec.Category,
			"card", rec.CardName,
			"multiplier", rec.Multiplier,
			"cashback_cents", rec.CashbackCents,
			"reason", rec.Reason,
		)
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("watcher stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("watcher stopped")
}
