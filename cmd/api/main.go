// cmd/api/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calistaannelise/wallzy/internal/auth"
	"github.com/calistaannelise/wallzy/internal/config"
	"github.com/calistaannelise/wallzy/internal/engine"
	"github.com/calistaannelise/wallzy/internal/handler"
	"github.com/calistaannelise/wallzy/internal/middleware"
	"github.com/calistaannelise/wallzy/internal/scraper"
	"github.com/calistaannelise/wallzy/internal/storage/postgres"
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

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}
	slog.Info("connected to PostgreSQL")

	store := postgres.NewStorage(pool)
	tokenService := auth.NewTokenService(cfg)
	recommender := engine.NewService(store, engine.Evaluator{})
	scr := scraper.New(cfg.ScraperBaseURL)

	api := handler.NewAPI(store, tokenService, recommender, scr, cfg.TapAmountCents)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/mcc/:code", api.MCCLookup)
	router.GET("/categories", api.Categories)

	router.POST("/api/v1/register", api.Register)
	router.POST("/api/v1/login", api.Login)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.POST("/cards", api.CreateCard)
		v1.GET("/cards", api.ListCards)
		v1.POST("/cards/:id/rules", api.CreateRule)
		v1.GET("/cards/:id/rules", api.ListRules)
		v1.POST("/recommend", api.Recommend)
		v1.GET("/summary", api.Summary)
		v1.GET("/transactions", api.Transactions)
		v1.POST("/scraper/run", api.RunScraper)
		v1.GET("/scraper/results", api.ScraperResults)
	}

	slog.Info("server started", "addr", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("server stopped with error", "error", err)
	}
}
