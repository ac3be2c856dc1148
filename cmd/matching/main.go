package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/samarsajad/recipe-matching/internal/api"
	"github.com/samarsajad/recipe-matching/internal/clients"
	"github.com/samarsajad/recipe-matching/internal/config"
	"github.com/samarsajad/recipe-matching/internal/logging"
	"github.com/samarsajad/recipe-matching/internal/matching"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	svc := matching.New(
		clients.NewRecipeClient(cfg.Services.RecipeURL),
		clients.NewPantryClient(cfg.Services.PantryURL),
		logger,
		cfg.Matching.CacheSize,
		cfg.Matching.WeightsPath,
	)
	svc.LoadWeights()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(svc, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("matching service listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
