// Command weights is the offline batch job that rebuilds the
// ingredient rarity weights: it scans the full recipe corpus, computes
// ln(N/df) per token, and writes the flat token→weight JSON file that
// the matching service loads at startup.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/samarsajad/recipe-matching/internal/clients"
	"github.com/samarsajad/recipe-matching/internal/config"
	"github.com/samarsajad/recipe-matching/internal/ingredient"
	"github.com/samarsajad/recipe-matching/internal/logging"
)

func main() {
	out := flag.String("out", "", "output path (defaults to WEIGHTS_PATH)")
	timeout := flag.Duration("timeout", 2*time.Minute, "corpus fetch timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	path := *out
	if path == "" {
		path = cfg.Matching.WeightsPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger.Info("starting ingredient scan")
	recipes, err := clients.NewRecipeClient(cfg.Services.RecipeURL).GetRecipes(ctx)
	if err != nil {
		logger.Fatal("fetch recipes", zap.Error(err))
	}

	lists := make([][]ingredient.Entry, len(recipes))
	for i, r := range recipes {
		lists[i] = r.Ingredients
	}
	table := ingredient.BuildWeights(lists)
	logger.Info("corpus scanned",
		zap.Int("recipes", len(recipes)),
		zap.Int("unique_ingredients", table.Len()),
	)

	if err := table.Save(path); err != nil {
		logger.Fatal("save weights", zap.Error(err))
	}
	logger.Info("weights saved", zap.String("path", path))
}
