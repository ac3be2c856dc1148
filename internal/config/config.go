package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Services ServicesConfig `mapstructure:"services"`
	Matching MatchingConfig `mapstructure:"matching"`
	LogLevel string         `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ServicesConfig holds the base URLs of the collaborator services.
type ServicesConfig struct {
	RecipeURL string `mapstructure:"recipe_url"`
	PantryURL string `mapstructure:"pantry_url"`
}

type MatchingConfig struct {
	CacheSize   int    `mapstructure:"cache_size"`
	WeightsPath string `mapstructure:"weights_path"`
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (*Config, error) {
	// Missing .env is fine; env vars alone are enough in deployment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.port", "PORT")                        //nolint:errcheck
	v.BindEnv("services.recipe_url", "RECIPE_URL")          //nolint:errcheck
	v.BindEnv("services.pantry_url", "PANTRY_URL")          //nolint:errcheck
	v.BindEnv("matching.cache_size", "MATCH_CACHE_SIZE")    //nolint:errcheck
	v.BindEnv("matching.weights_path", "WEIGHTS_PATH")      //nolint:errcheck
	v.BindEnv("log_level", "LOG_LEVEL")                     //nolint:errcheck

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("matching.cache_size", 256)
	v.SetDefault("matching.weights_path", "ingredient_weights.json")

	v.SetDefault("log_level", "info")
}

func validate(cfg *Config) error {
	if cfg.Services.RecipeURL == "" {
		return fmt.Errorf("RECIPE_URL is required")
	}
	if cfg.Services.PantryURL == "" {
		return fmt.Errorf("PANTRY_URL is required")
	}
	if cfg.Matching.CacheSize <= 0 {
		return fmt.Errorf("match cache size must be positive")
	}
	return nil
}
