package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// Every knob has a default, so the scraper runs with no environment at all.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}
	getEnvInt := func(key string, fallback int) int {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Fatalf("Error: environment variable %s is not a number: %q", key, value)
		}
		return n
	}
	getEnvDuration := func(key string, fallback time.Duration) time.Duration {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Fatalf("Error: environment variable %s is not a duration: %q", key, value)
		}
		return d
	}

	dataDir := getEnv("DATA_DIR", "data")
	cfg := Config{
		BaseURL:       getEnv("BASE_URL", "https://th.sportscorpion.com"),
		DataDir:       dataDir,
		MatchesFile:   filepath.Join(dataDir, getEnv("MATCHES_FILE", "scraped_matches.parquet")),
		CatalogFile:   filepath.Join(dataDir, getEnv("CATALOG_FILE", "tournament_data.csv")),
		PlayersFile:   filepath.Join(dataDir, getEnv("PLAYERS_FILE", "players_data.csv")),
		Workers:       getEnvInt("WORKERS", 10),
		PlayerWorkers: getEnvInt("PLAYER_WORKERS", 5),
		RetryLimit:    getEnvInt("RETRY_LIMIT", 3),
		RetryDelay:    getEnvDuration("RETRY_DELAY", 500*time.Millisecond),
		HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		ArchivePages:  getEnvInt("ARCHIVE_PAGES", 5),
		MetricsAddr:   getEnv("METRICS_ADDR", ""),
	}
	return cfg
}
