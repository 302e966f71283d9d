package config

import "time"

// Config holds all configuration for the scraper.
type Config struct {
	BaseURL       string
	DataDir       string
	MatchesFile   string
	CatalogFile   string
	PlayersFile   string
	Workers       int
	PlayerWorkers int
	RetryLimit    int
	RetryDelay    time.Duration
	HTTPTimeout   time.Duration
	ArchivePages  int
	MetricsAddr   string
}
