package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scorpion-scraper/internal/catalog"
	"scorpion-scraper/internal/config"
	"scorpion-scraper/internal/dataset"
	"scorpion-scraper/internal/harvest"
	"scorpion-scraper/internal/metrics"
	"scorpion-scraper/internal/players"
	"scorpion-scraper/internal/scorpion"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(nightlyCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Discover new tournaments from the archive and append them to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog(config.Load())
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Harvest matches from catalogued tournaments into the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatches(config.Load(), metrics.NewService())
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Scrape profiles for every player referenced by the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlayers(config.Load())
	},
}

var nightlyCmd = &cobra.Command{
	Use:   "nightly",
	Short: "Run catalog, matches and players harvesting in sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := runCatalog(cfg); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if err := runMatches(cfg, metrics.NewService()); err != nil {
			return fmt.Errorf("matches: %w", err)
		}
		if err := runPlayers(cfg); err != nil {
			return fmt.Errorf("players: %w", err)
		}
		return nil
	},
}

func clientFactory(cfg config.Config) scorpion.ClientFactory {
	return func() scorpion.Client {
		return scorpion.NewClient(scorpion.Config{
			BaseURL:    cfg.BaseURL,
			Retries:    cfg.RetryLimit,
			RetryDelay: cfg.RetryDelay,
			Timeout:    cfg.HTTPTimeout,
		})
	}
}

func runCatalog(cfg config.Config) error {
	entries, err := catalog.Read(cfg.CatalogFile)
	if err != nil {
		return err
	}
	known := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		known[entry.ID] = struct{}{}
	}

	discoverer := catalog.NewDiscoverer(clientFactory(cfg)(), cfg.BaseURL, cfg.ArchivePages)
	fresh, err := discoverer.Discover(known)
	if err != nil {
		return err
	}
	if len(fresh) == 0 {
		log.Info("No new tournaments found", "catalogued", len(entries))
		return nil
	}
	if err := catalog.Append(cfg.CatalogFile, fresh); err != nil {
		return err
	}
	log.Info("Appended new tournaments to catalog", "count", len(fresh), "file", cfg.CatalogFile)
	return nil
}

func runMatches(cfg config.Config, m metrics.Metrics) error {
	start := time.Now()
	runID := uuid.NewString()
	log.Info("Starting match harvest", "runID", runID, "workers", cfg.Workers)

	stopMetrics := maybeServeMetrics(cfg.MetricsAddr)
	defer stopMetrics()

	store := dataset.NewStore(cfg.MatchesFile)
	existing, err := store.Load()
	if err != nil {
		return err
	}

	entries, err := catalog.Read(cfg.CatalogFile)
	if err != nil {
		return err
	}
	ids := catalog.IndividualIDs(entries)
	log.Info("Loaded catalog", "individual", len(ids), "total", len(entries))

	harvested := dataset.HarvestedTournamentIDs(existing)
	var pending []int
	for _, id := range ids {
		if _, ok := harvested[int64(id)]; !ok {
			pending = append(pending, id)
		}
	}
	log.Info("Resuming from dataset", "alreadyHarvested", len(ids)-len(pending), "pending", len(pending))
	if len(pending) == 0 {
		log.Info("No new tournaments to harvest", "runID", runID)
		return nil
	}

	harvester := harvest.New(clientFactory(cfg), cfg.Workers, m)
	batch, summary := harvester.Run(pending, dataset.IngestedStageIDs(existing))

	merged := dataset.Merge(existing, batch)
	if err := store.Write(merged); err != nil {
		return err
	}

	m.SetRunDuration(time.Since(start).Seconds())
	log.Info("Match harvest finished",
		"runID", runID,
		"tournaments", summary.Processed,
		"teamSkipped", summary.Skipped,
		"matches", summary.Matches,
		"failures", len(summary.Failures),
		"datasetRows", len(merged),
		"duration", time.Since(start),
	)
	for _, failure := range summary.Failures {
		log.Error("Tournament left unharvested this run", "tournamentID", failure.TournamentID, "error", failure.Err)
	}
	return nil
}

func runPlayers(cfg config.Config) error {
	rows, err := dataset.NewStore(cfg.MatchesFile).Load()
	if err != nil {
		return err
	}
	ids := dataset.UniquePlayerIDs(rows)
	if len(ids) == 0 {
		log.Info("No player ids in dataset yet")
		return nil
	}

	existing, err := players.ReadFile(cfg.PlayersFile)
	if err != nil {
		return err
	}
	known := make(map[int64]struct{}, len(existing))
	for _, profile := range existing {
		known[profile.PlayerID] = struct{}{}
	}
	var pending []int64
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			pending = append(pending, id)
		}
	}
	log.Info("Scraping player profiles", "referenced", len(ids), "new", len(pending))
	if len(pending) == 0 {
		return nil
	}

	scraper := players.NewScraper(clientFactory(cfg), cfg.PlayerWorkers)
	scraped := scraper.ScrapeAll(pending)
	merged := players.Merge(existing, scraped)
	if err := players.WriteFile(cfg.PlayersFile, merged); err != nil {
		return err
	}
	log.Info("Players file updated", "players", len(merged), "file", cfg.PlayersFile)
	return nil
}

// maybeServeMetrics exposes /metrics while a run is in flight when an address
// is configured.
func maybeServeMetrics(addr string) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.NewMetricsHandler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics server error", "error", err)
		}
	}()
	return func() { srv.Close() }
}
