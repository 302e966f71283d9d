package harvest

import (
	"scorpion-scraper/internal/dataset"
	"scorpion-scraper/internal/metrics"
	"scorpion-scraper/internal/scorpion"
)

// Harvester walks tournaments through a fixed-size worker pool and assembles
// their matches into dataset rows. Each worker builds its own site client.
type Harvester struct {
	newClient scorpion.ClientFactory
	workers   int
	metrics   metrics.Metrics
}

// Failure records one tournament whose pipeline failed.
type Failure struct {
	TournamentID int
	Err          error
}

// Summary is what a run reports back: counts for the closing log line and the
// failing ids, which stay unharvested and are picked up again next run.
type Summary struct {
	Processed int
	Skipped   int
	Matches   int
	Failures  []Failure
}

type tournamentResult struct {
	id      int
	rows    []dataset.Row
	skipped bool
	err     error
}
