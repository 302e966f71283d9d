package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the scraper.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TournamentsProcessed prometheus.Counter
	TournamentsSkipped   prometheus.Counter
	TournamentFailures   prometheus.Counter
	MatchesScraped       prometheus.Counter
	RunDurationSeconds   prometheus.Gauge
}
