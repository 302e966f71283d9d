package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TournamentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpion_tournaments_processed_total",
			Help: "The total number of tournaments fully harvested.",
		}),
		TournamentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpion_tournaments_skipped_total",
			Help: "The total number of team tournaments skipped.",
		}),
		TournamentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpion_tournament_failures_total",
			Help: "The total number of tournaments whose harvest failed.",
		}),
		MatchesScraped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorpion_matches_scraped_total",
			Help: "The total number of match rows scraped.",
		}),
		RunDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scorpion_run_duration_seconds",
			Help: "The duration of the last harvest run in seconds.",
		}),
	}

	reg.MustRegister(
		s.TournamentsProcessed,
		s.TournamentsSkipped,
		s.TournamentFailures,
		s.MatchesScraped,
		s.RunDurationSeconds,
	)

	return s
}

func (s *Service) IncTournamentsProcessed() {
	s.TournamentsProcessed.Inc()
}

func (s *Service) IncTournamentsSkipped() {
	s.TournamentsSkipped.Inc()
}

func (s *Service) IncTournamentFailures() {
	s.TournamentFailures.Inc()
}

func (s *Service) AddMatchesScraped(count int) {
	s.MatchesScraped.Add(float64(count))
}

func (s *Service) SetRunDuration(seconds float64) {
	s.RunDurationSeconds.Set(seconds)
}
