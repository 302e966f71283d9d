package metrics

// Metrics defines the interface for collecting run metrics.
// This decouples the pipeline from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTournamentsProcessed()
	IncTournamentsSkipped()
	IncTournamentFailures()
	AddMatchesScraped(count int)
	SetRunDuration(seconds float64)
}
