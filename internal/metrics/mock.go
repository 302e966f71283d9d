package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	tournamentsProcessed int
	tournamentsSkipped   int
	tournamentFailures   int
	matchesScraped       int
	runDuration          float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncTournamentsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsProcessed++
}

func (m *Mock) IncTournamentsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsSkipped++
}

func (m *Mock) IncTournamentFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentFailures++
}

func (m *Mock) AddMatchesScraped(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesScraped += count
}

func (m *Mock) SetRunDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runDuration = seconds
}

// TournamentsProcessed returns the number of times IncTournamentsProcessed was called.
func (m *Mock) TournamentsProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsProcessed
}

// TournamentsSkipped returns the number of times IncTournamentsSkipped was called.
func (m *Mock) TournamentsSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsSkipped
}

// TournamentFailures returns the number of times IncTournamentFailures was called.
func (m *Mock) TournamentFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentFailures
}

// MatchesScraped returns the accumulated scraped match count.
func (m *Mock) MatchesScraped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesScraped
}

// RunDuration returns the last value passed to SetRunDuration.
func (m *Mock) RunDuration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runDuration
}
