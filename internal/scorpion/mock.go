package scorpion

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	FetchDocumentFunc  func(url string) (*goquery.Document, error)
	TournamentInfoFunc func(tournamentID int) (*TournamentInfo, error)
	PlayerProfileFunc  func(playerID int64) (*PlayerProfile, error)

	FetchDocumentCalls  []string
	TournamentInfoCalls []int
	PlayerProfileCalls  []int64
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) FetchDocument(url string) (*goquery.Document, error) {
	m.mu.Lock()
	m.FetchDocumentCalls = append(m.FetchDocumentCalls, url)
	fn := m.FetchDocumentFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(""))
}

func (m *MockClient) TournamentInfo(tournamentID int) (*TournamentInfo, error) {
	m.mu.Lock()
	m.TournamentInfoCalls = append(m.TournamentInfoCalls, tournamentID)
	fn := m.TournamentInfoFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(tournamentID)
	}
	return &TournamentInfo{ID: tournamentID, Name: "Unknown", Type: "Unknown", Date: "Unknown"}, nil
}

func (m *MockClient) PlayerProfile(playerID int64) (*PlayerProfile, error) {
	m.mu.Lock()
	m.PlayerProfileCalls = append(m.PlayerProfileCalls, playerID)
	fn := m.PlayerProfileFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(playerID)
	}
	return &PlayerProfile{PlayerID: playerID}, nil
}

// Reset clears all recorded calls.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchDocumentCalls = nil
	m.TournamentInfoCalls = nil
	m.PlayerProfileCalls = nil
}
