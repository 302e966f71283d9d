package scorpion

import "github.com/PuerkitoBio/goquery"

// Client defines the interface for talking to the results site.
// This allows for mock implementations to be used in tests.
type Client interface {
	FetchDocument(url string) (*goquery.Document, error)
	TournamentInfo(tournamentID int) (*TournamentInfo, error)
	PlayerProfile(playerID int64) (*PlayerProfile, error)
}

// ClientFactory builds one client per worker so no HTTP session is shared
// across goroutines.
type ClientFactory func() Client
