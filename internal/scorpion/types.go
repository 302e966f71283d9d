package scorpion

import (
	"fmt"
	"time"
)

// Config holds the knobs for a site client.
type Config struct {
	BaseURL    string
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// TournamentInfo is the metadata block of a tournament page plus its stage
// list. Missing metadata degrades to "Unknown" rather than failing.
type TournamentInfo struct {
	ID     int
	Name   string
	Type   string
	Date   string // raw site text, e.g. "21.05.2023", or "Unknown"
	Stages []StageRef
}

// StageRef points at one schedule/results page within a tournament. ID and
// Sequence stay raw site text here; numeric coercion happens at row assembly.
type StageRef struct {
	ID       string
	URL      string
	Sequence string
}

// PlayerProfile is the subset of a player page the players file carries.
type PlayerProfile struct {
	PlayerID    int64
	Name        string
	RankingID   string
	Country     string
	City        string
	DateOfBirth string
	Sex         string
}

// TransientFetchError is a connection-level failure that survived every retry.
type TransientFetchError struct {
	URL string
	Err error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// PermanentFetchError is a non-success HTTP status. It is never retried.
type PermanentFetchError struct {
	URL        string
	StatusCode int
}

func (e *PermanentFetchError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}
