package matches

// Stage discriminates the two competition formats a schedule page can hold.
// The string values are the ones persisted in the dataset's Stage column.
type Stage string

const (
	StageRoundRobin Stage = "Round-Robin"
	StagePlayoff    Stage = "Playoff"
)

// Player is one side of a fixture. ID is resolved from the profile link when
// the cell carries one; a nil ID means the identity is unresolved, not that
// the player is absent.
type Player struct {
	Name string
	ID   *int64
}

// Record is a single parsed game. Tour and Fraction are mutually exclusive:
// Tour carries the round-robin tour ordinal, Fraction the playoff bracket
// depth. RoundNumber flattens the pair into the dataset's single column.
type Record struct {
	Stage      Stage
	Player1    Player
	Player2    Player
	Goals1     int
	Goals2     int
	Overtime   bool
	Tour       *int     // round-robin only
	Fraction   *float64 // playoff only
	GameNumber *int     // 1-based game index within a playoff series
}

// RoundNumber returns the value the RoundNumber column carries: the bracket
// fraction for playoff records, the tour ordinal for round-robin ones.
func (r *Record) RoundNumber() *float64 {
	switch r.Stage {
	case StagePlayoff:
		return r.Fraction
	case StageRoundRobin:
		if r.Tour == nil {
			return nil
		}
		f := float64(*r.Tour)
		return &f
	}
	return nil
}

// playoffStages maps subheader labels to bracket-depth fractions. Order
// matters: the first case-insensitive substring hit wins, so "Final" must come
// after the fractional stages or "1/8 final" would read as the final itself.
// The 0.9 for the third-place match is a sort sentinel between Final and
// Semi-final, not a real bracket depth.
var playoffStages = []struct {
	label    string
	fraction float64
}{
	{"1/64 final", 1.0 / 64},
	{"1/32 final", 1.0 / 32},
	{"1/16 final", 1.0 / 16},
	{"1/8 final", 1.0 / 8},
	{"quarterfinal", 0.25},
	{"semi-final", 0.5},
	{"final", 1.0},
	{"match for the third place", 0.9},
}
