package dataset

import (
	"fmt"
	"strconv"
)

// Row is one persisted match. Optional columns are pointers; a nil means the
// source page never carried the value.
type Row struct {
	StageID           *int64   `parquet:"StageID,optional"`
	Player1           string   `parquet:"Player1"`
	Player1ID         *int64   `parquet:"Player1ID,optional"`
	Player2           string   `parquet:"Player2"`
	Player2ID         *int64   `parquet:"Player2ID,optional"`
	GoalsPlayer1      int32    `parquet:"GoalsPlayer1"`
	GoalsPlayer2      int32    `parquet:"GoalsPlayer2"`
	Overtime          string   `parquet:"Overtime"`
	Stage             string   `parquet:"Stage"`
	RoundNumber       *float64 `parquet:"RoundNumber,optional"`
	PlayoffGameNumber *int32   `parquet:"PlayoffGameNumber,optional"`
	Date              *string  `parquet:"Date,optional"`
	TournamentName    string   `parquet:"TournamentName"`
	TournamentID      int64    `parquet:"TournamentID"`
	StageSequence     *int64   `parquet:"StageSequence,optional"`
}

// Key is the composite identity rows are deduplicated on. A replayed game
// differs in at least one of these columns; a re-scraped one never does.
func (r *Row) Key() string {
	return fmt.Sprintf("%d|%s|%s|%s|%d|%d|%s",
		r.TournamentID,
		int64Key(r.StageID),
		int64Key(r.Player1ID),
		int64Key(r.Player2ID),
		r.GoalsPlayer1,
		r.GoalsPlayer2,
		stringKey(r.Date),
	)
}

func int64Key(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func stringKey(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
