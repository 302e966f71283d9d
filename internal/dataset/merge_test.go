package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorpion-scraper/internal/dataset"
)

func i64(v int64) *int64     { return &v }
func i32(v int32) *int32     { return &v }
func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func testRow(tournamentID int64, stageID int64, p1, p2 int64, g1, g2 int32, date *string) dataset.Row {
	return dataset.Row{
		StageID:        i64(stageID),
		Player1:        "P1",
		Player1ID:      i64(p1),
		Player2:        "P2",
		Player2ID:      i64(p2),
		GoalsPlayer1:   g1,
		GoalsPlayer2:   g2,
		Overtime:       "No",
		Stage:          "Round-Robin",
		Date:           date,
		TournamentName: "Cup",
		TournamentID:   tournamentID,
		StageSequence:  i64(1),
	}
}

func TestMergeDeduplicates(t *testing.T) {
	existing := []dataset.Row{
		testRow(1, 100, 10, 11, 5, 2, str("2023-05-21")),
		testRow(1, 100, 12, 13, 3, 4, str("2023-05-21")),
	}
	incoming := []dataset.Row{
		// Same composite key as the first existing row, raw date.
		testRow(1, 100, 10, 11, 5, 2, str("21.05.2023")),
		// Same players, different score: a distinct game.
		testRow(1, 100, 10, 11, 2, 5, str("21.05.2023")),
		testRow(2, 200, 10, 12, 1, 0, str("22.05.2023")),
	}

	merged := dataset.Merge(existing, incoming)
	require.Len(t, merged, 4)
	// The persisted occurrence wins; existing rows keep their position.
	assert.Equal(t, existing[0], merged[0])
	assert.Equal(t, existing[1], merged[1])
}

func TestMergeIsIdempotent(t *testing.T) {
	existing := []dataset.Row{testRow(1, 100, 10, 11, 5, 2, str("2023-05-21"))}
	incoming := []dataset.Row{
		testRow(1, 100, 12, 13, 3, 4, str("21.05.2023")),
		testRow(1, 101, 10, 13, 2, 0, str("21.05.2023")),
	}

	once := dataset.Merge(existing, incoming)
	twice := dataset.Merge(once, incoming)
	assert.Equal(t, once, twice)
}

func TestMergeDropsPlayoffDraws(t *testing.T) {
	playoffDraw := testRow(1, 100, 10, 11, 3, 3, str("21.05.2023"))
	playoffDraw.Stage = "Playoff"
	playoffDraw.PlayoffGameNumber = i32(1)
	playoffWin := testRow(1, 100, 10, 11, 4, 2, str("21.05.2023"))
	playoffWin.Stage = "Playoff"
	playoffWin.PlayoffGameNumber = i32(2)
	groupDraw := testRow(1, 101, 12, 13, 2, 2, str("21.05.2023"))

	merged := dataset.Merge(nil, []dataset.Row{playoffDraw, playoffWin, groupDraw})
	require.Len(t, merged, 2)
	for _, row := range merged {
		if row.Stage == "Playoff" {
			assert.NotEqual(t, row.GoalsPlayer1, row.GoalsPlayer2)
		}
	}
}

func TestMergeNormalizesDates(t *testing.T) {
	rows := []dataset.Row{
		testRow(1, 100, 10, 11, 5, 2, str("21.05.2023")),
		testRow(1, 100, 12, 13, 1, 2, str("Unknown")),
		testRow(1, 100, 14, 15, 0, 3, nil),
	}

	merged := dataset.Merge(nil, rows)
	require.Len(t, merged, 3)
	require.NotNil(t, merged[0].Date)
	assert.Equal(t, "2023-05-21", *merged[0].Date)
	assert.Nil(t, merged[1].Date)
	assert.Nil(t, merged[2].Date)
}

func TestMergeCanonicalOrder(t *testing.T) {
	noDate := testRow(1, 100, 10, 11, 1, 0, nil)
	early := testRow(1, 100, 12, 13, 2, 0, str("20.05.2023"))
	lateSeq2 := testRow(1, 101, 14, 15, 3, 0, str("21.05.2023"))
	lateSeq2.StageSequence = i64(2)
	lateSeq1Game2 := testRow(1, 100, 16, 17, 4, 0, str("21.05.2023"))
	lateSeq1Game2.Stage = "Playoff"
	lateSeq1Game2.RoundNumber = f64(0.5)
	lateSeq1Game2.PlayoffGameNumber = i32(2)
	lateSeq1Game1 := testRow(1, 100, 16, 17, 5, 0, str("21.05.2023"))
	lateSeq1Game1.Stage = "Playoff"
	lateSeq1Game1.RoundNumber = f64(0.5)
	lateSeq1Game1.PlayoffGameNumber = i32(1)

	merged := dataset.Merge(nil, []dataset.Row{noDate, lateSeq2, lateSeq1Game2, early, lateSeq1Game1})

	require.Len(t, merged, 5)
	assert.Equal(t, "2023-05-20", *merged[0].Date)
	assert.EqualValues(t, 1, *merged[1].PlayoffGameNumber)
	assert.EqualValues(t, 2, *merged[2].PlayoffGameNumber)
	assert.EqualValues(t, 2, *merged[3].StageSequence)
	// Rows without a date sort last.
	assert.Nil(t, merged[4].Date)
}
