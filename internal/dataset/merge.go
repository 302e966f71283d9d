package dataset

import (
	"sort"
	"strings"
	"time"

	"scorpion-scraper/internal/matches"
)

const siteDateLayout = "02.01.2006"

// Merge folds a freshly scraped batch into the persisted dataset. The batch
// gets its dates normalized and is put into canonical order, playoff rows
// with equal goals are dropped, then the batch is appended to the existing
// rows and deduplicated on the composite key. The first occurrence wins, so
// an already-persisted row always beats its re-scraped twin. The inputs are
// not modified.
func Merge(existing, incoming []Row) []Row {
	batch := make([]Row, len(incoming))
	copy(batch, incoming)
	for i := range batch {
		batch[i].Date = normalizeDate(batch[i].Date)
	}
	sortRows(batch)
	batch = dropPlayoffDraws(batch)

	merged := make([]Row, 0, len(existing)+len(batch))
	seen := make(map[string]struct{}, len(existing)+len(batch))
	appendRows := func(rows []Row) {
		for _, row := range rows {
			key := row.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, row)
		}
	}
	appendRows(existing)
	appendRows(batch)
	return merged
}

// normalizeDate converts the site's day-first date text to an ISO calendar
// date. "Unknown" and anything else unparsable become nil, not errors.
func normalizeDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	t, err := time.Parse(siteDateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil
	}
	iso := t.Format("2006-01-02")
	return &iso
}

// sortRows establishes the dataset's canonical order: date, then stage
// sequence, then round, then game within a playoff series. Missing values
// sort last.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if c := compareStringPtr(a.Date, b.Date); c != 0 {
			return c < 0
		}
		if c := compareInt64Ptr(a.StageSequence, b.StageSequence); c != 0 {
			return c < 0
		}
		if c := compareFloat64Ptr(a.RoundNumber, b.RoundNumber); c != 0 {
			return c < 0
		}
		return compareInt32Ptr(a.PlayoffGameNumber, b.PlayoffGameNumber) < 0
	})
}

// dropPlayoffDraws removes rows an elimination format cannot produce. They do
// show up on the source site occasionally and would poison downstream stats.
func dropPlayoffDraws(rows []Row) []Row {
	kept := rows[:0]
	for _, row := range rows {
		if row.Stage == string(matches.StagePlayoff) && row.GoalsPlayer1 == row.GoalsPlayer2 {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

func compareStringPtr(a, b *string) int {
	if a == nil || b == nil {
		return nilCompare(a == nil, b == nil)
	}
	return strings.Compare(*a, *b)
}

func compareInt64Ptr(a, b *int64) int {
	if a == nil || b == nil {
		return nilCompare(a == nil, b == nil)
	}
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareFloat64Ptr(a, b *float64) int {
	if a == nil || b == nil {
		return nilCompare(a == nil, b == nil)
	}
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareInt32Ptr(a, b *int32) int {
	if a == nil || b == nil {
		return nilCompare(a == nil, b == nil)
	}
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func nilCompare(aNil, bNil bool) int {
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	default:
		return -1
	}
}
