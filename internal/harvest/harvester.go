package harvest

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"scorpion-scraper/internal/dataset"
	"scorpion-scraper/internal/matches"
	"scorpion-scraper/internal/metrics"
	"scorpion-scraper/internal/scorpion"
)

// New creates a Harvester with the given pool size.
func New(newClient scorpion.ClientFactory, workers int, m metrics.Metrics) *Harvester {
	if workers <= 0 {
		workers = 1
	}
	return &Harvester{newClient: newClient, workers: workers, metrics: m}
}

// Run harvests every tournament id and returns the assembled batch of rows.
// Stages whose id is in ingested are never fetched. One tournament's failure,
// panic included, never aborts its siblings; it is logged, counted and
// reported in the summary.
func (h *Harvester) Run(tournamentIDs []int, ingested map[int64]struct{}) ([]dataset.Row, Summary) {
	jobs := make(chan int)
	results := make(chan tournamentResult)

	var wg sync.WaitGroup
	for w := 0; w < h.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := h.newClient()
			for id := range jobs {
				rows, skipped, err := h.harvestTournament(client, id, ingested)
				results <- tournamentResult{id: id, rows: rows, skipped: skipped, err: err}
			}
		}()
	}
	go func() {
		for _, id := range tournamentIDs {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var batch []dataset.Row
	var summary Summary
	for res := range results {
		if res.err != nil {
			log.Error("Tournament harvest failed", "tournamentID", res.id, "error", res.err)
			h.metrics.IncTournamentFailures()
			summary.Failures = append(summary.Failures, Failure{TournamentID: res.id, Err: res.err})
			continue
		}
		if res.skipped {
			h.metrics.IncTournamentsSkipped()
			summary.Skipped++
			continue
		}
		batch = append(batch, res.rows...)
		summary.Processed++
		summary.Matches += len(res.rows)
		h.metrics.IncTournamentsProcessed()
		h.metrics.AddMatchesScraped(len(res.rows))
		log.Info("Processed tournament", "tournamentID", res.id, "matches", len(res.rows), "completed", summary.Processed)
	}
	return batch, summary
}

func (h *Harvester) harvestTournament(client scorpion.Client, id int, ingested map[int64]struct{}) (rows []dataset.Row, skipped bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, skipped = nil, false
			err = fmt.Errorf("panic while harvesting tournament %d: %v", id, r)
		}
	}()

	info, err := client.TournamentInfo(id)
	if err != nil {
		return nil, false, err
	}
	if strings.EqualFold(info.Type, "team") {
		log.Debug("Skipping team tournament", "tournamentID", id, "name", info.Name)
		return nil, true, nil
	}

	for _, stage := range info.Stages {
		stageID := parseInt64(stage.ID)
		if stageID != nil {
			if _, ok := ingested[*stageID]; ok {
				log.Debug("Stage already in dataset, skipping fetch", "tournamentID", id, "stageID", *stageID)
				continue
			}
		}
		doc, err := client.FetchDocument(stage.URL)
		if err != nil {
			return nil, false, err
		}
		sequence := parseInt64(stage.Sequence)
		for _, rec := range matches.Extract(doc, stage.URL) {
			rows = append(rows, assembleRow(rec, info, stageID, sequence))
		}
	}
	return rows, false, nil
}

// assembleRow denormalizes tournament context onto one parsed record. The
// date stays raw site text here; Merge owns date normalization.
func assembleRow(rec matches.Record, info *scorpion.TournamentInfo, stageID, sequence *int64) dataset.Row {
	row := dataset.Row{
		StageID:        stageID,
		Player1:        rec.Player1.Name,
		Player1ID:      rec.Player1.ID,
		Player2:        rec.Player2.Name,
		Player2ID:      rec.Player2.ID,
		GoalsPlayer1:   int32(rec.Goals1),
		GoalsPlayer2:   int32(rec.Goals2),
		Overtime:       "No",
		Stage:          string(rec.Stage),
		RoundNumber:    rec.RoundNumber(),
		TournamentName: info.Name,
		TournamentID:   int64(info.ID),
		StageSequence:  sequence,
	}
	if rec.Overtime {
		row.Overtime = "Yes"
	}
	if rec.GameNumber != nil {
		game := int32(*rec.GameNumber)
		row.PlayoffGameNumber = &game
	}
	if info.Date != "" {
		date := info.Date
		row.Date = &date
	}
	return row
}

// parseInt64 coerces raw site text to a numeric id, nil when it is not one.
func parseInt64(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
