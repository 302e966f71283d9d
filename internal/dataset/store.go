package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/parquet-go/parquet-go"
)

// Store reads and writes the persisted match dataset, a single parquet file.
// Writes land in a sibling temp file and are swapped in with a rename, so an
// interrupted run cannot corrupt the previous snapshot.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full dataset snapshot. A missing file is an empty dataset,
// not an error: first runs start from nothing.
func (s *Store) Load() ([]Row, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		log.Info("No existing dataset, starting empty", "path", s.path)
		return nil, nil
	}
	rows, err := parquet.ReadFile[Row](s.path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", s.path, err)
	}
	return rows, nil
}

// Write persists the dataset atomically.
func (s *Store) Write(rows []Row) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dataset directory %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := parquet.WriteFile(tmp, rows); err != nil {
		return fmt.Errorf("writing dataset %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing dataset %s: %w", s.path, err)
	}
	return nil
}

// IngestedStageIDs derives the set of stages already present in the dataset.
// The orchestrator never fetches these again.
func IngestedStageIDs(rows []Row) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, row := range rows {
		if row.StageID != nil {
			ids[*row.StageID] = struct{}{}
		}
	}
	return ids
}

// HarvestedTournamentIDs derives the set of tournaments with at least one
// persisted match.
func HarvestedTournamentIDs(rows []Row) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, row := range rows {
		ids[row.TournamentID] = struct{}{}
	}
	return ids
}

// UniquePlayerIDs returns the sorted distinct resolved player identities on
// either side of any persisted match.
func UniquePlayerIDs(rows []Row) []int64 {
	set := make(map[int64]struct{})
	for _, row := range rows {
		if row.Player1ID != nil {
			set[*row.Player1ID] = struct{}{}
		}
		if row.Player2ID != nil {
			set[*row.Player2ID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
