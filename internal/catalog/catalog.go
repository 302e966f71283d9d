package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

var header = []string{"ID", "Name", "Type"}

// Read loads the catalog CSV. A missing file is an empty catalog.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var entries []Entry
	for i, record := range records {
		if i == 0 || len(record) < 3 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			log.Warn("Skipping catalog row with non-numeric id", "id", record[0], "path", path)
			continue
		}
		entries = append(entries, Entry{ID: id, Name: record[1], Type: record[2]})
	}
	return entries, nil
}

// Append adds entries to the catalog file, writing the header first when the
// file is new or empty.
func Append(path string, entries []Entry) error {
	info, err := os.Stat(path)
	needsHeader := errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing catalog header: %w", err)
		}
	}
	for _, entry := range entries {
		record := []string{strconv.Itoa(entry.ID), entry.Name, entry.Type}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing catalog row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// IndividualIDs filters the catalog down to the tournaments the match
// harvester ingests.
func IndividualIDs(entries []Entry) []int {
	var ids []int
	for _, entry := range entries {
		if entry.Type == "Individual" {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}
