package players

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"scorpion-scraper/internal/scorpion"
)

var header = []string{"PlayerID", "Name", "RankingID", "Country", "City", "DateOfBirth", "Sex"}

// Scraper fetches player profiles through a bounded worker pool. Each worker
// builds its own site client.
type Scraper struct {
	newClient scorpion.ClientFactory
	workers   int
}

// NewScraper creates a Scraper with the given pool size.
func NewScraper(newClient scorpion.ClientFactory, workers int) *Scraper {
	if workers <= 0 {
		workers = 1
	}
	return &Scraper{newClient: newClient, workers: workers}
}

// ScrapeAll fetches a profile for every id. A failed fetch degrades to a bare
// profile carrying only the id, so the players file still gains the row and
// the id is not retried forever.
func (s *Scraper) ScrapeAll(playerIDs []int64) []scorpion.PlayerProfile {
	jobs := make(chan int64)
	results := make(chan scorpion.PlayerProfile)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := s.newClient()
			for id := range jobs {
				profile, err := client.PlayerProfile(id)
				if err != nil {
					log.Warn("Player profile fetch failed", "playerID", id, "error", err)
					results <- scorpion.PlayerProfile{PlayerID: id}
					continue
				}
				results <- *profile
			}
		}()
	}
	go func() {
		for _, id := range playerIDs {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var profiles []scorpion.PlayerProfile
	for profile := range results {
		profiles = append(profiles, profile)
	}
	return profiles
}

// Merge folds freshly scraped profiles into the existing set. The newest row
// per player wins; the result is sorted by player id for a stable file.
func Merge(existing, scraped []scorpion.PlayerProfile) []scorpion.PlayerProfile {
	byID := make(map[int64]scorpion.PlayerProfile, len(existing)+len(scraped))
	for _, profile := range existing {
		byID[profile.PlayerID] = profile
	}
	for _, profile := range scraped {
		byID[profile.PlayerID] = profile
	}

	merged := make([]scorpion.PlayerProfile, 0, len(byID))
	for _, profile := range byID {
		merged = append(merged, profile)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].PlayerID < merged[j].PlayerID })
	return merged
}

// ReadFile loads the players CSV. A missing file is an empty set.
func ReadFile(path string) ([]scorpion.PlayerProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening players file %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading players file %s: %w", path, err)
	}

	var profiles []scorpion.PlayerProfile
	for i, record := range records {
		if i == 0 || len(record) < len(header) {
			continue
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			log.Warn("Skipping players row with non-numeric id", "id", record[0], "path", path)
			continue
		}
		profiles = append(profiles, scorpion.PlayerProfile{
			PlayerID:    id,
			Name:        record[1],
			RankingID:   record[2],
			Country:     record[3],
			City:        record[4],
			DateOfBirth: record[5],
			Sex:         record[6],
		})
	}
	return profiles, nil
}

// WriteFile persists the full player set atomically.
func WriteFile(path string, profiles []scorpion.PlayerProfile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating players directory %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating players file %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("writing players header: %w", err)
	}
	for _, profile := range profiles {
		record := []string{
			strconv.FormatInt(profile.PlayerID, 10),
			profile.Name,
			profile.RankingID,
			profile.Country,
			profile.City,
			profile.DateOfBirth,
			profile.Sex,
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("writing players row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
