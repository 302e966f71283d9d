package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"scorpion-scraper/internal/scorpion"
)

const tournamentLinkPrefix = "/eng/tournament/id/"

// Discoverer walks the tournament archive and resolves tournaments the
// catalog has not seen yet. The archive lists newest first, so a short daily
// walk over the first pages is enough.
type Discoverer struct {
	client   scorpion.Client
	baseURL  string
	maxPages int
}

// NewDiscoverer creates a Discoverer over at most maxPages archive pages.
func NewDiscoverer(client scorpion.Client, baseURL string, maxPages int) *Discoverer {
	return &Discoverer{
		client:   client,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxPages: maxPages,
	}
}

// Discover walks the archive and returns catalog entries for every tournament
// not in known. The tournament type is looked up only for new ids; a failed
// lookup leaves the type empty rather than dropping the tournament.
func (d *Discoverer) Discover(known map[int]struct{}) ([]Entry, error) {
	var found []ArchiveTournament
	for page := 1; page <= d.maxPages; page++ {
		url := fmt.Sprintf("%s/eng/tournament/archive/?page=%d", d.baseURL, page)
		doc, err := d.client.FetchDocument(url)
		if err != nil {
			log.Warn("Stopping archive walk", "page", page, "error", err)
			break
		}
		tournaments := ParseArchivePage(doc)
		if len(tournaments) == 0 {
			log.Info("No tournaments on archive page, stopping", "page", page)
			break
		}
		found = append(found, tournaments...)
	}

	var entries []Entry
	for _, t := range found {
		if _, ok := known[t.ID]; ok {
			continue
		}
		entry := Entry{ID: t.ID, Name: t.Name}
		info, err := d.client.TournamentInfo(t.ID)
		switch {
		case err != nil:
			log.Warn("Could not resolve tournament type", "tournamentID", t.ID, "error", err)
		case info.Type != "Unknown":
			entry.Type = info.Type
		}
		log.Info("Discovered tournament", "tournamentID", entry.ID, "name", entry.Name, "type", entry.Type)
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseArchivePage reads tournament links out of an archive overview table.
// Only the first cell of each row is a tournament link; pagination and helper
// links elsewhere in the table are ignored.
func ParseArchivePage(doc *goquery.Document) []ArchiveTournament {
	table := doc.Find("table.sTable").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}

	var tournaments []ArchiveTournament
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td").First().Find("a").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		idx := strings.Index(href, tournamentLinkPrefix)
		if idx < 0 {
			return
		}
		rest := href[idx+len(tournamentLinkPrefix):]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			rest = rest[:slash]
		}
		id, err := strconv.Atoi(rest)
		if err != nil {
			return
		}
		tournaments = append(tournaments, ArchiveTournament{ID: id, Name: strings.TrimSpace(link.Text())})
	})
	return tournaments
}
