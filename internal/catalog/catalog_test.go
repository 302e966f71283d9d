package catalog_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorpion-scraper/internal/catalog"
	"scorpion-scraper/internal/scorpion"
)

const archivePage = `<html><body>
<table class="sTable">
<tbody>
  <tr><th>Tournament</th><th>Date</th></tr>
  <tr><td><a href="/eng/tournament/id/901/">Spring Cup</a></td><td>20.05.2023</td></tr>
  <tr><td><a href="/eng/tournament/id/902/">Summer Cup</a></td><td>21.05.2023</td></tr>
  <tr><td><a href="/eng/news/latest/">Site news</a></td><td></td></tr>
</tbody>
</table>
</body></html>`

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseArchivePage(t *testing.T) {
	tournaments := catalog.ParseArchivePage(docFrom(t, archivePage))
	require.Len(t, tournaments, 2)
	assert.Equal(t, 901, tournaments[0].ID)
	assert.Equal(t, "Spring Cup", tournaments[0].Name)
	assert.Equal(t, 902, tournaments[1].ID)
	assert.Equal(t, "Summer Cup", tournaments[1].Name)
}

func TestReadMissingFile(t *testing.T) {
	entries, err := catalog.Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournaments.csv")

	first := []catalog.Entry{
		{ID: 901, Name: "Spring Cup", Type: "Individual"},
		{ID: 902, Name: "Summer Cup", Type: "Team"},
	}
	require.NoError(t, catalog.Append(path, first))

	entries, err := catalog.Read(path)
	require.NoError(t, err)
	assert.Equal(t, first, entries)

	// A second append must not repeat the header.
	require.NoError(t, catalog.Append(path, []catalog.Entry{{ID: 903, Name: "Autumn Cup", Type: "Individual"}}))
	entries, err = catalog.Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 903, entries[2].ID)
}

func TestIndividualIDs(t *testing.T) {
	entries := []catalog.Entry{
		{ID: 901, Type: "Individual"},
		{ID: 902, Type: "Team"},
		{ID: 903, Type: ""},
		{ID: 904, Type: "Individual"},
	}
	assert.Equal(t, []int{901, 904}, catalog.IndividualIDs(entries))
}

func TestDiscoverSkipsKnownTournaments(t *testing.T) {
	mock := scorpion.NewMockClient()
	mock.FetchDocumentFunc = func(url string) (*goquery.Document, error) {
		if strings.Contains(url, "page=1") {
			return docFrom(t, archivePage), nil
		}
		return docFrom(t, "<html><body></body></html>"), nil
	}
	mock.TournamentInfoFunc = func(id int) (*scorpion.TournamentInfo, error) {
		return &scorpion.TournamentInfo{ID: id, Name: "Summer Cup", Type: "Individual", Date: "21.05.2023"}, nil
	}

	d := catalog.NewDiscoverer(mock, "http://site", 5)
	entries, err := d.Discover(map[int]struct{}{901: {}})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, catalog.Entry{ID: 902, Name: "Summer Cup", Type: "Individual"}, entries[0])
	// The type lookup only happens for new ids, and the walk stops at the
	// first empty page.
	assert.Equal(t, []int{902}, mock.TournamentInfoCalls)
	assert.Len(t, mock.FetchDocumentCalls, 2)
}

func TestDiscoverLeavesTypeEmptyOnLookupFailure(t *testing.T) {
	mock := scorpion.NewMockClient()
	calls := 0
	mock.FetchDocumentFunc = func(url string) (*goquery.Document, error) {
		calls++
		if calls == 1 {
			return docFrom(t, archivePage), nil
		}
		return docFrom(t, "<html></html>"), nil
	}
	mock.TournamentInfoFunc = func(id int) (*scorpion.TournamentInfo, error) {
		return &scorpion.TournamentInfo{ID: id, Name: "Unknown", Type: "Unknown", Date: "Unknown"}, nil
	}

	d := catalog.NewDiscoverer(mock, "http://site", 5)
	entries, err := d.Discover(nil)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Empty(t, entry.Type)
	}
}
