package scorpion_test

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorpion-scraper/internal/scorpion"
)

func newTestClient(baseURL string) *scorpion.SiteClient {
	return scorpion.NewClient(scorpion.Config{
		BaseURL:    baseURL,
		Retries:    2,
		RetryDelay: time.Millisecond,
		Timeout:    time.Second,
	})
}

func TestFetchDocumentParsesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div id="greeting">hello</div></body></html>`))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL).FetchDocument(server.URL + "/eng/page/")
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Find("#greeting").Text())
}

func TestFetchDocumentEmptyOnErrorStatus(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL).FetchDocument(server.URL + "/eng/missing/")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Zero(t, doc.Find("table").Length())
	// Error statuses are final, never retried.
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests))
}

func TestFetchDocumentRetriesConnectionFailures(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	// Accept and immediately drop every connection.
	var accepts int32
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			atomic.AddInt32(&accepts, 1)
			conn.Close()
		}
	}()

	baseURL := "http://" + listener.Addr().String()
	_, err = newTestClient(baseURL).FetchDocument(baseURL + "/eng/page/")
	require.Error(t, err)

	var transient *scorpion.TransientFetchError
	assert.True(t, errors.As(err, &transient))
	// Initial attempt plus two retries.
	assert.EqualValues(t, 3, atomic.LoadInt32(&accepts))
}

func TestTournamentInfo(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "tournament.html"))
	require.NoError(t, err)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eng/tournament/id/42/", r.URL.Path)
		w.Write(page)
	}))
	defer server.Close()

	info, err := newTestClient(server.URL).TournamentInfo(42)
	require.NoError(t, err)

	assert.Equal(t, 42, info.ID)
	assert.Equal(t, "Thailand Open 2023", info.Name)
	assert.Equal(t, "Individual", info.Type)
	assert.Equal(t, "21.05.2023", info.Date)

	// Rows without both a sequence cell and a schedule link are not stages.
	require.Len(t, info.Stages, 2)
	assert.Equal(t, "555", info.Stages[0].ID)
	assert.Equal(t, server.URL+"/eng/stage/id/555/schedule/?print", info.Stages[0].URL)
	assert.Equal(t, "1", info.Stages[0].Sequence)
	assert.Equal(t, "556", info.Stages[1].ID)
	assert.Equal(t, "2", info.Stages[1].Sequence)
}

func TestTournamentInfoMissingMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer server.Close()

	info, err := newTestClient(server.URL).TournamentInfo(7)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", info.Name)
	assert.Equal(t, "Unknown", info.Type)
	assert.Equal(t, "Unknown", info.Date)
	assert.Empty(t, info.Stages)
}

func TestPlayerProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eng/user/id/777/", r.URL.Path)
		w.Write([]byte(`<html><body>
<h1 id="header">Grandmaster - John Doe</h1>
<table class="iTable">
  <tr><th>World ranking</th><td>5 (ID 1234)</td></tr>
  <tr><th>Country</th><td>Thailand</td></tr>
  <tr><th>City</th><td>Bangkok</td></tr>
  <tr><th>Date of birth</th><td>01.01.1990</td></tr>
  <tr><th>Sex</th><td>Male</td></tr>
</table>
</body></html>`))
	}))
	defer server.Close()

	profile, err := newTestClient(server.URL).PlayerProfile(777)
	require.NoError(t, err)
	assert.Equal(t, int64(777), profile.PlayerID)
	assert.Equal(t, "John Doe", profile.Name)
	assert.Equal(t, "1234", profile.RankingID)
	assert.Equal(t, "Thailand", profile.Country)
	assert.Equal(t, "Bangkok", profile.City)
	assert.Equal(t, "01.01.1990", profile.DateOfBirth)
	assert.Equal(t, "Male", profile.Sex)
}
