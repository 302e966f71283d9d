package scorpion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"
)

const userAgent = "scorpion-scraper/1.0"

// SiteClient fetches and parses pages from the results site. Each instance
// owns its own http.Client so repeated requests reuse the same connections;
// workers that need isolated sessions construct their own SiteClient.
type SiteClient struct {
	httpClient *http.Client
	baseURL    string
	retries    uint64
	retryDelay time.Duration
}

var _ Client = (*SiteClient)(nil)

// NewClient creates a new client for the results site.
func NewClient(cfg Config) *SiteClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	return &SiteClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		retries:    uint64(retries),
		retryDelay: delay,
	}
}

// BaseURL returns the site root the client was configured with.
func (c *SiteClient) BaseURL() string {
	return c.baseURL
}

// FetchDocument retrieves url and returns its parsed document tree. A
// non-success status degrades to an empty document so callers carry on with
// missing selectors; only connection-level failures surface as errors.
func (c *SiteClient) FetchDocument(url string) (*goquery.Document, error) {
	body, err := c.get(url)
	if err != nil {
		var perm *PermanentFetchError
		if errors.As(err, &perm) {
			log.Warn("Non-success status, treating page as empty", "url", url, "status", perm.StatusCode)
			return goquery.NewDocumentFromReader(strings.NewReader(""))
		}
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// get issues one GET with bounded constant-delay retries. Connection-level
// failures are retried; a non-success status is final and comes back as a
// *PermanentFetchError with no body.
func (c *SiteClient) get(url string) ([]byte, error) {
	var body []byte
	backoff := retry.WithMaxRetries(c.retries, retry.NewConstant(c.retryDelay))
	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Warn("Request failed, retrying", "url", url, "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &PermanentFetchError{URL: url, StatusCode: resp.StatusCode}
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			log.Warn("Reading response failed, retrying", "url", url, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		var perm *PermanentFetchError
		if errors.As(err, &perm) {
			return nil, perm
		}
		return nil, &TransientFetchError{URL: url, Err: err}
	}
	return body, nil
}

// PlayerProfile fetches a player page and reads the profile fields the
// players file carries. The page header reads "<rank title> - <name>"; only
// the part after the separator is the name.
func (c *SiteClient) PlayerProfile(playerID int64) (*PlayerProfile, error) {
	url := fmt.Sprintf("%s/eng/user/id/%d/", c.baseURL, playerID)
	doc, err := c.FetchDocument(url)
	if err != nil {
		return nil, err
	}

	profile := &PlayerProfile{PlayerID: playerID}
	name := strings.TrimSpace(doc.Find("h1#header").Text())
	if i := strings.LastIndex(name, " - "); i >= 0 {
		name = strings.TrimSpace(name[i+3:])
	}
	profile.Name = name

	fields := tableFields(doc.Find("table.iTable"))
	if ranking := fields["World ranking"]; strings.Contains(ranking, "ID ") {
		id := ranking[strings.LastIndex(ranking, "ID ")+3:]
		profile.RankingID = strings.TrimSuffix(strings.TrimSpace(id), ")")
	}
	profile.Country = fields["Country"]
	profile.City = fields["City"]
	profile.DateOfBirth = fields["Date of birth"]
	profile.Sex = fields["Sex"]
	return profile, nil
}

// tableFields flattens a th/td details table into a label-to-value map.
func tableFields(table *goquery.Selection) map[string]string {
	fields := make(map[string]string)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() != 2 {
			return
		}
		fields[strings.TrimSpace(cells.Eq(0).Text())] = strings.TrimSpace(cells.Eq(1).Text())
	})
	return fields
}
