package scorpion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TournamentInfo fetches a tournament page and reads its metadata and stage
// list. A missing or empty page yields "Unknown" metadata and no stages, the
// same degradation FetchDocument applies to the page itself.
func (c *SiteClient) TournamentInfo(tournamentID int) (*TournamentInfo, error) {
	url := fmt.Sprintf("%s/eng/tournament/id/%d/", c.baseURL, tournamentID)
	doc, err := c.FetchDocument(url)
	if err != nil {
		return nil, err
	}

	info := &TournamentInfo{
		ID:   tournamentID,
		Name: headerText(doc),
		Type: metadataValue(doc, "Tournament type"),
		Date: metadataValue(doc, "Date of the tournament"),
	}

	doc.Find("table.stages-table tr").Each(func(_ int, row *goquery.Selection) {
		sequence := row.Find("td.stage-gr")
		if sequence.Length() == 0 {
			return
		}
		link := linkContaining(row, "Schedule and results")
		if link == nil {
			return
		}
		href, _ := link.Attr("href")
		stageURL := c.baseURL + href + "?print"
		info.Stages = append(info.Stages, StageRef{
			ID:       stageIDFromURL(stageURL),
			URL:      stageURL,
			Sequence: strings.TrimSpace(sequence.Text()),
		})
	})
	return info, nil
}

func headerText(doc *goquery.Document) string {
	if name := strings.TrimSpace(doc.Find("h1#header").Text()); name != "" {
		return name
	}
	return "Unknown"
}

// metadataValue reads the td next to the th whose text contains label in the
// tournament metadata table.
func metadataValue(doc *goquery.Document, label string) string {
	value := "Unknown"
	doc.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
		if !strings.Contains(th.Text(), label) {
			return true
		}
		if td := th.Next(); td.Is("td") {
			if text := strings.TrimSpace(td.Text()); text != "" {
				value = text
			}
		}
		return false
	})
	return value
}

func linkContaining(row *goquery.Selection, text string) *goquery.Selection {
	var link *goquery.Selection
	row.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), text) {
			link = a
			return false
		}
		return true
	})
	return link
}

// stageIDFromURL extracts the stage identifier, the path segment right before
// "schedule" in ".../stage/<id>/schedule/?print".
func stageIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-3]
}
