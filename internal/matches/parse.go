package matches

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
)

var (
	playerIDPattern = regexp.MustCompile(`/user/id/(\d+)/`)
	tourPattern     = regexp.MustCompile(`(\d+)\s*Tour`)
)

// Extract parses one stage schedule page into match records. The
// div.saved-matches block re-lists games that appear elsewhere on the page, so
// it is dropped before the page is classified and walked.
func Extract(doc *goquery.Document, url string) []Record {
	doc.Find("div.saved-matches").Remove()
	if Classify(doc) == StagePlayoff {
		return ExtractPlayoff(doc, url)
	}
	return ExtractRoundRobin(doc, url)
}

// Classify reports which competition format a stage page holds. A playoff
// bracket always renders at least one series row; group play never does.
func Classify(doc *goquery.Document) Stage {
	if doc.Find("tr.series-container").Length() > 0 {
		return StagePlayoff
	}
	return StageRoundRobin
}

// ExtractRoundRobin reads every group table on the page. Each table carries
// its own tour header; rows that fail to parse are skipped, never fatal.
func ExtractRoundRobin(doc *goquery.Document, url string) []Record {
	var records []Record
	doc.Find("table.grTable").Each(func(_ int, table *goquery.Selection) {
		tour := tourNumber(table)
		table.Find(`tr[id^="match"]`).Each(func(_ int, row *goquery.Selection) {
			raw := row.Find(`td[class^="ma_result_"]`).First().Text()
			if !strings.Contains(raw, ":") {
				return
			}
			goals1, goals2, ok := parseScore(raw)
			if !ok {
				log.Warn("Skipping round-robin row with unparsable score", "score", cleanScore(raw), "url", url)
				return
			}
			records = append(records, Record{
				Stage:    StageRoundRobin,
				Player1:  playerFromCell(row.Find("td.ma_name1")),
				Player2:  playerFromCell(row.Find("td.ma_name2")),
				Goals1:   goals1,
				Goals2:   goals2,
				Overtime: strings.Contains(raw, "(OT)"),
				Tour:     tour,
			})
		})
	})
	return records
}

// ExtractPlayoff walks subheaders and match blocks in document order; the
// current subheader's bracket fraction applies to every series until the next
// subheader. The last result cell of a series is the aggregate score and is
// not a game.
func ExtractPlayoff(doc *goquery.Document, url string) []Record {
	var records []Record
	var fraction *float64
	doc.Find("div.subheader, div.gr_match").Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass("subheader") {
			fraction = StageFraction(sel.Text())
			return
		}
		sel.Find("tr.series-container").Each(func(_ int, series *goquery.Selection) {
			players := series.Find(`td[class^="ma_name"] a`)
			if players.Length() < 2 {
				return
			}
			player1 := playerFromLink(players.Eq(0))
			player2 := playerFromLink(players.Eq(1))
			scores := series.Find(`td[class^="ma_result_"]`)
			scores.Each(func(i int, score *goquery.Selection) {
				if i == scores.Length()-1 {
					return
				}
				raw := score.Text()
				if !strings.Contains(raw, ":") {
					return
				}
				goals1, goals2, ok := parseScore(raw)
				if !ok {
					log.Warn("Skipping playoff game with unparsable score", "score", cleanScore(raw), "url", url)
					return
				}
				game := i + 1
				records = append(records, Record{
					Stage:      StagePlayoff,
					Player1:    player1,
					Player2:    player2,
					Goals1:     goals1,
					Goals2:     goals2,
					Overtime:   strings.Contains(raw, "(OT)"),
					Fraction:   fraction,
					GameNumber: &game,
				})
			})
		})
	})
	return records
}

// StageFraction maps a playoff subheader label to its bracket-depth fraction.
// Unrecognized labels return nil; their records are still emitted, just
// without a round number.
func StageFraction(label string) *float64 {
	name := strings.ToLower(strings.TrimSpace(label))
	for _, stage := range playoffStages {
		if strings.Contains(name, stage.label) {
			f := stage.fraction
			return &f
		}
	}
	return nil
}

// playerFromCell prefers the profile link inside a player cell and falls back
// to the cell's plain text when there is none.
func playerFromCell(cell *goquery.Selection) Player {
	link := cell.Find("a").First()
	if link.Length() > 0 {
		if player := playerFromLink(link); player.Name != "" {
			return player
		}
	}
	return Player{Name: strings.TrimSpace(cell.Text())}
}

func playerFromLink(link *goquery.Selection) Player {
	player := Player{Name: strings.TrimSpace(link.Text())}
	if href, ok := link.Attr("href"); ok {
		if m := playerIDPattern.FindStringSubmatch(href); m != nil {
			if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				player.ID = &id
			}
		}
	}
	return player
}

// cleanScore strips the decoration the site appends to raw result text:
// overtime and walkover markers, non-breaking spaces, asterisks and newlines.
func cleanScore(raw string) string {
	return strings.NewReplacer("(OT)", "", "(W.O)", "", "\u00a0", "", "*", "", "\n", "").Replace(raw)
}

func parseScore(raw string) (int, int, bool) {
	parts := strings.Split(cleanScore(raw), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	goals1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	goals2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return goals1, goals2, true
}

// tourNumber pulls the tour ordinal out of a table header like "3 Tour".
// Tables without such a header yield a nil ordinal.
func tourNumber(table *goquery.Selection) *int {
	var tour *int
	table.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
		text := th.Text()
		if !strings.Contains(text, "Tour") {
			return true
		}
		if m := tourPattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				tour = &n
			}
		}
		return false
	})
	return tour
}
