// Package extract converts archived waitlist HTML pages into the raw JSON
// record format consumed by the normalizer. The pages carry the waitlist as
// a plain table inside <tbody id="wait_list">, with Eastern-time stamps.
package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one extracted row in the lowercase export convention.
type RawRecord struct {
	WaitlistActionDate string `json:"waitlistactiondate"`
	MaximumCidr        string `json:"maximumcidr"`
	MinimumCidr        string `json:"minimumcidr"`
}

var (
	tbodyRe = regexp.MustCompile(`(?s)<tbody id="wait_list"[^>]*>(.*?)</tbody>`)
	trRe    = regexp.MustCompile(`(?s)<tr[^>]*>(.*?)</tr>`)
	tdRe    = regexp.MustCompile(`(?s)<td[^>]*>(.*?)</td>`)
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	dowRe   = regexp.MustCompile(`^[A-Za-z]+,\s*`)
)

// dateLayout parses the cell format after the weekday prefix is stripped,
// e.g. "23 Jun 2022, 14:17:46".
const dateLayout = "2 Jan 2006, 15:04:05"

// ExtractTable pulls waitlist rows out of an archived HTML page.
//
// Rows with an unparseable date or prefix are logged and skipped. An input
// with no wait_list table yields an error; a table with no usable rows
// yields an empty slice.
func ExtractTable(html []byte) ([]RawRecord, error) {
	tbody := tbodyRe.FindSubmatch(html)
	if tbody == nil {
		return nil, fmt.Errorf("no tbody with id %q in input", "wait_list")
	}

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load eastern timezone: %w", err)
	}

	var records []RawRecord
	for _, tr := range trRe.FindAllSubmatch(tbody[1], -1) {
		cells := tdRe.FindAllSubmatch(tr[1], -1)
		if len(cells) < 4 {
			continue
		}

		// Cell order: position, action date, max prefix, min prefix.
		dateText := cellText(cells[1][1])
		maxText := cellText(cells[2][1])
		minText := cellText(cells[3][1])

		actionDate, err := parseEasternDate(dateText, eastern)
		if err != nil {
			log.Printf("extract: skipping row with date %q: %v", dateText, err)
			continue
		}
		maxCidr, ok := parsePrefixCell(maxText)
		if !ok {
			log.Printf("extract: skipping row with max prefix %q", maxText)
			continue
		}
		minCidr, ok := parsePrefixCell(minText)
		if !ok {
			log.Printf("extract: skipping row with min prefix %q", minText)
			continue
		}

		records = append(records, RawRecord{
			WaitlistActionDate: actionDate,
			MaximumCidr:        strconv.Itoa(maxCidr),
			MinimumCidr:        strconv.Itoa(minCidr),
		})
	}
	return records, nil
}

// MarshalRecords renders extracted records as the JSON export format.
func MarshalRecords(records []RawRecord) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

func cellText(cell []byte) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(string(cell), ""))
}

// parseEasternDate converts "Thu, 23 Jun 2022, 14:17:46 EDT" to ISO-8601.
// The zone suffix names Eastern time either way; the pages also abbreviate
// September as "Sept", which the reference layout does not accept.
func parseEasternDate(s string, eastern *time.Location) (string, error) {
	s = dowRe.ReplaceAllString(s, "")
	s = strings.Replace(s, "Sept", "Sep", 1)
	s = strings.TrimSuffix(s, " EDT")
	s = strings.TrimSuffix(s, " EST")

	t, err := time.ParseInLocation(dateLayout, s, eastern)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

// parsePrefixCell parses "/24" style cells.
func parsePrefixCell(s string) (int, bool) {
	if !strings.HasPrefix(s, "/") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "/"))
	if err != nil {
		return 0, false
	}
	return n, true
}
