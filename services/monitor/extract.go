package monitor

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// FareRecord is one award fare on the calendar: a flight date, the
// miles price and the cash fee on top.
type FareRecord struct {
	Date  string // YYYY-MM-DD
	Miles int64
	Fees  int64
}

var monthMap = map[string]string{
	"Jan": "01",
	"Feb": "02",
	"Mar": "03",
	"Apr": "04",
	"May": "05",
	"Jun": "06",
	"Jul": "07",
	"Aug": "08",
	"Sep": "09",
	"Oct": "10",
	"Nov": "11",
	"Dec": "12",
}

// The calendar grid renders one button per date. Which attribute
// carries the fare has changed across site deployments, hence the
// ordered strategies below.
const gridCellSelector = `button[role="gridcell"]`

// "Feb 1, 2026. Fare: 175k + $19"
var fareLabelRegex = regexp.MustCompile(`([A-Za-z]+)\s+(\d+),\s+(\d{4})\.\s+Fare:\s+(\d+)k\s+\+\s+\$(\d+)`)

// "175k +$19" or "175k + $19", as rendered inside the cell
var fareTokenRegex = regexp.MustCompile(`(\d+)k\s*\+\s*\$(\d+)`)

// "Feb 1, 2026" with no fare attached
var dateLabelRegex = regexp.MustCompile(`([A-Za-z]+)\s+(\d+),\s+(\d{4})`)

// extractStrategy scans the calendar document for fare records. The
// remote markup drifts, so strategies are tried in priority order and
// the first one to produce anything wins.
type extractStrategy func(doc *goquery.Document) []FareRecord

var extractStrategies = []extractStrategy{
	extractFromFareLabels,
	extractFromSplitCells,
}

// ExtractFares pulls every award fare out of the calendar markup.
// It is a pure function of its input and never fails: markup that
// matches nothing yields an empty result.
func ExtractFares(rawHTML string) []FareRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var records []FareRecord
	for _, strategy := range extractStrategies {
		records = strategy(doc)
		if len(records) > 0 {
			break
		}
	}

	return dedupeAndSort(records)
}

func isoDate(month, day, year string) (string, bool) {
	monthNum, ok := monthMap[month]
	if !ok {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%02d", year, monthNum, d), true
}

// extractFromFareLabels handles the self-describing form where each
// gridcell carries the full date and fare in its aria-label.
func extractFromFareLabels(doc *goquery.Document) []FareRecord {
	var records []FareRecord
	doc.Find(gridCellSelector).Each(func(_ int, cell *goquery.Selection) {
		label, ok := cell.Attr("aria-label")
		if !ok {
			return
		}

		groups := fareLabelRegex.FindStringSubmatch(label)
		if groups == nil {
			return
		}

		date, ok := isoDate(groups[1], groups[2], groups[3])
		if !ok {
			return
		}
		thousands, err := strconv.ParseInt(groups[4], 10, 64)
		if err != nil {
			return
		}
		fees, err := strconv.ParseInt(groups[5], 10, 64)
		if err != nil {
			return
		}

		records = append(records, FareRecord{
			Date:  date,
			Miles: thousands * 1000,
			Fees:  fees,
		})
	})
	return records
}

// extractFromSplitCells handles the variant where the aria-label only
// names the date and the fare is rendered as text inside the cell.
// One fare token and one date label per cell is the supported case;
// cells with several of either are skipped.
func extractFromSplitCells(doc *goquery.Document) []FareRecord {
	var records []FareRecord
	doc.Find(gridCellSelector).Each(func(_ int, cell *goquery.Selection) {
		label, ok := cell.Attr("aria-label")
		if !ok {
			label, _ = cell.Attr("data-date")
		}

		dateGroups := dateLabelRegex.FindStringSubmatch(label)
		if dateGroups == nil {
			return
		}
		date, ok := isoDate(dateGroups[1], dateGroups[2], dateGroups[3])
		if !ok {
			return
		}

		if len(cell.Nodes) == 0 {
			return
		}
		text := htmlutil.CleanText(htmlutil.GetText(cell.Nodes[0]))
		fareGroups := fareTokenRegex.FindAllStringSubmatch(text, 2)
		if len(fareGroups) != 1 {
			return
		}

		thousands, err := strconv.ParseInt(fareGroups[0][1], 10, 64)
		if err != nil {
			return
		}
		fees, err := strconv.ParseInt(fareGroups[0][2], 10, 64)
		if err != nil {
			return
		}

		records = append(records, FareRecord{
			Date:  date,
			Miles: thousands * 1000,
			Fees:  fees,
		})
	})
	return records
}

func dedupeAndSort(records []FareRecord) []FareRecord {
	seen := map[string]bool{}
	out := records[:0]
	for _, r := range records {
		key := fmt.Sprintf("%s|%d", r.Date, r.Miles)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}

	// dates are YYYY-MM-DD so string order is chronological order
	slices.SortFunc(out, func(a, b FareRecord) int {
		if a.Date != b.Date {
			return strings.Compare(a.Date, b.Date)
		}
		return int(a.Miles - b.Miles)
	})
	return out
}
