package moex

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kbd/internal/curve"
)

// ParseYieldCurveTable extracts curve records from the G-curve page HTML.
// The table header carries the "Дата", "Время" and "Срок X.X лет" labels;
// cell values are kept as raw strings, the curve package owns their parsing.
func ParseYieldCurveTable(html string) ([]curve.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var labels []string
	doc.Find("table thead tr th").Each(func(_ int, th *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(th.Text()))
	})

	if len(labels) == 0 {
		return nil, fmt.Errorf("curve table header not found")
	}

	var records []curve.Record

	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 2 {
			return
		}

		record := curve.Record{Cells: make(map[string]any, tds.Length())}

		tds.Each(func(i int, td *goquery.Selection) {
			if i >= len(labels) {
				return
			}

			text := strings.TrimSpace(td.Text())
			switch labels[i] {
			case curve.DateLabel:
				record.Date = text
			case curve.TimeLabel:
				record.Time = text
			default:
				record.Cells[labels[i]] = text
			}
		})

		if record.Date == "" {
			return
		}

		records = append(records, record)
	})

	return records, nil
}
