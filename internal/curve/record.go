package curve

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Reserved labels of a curve snapshot. Every other label is expected to be a
// term column like "Срок 1.0 лет".
const (
	DateLabel = "Дата"
	TimeLabel = "Время"
)

// DateLayout is the date layout used in the MOEX curve tables.
const DateLayout = "02.01.2006"

var termLabelRe = regexp.MustCompile(`Срок\s+(\d+(?:\.\d+)?)\s+лет`)

// TermLabel builds a term column label from the textual form of a maturity
// in years, ex: TermLabel("0.25") == "Срок 0.25 лет".
func TermLabel(years string) string {
	return "Срок " + years + " лет"
}

// Record describes one sampled curve snapshot: a calendar date, an optional
// intraday time and a set of labelled cells. Cells keep the raw values of the
// source table: float64, string or nil.
type Record struct {
	Date  string // ex: 07.11.2025
	Time  string // ex: 18:30:00, may be empty
	Cells map[string]any
}

// DateTime returns a time.Time object parsed from the Date field.
func (r *Record) DateTime() time.Time {
	date, _ := time.Parse(DateLayout, r.Date)
	return date
}

// SelectLatest returns the most recent record: a later date wins regardless
// of time, equal dates are broken by the greater time string. Time is
// compared as a plain string, so non zero-padded times would sort wrong.
// Returns nil for an empty input.
func SelectLatest(records []Record) *Record {
	if len(records) == 0 {
		return nil
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].DateTime(), sorted[j].DateTime()
		if di.Equal(dj) {
			return sorted[i].Time > sorted[j].Time
		}
		return di.After(dj)
	})

	return &sorted[0]
}

// TermMap converts a record into a term (years) to yield (percent) map.
// Labels that do not look like a term column are skipped, as are empty,
// dash and unparseable cells: bad data degrades to omission, never to an
// error or a substituted zero.
func TermMap(record Record) map[float64]float64 {
	terms := make(map[float64]float64, len(record.Cells))

	for label, cell := range record.Cells {
		if label == DateLabel || label == TimeLabel {
			continue
		}

		match := termLabelRe.FindStringSubmatch(label)
		if match == nil {
			continue
		}

		term, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}

		value, ok := parseCell(cell)
		if !ok {
			continue
		}

		terms[term] = value
	}

	return terms
}

func parseCell(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		s := cleanNumber(v)
		if s == "" || s == "-" {
			return 0, false
		}

		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}

// cleanNumber strips spaces and swaps the comma decimal separator used by
// the source tables for a period.
func cleanNumber(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	return s
}
