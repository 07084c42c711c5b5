package moex

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"golang.org/x/text/encoding/charmap"

	"kbd/internal/curve"
)

// headerRe matches the data header of a ZCYC archive CSV. Everything above
// it is a preamble and is skipped.
var headerRe = regexp.MustCompile(`(?i)^\s*tradedate\s*;\s*tradetime\s*;\s*period_\d+(?:\.\d+)?\s*$`)

var periodRe = regexp.MustCompile(`(?i)period_(\d+(?:\.\d+)?)`)

// ParseArchive extracts curve records from a yearly ZCYC ZIP archive. Each
// archive carries a single CSV with one term column; the column is renamed
// into a "Срок X.Y лет" label so the records line up with the table parser.
func ParseArchive(data []byte) ([]curve.Record, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var member *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			member = f
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("no csv file inside archive")
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open csv member: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read csv member: %w", err)
	}

	return parseArchiveCSV(decodeArchiveText(raw))
}

// decodeArchiveText handles the two encodings the archives come in:
// UTF-8 (with or without BOM) and Windows-1251.
func decodeArchiveText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func parseArchiveCSV(text string) ([]curve.Record, error) {
	lines := strings.Split(text, "\n")

	headerIdx := -1
	for i, line := range lines {
		if headerRe.MatchString(strings.TrimRight(line, "\r")) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, fmt.Errorf("csv header not found")
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) < 3 {
		return nil, fmt.Errorf("unexpected csv structure")
	}

	match := periodRe.FindStringSubmatch(rows[0][2])
	if match == nil {
		return nil, fmt.Errorf("unexpected term column: %q", rows[0][2])
	}
	label := curve.TermLabel(match[1])

	records := make([]curve.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}

		date, err := dateparse.ParseAny(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}

		records = append(records, curve.Record{
			Date:  date.Format(curve.DateLayout),
			Time:  strings.TrimSpace(row[1]),
			Cells: map[string]any{label: row[2]},
		})
	}

	return records, nil
}
