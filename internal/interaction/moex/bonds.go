package moex

import (
	"encoding/json"
	"fmt"
)

// issTable is one block of an ISS report: column names plus data rows.
type issTable struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// rows zips every data row with the column names.
func (t *issTable) rows() []map[string]any {
	rows := make([]map[string]any, 0, len(t.Data))
	for _, data := range t.Data {
		row := make(map[string]any, len(t.Columns))
		for i, column := range t.Columns {
			if i >= len(data) {
				break
			}
			row[column] = data[i]
		}
		rows = append(rows, row)
	}
	return rows
}

type issReport struct {
	Securities issTable `json:"securities"`
	Yields     issTable `json:"marketdata_yields"`
}

// ParseBonds converts an ISS bond board payload into bond entities. The
// securities block supplies the static fields, the marketdata_yields block
// overrides the yield and adds the duration where the bond actually traded.
func ParseBonds(data []byte) ([]Bond, error) {
	var report issReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode iss payload: %w", err)
	}

	yields := make(map[string]map[string]any, len(report.Yields.Data))
	for _, row := range report.Yields.rows() {
		if secID := asString(row["secid"]); secID != "" {
			yields[secID] = row
		}
	}

	bonds := make([]Bond, 0, len(report.Securities.Data))
	for _, row := range report.Securities.rows() {
		bond := Bond{
			SecID:         asString(row["SECID"]),
			BoardID:       asString(row["BOARDID"]),
			ShortName:     asString(row["SHORTNAME"]),
			CouponPercent: asFloat(row["COUPONPERCENT"]),
			MatDate:       asString(row["MATDATE"]),
			FaceValue:     asFloat(row["FACEVALUE"]),
			FaceUnit:      asString(row["FACEUNIT"]),
			ListLevel:     asInt(row["LISTLEVEL"]),
			YTM:           asFloat(row["YIELDATPREVWAPRICE"]),
		}

		if bond.SecID == "" {
			continue
		}

		if yield, ok := yields[bond.SecID]; ok {
			if v := asFloat(yield["effectiveyield"]); v != nil {
				bond.YTM = v
			}
			bond.DurationDays = asFloat(yield["duration"])
		}

		bonds = append(bonds, bond)
	}

	return bonds, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

func asInt(v any) *int {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	i := int(f)
	return &i
}
