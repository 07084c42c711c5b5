package moex_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kbd/internal/curve"
	"kbd/internal/interaction/moex"
)

func Test_ParseArchive(t *testing.T) {
	// The fixture mirrors a real ZCYC archive: a Windows-1251 CSV with a
	// human preamble above the tradedate;tradetime;period_X.Y header.
	data, err := os.ReadFile(filepath.Join("testdata", "zcyc_2025.csv.zip"))
	require.NoError(t, err)

	records, err := moex.ParseArchive(data)
	require.NoError(t, err)

	require.Equal(t, []curve.Record{
		{Date: "06.11.2025", Time: "18:30:00", Cells: map[string]any{"Срок 0.25 лет": "13,85"}},
		{Date: "07.11.2025", Time: "18:30:00", Cells: map[string]any{"Срок 0.25 лет": "13.9"}},
		{Date: "10.11.2025", Time: "18:30:00", Cells: map[string]any{"Срок 0.25 лет": "-"}},
		{Date: "11.11.2025", Time: "18:30:00", Cells: map[string]any{"Срок 0.25 лет": ""}},
	}, records)

	// Dash and empty cells survive as raw values and are dropped by the
	// term map, not by the archive parser.
	require.Equal(t, map[float64]float64{0.25: 13.85}, curve.TermMap(records[0]))
	require.Equal(t, map[float64]float64{0.25: 13.9}, curve.TermMap(records[1]))
	require.Empty(t, curve.TermMap(records[2]))
	require.Empty(t, curve.TermMap(records[3]))
}

func Test_ParseArchive_BadData(t *testing.T) {
	t.Run("should fail on a payload that is not a zip", func(t *testing.T) {
		_, err := moex.ParseArchive([]byte("not a zip"))
		require.Error(t, err)
	})
}
