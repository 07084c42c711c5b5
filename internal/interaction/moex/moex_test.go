package moex_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"

	"kbd/internal/curve"
	"kbd/internal/interaction/moex"
)

func Test_GetYieldCurve(t *testing.T) {
	r, err := recorder.New(filepath.Join("testdata", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)

	t.Cleanup(func() {
		// Make sure recorder is stopped once done with it.
		require.NoError(t, r.Stop())
	})

	client := r.GetDefaultClient()

	interaction := moex.NewInteraction(slog.Default(), client)

	records, err := interaction.GetYieldCurve(context.Background())
	require.NoError(t, err)

	require.Equal(t, []curve.Record{
		{
			Date: "07.11.2025",
			Time: "18:30:00",
			Cells: map[string]any{
				"Срок 0.25 лет": "13,85",
				"Срок 1.0 лет":  "14,12",
				"Срок 30.0 лет": "12,97",
			},
		},
		{
			Date: "06.11.2025",
			Time: "18:30:00",
			Cells: map[string]any{
				"Срок 0.25 лет": "13,80",
				"Срок 1.0 лет":  "14,05",
				"Срок 30.0 лет": "-",
			},
		},
	}, records)
}

func Test_GetBonds(t *testing.T) {
	r, err := recorder.New(filepath.Join("testdata", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)

	t.Cleanup(func() {
		// Make sure recorder is stopped once done with it.
		require.NoError(t, r.Stop())
	})

	client := r.GetDefaultClient()

	interaction := moex.NewInteraction(slog.Default(), client)

	bonds, err := interaction.GetBonds(context.Background())
	require.NoError(t, err)
	require.Len(t, bonds, 2)

	require.Equal(t, "SU26238RMFS4", bonds[0].SecID)
	require.NotNil(t, bonds[0].YTM)
	require.Equal(t, 14.02, *bonds[0].YTM)
	require.NotNil(t, bonds[0].DurationDays)
	require.Equal(t, 2850.0, *bonds[0].DurationDays)

	require.Equal(t, "RU000A105EX7", bonds[1].SecID)
	require.NotNil(t, bonds[1].CouponPercent)
	require.Equal(t, 11.85, *bonds[1].CouponPercent)
	require.Nil(t, bonds[1].DurationDays)
}
