package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"kbd/internal/curve"
)

func Test_Interpolate(t *testing.T) {
	t.Run("should return nil for an empty curve", func(t *testing.T) {
		require.Nil(t, curve.Interpolate(nil, 1))
		require.Nil(t, curve.Interpolate(map[float64]float64{}, 0))
	})

	t.Run("should return the exact value for an existing term", func(t *testing.T) {
		terms := map[float64]float64{1: 5.0, 3: 6.0}

		got := curve.Interpolate(terms, 3)
		require.NotNil(t, got)
		require.Equal(t, 6.0, *got)
	})

	t.Run("should interpolate linearly between the bracketing terms", func(t *testing.T) {
		terms := map[float64]float64{1: 5.0, 3: 7.0}

		got := curve.Interpolate(terms, 2)
		require.NotNil(t, got)
		require.Equal(t, 6.0, *got)
	})

	t.Run("should stay strictly between the neighbouring yields", func(t *testing.T) {
		terms := map[float64]float64{0.25: 13.85, 0.5: 13.6, 1: 14.12, 3: 13.9}

		got := curve.Interpolate(terms, 0.7)
		require.NotNil(t, got)
		require.Greater(t, *got, 13.6)
		require.Less(t, *got, 14.12)
	})

	t.Run("should clamp a horizon below the shortest term", func(t *testing.T) {
		terms := map[float64]float64{1: 5.0, 3: 7.0}

		got := curve.Interpolate(terms, 0.5)
		require.NotNil(t, got)
		require.Equal(t, 5.0, *got)
	})

	t.Run("should clamp a horizon above the longest term", func(t *testing.T) {
		terms := map[float64]float64{1: 5.0, 3: 7.0}

		got := curve.Interpolate(terms, 10)
		require.NotNil(t, got)
		require.Equal(t, 7.0, *got)
	})

	t.Run("should handle a single-point curve", func(t *testing.T) {
		terms := map[float64]float64{5: 11.3}

		for _, horizon := range []float64{0, 5, 30} {
			got := curve.Interpolate(terms, horizon)
			require.NotNil(t, got)
			require.Equal(t, 11.3, *got)
		}
	})

	t.Run("should round the interpolated value to 2 decimal places", func(t *testing.T) {
		terms := map[float64]float64{1: 5.0, 4: 6.0}

		got := curve.Interpolate(terms, 2)
		require.NotNil(t, got)
		require.Equal(t, 5.33, *got)

		got = curve.Interpolate(terms, 3)
		require.NotNil(t, got)
		require.Equal(t, 5.67, *got)
	})

	t.Run("should keep negative yields intact", func(t *testing.T) {
		terms := map[float64]float64{1: -1.0, 3: 1.0}

		got := curve.Interpolate(terms, 2)
		require.NotNil(t, got)
		require.Equal(t, 0.0, *got)
	})
}

func Test_Interpolate_NaNHorizon(t *testing.T) {
	// Callers are responsible for finite horizons; a NaN horizon falls
	// through the bracket scan and produces a NaN, not a panic.
	terms := map[float64]float64{1: 5.0, 3: 7.0}

	got := curve.Interpolate(terms, math.NaN())
	require.NotNil(t, got)
	require.True(t, math.IsNaN(*got))
}
