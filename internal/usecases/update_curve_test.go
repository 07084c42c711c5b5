package usecases_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"

	"kbd/internal/curve"
	"kbd/internal/interaction/moex"
	"kbd/internal/model"
	"kbd/internal/repository/curves"
	"kbd/internal/usecases"
	"kbd/testing/suite"
)

// blockingCurveGateway parks the first fetch on a channel so a test can hold
// an update mid-flight while probing concurrent calls.
type blockingCurveGateway struct {
	calls   atomic.Int64
	started chan struct{}
	release chan struct{}
}

func (f *blockingCurveGateway) GetYieldCurve(_ context.Context) ([]curve.Record, error) {
	if f.calls.Inc() == 1 {
		close(f.started)
		<-f.release
	}
	return nil, nil
}

func (f *blockingCurveGateway) GetYieldCurveArchive(_ context.Context, _ int) ([]curve.Record, error) {
	return nil, nil
}

type noopCurveStore struct{}

func (*noopCurveStore) SavePoints(_ context.Context, _ []*model.CurvePoint) error {
	return nil
}

func Test_UpdateCurveUseCase(t *testing.T) {
	t.Run("should store the parsed curve points", func(t *testing.T) {
		ctx, st := suite.New(t, suite.WithPostgres())
		curvesRepository := curves.NewRepository(st.GetDB())

		r, err := recorder.New(filepath.Join("testdata", strings.ReplaceAll(t.Name(), "/", "_")))
		require.NoError(t, err)

		t.Cleanup(func() {
			// Make sure recorder is stopped once done with it.
			require.NoError(t, r.Stop())
		})

		interaction := moex.NewInteraction(slog.Default(), r.GetDefaultClient())
		updateCurveUC := usecases.NewUpdateCurveUseCase(st.Logger, curvesRepository, interaction)

		// When: We update the curve from the recorded G-curve page
		updateCurveUC.UpdateCurve(ctx)

		// Then: The latest snapshot points should be created in the database
		var points []*model.CurvePoint
		query := st.GetDB().WithContext(ctx).Model(&model.CurvePoint{}).Where("date = ?", suite.GetDateTime(t, "2025-11-07")).Order("term_years ASC")
		require.NoError(t, query.Find(&points).Error)
		require.Len(t, points, 3)

		require.Equal(t, 0.25, points[0].TermYears)
		require.Equal(t, 13.85, points[0].Yield)
		require.Equal(t, 1.0, points[1].TermYears)
		require.Equal(t, 14.12, points[1].Yield)
		require.Equal(t, 30.0, points[2].TermYears)
		require.Equal(t, 12.97, points[2].Yield)

		// And: The dash cell of the previous day is omitted, not zeroed
		var prevDay []*model.CurvePoint
		query = st.GetDB().WithContext(ctx).Model(&model.CurvePoint{}).Where("date = ?", suite.GetDateTime(t, "2025-11-06"))
		require.NoError(t, query.Find(&prevDay).Error)
		require.Len(t, prevDay, 2)
	})

	t.Run("should skip a run overlapping a still-running one", func(t *testing.T) {
		gateway := &blockingCurveGateway{started: make(chan struct{}), release: make(chan struct{})}
		updateCurveUC := usecases.NewUpdateCurveUseCase(slog.Default(), &noopCurveStore{}, gateway)

		done := make(chan struct{})
		go func() {
			defer close(done)
			updateCurveUC.UpdateCurve(context.Background())
		}()

		// Wait until the first run holds the guard inside the fetch
		<-gateway.started

		// When: A second run starts while the first one is still in flight
		updateCurveUC.UpdateCurve(context.Background())

		// Then: It returns without touching the source
		require.Equal(t, int64(1), gateway.calls.Load())

		close(gateway.release)
		<-done

		// And: Once the first run finishes, the guard is released again
		updateCurveUC.UpdateCurve(context.Background())
		require.Equal(t, int64(2), gateway.calls.Load())
	})
}
