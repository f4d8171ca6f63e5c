package iocache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/timelane/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunsExport(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		err := ExecuteRunsExport(&MockRunStore{}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file")
	})

	t.Run("requires run store", func(t *testing.T) {
		err := ExecuteRunsExport(nil, "out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})

	t.Run("no runs", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("GetStatus").Return(schema.RunStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExecuteRunsExport(store, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no layout runs")
		store.AssertExpectations(t)
	})

	t.Run("status failure", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("GetStatus").Return(schema.RunStatus{}, errors.New("boom"))
		assert.Error(t, ExecuteRunsExport(store, "out"))
	})

	t.Run("writes both files", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("GetStatus").Return(schema.RunStatus{Backend: "sqlite", Connected: true, TotalRuns: 1}, nil)
		store.On("GetAllRuns").Return([]schema.RunRecord{{RunID: 1, StartTime: time.Now()}}, nil)
		store.On("GetAllPlacements").Return(samplePlacementRecords(1), nil)

		out := filepath.Join(t.TempDir(), "export")
		require.NoError(t, ExecuteRunsExport(store, out))

		for _, suffix := range []string{".layout_runs.parquet", ".placements.parquet"} {
			_, err := os.Stat(out + suffix)
			assert.NoError(t, err, suffix)
		}
		store.AssertExpectations(t)
	})
}
