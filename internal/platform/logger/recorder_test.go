package logger_test

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/platform/logger"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := logger.NewRecorder()
	log := slog.New(rec).With("component", "runner")

	log.Info("year complete", "year", 2023)
	log.Warn("outcome synthesis failed", "student_id", int64(9))

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, slog.LevelInfo, entries[0].Level)
	assert.Equal(t, "runner", entries[0].Attrs["component"])
	assert.Equal(t, int64(2023), entries[0].Attrs["year"])

	entry, ok := rec.Find("outcome synthesis failed")
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, entry.Level)
	assert.Equal(t, int64(9), entry.Attrs["student_id"])

	_, ok = rec.Find("missing")
	assert.False(t, ok)
}

func TestRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	rec := logger.NewRecorder()
	log := slog.New(rec)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log.With("worker", n).Debug("task completed")
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.Entries(), 8)
}
