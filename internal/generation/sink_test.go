package generation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
)

func TestMemorySink_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	sink := NewMemorySink()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				assert.NoError(t, sink.Write(context.Background(), &domain.Outcome{ID: int64(i*100 + j)}))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 200, sink.Len())

	snapshot := sink.Outcomes()
	snapshot[0] = nil
	assert.NotNil(t, sink.Outcomes()[0])
}

func TestMemorySink_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := NewMemorySink()
	err := sink.Write(ctx, &domain.Outcome{ID: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sink.Len())
}
