package idgen

import (
	"regexp"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	t.Parallel()
	g := New()

	assert.Equal(t, DefaultInit, g.Next("student"))
	assert.Equal(t, DefaultInit+1, g.Next("student"))
	assert.Equal(t, DefaultInit, g.Next("outcome"), "namespaces are independent")
	assert.Equal(t, DefaultInit+2, g.Next("student"))
}

func TestNextFrom(t *testing.T) {
	t.Parallel()
	g := New()

	assert.Equal(t, int64(10), g.NextFrom("group", 10, 5))
	assert.Equal(t, int64(15), g.NextFrom("group", 10, 5))
	assert.Equal(t, int64(20), g.NextFrom("group", 999, 5), "init is ignored after first use")
}

func TestNewGeneratorResetsCounters(t *testing.T) {
	t.Parallel()

	first := New()
	first.Next("x")
	first.Next("x")

	assert.Equal(t, DefaultInit, New().Next("x"))
}

func TestNext_Concurrent(t *testing.T) {
	t.Parallel()
	g := New()

	const perWorker = 500
	results := make(chan int64, 2*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- g.Next("x")
			}
		}()
	}
	wg.Wait()
	close(results)

	ids := make([]int64, 0, 2*perWorker)
	for id := range results {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	require.Len(t, ids, 2*perWorker)
	for i, id := range ids {
		assert.Equal(t, DefaultInit+int64(i), id)
	}
}

func TestDistrictID(t *testing.T) {
	t.Parallel()
	g := New()

	id, err := g.DistrictID("CA")
	require.NoError(t, err)
	assert.Equal(t, "CA00001", id)

	id, err = g.DistrictID("CA")
	require.NoError(t, err)
	assert.Equal(t, "CA00002", id)

	id, err = g.DistrictID("NV")
	require.NoError(t, err)
	assert.Equal(t, "NV00001", id, "sequence is per state")

	for _, bad := range []string{"", "C", "CAL"} {
		_, err := g.DistrictID(bad)
		assert.ErrorIs(t, err, ErrInvalidStateID)
	}
}

func TestSchoolID(t *testing.T) {
	t.Parallel()
	g := New()

	id, err := g.SchoolID("CA00001")
	require.NoError(t, err)
	assert.Equal(t, "CA0000100001", id)

	id, err = g.SchoolID("CA00001")
	require.NoError(t, err)
	assert.Equal(t, "CA0000100002", id)

	id, err = g.SchoolID("CA00002")
	require.NoError(t, err)
	assert.Equal(t, "CA0000200001", id)

	id, err = g.SchoolID("0600000000000")
	require.NoError(t, err)
	assert.Equal(t, "06000000000000000001", id, "legacy districts use seven digits")

	_, err = g.SchoolID("")
	assert.ErrorIs(t, err, ErrInvalidDistrictID)
}

func TestUUIDs(t *testing.T) {
	t.Parallel()

	hex30 := regexp.MustCompile(`^[0-9a-f]{30}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		short := ShortUUID()
		assert.Regexp(t, hex30, short)
		assert.False(t, seen[short])
		seen[short] = true
	}

	assert.Len(t, UUID(), 36)
	assert.NotEqual(t, UUID(), UUID())
}
