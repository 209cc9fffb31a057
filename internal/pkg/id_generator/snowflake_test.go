package id

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Unique(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(1)
	require.NoError(t, err)

	const workers, perWorker = 8, 200
	var (
		mu  sync.Mutex
		ids = make(map[uint64]struct{}, workers*perWorker)
		wg  sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id, err := g.NextID()
				assert.NoError(t, err)
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, ids, workers*perWorker)
}

func TestExtractTime(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(2)
	require.NoError(t, err)
	before := time.Now()
	id, err := g.NextID()
	require.NoError(t, err)
	assert.WithinDuration(t, before, ExtractTime(id), time.Second)
}
