package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counts(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/companies", "GET", 200, time.Millisecond)
		}()
	}
	wg.Wait()
	m.RecordError("/companies", "GET", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(50), snap.Requests["/companies|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/companies|GET|VALIDATION_FAILED"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
