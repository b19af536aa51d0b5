package idgen

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUsesMilliseconds(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	g := NewTimestamp(func() time.Time { return at })

	assert.Equal(t, "1700000000123", g.NewID())
}

func TestTimestampIsUniqueWithinSameMillisecond(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	g := NewTimestamp(func() time.Time { return at })

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.NewID()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestTimestampIsIncreasing(t *testing.T) {
	g := NewTimestamp(nil)
	prev, err := strconv.ParseInt(g.NewID(), 10, 64)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := strconv.ParseInt(g.NewID(), 10, 64)
		require.NoError(t, err)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNewStrategies(t *testing.T) {
	g, err := New(StrategyUUID, nil)
	require.NoError(t, err)
	_, err = uuid.Parse(g.NewID())
	assert.NoError(t, err)

	g, err = New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &Timestamp{}, g)

	_, err = New("snowflake", nil)
	assert.Error(t, err)
}

func TestTimestampObserveSkipsIssuedIds(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	g := NewTimestamp(func() time.Time { return at })

	g.Observe("1700000000005")
	g.Observe("1699999999999")
	g.Observe("not-a-timestamp")

	assert.Equal(t, "1700000000006", g.NewID())
	assert.Equal(t, "1700000000007", g.NewID())
}
