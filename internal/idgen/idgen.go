// Package idgen produces entity identifiers.
package idgen

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	StrategyTimestamp = "timestamp"
	StrategyUUID      = "uuid"
)

type Generator interface {
	NewID() string
}

// Observer is implemented by generators that must never reissue an id already
// in use, such as one loaded from a persistent store.
type Observer interface {
	Observe(id string)
}

func New(strategy string, now func() time.Time) (Generator, error) {
	switch strategy {
	case "", StrategyTimestamp:
		return NewTimestamp(now), nil
	case StrategyUUID:
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// Timestamp issues decimal millisecond timestamps. Two ids requested within the
// same millisecond are bumped so that every id is unique and increasing.
type Timestamp struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewTimestamp(now func() time.Time) *Timestamp {
	if now == nil {
		now = time.Now
	}
	return &Timestamp{now: now}
}

func (g *Timestamp) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// Observe raises the floor for later ids to a previously issued one. Ids that
// are not decimal timestamps are ignored.
func (g *Timestamp) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.last {
		g.last = n
	}
}

type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}
