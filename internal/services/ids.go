package services

import (
	"strconv"
	"sync"
	"time"
)

// TimeLayout is ISO-8601 with milliseconds in UTC, e.g.
// 2024-01-01T00:00:00.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

// IDGen mints timestamp IDs (Unix milliseconds). Two calls within the same
// millisecond get consecutive values.
type IDGen struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

func NewIDGen() *IDGen { return &IDGen{Now: time.Now} }

func (g *IDGen) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func (g *IDGen) NextString() string { return strconv.FormatInt(g.Next(), 10) }
