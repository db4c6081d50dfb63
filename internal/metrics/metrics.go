// Package metrics aggregates per-request store counters across requests.
// Each request owns a short-lived store; when it finishes, the request
// boundary hands its Stats to a Recorder, which keeps process-wide totals.
//
// Package metrics 跨请求聚合每个请求的存储计数器。
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/yourusername/reqcache/pkg/cache"
)

// Level defines the level of detail for metrics collection.
// 指标收集的详细程度
type Level int32

const (
	// Disabled records nothing.
	Disabled Level = iota

	// Basic records request and operation totals.
	Basic

	// Detailed additionally records a histogram of operations per request.
	Detailed
)

// String returns the configuration name of the level.
func (l Level) String() string {
	switch l {
	case Disabled:
		return "disabled"
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

// ParseLevel converts a configuration string into a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "disabled":
		return Disabled, nil
	case "basic":
		return Basic, nil
	case "detailed":
		return Detailed, nil
	}
	return Disabled, fmt.Errorf("unknown metrics level: %s", s)
}

// Recorder keeps totals of request store activity. It is safe for concurrent use.
//
// Recorder 记录请求存储活动的总量，可并发使用。
type Recorder struct {
	level atomic.Int32

	requests uint64 // Requests recorded / 记录的请求数
	misses   uint64 // Failed reads / 未命中次数
	reads    uint64 // Successful reads / 成功读取次数
	writes   uint64 // Writes / 写入次数
	deletes  uint64 // Deletes / 删除次数

	opsHistogram *Histogram

	lastUpdated int64
}

// Snapshot is a point-in-time copy of a Recorder.
type Snapshot struct {
	Level        string             `json:"level"`
	Requests     uint64             `json:"requests"`
	Misses       uint64             `json:"misses"`
	Reads        uint64             `json:"reads"`
	Writes       uint64             `json:"writes"`
	Deletes      uint64             `json:"deletes"`
	HitRatio     float64            `json:"hit_ratio"`
	OpsHistogram *HistogramSnapshot `json:"ops_histogram,omitempty"`
	LastUpdated  time.Time          `json:"last_updated"`
}

// New creates a Recorder at the given level.
func New(level Level) *Recorder {
	r := &Recorder{
		opsHistogram: NewHistogram(DefaultOperationBounds),
		lastUpdated:  time.Now().UnixNano(),
	}
	r.level.Store(int32(level))
	return r
}

// Level returns the current level.
func (r *Recorder) Level() Level {
	return Level(r.level.Load())
}

// SetLevel changes the level, e.g. after a configuration reload.
func (r *Recorder) SetLevel(level Level) {
	r.level.Store(int32(level))
}

// Record adds the counters of one finished request.
//
// Record 累加一个已完成请求的计数器。
func (r *Recorder) Record(stats cache.Stats) {
	level := r.Level()
	if level == Disabled {
		return
	}

	atomic.AddUint64(&r.requests, 1)
	atomic.AddUint64(&r.misses, uint64(stats.Misses))
	atomic.AddUint64(&r.reads, uint64(stats.Reads))
	atomic.AddUint64(&r.writes, uint64(stats.Writes))
	atomic.AddUint64(&r.deletes, uint64(stats.Deletes))

	if level == Detailed {
		r.opsHistogram.Record(stats.Misses + stats.Reads + stats.Writes + stats.Deletes)
	}

	atomic.StoreInt64(&r.lastUpdated, time.Now().UnixNano())
}

// GetSnapshot returns a copy of the totals.
//
// GetSnapshot 返回总量的副本。
func (r *Recorder) GetSnapshot() *Snapshot {
	level := r.Level()
	s := &Snapshot{
		Level:       level.String(),
		Requests:    atomic.LoadUint64(&r.requests),
		Misses:      atomic.LoadUint64(&r.misses),
		Reads:       atomic.LoadUint64(&r.reads),
		Writes:      atomic.LoadUint64(&r.writes),
		Deletes:     atomic.LoadUint64(&r.deletes),
		LastUpdated: time.Unix(0, atomic.LoadInt64(&r.lastUpdated)),
	}

	if lookups := s.Reads + s.Misses; lookups > 0 {
		s.HitRatio = float64(s.Reads) / float64(lookups)
	}
	if level == Detailed {
		s.OpsHistogram = r.opsHistogram.GetSnapshot()
	}
	return s
}

// Reset zeroes all totals.
func (r *Recorder) Reset() {
	atomic.StoreUint64(&r.requests, 0)
	atomic.StoreUint64(&r.misses, 0)
	atomic.StoreUint64(&r.reads, 0)
	atomic.StoreUint64(&r.writes, 0)
	atomic.StoreUint64(&r.deletes, 0)
	r.opsHistogram.Reset()
	atomic.StoreInt64(&r.lastUpdated, time.Now().UnixNano())
}
