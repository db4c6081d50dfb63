package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// DefaultOperationBounds are the bucket upper bounds for per-request operation counts.
var DefaultOperationBounds = []int64{0, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}

// Histogram records integer observations into fixed buckets.
// 直方图将整数观测值记录到固定的桶中。
type Histogram struct {
	bucketBounds []int64
	bucketCounts []uint64 // one per bound, plus overflow / 每个边界一个，外加溢出桶
	count        uint64
	min          int64
	max          int64
	sum          int64
	mu           sync.RWMutex
}

// HistogramSnapshot is a point-in-time copy of a Histogram.
// 直方图快照
type HistogramSnapshot struct {
	BucketBounds []int64  `json:"bucket_bounds"`
	BucketCounts []uint64 `json:"bucket_counts"`
	Count        uint64   `json:"count"`
	Min          int64    `json:"min"`
	Max          int64    `json:"max"`
	Sum          int64    `json:"sum"`
	Mean         float64  `json:"mean"`
	P50          int64    `json:"p50"`
	P90          int64    `json:"p90"`
	P99          int64    `json:"p99"`
}

// NewHistogram creates a histogram with the given ascending upper bounds.
// Values above the last bound go to an overflow bucket.
func NewHistogram(bounds []int64) *Histogram {
	if len(bounds) == 0 {
		bounds = DefaultOperationBounds
	}
	b := make([]int64, len(bounds))
	copy(b, bounds)

	return &Histogram{
		bucketBounds: b,
		bucketCounts: make([]uint64, len(b)+1),
		min:          math.MaxInt64,
	}
}

// Record adds an observation.
func (h *Histogram) Record(value int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.updateStats(value)
	atomic.AddUint64(&h.bucketCounts[h.findBucket(value)], 1)
	atomic.AddUint64(&h.count, 1)
}

func (h *Histogram) updateStats(value int64) {
	for {
		min := atomic.LoadInt64(&h.min)
		if value >= min || atomic.CompareAndSwapInt64(&h.min, min, value) {
			break
		}
	}

	for {
		max := atomic.LoadInt64(&h.max)
		if value <= max || atomic.CompareAndSwapInt64(&h.max, max, value) {
			break
		}
	}

	atomic.AddInt64(&h.sum, value)
}

// findBucket returns the index of the first bound >= value, or the overflow index.
func (h *Histogram) findBucket(value int64) int {
	i, j := 0, len(h.bucketBounds)
	for i < j {
		mid := (i + j) / 2
		if value > h.bucketBounds[mid] {
			i = mid + 1
		} else {
			j = mid
		}
	}
	return i
}

// Reset clears all observations.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.bucketCounts {
		atomic.StoreUint64(&h.bucketCounts[i], 0)
	}
	atomic.StoreUint64(&h.count, 0)
	atomic.StoreInt64(&h.min, math.MaxInt64)
	atomic.StoreInt64(&h.max, 0)
	atomic.StoreInt64(&h.sum, 0)
}

// GetSnapshot returns a copy of the current state.
func (h *Histogram) GetSnapshot() *HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	bounds := make([]int64, len(h.bucketBounds))
	copy(bounds, h.bucketBounds)
	counts := make([]uint64, len(h.bucketCounts))
	for i := range h.bucketCounts {
		counts[i] = atomic.LoadUint64(&h.bucketCounts[i])
	}

	snapshot := &HistogramSnapshot{
		BucketBounds: bounds,
		BucketCounts: counts,
		Count:        atomic.LoadUint64(&h.count),
	}
	if snapshot.Count == 0 {
		return snapshot
	}

	snapshot.Min = atomic.LoadInt64(&h.min)
	snapshot.Max = atomic.LoadInt64(&h.max)
	snapshot.Sum = atomic.LoadInt64(&h.sum)
	snapshot.Mean = float64(snapshot.Sum) / float64(snapshot.Count)
	snapshot.P50 = h.percentile(counts, 0.5)
	snapshot.P90 = h.percentile(counts, 0.9)
	snapshot.P99 = h.percentile(counts, 0.99)
	return snapshot
}

// percentile returns the upper bound of the bucket holding the given
// percentile. The overflow bucket reports the observed max.
func (h *Histogram) percentile(counts []uint64, p float64) int64 {
	var total uint64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	target := uint64(math.Ceil(float64(total) * p))
	var cumulative uint64
	for i, c := range counts {
		cumulative += c
		if cumulative >= target {
			if i == len(h.bucketBounds) {
				return atomic.LoadInt64(&h.max)
			}
			return h.bucketBounds[i]
		}
	}
	return atomic.LoadInt64(&h.max)
}
