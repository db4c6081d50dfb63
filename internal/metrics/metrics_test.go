package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/yourusername/reqcache/pkg/cache"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"disabled", Disabled, false},
		{"basic", Basic, false},
		{"detailed", Detailed, false},
		{"verbose", Disabled, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q): unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != tt.in {
			t.Errorf("Level.String() = %q, expected %q", got.String(), tt.in)
		}
	}
}

func TestRecorderRecord(t *testing.T) {
	r := New(Basic)
	r.Record(cache.Stats{Misses: 2, Reads: 3, Writes: 1, Deletes: 1})
	r.Record(cache.Stats{Misses: 0, Reads: 3, Writes: 4})

	s := r.GetSnapshot()
	if s.Requests != 2 {
		t.Errorf("Expected 2 requests, got %d", s.Requests)
	}
	if s.Misses != 2 || s.Reads != 6 || s.Writes != 5 || s.Deletes != 1 {
		t.Errorf("Unexpected totals: %+v", s)
	}
	if s.HitRatio != 0.75 {
		t.Errorf("Expected hit ratio 0.75, got %g", s.HitRatio)
	}
	if s.OpsHistogram != nil {
		t.Error("Expected no histogram at basic level")
	}

	r.Reset()
	if s := r.GetSnapshot(); s.Requests != 0 || s.Reads != 0 {
		t.Errorf("Expected zero totals after reset, got %+v", s)
	}
}

func TestRecorderDisabled(t *testing.T) {
	r := New(Disabled)
	r.Record(cache.Stats{Reads: 1})
	if s := r.GetSnapshot(); s.Requests != 0 {
		t.Errorf("Expected nothing recorded when disabled, got %d requests", s.Requests)
	}

	r.SetLevel(Basic)
	r.Record(cache.Stats{Reads: 1})
	if s := r.GetSnapshot(); s.Requests != 1 {
		t.Errorf("Expected 1 request after enabling, got %d", s.Requests)
	}
}

func TestRecorderDetailed(t *testing.T) {
	r := New(Detailed)
	r.Record(cache.Stats{Reads: 1})
	r.Record(cache.Stats{Reads: 2, Writes: 2})
	r.Record(cache.Stats{Writes: 500, Reads: 1000})

	h := r.GetSnapshot().OpsHistogram
	if h == nil {
		t.Fatal("Expected histogram at detailed level")
	}
	if h.Count != 3 {
		t.Errorf("Expected 3 observations, got %d", h.Count)
	}
	if h.Min != 1 || h.Max != 1500 || h.Sum != 1505 {
		t.Errorf("Unexpected min/max/sum: %d/%d/%d", h.Min, h.Max, h.Sum)
	}
	if h.P50 != 5 {
		t.Errorf("Expected p50 bucket bound 5, got %d", h.P50)
	}
	if h.P99 != 1500 {
		t.Errorf("Expected p99 in overflow to report max 1500, got %d", h.P99)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	r := New(Detailed)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(cache.Stats{Reads: 1, Writes: 1})
			}
		}()
	}
	wg.Wait()

	s := r.GetSnapshot()
	if s.Requests != 1000 || s.Reads != 1000 || s.Writes != 1000 {
		t.Errorf("Unexpected totals: %+v", s)
	}
	if s.OpsHistogram.Count != 1000 {
		t.Errorf("Expected 1000 histogram observations, got %d", s.OpsHistogram.Count)
	}
}

func TestPrometheusExporter(t *testing.T) {
	r := New(Detailed)
	r.Record(cache.Stats{Misses: 1, Reads: 3, Writes: 2})

	exporter := NewPrometheusExporter(r, "api")
	out := exporter.Export()

	for _, want := range []string{
		"# TYPE reqcache_requests_total counter",
		`reqcache_requests_total{store="api"} 1`,
		`reqcache_misses_total{store="api"} 1`,
		`reqcache_reads_total{store="api"} 3`,
		`reqcache_writes_total{store="api"} 2`,
		`reqcache_hit_ratio{store="api"} 0.75`,
		`reqcache_operations_per_request_bucket{store="api",le="5"} 0`,
		`reqcache_operations_per_request_bucket{store="api",le="10"} 1`,
		`reqcache_operations_per_request_count{store="api"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected export to contain %q, got:\n%s", want, out)
		}
	}

	exporter.SetPrefix("app")
	exporter.SetStoreName("web")
	if !strings.Contains(exporter.Export(), `app_reads_total{store="web"} 3`) {
		t.Error("Expected prefix and store label to change")
	}

	rec := httptest.NewRecorder()
	exporter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("Expected text/plain, got %q", rec.Header().Get("Content-Type"))
	}
}

func TestPrometheusExporterEscapesStoreLabel(t *testing.T) {
	r := New(Detailed)
	r.Record(cache.Stats{Reads: 1})

	exporter := NewPrometheusExporter(r, "a\"b\\c\nd")
	out := exporter.Export()

	for _, want := range []string{
		`reqcache_reads_total{store="a\"b\\c\nd"} 1`,
		`reqcache_hit_ratio{store="a\"b\\c\nd"} 1`,
		`reqcache_operations_per_request_count{store="a\"b\\c\nd"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected export to contain %q, got:\n%s", want, out)
		}
	}

	// Every sample stays on one line.
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" && !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "reqcache_") {
			t.Errorf("Unexpected line in export: %q", line)
		}
	}
}
