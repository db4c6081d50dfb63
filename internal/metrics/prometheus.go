package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

const (
	defaultMetricPrefix = "reqcache"
)

// PrometheusExporter renders a Recorder in the Prometheus text exposition format.
// Prometheus 指标导出器
type PrometheusExporter struct {
	recorder  *Recorder
	prefix    string
	storeName string
	mu        sync.Mutex
}

// NewPrometheusExporter creates an exporter labelling every series with store=storeName.
func NewPrometheusExporter(recorder *Recorder, storeName string) *PrometheusExporter {
	return &PrometheusExporter{
		recorder:  recorder,
		prefix:    defaultMetricPrefix,
		storeName: storeName,
	}
}

// SetPrefix sets the metric name prefix.
func (p *PrometheusExporter) SetPrefix(prefix string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefix = prefix
}

// SetStoreName changes the store label, e.g. after a configuration reload.
func (p *PrometheusExporter) SetStoreName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.storeName = name
}

// Export returns the current metrics as text.
func (p *PrometheusExporter) Export() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := p.recorder.GetSnapshot()

	var buf bytes.Buffer
	p.addCounter(&buf, "requests_total", "Total number of requests that owned a store", snapshot.Requests)
	p.addCounter(&buf, "misses_total", "Total number of store reads that missed", snapshot.Misses)
	p.addCounter(&buf, "reads_total", "Total number of successful store reads", snapshot.Reads)
	p.addCounter(&buf, "writes_total", "Total number of store writes", snapshot.Writes)
	p.addCounter(&buf, "deletes_total", "Total number of store deletes", snapshot.Deletes)
	p.addGauge(&buf, "hit_ratio", "Store read hit ratio", snapshot.HitRatio)

	if snapshot.OpsHistogram != nil {
		p.addHistogram(&buf, "operations_per_request", "Store operations per request", snapshot.OpsHistogram)
	}

	return buf.String()
}

func (p *PrometheusExporter) addCounter(buf *bytes.Buffer, name, help string, value uint64) {
	metricName := fmt.Sprintf("%s_%s", p.prefix, name)
	fmt.Fprintf(buf, "# HELP %s %s\n", metricName, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", metricName)
	fmt.Fprintf(buf, "%s{store=%s} %d\n\n", metricName, labelValue(p.storeName), value)
}

func (p *PrometheusExporter) addGauge(buf *bytes.Buffer, name, help string, value float64) {
	metricName := fmt.Sprintf("%s_%s", p.prefix, name)
	fmt.Fprintf(buf, "# HELP %s %s\n", metricName, help)
	fmt.Fprintf(buf, "# TYPE %s gauge\n", metricName)
	fmt.Fprintf(buf, "%s{store=%s} %g\n\n", metricName, labelValue(p.storeName), value)
}

func (p *PrometheusExporter) addHistogram(buf *bytes.Buffer, name, help string, histogram *HistogramSnapshot) {
	metricName := fmt.Sprintf("%s_%s", p.prefix, name)
	fmt.Fprintf(buf, "# HELP %s %s\n", metricName, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", metricName)

	store := labelValue(p.storeName)
	cumulativeCount := uint64(0)
	for i, bound := range histogram.BucketBounds {
		cumulativeCount += histogram.BucketCounts[i]
		fmt.Fprintf(buf, "%s_bucket{store=%s,le=\"%d\"} %d\n",
			metricName, store, bound, cumulativeCount)
	}

	fmt.Fprintf(buf, "%s_bucket{store=%s,le=\"+Inf\"} %d\n",
		metricName, store, histogram.Count)
	fmt.Fprintf(buf, "%s_sum{store=%s} %d\n", metricName, store, histogram.Sum)
	fmt.Fprintf(buf, "%s_count{store=%s} %d\n\n", metricName, store, histogram.Count)
}

// labelValue quotes a label value, escaping backslash, double quote and newline.
func labelValue(v string) string {
	return `"` + labelEscaper.Replace(v) + `"`
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// ServeHTTP serves the text exposition format.
func (p *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.Write([]byte(p.Export()))
}
