package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	scanBatchStartedTotal   atomic.Uint64
	scanBatchCompletedTotal atomic.Uint64
	scanBatchFailedTotal    atomic.Uint64
	scanFileProcessedTotal  atomic.Uint64

	scanJobsReceivedTotal             atomic.Uint64
	scanJobsCompletedTotal            atomic.Uint64
	scanJobsFailedTotal               atomic.Uint64
	scanJobsDeletedUnrecoverableTotal atomic.Uint64

	scanBatchDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncScanBatchStarted increments the started counter.
func IncScanBatchStarted() {
	scanBatchStartedTotal.Add(1)
}

// IncScanBatchCompleted increments the completed counter.
func IncScanBatchCompleted() {
	scanBatchCompletedTotal.Add(1)
}

// IncScanBatchFailed increments the failed counter.
func IncScanBatchFailed() {
	scanBatchFailedTotal.Add(1)
}

// AddScanFilesProcessed adds to the per-file counter.
func AddScanFilesProcessed(n int) {
	if n <= 0 {
		return
	}
	scanFileProcessedTotal.Add(uint64(n))
}

// ObserveScanBatchDurationMs records a batch duration in milliseconds.
func ObserveScanBatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scanBatchDuration.Observe(value)
}

// IncScanJobsReceived increments the received queue jobs counter.
func IncScanJobsReceived() {
	scanJobsReceivedTotal.Add(1)
}

// IncScanJobsCompleted increments the completed queue jobs counter.
func IncScanJobsCompleted() {
	scanJobsCompletedTotal.Add(1)
}

// IncScanJobsFailed increments the failed queue jobs counter.
func IncScanJobsFailed() {
	scanJobsFailedTotal.Add(1)
}

// IncScanJobsDeletedUnrecoverable increments the unrecoverable deletion counter.
func IncScanJobsDeletedUnrecoverable() {
	scanJobsDeletedUnrecoverableTotal.Add(1)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "scan_batch_started_total", "Total scan batches started", scanBatchStartedTotal.Load())
	writeCounter(&buf, "scan_batch_completed_total", "Total scan batches completed", scanBatchCompletedTotal.Load())
	writeCounter(&buf, "scan_batch_failed_total", "Total scan batches failed", scanBatchFailedTotal.Load())
	writeCounter(&buf, "scan_file_processed_total", "Total scanned files processed", scanFileProcessedTotal.Load())
	writeCounter(&buf, "scan_jobs_received_total", "Total queue jobs received", scanJobsReceivedTotal.Load())
	writeCounter(&buf, "scan_jobs_completed_total", "Total queue jobs completed", scanJobsCompletedTotal.Load())
	writeCounter(&buf, "scan_jobs_failed_total", "Total queue jobs failed", scanJobsFailedTotal.Load())
	writeCounter(&buf, "scan_jobs_deleted_unrecoverable_total", "Total unrecoverable jobs deleted", scanJobsDeletedUnrecoverableTotal.Load())
	writeHistogram(&buf, "scan_batch_duration_ms", "Scan batch duration in milliseconds", scanBatchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
