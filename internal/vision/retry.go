package vision

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"compliance-backend/internal/resolution"
	"compliance-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// RetryingClient retries a classification call once on transient provider
// failures (timeouts, 5xx, connection errors).
type RetryingClient struct {
	Base      Client
	RequestID string
}

func NewRetryingClient(base Client, requestID string) Client {
	if base == nil {
		return nil
	}
	return RetryingClient{Base: base, RequestID: requestID}
}

func (r RetryingClient) ClassifyDocument(ctx context.Context, input ClassifyInput) (resolution.RawScanResult, error) {
	resp, err := r.Base.ClassifyDocument(ctx, input)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Info("vision.retry", map[string]any{
		"request_id": r.RequestID,
		"file_name":  input.FileName,
		"error":      err.Error(),
	})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return resolution.RawScanResult{}, ctx.Err()
	}

	return r.Base.ClassifyDocument(ctx, input)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
