package scans

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"compliance-backend/internal/catalog"
	"compliance-backend/internal/employeedocs"
	"compliance-backend/internal/extract"
	"compliance-backend/internal/queue"
	"compliance-backend/internal/resolution"
	"compliance-backend/internal/shared/metrics"
	"compliance-backend/internal/shared/storage/object"
	"compliance-backend/internal/shared/telemetry"
	"compliance-backend/internal/vision"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Upload is one incoming file at batch intake.
type Upload struct {
	FileName string
	Data     []byte
}

// Service orchestrates scan batches: intake, classification, resolution and
// persistence.
type Service struct {
	Repo    Repo
	Catalog *catalog.Service
	Docs    *employeedocs.Service
	Store   object.ObjectStore
	Vision  vision.Client
	Engine  *resolution.Engine
	Queue   queue.Client

	// InterCallDelay spaces consecutive provider calls within a batch.
	InterCallDelay time.Duration
}

// Create stores the uploaded files, enqueues a batch and kicks off
// asynchronous completion, either via the queue or in-process.
func (s *Service) Create(ctx context.Context, companyID, employeeID string, uploads []Upload) (ScanBatch, error) {
	if companyID == "" || employeeID == "" || len(uploads) == 0 {
		return ScanBatch{}, ErrInvalidInput
	}
	for _, upload := range uploads {
		if strings.TrimSpace(upload.FileName) == "" {
			return ScanBatch{}, ErrInvalidInput
		}
	}

	batch := ScanBatch{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Status:     StatusQueued,
		CreatedAt:  time.Now().UTC(),
	}

	for _, upload := range uploads {
		key, size, mimeType, err := s.Store.Save(ctx, employeeID, upload.FileName, bytes.NewReader(upload.Data))
		if err != nil {
			return ScanBatch{}, fmt.Errorf("store scan file %s: %w", upload.FileName, err)
		}
		batch.Files = append(batch.Files, ScanFile{
			FileName:   upload.FileName,
			StorageKey: key,
			MIMEType:   mimeType,
			SizeBytes:  size,
		})
	}

	if err := s.Repo.Create(ctx, batch); err != nil {
		return ScanBatch{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			ScanBatchID: batch.ID,
			RequestID:   requestIDFromContext(ctx),
			EnqueuedAt:  time.Now().UTC().Format(time.RFC3339),
			Version:     1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			s.failBatch(ctx, batch.ID, fmt.Errorf("enqueue batch: %w", err), nil)
			return batch, nil
		}
	} else {
		go s.completeAsync(backgroundWithRequestID(ctx), batch.ID)
	}

	return batch, nil
}

// Get returns a batch by ID, company-scoped.
func (s *Service) Get(ctx context.Context, companyID, batchID string) (ScanBatch, error) {
	if companyID == "" || batchID == "" {
		return ScanBatch{}, ErrInvalidInput
	}
	batch, err := s.Repo.GetByID(ctx, batchID)
	if err != nil {
		return ScanBatch{}, err
	}
	if batch.CompanyID != companyID {
		return ScanBatch{}, ErrNotFound
	}
	return batch, nil
}

// List returns a company's batches newest-first.
func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]ScanBatch, error) {
	if companyID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByCompany(ctx, companyID, limit, offset)
}

func (s *Service) completeAsync(ctx context.Context, batchID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failBatch(ctx, batchID, fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.ProcessBatch(ctx, batchID)
}

// ProcessBatch runs classification and resolution for one queued batch. The
// worker calls this directly; API-mode batches arrive via completeAsync.
func (s *Service) ProcessBatch(ctx context.Context, batchID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.SetProcessing(ctx, batchID, startedAt); err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("set processing failed: %w", err), &startedAt)
		return err
	}

	batch, err := s.Repo.GetByID(ctx, batchID)
	if err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("batch lookup: %w", err), &startedAt)
		return err
	}
	metrics.IncScanBatchStarted()
	telemetry.Info("scan_batch.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"company_id":        batch.CompanyID,
		"employee_id":       batch.EmployeeID,
		"scan_batch_id":     batch.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
		"file_count":        len(batch.Files),
	})

	if s.Store == nil || s.Catalog == nil || s.Docs == nil || s.Engine == nil {
		err := errors.New("missing scan processing dependencies")
		s.failBatch(ctx, batchID, err, &startedAt)
		return err
	}
	if s.Vision == nil {
		err := errors.New("missing vision client")
		s.failBatch(ctx, batchID, err, &startedAt)
		return err
	}
	client := vision.NewRetryingClient(s.Vision, requestIDFromContext(ctx))

	raws := make([]resolution.RawScanResult, 0, len(batch.Files))
	for i, file := range batch.Files {
		if i > 0 && s.InterCallDelay > 0 {
			select {
			case <-time.After(s.InterCallDelay):
			case <-ctx.Done():
				s.failBatch(ctx, batchID, ctx.Err(), &startedAt)
				return ctx.Err()
			}
		}
		raws = append(raws, s.classifyFile(ctx, client, batch, file))
	}

	entries, err := s.Catalog.List(ctx, batch.CompanyID)
	if err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("catalog lookup: %w", err), &startedAt)
		return err
	}
	existing, err := s.Docs.ExistingForEmployee(ctx, batch.EmployeeID)
	if err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("existing documents lookup: %w", err), &startedAt)
		return err
	}

	resolved := s.Engine.ResolveBatch(raws, entries, map[string][]resolution.ExistingDocument{
		batch.EmployeeID: existing,
	})
	s.autoCreateUnmatched(ctx, batch.CompanyID, resolved)

	items := make([]employeedocs.ApplyItem, 0, len(resolved))
	results := make([]FileResult, 0, len(resolved))
	for i, item := range resolved {
		storageKey := ""
		if i < len(batch.Files) {
			storageKey = batch.Files[i].StorageKey
		}
		items = append(items, employeedocs.ApplyItem{Resolved: item, StorageKey: storageKey})
		results = append(results, FileResult{
			FileName:   item.FileName,
			StorageKey: storageKey,
			Resolved:   item,
		})
	}

	report, err := s.Docs.ApplyResolved(ctx, batch.CompanyID, items)
	if err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("apply resolved documents: %w", err), &startedAt)
		return err
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.SetCompleted(ctx, batchID, results, report.Created, report.Updated, report.Skipped, completedAt); err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("set batch result failed: %w", err), &startedAt)
		return err
	}
	metrics.IncScanBatchCompleted()
	metrics.AddScanFilesProcessed(len(batch.Files))
	metrics.ObserveScanBatchDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("scan_batch.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"company_id":        batch.CompanyID,
		"employee_id":       batch.EmployeeID,
		"scan_batch_id":     batch.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"created_docs":      report.Created,
		"updated_docs":      report.Updated,
		"skipped_docs":      report.Skipped,
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

// classifyFile never returns an error: provider and storage failures become
// failed raw results so the rest of the batch keeps going.
func (s *Service) classifyFile(ctx context.Context, client vision.Client, batch ScanBatch, file ScanFile) resolution.RawScanResult {
	input := vision.ClassifyInput{
		FileName: file.FileName,
		MIMEType: file.MIMEType,
	}

	if extract.Extractable(file.MIMEType, file.FileName) {
		text, err := extract.ExtractText(ctx, s.Store, file.StorageKey, file.MIMEType, file.FileName)
		if err != nil {
			telemetry.Error("scan.extract_failed", map[string]any{
				"scan_batch_id": batch.ID,
				"file_name":     file.FileName,
				"error":         err.Error(),
			})
		} else {
			input.Text = text
		}
	}
	if input.Text == "" {
		data, err := s.loadObject(ctx, file.StorageKey)
		if err != nil {
			return resolution.RawScanResult{
				FileName:   file.FileName,
				EmployeeID: batch.EmployeeID,
				Success:    false,
				Error:      sanitizeError(fmt.Errorf("load scan file: %w", err)),
			}
		}
		input.Data = data
	}

	raw, err := client.ClassifyDocument(ctx, input)
	if err != nil {
		return resolution.RawScanResult{
			FileName:   file.FileName,
			EmployeeID: batch.EmployeeID,
			Success:    false,
			Error:      sanitizeError(err),
		}
	}
	raw.FileName = file.FileName
	raw.EmployeeID = batch.EmployeeID
	raw.Success = true
	return raw
}

// autoCreateUnmatched registers catalog entries for confident unmatched codes
// and binds the resolved items to them. Sentinel codes stay unmatched.
func (s *Service) autoCreateUnmatched(ctx context.Context, companyID string, resolved []resolution.ResolvedDocument) {
	for i, item := range resolved {
		if !item.Success || item.MatchedTypeID != "" || resolution.IsUnknownCode(item.RawTypeCode) {
			continue
		}
		entry, _, err := s.Catalog.AutoCreate(ctx, companyID, item.RawTypeCode, item.RawTypeName)
		if err != nil {
			telemetry.Error("scan.auto_create_failed", map[string]any{
				"company_id": companyID,
				"raw_code":   item.RawTypeCode,
				"error":      err.Error(),
			})
			continue
		}
		if entry.ID != "" {
			resolved[i].MatchedTypeID = entry.ID
		}
	}
}

func (s *Service) failBatch(ctx context.Context, batchID string, err error, startedAt *time.Time) {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.SetFailed(context.Background(), batchID, code, msg, completedAt); updateErr != nil {
		telemetry.Error("scan_batch.fail_update_failed", map[string]any{
			"scan_batch_id": batchID,
			"error":         updateErr.Error(),
			"original":      msg,
		})
	}
	metrics.IncScanBatchFailed()
	if startedAt != nil {
		metrics.ObserveScanBatchDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("scan_batch.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"scan_batch_id":     batchID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func (s *Service) loadObject(ctx context.Context, key string) ([]byte, error) {
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeVisionTimeout
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "openai request timeout") {
		return ErrorCodeVisionTimeout
	}
	if strings.Contains(msg, "classification parse") || strings.Contains(msg, "response parse") || strings.Contains(msg, "empty content") {
		return ErrorCodeVisionOutput
	}
	if strings.Contains(msg, "store") || strings.Contains(msg, "storage") || strings.Contains(msg, "batch lookup") || strings.Contains(msg, "set processing") || strings.Contains(msg, "set batch result") {
		return ErrorCodeStorage
	}
	return ErrorCodeInternal
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
