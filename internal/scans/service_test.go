package scans

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"compliance-backend/internal/catalog"
	"compliance-backend/internal/employeedocs"
	"compliance-backend/internal/queue"
	"compliance-backend/internal/resolution"
	"compliance-backend/internal/vision"
)

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(ctx context.Context, userId string, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := "scans/" + userId + "/" + fileName
	s.objects[key] = data
	mimeType := "application/pdf"
	if ext := strings.ToLower(filepath.Ext(fileName)); ext == ".jpg" || ext == ".jpeg" {
		mimeType = "image/jpeg"
	}
	return key, int64(len(data)), mimeType, nil
}

func (s *memStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", storageKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[storageKey] = data
	return int64(len(data)), nil
}

type scriptedVision struct {
	results map[string]resolution.RawScanResult
	errs    map[string]error
	calls   int
}

func (v *scriptedVision) ClassifyDocument(ctx context.Context, input vision.ClassifyInput) (resolution.RawScanResult, error) {
	v.calls++
	if err, ok := v.errs[input.FileName]; ok {
		return resolution.RawScanResult{}, err
	}
	return v.results[input.FileName], nil
}

type captureQueue struct {
	messages []queue.Message
}

func (q *captureQueue) Send(ctx context.Context, msg queue.Message) error {
	q.messages = append(q.messages, msg)
	return nil
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func newTestService(t *testing.T, visionClient vision.Client, q queue.Client) (*Service, *catalog.Service, *employeedocs.Service) {
	t.Helper()
	catalogSvc := catalog.NewService(catalog.NewMemoryRepo())
	if _, err := catalog.SeedCompany(context.Background(), catalogSvc.Repo, "co-1"); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	docsSvc := employeedocs.NewService(employeedocs.NewMemoryRepo())

	engine := resolution.NewEngine()
	engine.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	svc := &Service{
		Repo:    NewMemoryRepo(),
		Catalog: catalogSvc,
		Docs:    docsSvc,
		Store:   newMemStore(),
		Vision:  visionClient,
		Engine:  engine,
		Queue:   q,
	}
	return svc, catalogSvc, docsSvc
}

func TestCreateEnqueuesViaQueue(t *testing.T) {
	q := &captureQueue{}
	svc, _, _ := newTestService(t, &scriptedVision{}, q)

	batch, err := svc.Create(context.Background(), "co-1", "emp-1", []Upload{
		{FileName: "nr35.jpg", Data: []byte("fake")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if batch.Status != StatusQueued {
		t.Fatalf("Status = %q, want queued", batch.Status)
	}
	if len(q.messages) != 1 || q.messages[0].ScanBatchID != batch.ID {
		t.Fatalf("queue messages = %+v", q.messages)
	}
	if len(batch.Files) != 1 || batch.Files[0].StorageKey == "" {
		t.Fatalf("files = %+v", batch.Files)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(t, &scriptedVision{}, &captureQueue{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "co-1", "emp-1", nil); err != ErrInvalidInput {
		t.Fatalf("no files: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(ctx, "", "emp-1", []Upload{{FileName: "a.jpg"}}); err != ErrInvalidInput {
		t.Fatalf("no company: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(ctx, "co-1", "emp-1", []Upload{{FileName: "  "}}); err != ErrInvalidInput {
		t.Fatalf("blank file name: err = %v, want ErrInvalidInput", err)
	}
}

func TestProcessBatchEndToEnd(t *testing.T) {
	ctx := context.Background()
	visionClient := &scriptedVision{
		results: map[string]resolution.RawScanResult{
			"nr35.jpg": {
				DocumentTypeCode: "NR-35",
				DocumentTypeName: "Trabalho em Altura",
				EmissionDate:     "2024-03-10",
				Signatures: &resolution.RawSignatures{
					Count:         intPtr(3),
					HasCompany:    boolPtr(true),
					HasInstructor: boolPtr(true),
					HasEmployee:   boolPtr(true),
				},
			},
			"nova.jpg": {
				DocumentTypeCode: "BRIGADA",
				DocumentTypeName: "Certificado de Brigadista",
			},
		},
		errs: map[string]error{
			"bad.jpg": fmt.Errorf("openai error: content policy (invalid_request_error)"),
		},
	}
	q := &captureQueue{}
	svc, catalogSvc, docsSvc := newTestService(t, visionClient, q)

	nr35, err := catalogSvc.Repo.GetByCode(ctx, "co-1", "NR35")
	if err != nil {
		t.Fatalf("catalog NR35: %v", err)
	}
	oldExp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := docsSvc.Repo.Create(ctx, employeedocs.EmployeeDocument{
		ID:             "doc-old",
		CompanyID:      "co-1",
		EmployeeID:     "emp-1",
		TypeID:         nr35.ID,
		ExpirationDate: &oldExp,
		FileName:       "nr35-2022.pdf",
	}); err != nil {
		t.Fatalf("seed existing doc: %v", err)
	}

	batch, err := svc.Create(ctx, "co-1", "emp-1", []Upload{
		{FileName: "nr35.jpg", Data: []byte("a")},
		{FileName: "bad.jpg", Data: []byte("b")},
		{FileName: "nova.jpg", Data: []byte("c")},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.ProcessBatch(ctx, batch.ID); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}

	processed, err := svc.Get(ctx, "co-1", batch.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if processed.Status != StatusCompleted {
		t.Fatalf("Status = %q (%s: %s)", processed.Status, processed.ErrorCode, processed.ErrorMessage)
	}
	if len(processed.Results) != 3 {
		t.Fatalf("results len = %d, want 3", len(processed.Results))
	}
	if processed.CreatedDocs != 1 || processed.UpdatedDocs != 1 || processed.SkippedDocs != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", processed.CreatedDocs, processed.UpdatedDocs, processed.SkippedDocs)
	}

	// Order preserved, per-file isolation.
	first := processed.Results[0].Resolved
	if !first.Success || !first.IsUpdate || first.ExistingDocumentID != "doc-old" {
		t.Fatalf("first result = %+v", first)
	}
	if first.ExpirationDate == nil || !first.ExpirationDate.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first expiration = %v, want 2026-03-09 (emission + 2y - 1d)", first.ExpirationDate)
	}
	if !first.Signatures.FullySigned || !strings.Contains(first.Signatures.Summary, "3/3") {
		t.Fatalf("first signatures = %+v", first.Signatures)
	}

	second := processed.Results[1].Resolved
	if second.Success || second.Error == "" {
		t.Fatalf("second result = %+v", second)
	}

	third := processed.Results[2].Resolved
	if !third.Success || third.MatchedTypeID == "" {
		t.Fatalf("third result = %+v", third)
	}
	created, err := catalogSvc.Repo.GetByCode(ctx, "co-1", "BRIGADA")
	if err != nil {
		t.Fatalf("auto-created catalog entry missing: %v", err)
	}
	if third.MatchedTypeID != created.ID {
		t.Fatalf("third matched %q, want auto-created %q", third.MatchedTypeID, created.ID)
	}

	docs, err := docsSvc.ListByEmployee(ctx, "emp-1")
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("employee docs = %d, want 2", len(docs))
	}

	if visionClient.calls != 3 {
		t.Fatalf("vision calls = %d, want 3", visionClient.calls)
	}
}

func TestGetIsCompanyScoped(t *testing.T) {
	svc, _, _ := newTestService(t, &scriptedVision{}, &captureQueue{})
	ctx := context.Background()

	batch, err := svc.Create(ctx, "co-1", "emp-1", []Upload{{FileName: "a.jpg", Data: []byte("x")}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Get(ctx, "co-2", batch.ID); err != ErrNotFound {
		t.Fatalf("cross-company get: err = %v, want ErrNotFound", err)
	}
}
