package scans

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		fw, err := writer.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return payload.Error.Code
}

func TestHandlerCreateAcceptsMultipart(t *testing.T) {
	svc, _, _ := newTestService(t, &scriptedVision{}, &captureQueue{})
	router := newTestRouter(t, svc)

	body, contentType := multipartBody(t, "files", map[string][]byte{"nr35.jpg": []byte("fake")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/employees/emp-1/scans", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var created ScanBatch
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected batch id, got empty")
	}
	if created.Status != StatusQueued {
		t.Fatalf("Status = %q, want queued", created.Status)
	}
	if len(created.Files) != 1 || created.Files[0].FileName != "nr35.jpg" {
		t.Fatalf("files = %+v", created.Files)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-1/scans/"+created.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching batch, got %d", respGet.Code)
	}

	reqOther := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-2/scans/"+created.ID, nil)
	respOther := httptest.NewRecorder()
	router.ServeHTTP(respOther, reqOther)
	if respOther.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other company, got %d", respOther.Code)
	}
}

func TestHandlerCreateRejectsMissingFiles(t *testing.T) {
	svc, _, _ := newTestService(t, &scriptedVision{}, &captureQueue{})
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/employees/emp-1/scans", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without multipart body, got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != "validation_error" {
		t.Fatalf("error code = %q, want validation_error", code)
	}

	body, contentType := multipartBody(t, "attachment", map[string][]byte{"nr35.jpg": []byte("fake")})
	reqWrong := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/employees/emp-1/scans", body)
	reqWrong.Header.Set("Content-Type", contentType)
	respWrong := httptest.NewRecorder()
	router.ServeHTTP(respWrong, reqWrong)
	if respWrong.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without files field, got %d", respWrong.Code)
	}
	if code := decodeErrorCode(t, respWrong); code != "validation_error" {
		t.Fatalf("error code = %q, want validation_error", code)
	}
}
