package scans

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"compliance-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies/:companyId/employees/:employeeId/scans", h.create)
	rg.GET("/companies/:companyId/scans", h.list)
	rg.GET("/companies/:companyId/scans/:batchId", h.get)
}

func (h *Handler) create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form with files is required", nil)
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	uploads := make([]Upload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if header.Size > maxUploadBytes {
			respond.Error(c, http.StatusBadRequest, "file_too_large", "file exceeds the upload limit", gin.H{
				"fileName": header.Filename,
			})
			return
		}
		file, err := header.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", nil)
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		file.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", nil)
			return
		}
		uploads = append(uploads, Upload{FileName: header.Filename, Data: data})
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	batch, err := h.Svc.Create(ctx, c.Param("companyId"), c.Param("employeeId"), uploads)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "company, employee and files are required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create scan batch", nil)
		return
	}
	respond.JSON(c, http.StatusAccepted, batch)
}

func (h *Handler) get(c *gin.Context) {
	batch, err := h.Svc.Get(c.Request.Context(), c.Param("companyId"), c.Param("batchId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "scan batch not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch scan batch", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, batch)
}

func (h *Handler) list(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 20)
	offset := parseIntDefault(c.Query("offset"), 0)

	batches, err := h.Svc.List(c.Request.Context(), c.Param("companyId"), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list scan batches", nil)
		return
	}
	if batches == nil {
		batches = []ScanBatch{}
	}
	respond.JSON(c, http.StatusOK, batches)
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
