package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"compliance-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:companyId/document-types", h.list)
	rg.POST("/companies/:companyId/document-types", h.create)
	rg.GET("/companies/:companyId/document-types/:typeId", h.get)
}

type createRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	ValidityYears *int   `json:"validityYears"`
}

func (h *Handler) create(c *gin.Context) {
	companyID := c.Param("companyId")

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.Svc.Create(c.Request.Context(), companyID, req.Code, req.Name, req.ValidityYears)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "code and name are required", nil)
		case errors.Is(err, ErrDuplicateCode):
			respond.Error(c, http.StatusConflict, "duplicate_code", "document type code already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create document type", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(entry))
}

func (h *Handler) get(c *gin.Context) {
	entry, err := h.Svc.Get(c.Request.Context(), c.Param("companyId"), c.Param("typeId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document type not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document type", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(entry))
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.Svc.List(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list document types", nil)
		return
	}

	resp := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toResponse(entry))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func toResponse(entry DocumentType) gin.H {
	return gin.H{
		"typeId":        entry.ID,
		"code":          entry.Code,
		"name":          entry.Name,
		"validityYears": entry.DefaultValidityYears,
		"createdAt":     entry.CreatedAt,
	}
}
