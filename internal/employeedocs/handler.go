package employeedocs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"compliance-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:companyId/employees/:employeeId/documents", h.listByEmployee)
	rg.GET("/companies/:companyId/documents/expiring", h.listExpiring)
}

func (h *Handler) listByEmployee(c *gin.Context) {
	docs, err := h.Svc.ListByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "employee id is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}
	if docs == nil {
		docs = []EmployeeDocument{}
	}
	respond.JSON(c, http.StatusOK, docs)
}

func (h *Handler) listExpiring(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "days must be a non-negative integer", nil)
			return
		}
		days = parsed
	}

	docs, err := h.Svc.ListExpiring(c.Request.Context(), c.Param("companyId"), days)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list expiring documents", nil)
		return
	}
	if docs == nil {
		docs = []EmployeeDocument{}
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"days":      days,
		"documents": docs,
	})
}
