package employees

import (
	"errors"
	"net/http"

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
	rg.GET("/companies/:companyId/employees", h.list)
	rg.POST("/companies/:companyId/employees", h.create)
	rg.GET("/companies/:companyId/employees/:employeeId", h.get)
}

type createRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	employee, err := h.Svc.Create(c.Request.Context(), c.Param("companyId"), req.Name, req.Role)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create employee", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, employee)
}

func (h *Handler) get(c *gin.Context) {
	employee, err := h.Svc.Get(c.Request.Context(), c.Param("companyId"), c.Param("employeeId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch employee", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, employee)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list employees", nil)
		return
	}
	if list == nil {
		list = []Employee{}
	}
	respond.JSON(c, http.StatusOK, list)
}
