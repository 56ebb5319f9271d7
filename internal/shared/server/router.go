package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "compliance-backend/internal/auth"
	"compliance-backend/internal/catalog"
	"compliance-backend/internal/employeedocs"
	"compliance-backend/internal/employees"
	"compliance-backend/internal/scans"
	"compliance-backend/internal/services/health"
	"compliance-backend/internal/shared/config"
	"compliance-backend/internal/shared/metrics"
	"compliance-backend/internal/shared/server/middleware"
	"compliance-backend/internal/shared/server/respond"
	"compliance-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped so partial wiring stays possible in tests.
type RouterDeps struct {
	Config          config.Config
	CatalogHandler  *catalog.Handler
	EmployeeHandler *employees.Handler
	DocsHandler     *employeedocs.Handler
	ScanHandler     *scans.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor:     rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"POLLING": {Rate: 20, Burst: 40},
				"UPLOAD":  {Rate: 1, Burst: 5},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := health.NewService()
	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	} else {
		registerMeRoutes(api)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.EmployeeHandler != nil {
		deps.EmployeeHandler.RegisterRoutes(api)
	}
	if deps.DocsHandler != nil {
		deps.DocsHandler.RegisterRoutes(api)
	}
	if deps.ScanHandler != nil {
		deps.ScanHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup buckets requests so status polling is not starved by the
// default limit while uploads stay tight.
func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	if c.Request.Method == http.MethodGet && strings.HasSuffix(path, "/scans/:batchId") {
		return "POLLING"
	}
	if c.Request.Method == http.MethodPost && strings.HasSuffix(path, "/scans") {
		return "UPLOAD"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
