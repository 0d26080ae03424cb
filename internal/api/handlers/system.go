package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/portfolio-vis/internal/api/response"
	"github.com/ndewijer/portfolio-vis/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status          string     `json:"status"`
	Symbols         int        `json:"symbols"`
	CatalogLoadedAt *time.Time `json:"catalog_loaded_at,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Health reports whether the server is ready to answer requests.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable if the symbol catalog has not been loaded
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	n, loadedAt := h.systemService.CatalogStatus()
	resp := HealthResponse{
		Status:  "healthy",
		Symbols: n,
	}
	if !loadedAt.IsZero() {
		resp.CatalogLoadedAt = &loadedAt
	}

	if err := h.systemService.CheckHealth(); err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with model.VersionInfo
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.systemService.CheckVersion())
}
