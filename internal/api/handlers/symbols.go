package handlers

import (
	"net/http"
	"strconv"

	"github.com/ndewijer/portfolio-vis/internal/api/response"
	"github.com/ndewijer/portfolio-vis/internal/service"
)

// SymbolHandler handles symbol catalog requests
type SymbolHandler struct {
	symbolService *service.SymbolService
}

// NewSymbolHandler creates a new SymbolHandler
func NewSymbolHandler(symbolService *service.SymbolService) *SymbolHandler {
	return &SymbolHandler{
		symbolService: symbolService,
	}
}

// Symbols handles GET requests searching the symbol catalog.
// Without a query the whole catalog is returned, which the stock picker loads once.
//
// Endpoint: GET /api/symbols?q=app&limit=20
// Response: 200 OK with [{symbol, name}]
// Error: 400 Bad Request if limit is not a positive integer
func (h *SymbolHandler) Symbols(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.RespondError(w, http.StatusBadRequest, "validation failed", map[string]string{
				"limit": "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	response.RespondJSON(w, http.StatusOK, h.symbolService.Search(r.URL.Query().Get("q"), limit))
}
