package handler

import (
	"net/http"

	"github.com/osse101/UsersAPI_Go/internal/user"
)

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	userService user.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(userService user.Service) *AdminCacheHandler {
	return &AdminCacheHandler{
		userService: userService,
	}
}

// HandleGetCacheStats returns current user cache statistics
// GET /admin/cache/stats
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.userService.GetCacheStats())
}
