package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/travelrecap/timeline-backend-go/internal/placecache"
	"github.com/travelrecap/timeline-backend-go/pkg/response"
)

// PlaceHandler exposes the external place-location cache.
// The cache is optional; without one, lookups report service unavailable.
type PlaceHandler struct {
	cache *placecache.Client // may be nil
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(cache *placecache.Client) *PlaceHandler {
	return &PlaceHandler{cache: cache}
}

// GetPlaceLocations handles GET /api/v1/place-locations
func (h *PlaceHandler) GetPlaceLocations(c *gin.Context) {
	if h.cache == nil {
		response.ServiceUnavailable(c, "Place cache not configured")
		return
	}

	locations, err := h.cache.ListLocations(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, locations)
}
