package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/advotrack/roster-api/internal/dto"
	"github.com/advotrack/roster-api/internal/middleware"
	"github.com/advotrack/roster-api/pkg/response"
)

type filterOptionsService interface {
	Get(ctx context.Context, orgID string) (*dto.FilterOptionsResponse, bool, error)
}

// FilterOptionsHandler serves the selectable filter values for the
// volunteer datatable.
type FilterOptionsHandler struct {
	options filterOptionsService
}

// NewFilterOptionsHandler constructs FilterOptionsHandler.
func NewFilterOptionsHandler(options filterOptionsService) *FilterOptionsHandler {
	return &FilterOptionsHandler{options: options}
}

// Get godoc
// @Summary List volunteer filter options
// @Tags Volunteers
// @Produce json
// @Param orgId path string true "Organization ID"
// @Success 200 {object} response.Envelope
// @Router /organizations/{orgId}/volunteers/filter-options [get]
func (h *FilterOptionsHandler) Get(c *gin.Context) {
	start := time.Now()
	options, cacheHit, err := h.options.Get(c.Request.Context(), c.Param("orgId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, options, nil, meta)
}
