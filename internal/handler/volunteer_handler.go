package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/advotrack/roster-api/internal/dto"
	"github.com/advotrack/roster-api/internal/service"
	appErrors "github.com/advotrack/roster-api/pkg/errors"
	"github.com/advotrack/roster-api/pkg/response"
)

type datatableService interface {
	Query(ctx context.Context, orgID string, req dto.DatatableRequest) (*dto.DatatableResponse, error)
}

type exportService interface {
	Generate(ctx context.Context, orgID string, req dto.ExportRequest) (*service.ExportFile, error)
}

// VolunteerHandler exposes the volunteer datatable and export endpoints.
type VolunteerHandler struct {
	datatable datatableService
	exports   exportService
}

// NewVolunteerHandler constructs VolunteerHandler.
func NewVolunteerHandler(datatable datatableService, exports exportService) *VolunteerHandler {
	return &VolunteerHandler{datatable: datatable, exports: exports}
}

// Datatable godoc
// @Summary Query the volunteer datatable
// @Tags Volunteers
// @Accept json
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param payload body dto.DatatableRequest true "Datatable request"
// @Success 200 {object} dto.DatatableResponse
// @Failure 400 {object} response.Envelope
// @Router /organizations/{orgId}/volunteers/datatable [post]
func (h *VolunteerHandler) Datatable(c *gin.Context) {
	var req dto.DatatableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidRequest.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.datatable.Query(c.Request.Context(), c.Param("orgId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	// The datatable body is the client protocol itself, not the envelope.
	c.JSON(http.StatusOK, result)
}

// Export godoc
// @Summary Export the filtered volunteer set
// @Tags Volunteers
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param orgId path string true "Organization ID"
// @Param payload body dto.ExportRequest true "Export request"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /organizations/{orgId}/volunteers/export [post]
func (h *VolunteerHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidRequest.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	file, err := h.exports.Generate(c.Request.Context(), c.Param("orgId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
