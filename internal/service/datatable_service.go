package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/advotrack/roster-api/internal/datatable"
	"github.com/advotrack/roster-api/internal/dto"
	"github.com/advotrack/roster-api/internal/models"
	appErrors "github.com/advotrack/roster-api/pkg/errors"
)

type volunteerRepository interface {
	Datatable(ctx context.Context, q *datatable.Query) (*models.VolunteerPage, error)
}

// defaultOrder applies when a request omits the order object entirely.
// A present order naming an unknown column is still rejected.
var defaultOrder = dto.Order{By: "display_name", Direction: "asc"}

// DatatableService runs the volunteer datatable request cycle:
// validation, query assembly, execution, row serialization.
type DatatableService struct {
	repo      volunteerRepository
	engineCfg datatable.Config
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDatatableService constructs the datatable service.
func NewDatatableService(repo volunteerRepository, engineCfg datatable.Config, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *DatatableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatatableService{repo: repo, engineCfg: engineCfg, metrics: metrics, validator: validate, logger: logger}
}

// Query returns one page of the organization's volunteers together with
// the total and filtered counts.
func (s *DatatableService) Query(ctx context.Context, orgID string, req dto.DatatableRequest) (*dto.DatatableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidRequest.Code, appErrors.ErrInvalidRequest.Status, "invalid datatable request")
	}

	q, err := buildVolunteerQuery(s.engineCfg, orgID, req.Order, req.SearchTerm, req.Filters)
	if err != nil {
		return nil, err
	}
	q.Paginate(req.Page, req.PerPage)

	start := time.Now()
	page, err := s.repo.Datatable(ctx, q)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("volunteer_datatable", time.Since(start))
	}
	if err != nil {
		s.logger.Error("volunteer datatable query failed", zap.String("organization_id", orgID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query volunteers")
	}

	return &dto.DatatableResponse{
		RecordsTotal:    page.Total,
		RecordsFiltered: page.Filtered,
		Data:            toVolunteerRows(page.Rows),
	}, nil
}

// buildVolunteerQuery assembles the engine query shared by the
// datatable and export paths. Filters and search are applied before
// ordering; an unknown order column maps to the sort-column error.
func buildVolunteerQuery(cfg datatable.Config, orgID string, order *dto.Order, searchTerm *string, filters map[string][]*string) (*datatable.Query, error) {
	q := datatable.New(cfg, orgID)
	q.ApplyFilters(filters)
	if searchTerm != nil {
		q.ApplySearch(*searchTerm)
	}

	ord := defaultOrder
	if order != nil {
		ord = *order
	}
	if err := q.OrderBy(ord.By, ord.Direction); err != nil {
		if errors.Is(err, datatable.ErrUnsupportedColumn) {
			return nil, appErrors.Clone(appErrors.ErrUnsupportedSortColumn, err.Error())
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build volunteer query")
	}
	return q, nil
}

func toVolunteerRows(rows []models.VolunteerListRow) []dto.VolunteerRow {
	out := make([]dto.VolunteerRow, len(rows))
	for i, row := range rows {
		caseNumbers := row.CaseNumbers
		if caseNumbers == nil {
			caseNumbers = []string{}
		}
		out[i] = dto.VolunteerRow{
			ID:             row.ID,
			DisplayName:    row.DisplayName,
			Email:          row.Email,
			Active:         row.Active,
			SupervisorName: row.SupervisorName,
			CaseNumbers:    caseNumbers,
		}
	}
	return out
}
