package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/advotrack/roster-api/internal/datatable"
	"github.com/advotrack/roster-api/internal/dto"
	"github.com/advotrack/roster-api/internal/models"
	appErrors "github.com/advotrack/roster-api/pkg/errors"
	"github.com/advotrack/roster-api/pkg/export"
)

var volunteerExportHeaders = []string{"Display Name", "Email", "Active", "Supervisor", "Case Numbers"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour. MaxRows caps the rendered set
// when positive; zero means unbounded.
type ExportConfig struct {
	MaxRows int
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the filtered, ordered volunteer set as CSV or
// PDF. It runs the same query pipeline as the datatable, without
// pagination.
type ExportService struct {
	repo      volunteerRepository
	engineCfg datatable.Config
	csv       csvRenderer
	pdf       pdfRenderer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(repo volunteerRepository, engineCfg datatable.Config, cfg ExportConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		repo:      repo,
		engineCfg: engineCfg,
		csv:       csv,
		pdf:       pdf,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate builds the dataset for the request and renders it in the
// requested format.
func (s *ExportService) Generate(ctx context.Context, orgID string, req dto.ExportRequest) (*ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidRequest.Code, appErrors.ErrInvalidRequest.Status, "invalid export request")
	}

	q, err := buildVolunteerQuery(s.engineCfg, orgID, req.Order, req.SearchTerm, req.Filters)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxRows > 0 {
		q.Paginate(1, s.cfg.MaxRows)
	}

	start := time.Now()
	page, err := s.repo.Datatable(ctx, q)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("volunteer_export", time.Since(start))
	}
	if err != nil {
		s.logger.Error("volunteer export query failed", zap.String("organization_id", orgID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export volunteers")
	}

	dataset := volunteerDataset(page.Rows)

	var payload []byte
	var contentType string
	switch req.Format {
	case "csv":
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		payload, err = s.pdf.Render(dataset, "Volunteer Roster")
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    buildExportFilename(orgID, req.Format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func volunteerDataset(rows []models.VolunteerListRow) export.Dataset {
	dataRows := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		supervisor := ""
		if row.SupervisorName != nil {
			supervisor = *row.SupervisorName
		}
		dataRows = append(dataRows, map[string]string{
			"Display Name": row.DisplayName,
			"Email":        row.Email,
			"Active":       strconv.FormatBool(row.Active),
			"Supervisor":   supervisor,
			"Case Numbers": strings.Join(row.CaseNumbers, ", "),
		})
	}
	return export.Dataset{Headers: volunteerExportHeaders, Rows: dataRows}
}

func buildExportFilename(orgID, format string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("volunteers_%s_%s.%s", sanitizeFilename(orgID), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
