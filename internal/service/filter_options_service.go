package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/advotrack/roster-api/internal/dto"
	"github.com/advotrack/roster-api/internal/models"
	appErrors "github.com/advotrack/roster-api/pkg/errors"
)

type supervisorRepository interface {
	ListByOrganization(ctx context.Context, orgID string) ([]models.Supervisor, error)
}

// FilterOptionsService serves the selectable values for the volunteer
// filters, cached per organization when Redis is available. A cache
// failure degrades to a direct read, never to an error.
type FilterOptionsService struct {
	supervisors supervisorRepository
	cache       *CacheService
	metrics     *MetricsService
	ttl         time.Duration
	logger      *zap.Logger
}

// NewFilterOptionsService constructs the filter options service.
func NewFilterOptionsService(supervisors supervisorRepository, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *FilterOptionsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterOptionsService{supervisors: supervisors, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// Get returns the filter options for one organization. The second
// result reports whether the payload came from cache.
func (s *FilterOptionsService) Get(ctx context.Context, orgID string) (*dto.FilterOptionsResponse, bool, error) {
	key := filterOptionsCacheKey(orgID)

	var cached dto.FilterOptionsResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	supervisors, err := s.supervisors.ListByOrganization(ctx, orgID)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("filter_options", time.Since(start))
	}
	if err != nil {
		s.logger.Error("filter options query failed", zap.String("organization_id", orgID), zap.Error(err))
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load filter options")
	}

	options := make([]dto.SupervisorOption, 0, len(supervisors))
	for _, sup := range supervisors {
		options = append(options, dto.SupervisorOption{ID: sup.ID, DisplayName: sup.DisplayName})
	}

	resp := &dto.FilterOptionsResponse{
		Supervisors:         options,
		Active:              []string{"true", "false"},
		TransitionAgedYouth: []string{"true", "false"},
	}

	_ = s.cache.Set(ctx, key, resp, s.ttl)
	return resp, false, nil
}

// Invalidate drops the cached payload for one organization.
func (s *FilterOptionsService) Invalidate(ctx context.Context, orgID string) error {
	return s.cache.Invalidate(ctx, filterOptionsCacheKey(orgID))
}

func filterOptionsCacheKey(orgID string) string {
	return fmt.Sprintf("filter-options:%s", orgID)
}
