package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/advotrack/roster-api/internal/models"
)

// SupervisorRepository reads supervisor rows for filter dropdowns.
type SupervisorRepository struct {
	db *sqlx.DB
}

// NewSupervisorRepository constructs the repository.
func NewSupervisorRepository(db *sqlx.DB) *SupervisorRepository {
	return &SupervisorRepository{db: db}
}

// ListByOrganization returns the organization's supervisors ordered by
// display name.
func (r *SupervisorRepository) ListByOrganization(ctx context.Context, orgID string) ([]models.Supervisor, error) {
	const query = `SELECT id, organization_id, display_name FROM supervisors WHERE organization_id = ? ORDER BY display_name ASC, id ASC`

	var supervisors []models.Supervisor
	if err := r.db.SelectContext(ctx, &supervisors, r.db.Rebind(query), orgID); err != nil {
		return nil, fmt.Errorf("list supervisors: %w", err)
	}
	return supervisors, nil
}
