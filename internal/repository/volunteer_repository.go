package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/advotrack/roster-api/internal/datatable"
	"github.com/advotrack/roster-api/internal/models"
)

const caseNumbersQuery = `SELECT ca.volunteer_id, cs.case_number FROM case_assignments ca JOIN cases cs ON cs.id = ca.case_id WHERE ca.volunteer_id IN (?) ORDER BY cs.case_number ASC`

// VolunteerRepository executes datatable queries against the volunteer
// tables. Statements arrive as ? fragments from the engine and are
// rebound for the active driver.
type VolunteerRepository struct {
	db *sqlx.DB
}

// NewVolunteerRepository constructs the repository.
func NewVolunteerRepository(db *sqlx.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// beginRead opens the read scope a datatable request runs under. On
// postgres it asks for a read-only repeatable-read transaction so both
// counts and the page observe one snapshot; other drivers keep their
// defaults.
func (r *VolunteerRepository) beginRead(ctx context.Context) (*sqlx.Tx, error) {
	opts := &sql.TxOptions{}
	if r.db.DriverName() == "postgres" {
		opts.ReadOnly = true
		opts.Isolation = sql.LevelRepeatableRead
	}
	return r.db.BeginTxx(ctx, opts)
}

// Datatable runs one full query cycle: the base count, the filtered
// count, the ordered page and the case numbers for its rows, all inside
// one read-only transaction so the three response parts are mutually
// consistent. Without pagination on the query it returns the whole
// filtered, ordered set, which is what the export path wants.
func (r *VolunteerRepository) Datatable(ctx context.Context, q *datatable.Query) (page *models.VolunteerPage, err error) {
	tx, err := r.beginRead(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin datatable read: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	page = &models.VolunteerPage{}

	query, args := q.BaseCountSQL()
	if err = tx.GetContext(ctx, &page.Total, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("count volunteers: %w", err)
	}

	query, args = q.FilteredCountSQL()
	if err = tx.GetContext(ctx, &page.Filtered, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("count filtered volunteers: %w", err)
	}

	query, args = q.PageSQL()
	if err = tx.SelectContext(ctx, &page.Rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select volunteer page: %w", err)
	}

	if err = r.attachCaseNumbers(ctx, tx, page.Rows); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit datatable read: %w", err)
	}
	return page, nil
}

func (r *VolunteerRepository) attachCaseNumbers(ctx context.Context, tx *sqlx.Tx, rows []models.VolunteerListRow) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	query, args, err := sqlx.In(caseNumbersQuery, ids)
	if err != nil {
		return fmt.Errorf("expand case number query: %w", err)
	}

	var links []struct {
		VolunteerID string `db:"volunteer_id"`
		CaseNumber  string `db:"case_number"`
	}
	if err := tx.SelectContext(ctx, &links, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("select case numbers: %w", err)
	}

	byVolunteer := make(map[string][]string, len(rows))
	for _, link := range links {
		byVolunteer[link.VolunteerID] = append(byVolunteer[link.VolunteerID], link.CaseNumber)
	}
	for i := range rows {
		rows[i].CaseNumbers = byVolunteer[rows[i].ID]
	}
	return nil
}
