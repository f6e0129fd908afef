// Package datatable builds the SQL behind the volunteer datatable:
// organization-scoped base selection, tri-state categorical filters,
// cross-relation search, derived-column ordering and pagination. All
// fragments use ? placeholders so callers can rebind for their driver.
package datatable

import (
	"fmt"
	"strings"
	"time"
)

const baseFrom = "FROM volunteers v LEFT JOIN supervisors sup ON sup.id = v.supervisor_id"

const selectColumns = "SELECT v.id, v.display_name, v.email, v.active, sup.display_name AS supervisor_name "

// Config tunes request-independent engine behaviour.
type Config struct {
	// ContactWindow is the trailing window for the recent-contact
	// ranking column.
	ContactWindow time.Duration
	// Now supplies the clock used to anchor the window.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.ContactWindow <= 0 {
		c.ContactWindow = 60 * 24 * time.Hour
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Query accumulates the WHERE, ORDER BY and LIMIT fragments for one
// datatable request. The zero value is not usable; construct with New.
type Query struct {
	cfg Config

	base     []string
	baseArgs []interface{}

	conds    []string
	condArgs []interface{}

	orderSQL  string
	orderArgs []interface{}

	limit  int
	offset int
	paged  bool
}

// New starts a query over one organization's volunteers.
func New(cfg Config, orgID string) *Query {
	q := &Query{cfg: cfg.withDefaults()}
	q.base = append(q.base, "v.organization_id = ?")
	q.baseArgs = append(q.baseArgs, orgID)
	return q
}

func (q *Query) where(cond string, args ...interface{}) {
	q.conds = append(q.conds, cond)
	q.condArgs = append(q.condArgs, args...)
}

// Paginate slices the ordered result set. Page is 1-based; both values
// must already be validated as >= 1.
func (q *Query) Paginate(page, perPage int) {
	q.limit = perPage
	q.offset = (page - 1) * perPage
	q.paged = true
}

// BaseCountSQL counts the organization scope, ignoring filters and
// search entirely.
func (q *Query) BaseCountSQL() (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) ")
	b.WriteString(baseFrom)
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(q.base, " AND "))
	return b.String(), q.baseArgs
}

// FilteredCountSQL counts the scope after filters and search, before
// ordering and pagination.
func (q *Query) FilteredCountSQL() (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) ")
	b.WriteString(baseFrom)
	b.WriteString(" WHERE ")
	b.WriteString(q.whereSQL())
	args := make([]interface{}, 0, len(q.baseArgs)+len(q.condArgs))
	args = append(args, q.baseArgs...)
	args = append(args, q.condArgs...)
	return b.String(), args
}

// PageSQL selects one ordered page of row columns. Without a prior
// Paginate call it selects the whole ordered, filtered set, which is
// what the export path wants.
func (q *Query) PageSQL() (string, []interface{}) {
	var b strings.Builder
	b.WriteString(selectColumns)
	b.WriteString(baseFrom)
	b.WriteString(" WHERE ")
	b.WriteString(q.whereSQL())

	args := make([]interface{}, 0, len(q.baseArgs)+len(q.condArgs)+len(q.orderArgs))
	args = append(args, q.baseArgs...)
	args = append(args, q.condArgs...)

	if q.orderSQL != "" {
		b.WriteString(" ")
		b.WriteString(q.orderSQL)
		args = append(args, q.orderArgs...)
	}
	if q.paged {
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", q.limit, q.offset)
	}
	return b.String(), args
}

func (q *Query) whereSQL() string {
	all := make([]string, 0, len(q.base)+len(q.conds))
	all = append(all, q.base...)
	all = append(all, q.conds...)
	return strings.Join(all, " AND ")
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}
