package datatable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedColumn rejects order requests naming a column outside
// the registry. Callers must not fall back to another column.
var ErrUnsupportedColumn = errors.New("unsupported sort column")

type sortKind int

const (
	// sortDirect orders by a volunteer column.
	sortDirect sortKind = iota
	// sortJoined orders by a column reached through the supervisor join.
	sortJoined
	// sortRank orders by a computed 0/1 rank.
	sortRank
	// sortAggregate orders by an aggregate over related rows, null when
	// no related rows exist.
	sortAggregate
	// sortWindowed orders by recent-contact rank, then by the count of
	// contacts made inside the trailing window.
	sortWindowed
)

type sortKey struct {
	kind     sortKind
	expr     string
	nullable bool
}

const (
	transitionAgedYouthRank = "CASE WHEN EXISTS (SELECT 1 FROM case_assignments ca JOIN cases cs ON cs.id = ca.case_id WHERE ca.volunteer_id = v.id AND cs.transition_aged_youth = TRUE) THEN 1 ELSE 0 END"

	lastContactOccurredAt = "(SELECT MAX(cc.occurred_at) FROM case_contacts cc JOIN case_assignments ca ON ca.case_id = cc.case_id WHERE ca.volunteer_id = v.id)"

	recentContactsMade = "(SELECT COUNT(*) FROM case_contacts cc JOIN case_assignments ca ON ca.case_id = cc.case_id WHERE ca.volunteer_id = v.id AND cc.contact_made = TRUE AND cc.occurred_at >= ?)"
)

// sortKeys is the closed registry of logical column names accepted for
// ordering. Unknown names fail with ErrUnsupportedColumn.
var sortKeys = map[string]sortKey{
	"display_name":                    {kind: sortDirect, expr: "v.display_name"},
	"email":                           {kind: sortDirect, expr: "v.email"},
	"active":                          {kind: sortDirect, expr: "v.active"},
	"supervisor_name":                 {kind: sortJoined, expr: "sup.display_name", nullable: true},
	"has_transition_aged_youth_cases": {kind: sortRank, expr: transitionAgedYouthRank},
	"most_recent_contact_occurred_at": {kind: sortAggregate, expr: lastContactOccurredAt, nullable: true},
	"contacts_made_in_past_days":      {kind: sortWindowed},
}

// SortColumns lists the accepted logical column names.
func SortColumns() []string {
	names := make([]string, 0, len(sortKeys))
	for name := range sortKeys {
		names = append(names, name)
	}
	return names
}

// OrderBy resolves the logical column and installs a total order over
// the filtered set. Every term carries the request direction, the
// volunteer id tie-break included, so descending is the exact reverse
// of ascending. Nullable keys get an explicit rank term that places
// null as the lowest value on every backend.
func (q *Query) OrderBy(column, direction string) error {
	key, ok := sortKeys[column]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedColumn, column)
	}

	dir := "ASC"
	if strings.EqualFold(direction, "desc") {
		dir = "DESC"
	}

	terms := make([]string, 0, 3)
	switch key.kind {
	case sortWindowed:
		cutoff := q.cfg.Now().UTC().Add(-q.cfg.ContactWindow)
		terms = append(terms,
			fmt.Sprintf("CASE WHEN %s > 0 THEN 0 ELSE 1 END %s", recentContactsMade, dir),
			fmt.Sprintf("%s %s", recentContactsMade, dir),
		)
		q.orderArgs = append(q.orderArgs, cutoff, cutoff)
	default:
		if key.nullable {
			terms = append(terms, fmt.Sprintf("CASE WHEN %s IS NULL THEN 0 ELSE 1 END %s", key.expr, dir))
		}
		terms = append(terms, fmt.Sprintf("%s %s", key.expr, dir))
	}
	terms = append(terms, "v.id "+dir)

	q.orderSQL = "ORDER BY " + strings.Join(terms, ", ")
	return nil
}
