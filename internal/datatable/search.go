package datatable

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ApplySearch restricts the scope to volunteers matching the term,
// case-insensitively, as a substring of the display name, email,
// supervisor name or any linked case number. Case numbers are matched
// through EXISTS so a volunteer matching via several cases still
// produces one row. An empty term is a no-op.
func (q *Query) ApplySearch(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	cond := `(LOWER(v.display_name) LIKE ? ESCAPE '\' OR LOWER(v.email) LIKE ? ESCAPE '\' OR LOWER(sup.display_name) LIKE ? ESCAPE '\' OR EXISTS (SELECT 1 FROM case_assignments ca JOIN cases cs ON cs.id = ca.case_id WHERE ca.volunteer_id = v.id AND LOWER(cs.case_number) LIKE ? ESCAPE '\'))`
	q.where(cond, pattern, pattern, pattern, pattern)
}
