package datatable

// filterNames fixes the iteration order so the generated SQL is
// deterministic. Names outside this list are ignored.
var filterNames = []string{"active", "supervisor", "transition_aged_youth"}

// ApplyFilters restricts the scope by each recognized filter, combined
// with AND across filter names. Values inside one filter combine with
// OR. A nil value inside the supervisor set is the unassigned sentinel.
func (q *Query) ApplyFilters(filters map[string][]*string) {
	for _, name := range filterNames {
		values, ok := filters[name]
		if !ok {
			continue
		}
		switch name {
		case "active":
			q.applyCategorical(values, activeCondition)
		case "supervisor":
			q.applyCategorical(values, supervisorCondition)
		case "transition_aged_youth":
			q.applyCategorical(values, transitionAgedYouthCondition)
		}
	}
}

// applyCategorical applies one tri-state allowed-value set: an empty
// set excludes every row, a set covering the whole value domain leaves
// the scope unchanged.
func (q *Query) applyCategorical(values []*string, build func([]*string) (string, []interface{})) {
	if len(values) == 0 {
		q.where("1=0")
		return
	}
	cond, args := build(values)
	if cond == "" {
		return
	}
	q.where(cond, args...)
}

// boolDomain reports which of the string-encoded boolean values appear
// in the allowed set. Values outside the domain contribute nothing.
func boolDomain(values []*string) (truthy, falsy bool) {
	for _, v := range values {
		if v == nil {
			continue
		}
		switch *v {
		case "true":
			truthy = true
		case "false":
			falsy = true
		}
	}
	return truthy, falsy
}

func activeCondition(values []*string) (string, []interface{}) {
	truthy, falsy := boolDomain(values)
	switch {
	case truthy && falsy:
		return "", nil
	case truthy:
		return "v.active = ?", []interface{}{true}
	case falsy:
		return "v.active = ?", []interface{}{false}
	default:
		return "1=0", nil
	}
}

func supervisorCondition(values []*string) (string, []interface{}) {
	names := make([]interface{}, 0, len(values))
	unassigned := false
	for _, v := range values {
		if v == nil {
			unassigned = true
			continue
		}
		names = append(names, *v)
	}

	switch {
	case len(names) > 0 && unassigned:
		return "(sup.display_name IN (" + placeholders(len(names)) + ") OR v.supervisor_id IS NULL)", names
	case len(names) > 0:
		return "sup.display_name IN (" + placeholders(len(names)) + ")", names
	case unassigned:
		return "v.supervisor_id IS NULL", nil
	default:
		return "1=0", nil
	}
}

// transitionAgedYouthCondition matches volunteers with at least one
// linked case whose flag is in the allowed set. Selecting both values
// therefore matches any volunteer with at least one case, not every
// volunteer.
func transitionAgedYouthCondition(values []*string) (string, []interface{}) {
	truthy, falsy := boolDomain(values)
	flags := make([]interface{}, 0, 2)
	if truthy {
		flags = append(flags, true)
	}
	if falsy {
		flags = append(flags, false)
	}
	if len(flags) == 0 {
		return "1=0", nil
	}
	cond := "EXISTS (SELECT 1 FROM case_assignments ca JOIN cases cs ON cs.id = ca.case_id WHERE ca.volunteer_id = v.id AND cs.transition_aged_youth IN (" + placeholders(len(flags)) + "))"
	return cond, flags
}
