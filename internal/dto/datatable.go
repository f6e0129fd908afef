package dto

// Order names the logical sort column and direction for one datatable
// request.
type Order struct {
	By        string `json:"by" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=asc desc"`
}

// DatatableRequest describes one query cycle over the volunteer table.
// A nil Order falls back to display_name ascending. Filter values are
// pointers so the unassigned-supervisor sentinel arrives as JSON null.
type DatatableRequest struct {
	Order      *Order               `json:"order" validate:"omitempty"`
	Page       int                  `json:"page" validate:"required,min=1"`
	PerPage    int                  `json:"per_page" validate:"required,min=1"`
	SearchTerm *string              `json:"search_term"`
	Filters    map[string][]*string `json:"filters"`
}

// VolunteerRow is one serialized row of the datatable response.
type VolunteerRow struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"display_name"`
	Email          string   `json:"email"`
	Active         bool     `json:"active"`
	SupervisorName *string  `json:"supervisor_name"`
	CaseNumbers    []string `json:"case_numbers"`
}

// DatatableResponse is the datatable protocol contract: total count of
// the base scope, count after filters and search, and one page of rows.
type DatatableResponse struct {
	RecordsTotal    int64          `json:"recordsTotal"`
	RecordsFiltered int64          `json:"recordsFiltered"`
	Data            []VolunteerRow `json:"data"`
}

// ExportRequest reuses the datatable shape minus pagination. The full
// filtered, ordered set is rendered in the requested format.
type ExportRequest struct {
	Order      *Order               `json:"order" validate:"omitempty"`
	SearchTerm *string              `json:"search_term"`
	Filters    map[string][]*string `json:"filters"`
	Format     string               `json:"format" validate:"required,oneof=csv pdf"`
}

// FilterOptionsResponse lists the selectable values per filter name.
type FilterOptionsResponse struct {
	Supervisors         []SupervisorOption `json:"supervisors"`
	Active              []string           `json:"active"`
	TransitionAgedYouth []string           `json:"transition_aged_youth"`
}

// SupervisorOption is one supervisor dropdown entry.
type SupervisorOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
