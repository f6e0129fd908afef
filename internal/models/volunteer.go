package models

import "time"

// Volunteer represents an advocate stored in the volunteers table.
type Volunteer struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	Email          string    `db:"email" json:"email"`
	Active         bool      `db:"active" json:"active"`
	SupervisorID   *string   `db:"supervisor_id" json:"supervisor_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Supervisor represents a staff member volunteers report to.
type Supervisor struct {
	ID             string `db:"id" json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	DisplayName    string `db:"display_name" json:"display_name"`
}

// VolunteerListRow is one serialized datatable row. Case numbers are
// attached from a second query, not scanned from the page select.
type VolunteerListRow struct {
	ID             string   `db:"id"`
	DisplayName    string   `db:"display_name"`
	Email          string   `db:"email"`
	Active         bool     `db:"active"`
	SupervisorName *string  `db:"supervisor_name"`
	CaseNumbers    []string `db:"-"`
}

// VolunteerPage bundles one page of rows with the counts that describe
// it. Total ignores filters and search; Filtered is the count before
// pagination. Both are read under the same snapshot as Rows.
type VolunteerPage struct {
	Total    int64
	Filtered int64
	Rows     []VolunteerListRow
}

// FilterOptions lists the selectable filter values for one
// organization, for rendering filter dropdowns.
type FilterOptions struct {
	Supervisors []Supervisor `json:"supervisors"`
}
