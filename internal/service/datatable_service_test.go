package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advotrack/roster-api/internal/datatable"
	"github.com/advotrack/roster-api/internal/dto"
	"github.com/advotrack/roster-api/internal/models"
	appErrors "github.com/advotrack/roster-api/pkg/errors"
)

type volunteerRepoMock struct {
	page     *models.VolunteerPage
	err      error
	gotQuery *datatable.Query
	calls    int
}

func (m *volunteerRepoMock) Datatable(ctx context.Context, q *datatable.Query) (*models.VolunteerPage, error) {
	m.calls++
	m.gotQuery = q
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func testEngineConfig() datatable.Config {
	return datatable.Config{
		ContactWindow: 60 * 24 * time.Hour,
		Now:           func() time.Time { return time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC) },
	}
}

func strPtr(s string) *string {
	return &s
}

func TestDatatableServiceQuery(t *testing.T) {
	supervisor := "Dana Reed"
	repo := &volunteerRepoMock{page: &models.VolunteerPage{
		Total:    8,
		Filtered: 5,
		Rows: []models.VolunteerListRow{
			{ID: "vol-01", DisplayName: "Alice Chen", Email: "alice.chen@example.org", Active: true, SupervisorName: &supervisor, CaseNumbers: []string{"24-JD-00105"}},
			{ID: "vol-07", DisplayName: "Grace Lin", Email: "grace.lin@example.org", Active: true},
		},
	}}
	svc := NewDatatableService(repo, testEngineConfig(), nil, nil, nil)

	resp, err := svc.Query(context.Background(), "org-1", dto.DatatableRequest{
		Order:   &dto.Order{By: "email", Direction: "desc"},
		Page:    1,
		PerPage: 25,
		Filters: map[string][]*string{"active": {strPtr("true")}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8), resp.RecordsTotal)
	assert.Equal(t, int64(5), resp.RecordsFiltered)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Alice Chen", resp.Data[0].DisplayName)
	assert.Equal(t, []string{"24-JD-00105"}, resp.Data[0].CaseNumbers)
	require.NotNil(t, resp.Data[0].SupervisorName)
	assert.Equal(t, "Dana Reed", *resp.Data[0].SupervisorName)
	// Rows without case assignments serialize an empty list, not null.
	assert.NotNil(t, resp.Data[1].CaseNumbers)
	assert.Empty(t, resp.Data[1].CaseNumbers)
	assert.Nil(t, resp.Data[1].SupervisorName)

	require.NotNil(t, repo.gotQuery)
	query, args := repo.gotQuery.PageSQL()
	assert.Contains(t, query, "ORDER BY v.email DESC, v.id DESC")
	assert.Contains(t, query, "LIMIT 25 OFFSET 0")
	assert.Equal(t, []interface{}{"org-1", true}, args)
}

func TestDatatableServiceDefaultOrder(t *testing.T) {
	repo := &volunteerRepoMock{page: &models.VolunteerPage{}}
	svc := NewDatatableService(repo, testEngineConfig(), nil, nil, nil)

	_, err := svc.Query(context.Background(), "org-1", dto.DatatableRequest{Page: 3, PerPage: 10})
	require.NoError(t, err)

	require.NotNil(t, repo.gotQuery)
	query, _ := repo.gotQuery.PageSQL()
	assert.Contains(t, query, "ORDER BY v.display_name ASC, v.id ASC")
	assert.Contains(t, query, "LIMIT 10 OFFSET 20")
}

func TestDatatableServiceValidatesRequest(t *testing.T) {
	repo := &volunteerRepoMock{page: &models.VolunteerPage{}}
	svc := NewDatatableService(repo, testEngineConfig(), nil, nil, nil)

	cases := []dto.DatatableRequest{
		{Page: 0, PerPage: 25},
		{Page: 1, PerPage: 0},
		{Page: 1, PerPage: 25, Order: &dto.Order{By: "email", Direction: "sideways"}},
		{Page: 1, PerPage: 25, Order: &dto.Order{Direction: "asc"}},
	}
	for _, req := range cases {
		_, err := svc.Query(context.Background(), "org-1", req)
		require.Error(t, err)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrInvalidRequest.Code, appErr.Code)
		assert.Equal(t, 400, appErr.Status)
	}
	assert.Zero(t, repo.calls)
}

func TestDatatableServiceUnsupportedSortColumn(t *testing.T) {
	repo := &volunteerRepoMock{page: &models.VolunteerPage{}}
	svc := NewDatatableService(repo, testEngineConfig(), nil, nil, nil)

	_, err := svc.Query(context.Background(), "org-1", dto.DatatableRequest{
		Order:   &dto.Order{By: "favorite_color", Direction: "asc"},
		Page:    1,
		PerPage: 25,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnsupportedSortColumn.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "favorite_color")
	assert.Zero(t, repo.calls)
}

func TestDatatableServiceRepositoryError(t *testing.T) {
	repo := &volunteerRepoMock{err: errors.New("connection reset")}
	svc := NewDatatableService(repo, testEngineConfig(), nil, nil, nil)

	_, err := svc.Query(context.Background(), "org-1", dto.DatatableRequest{Page: 1, PerPage: 25})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
}

func TestDatatableServiceEmptyFilterSet(t *testing.T) {
	repo := &volunteerRepoMock{page: &models.VolunteerPage{Total: 8}}
	svc := NewDatatableService(repo, testEngineConfig(), nil, nil, nil)

	resp, err := svc.Query(context.Background(), "org-1", dto.DatatableRequest{
		Page:    1,
		PerPage: 25,
		Filters: map[string][]*string{"active": {}},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)

	query, _ := repo.gotQuery.FilteredCountSQL()
	assert.Contains(t, query, "1=0")
}
