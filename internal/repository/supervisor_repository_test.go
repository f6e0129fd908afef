package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisorRepositoryListByOrganization(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	query := regexp.QuoteMeta("SELECT id, organization_id, display_name FROM supervisors WHERE organization_id = ? ORDER BY display_name ASC, id ASC")
	mock.ExpectQuery(query).
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "display_name"}).
			AddRow("sup-01", "org-1", "Dana Reed").
			AddRow("sup-02", "org-1", "Miguel Ortiz"))

	supervisors, err := NewSupervisorRepository(db).ListByOrganization(context.Background(), "org-1")
	require.NoError(t, err)

	require.Len(t, supervisors, 2)
	assert.Equal(t, "Dana Reed", supervisors[0].DisplayName)
	assert.Equal(t, "sup-02", supervisors[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupervisorRepositoryListByOrganizationError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, organization_id, display_name FROM supervisors")).
		WillReturnError(errors.New("connection reset"))

	supervisors, err := NewSupervisorRepository(db).ListByOrganization(context.Background(), "org-1")
	assert.Nil(t, supervisors)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list supervisors")
	assert.NoError(t, mock.ExpectationsWereMet())
}
