package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advotrack/roster-api/internal/dto"
	appErrors "github.com/advotrack/roster-api/pkg/errors"
)

type filterOptionsServiceMock struct {
	resp   *dto.FilterOptionsResponse
	cached bool
	err    error
	gotOrg string
}

func (m *filterOptionsServiceMock) Get(ctx context.Context, orgID string) (*dto.FilterOptionsResponse, bool, error) {
	m.gotOrg = orgID
	if m.err != nil {
		return nil, false, m.err
	}
	return m.resp, m.cached, nil
}

func newFilterOptionsTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "orgId", Value: "org-1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/volunteers/filter-options", nil)
	return c, w
}

func TestFilterOptionsHandlerGet(t *testing.T) {
	mock := &filterOptionsServiceMock{
		resp: &dto.FilterOptionsResponse{
			Supervisors:         []dto.SupervisorOption{{ID: "sup-01", DisplayName: "Dana Reed"}},
			Active:              []string{"true", "false"},
			TransitionAgedYouth: []string{"true", "false"},
		},
		cached: true,
	}
	h := NewFilterOptionsHandler(mock)

	c, w := newFilterOptionsTestContext(t)
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "org-1", mock.gotOrg)

	var envelope struct {
		Data dto.FilterOptionsResponse `json:"data"`
		Meta map[string]interface{}    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Supervisors, 1)
	assert.Equal(t, "Dana Reed", envelope.Data.Supervisors[0].DisplayName)
	assert.Equal(t, []string{"true", "false"}, envelope.Data.Active)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestFilterOptionsHandlerGetCacheMiss(t *testing.T) {
	mock := &filterOptionsServiceMock{resp: &dto.FilterOptionsResponse{}, cached: false}
	h := NewFilterOptionsHandler(mock)

	c, w := newFilterOptionsTestContext(t)
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestFilterOptionsHandlerGetError(t *testing.T) {
	mock := &filterOptionsServiceMock{err: appErrors.Wrap(errors.New("connection reset"), appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to load filter options")}
	h := NewFilterOptionsHandler(mock)

	c, w := newFilterOptionsTestContext(t)
	h.Get(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInternal.Code, envelope.Error.Code)
}
