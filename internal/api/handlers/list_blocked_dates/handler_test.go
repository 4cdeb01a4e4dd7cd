package list_blocked_dates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates/models"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

type fakeService struct {
	err error
}

func (f *fakeService) List(context.Context) (*models.BlockedDateListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockedDateListResponse{
		BlockedDates: []models.BlockedDateResponse{{Date: types.DateOf(2025, 5, 14)}},
		Total:        1,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/blocked-dates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		BlockedDates []struct {
			Date string `json:"date"`
		} `json:"blockedDates"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "2025-05-14", body.BlockedDates[0].Date)
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/blocked-dates", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
