package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/errors"
)

// filterRequest mirrors the dashboard filter query surface for tag-based
// validation.
type filterRequest struct {
	City      string `json:"city" validate:"omitempty,cityname"`
	PlanType  string `json:"plan_type" validate:"omitempty,oneof=Prepaid Postpaid"`
	StartDate string `json:"start_date" validate:"omitempty,dateonly"`
}

func newValidationMiddleware() *ValidationMiddleware {
	logger := discardLogger()
	return NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false))
}

func TestValidateStruct(t *testing.T) {
	m := newValidationMiddleware()

	tests := []struct {
		name      string
		input     filterRequest
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid request",
			input: filterRequest{City: "Dubai", PlanType: "Postpaid", StartDate: "2024-03-01"},
		},
		{
			name:  "empty request passes omitempty",
			input: filterRequest{},
		},
		{
			name:      "bad plan type",
			input:     filterRequest{PlanType: "Hybrid"},
			wantErr:   true,
			wantField: "plan_type",
		},
		{
			name:      "bad date format",
			input:     filterRequest{StartDate: "01/03/2024"},
			wantErr:   true,
			wantField: "start_date",
		},
		{
			name:      "blank city rejected",
			input:     filterRequest{City: "   "},
			wantErr:   true,
			wantField: "city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateStruct(tt.input)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

			details, ok := apiErr.Details.(apierrors.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, details.Errors)
			assert.Equal(t, tt.wantField, details.Errors[0].Field)
		})
	}
}

func TestQueryParamValidator_ValidateDate(t *testing.T) {
	logger := discardLogger()
	v := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))

	t.Run("absent parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		got, ok := v.ValidateDate(rec, req, "start")
		assert.True(t, ok)
		assert.True(t, got.IsZero())
	})

	t.Run("valid date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?start=2024-03-15", nil)
		rec := httptest.NewRecorder()

		got, ok := v.ValidateDate(rec, req, "start")
		assert.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?start=15-03-2024", nil)
		rec := httptest.NewRecorder()

		_, ok := v.ValidateDate(rec, req, "start")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "start")
	})
}

func TestQueryParamValidator_ValidateEnum(t *testing.T) {
	logger := discardLogger()
	v := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))
	allowed := []string{"csv", "xlsx"}

	t.Run("absent uses default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		got, ok := v.ValidateEnum(rec, req, "format", allowed, "csv")
		assert.True(t, ok)
		assert.Equal(t, "csv", got)
	})

	t.Run("allowed value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?format=xlsx", nil)
		rec := httptest.NewRecorder()

		got, ok := v.ValidateEnum(rec, req, "format", allowed, "csv")
		assert.True(t, ok)
		assert.Equal(t, "xlsx", got)
	})

	t.Run("disallowed value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?format=pdf", nil)
		rec := httptest.NewRecorder()

		_, ok := v.ValidateEnum(rec, req, "format", allowed, "csv")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "format")
	})
}
