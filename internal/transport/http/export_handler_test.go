package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/errors"
)

func newExportHandler(svc DashboardServiceInterface) *ExportHandler {
	logger := slog.Default()
	return NewExportHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
}

func TestExportExecutiveCSV(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/executive?format=csv&city=Dubai", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "executive-dashboard-")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "total_revenue,730.00")
}

func TestExportDefaultsToCSV(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/operations", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "ticket_backlog,3")
}

func TestExportOperationsXLSX(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/operations?format=xlsx", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "KPIs")
}

func TestExportDatasetCSV(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/dataset?format=csv&city=Dubai", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dataset-dashboard-")

	body := rec.Body.String()
	assert.Contains(t, body, "Subscribers\n")
	assert.Contains(t, body, "subscriber_id,")
	assert.Contains(t, body, "SUB_00001,Dubai")
	assert.Contains(t, body, "BILL_000001,SUB_00001")
}

func TestExportInvalidPlanType(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/executive?plan_type=Hybrid", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be one of: Prepaid, Postpaid")
}

func TestExportUnknownView(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/finance", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportUnknownFormat(t *testing.T) {
	handler := newExportHandler(&stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/executive?format=pdf", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "format"))
}
