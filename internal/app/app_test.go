package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/infrastructure"
)

// writeDataDir writes a minimal but complete set of source files and returns
// the directory, laid out the way the default configuration expects.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"subscribers.csv": "subscriber_id,subscriber_name,city,zone,plan_type,plan_name,monthly_charge,activation_date,status\n" +
			"SUB_00001,Customer 1,Dubai,Zone 1,Postpaid,Unlimited,420.50,2019-01-15,Active\n" +
			"SUB_00002,Customer 2,Sharjah,Zone 2,Prepaid,Basic,75.00,2024-02-01,Churned\n",
		"usage_records.csv": "usage_id,subscriber_id,usage_date,data_usage_gb,voice_minutes,sms_count,roaming_charges,addon_charges\n" +
			"USG_000001,SUB_00001,2024-03-01,12.5,120,10,5.25,0\n",
		"billing.csv": "bill_id,subscriber_id,billing_month,bill_amount,payment_status,payment_date,credit_adjustment,adjustment_reason\n" +
			"BILL_000001,SUB_00001,2024-03-01,400,Paid,2024-03-10,0,\n" +
			"BILL_000002,SUB_00002,2024-03-01,80,Overdue,,0,\n",
		"tickets.csv": "ticket_id,subscriber_id,ticket_date,ticket_channel,ticket_category,priority,status,resolution_date,sla_target_hours,assigned_team,zone,city\n" +
			"TKT_000001,SUB_00001,2024-03-05,App,Network Issue,High,Open,,48,Tier 2,Zone 1,Dubai\n",
		"network_outages.csv": "outage_id,zone,city,outage_date,outage_start_time,outage_end_time,outage_duration_mins,outage_type,affected_subscribers\n" +
			"OUT_0001,Zone 1,Dubai,2024-03-04,2024-03-04 14:00:00,2024-03-04 16:00:00,120,Fiber Cut,1200\n",
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	t.Setenv("CONNECT_DATA_DIR", writeDataDir(t))
	t.Setenv("CONNECT_LOGGING_LEVEL", "error")
	t.Setenv("CONNECT_LOGGING_OUTPUT", "console")

	application, err := New()
	require.NoError(t, err)
	return application
}

func TestNewMissingSourceFiles(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	t.Setenv("CONNECT_DATA_DIR", t.TempDir())
	t.Setenv("CONNECT_LOGGING_LEVEL", "error")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source files missing")
}

func TestApplicationRoutes(t *testing.T) {
	application := newTestApplication(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "health endpoint",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
			wantBody:   `"status"`,
		},
		{
			name:       "executive dashboard",
			method:     http.MethodGet,
			path:       "/api/dashboard/executive",
			wantStatus: http.StatusOK,
			wantBody:   "total_revenue",
		},
		{
			name:       "operations dashboard with filters",
			method:     http.MethodGet,
			path:       "/api/dashboard/operations?city=Dubai&start=2024-03-01&end=2024-03-31",
			wantStatus: http.StatusOK,
			wantBody:   "ticket_backlog",
		},
		{
			name:       "filter options",
			method:     http.MethodGet,
			path:       "/api/dashboard/filters",
			wantStatus: http.StatusOK,
			wantBody:   "cities",
		},
		{
			name:       "csv export",
			method:     http.MethodGet,
			path:       "/api/export/executive?format=csv",
			wantStatus: http.StatusOK,
			wantBody:   "total_revenue",
		},
		{
			name:       "dataset export",
			method:     http.MethodGet,
			path:       "/api/export/dataset?format=csv&city=Dubai",
			wantStatus: http.StatusOK,
			wantBody:   "subscriber_id",
		},
		{
			name:       "unknown plan type is a problem response",
			method:     http.MethodGet,
			path:       "/api/dashboard/executive?plan_type=Hybrid",
			wantStatus: http.StatusBadRequest,
			wantBody:   "/errors/validation",
		},
		{
			name:       "invalid date is a problem response",
			method:     http.MethodGet,
			path:       "/api/dashboard/executive?start=yesterday",
			wantStatus: http.StatusBadRequest,
			wantBody:   "/errors/validation",
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/nope",
			wantStatus: http.StatusNotFound,
			wantBody:   "/errors/not-found",
		},
		{
			name:       "method not allowed",
			method:     http.MethodDelete,
			path:       "/api/dashboard/executive",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			application.Router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}
