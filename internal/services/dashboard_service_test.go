package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/dataprocessing"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

func writeServiceSources(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		dataprocessing.TableSubscribers: "subscriber_id,subscriber_name,city,zone,plan_type,plan_name,monthly_charge,activation_date,status\n" +
			"SUB_00001,Customer 1,Dubai,Zone 1,Postpaid,Unlimited,420.50,2019-01-15,Active\n" +
			"SUB_00002,Customer 2,Sharjah,Zone 2,Prepaid,Basic,75.00,2024-02-01,Churned\n",
		dataprocessing.TableUsage: "usage_id,subscriber_id,usage_date,data_usage_gb,voice_minutes,sms_count,roaming_charges,addon_charges\n" +
			"USG_000001,SUB_00001,2024-03-01,12.5,120,10,5.25,0\n",
		dataprocessing.TableBilling: "bill_id,subscriber_id,billing_month,bill_amount,payment_status,payment_date,credit_adjustment,adjustment_reason\n" +
			"BILL_000001,SUB_00001,2024-03-01,400,Paid,2024-03-10,0,\n" +
			"BILL_000002,SUB_00002,2024-03-01,80,Overdue,,0,\n",
		dataprocessing.TableTickets: "ticket_id,subscriber_id,ticket_date,ticket_channel,ticket_category,priority,status,resolution_date,sla_target_hours,assigned_team,zone,city\n" +
			"TKT_000001,SUB_00001,2024-03-05,App,Network Issue,High,Open,,48,Tier 2,Zone 1,Dubai\n",
		dataprocessing.TableOutages: "outage_id,zone,city,outage_date,outage_start_time,outage_end_time,outage_duration_mins,outage_type,affected_subscribers\n" +
			"OUT_0001,Zone 1,Dubai,2024-03-04,2024-03-04 14:00:00,2024-03-04 16:00:00,120,Fiber Cut,1200\n",
	}

	sources := make(map[string]string, len(files))
	for table, content := range files {
		path := filepath.Join(dir, table+".csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		sources[table] = path
	}
	return sources
}

func newDashboardService(t *testing.T) (*DashboardService, map[string]string) {
	t.Helper()
	logger := slog.Default()
	sources := writeServiceSources(t)
	store := dataprocessing.NewStore(sources,
		dataprocessing.NewLoader(logger), dataprocessing.NewPipeline(logger), logger)
	svc := NewDashboardService(store, logger)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return svc, sources
}

func TestDashboardServiceExecutiveView(t *testing.T) {
	svc, _ := newDashboardService(t)

	view, err := svc.ExecutiveView(context.Background(), &domain.FilterSpec{})
	require.NoError(t, err)

	assert.Equal(t, 480.0, view.TotalRevenue)
	assert.Equal(t, 2, view.TotalSubscribers)
	assert.Equal(t, 1, view.ActiveSubscribers)
	assert.Equal(t, 480.0, view.ARPU)
	assert.Equal(t, 80.0, view.OverdueRevenue)
	assert.Equal(t, "Sharjah", view.TopOverdueCity)
}

func TestDashboardServiceOperationsView(t *testing.T) {
	svc, _ := newDashboardService(t)

	view, err := svc.OperationsView(context.Background(), &domain.FilterSpec{})
	require.NoError(t, err)

	assert.Equal(t, 1, view.TicketBacklog)
	assert.Equal(t, 120.0, view.TotalOutageMinutes)
	// SUB_00001 activated in 2019: five years of tenure puts the ticket in
	// the top tier at the injected evaluation time.
	require.Len(t, view.BacklogByTier, 1)
	assert.Equal(t, domain.TierCritical.String(), view.BacklogByTier[0].Tier)
}

func TestDashboardServiceFilterOptions(t *testing.T) {
	svc, _ := newDashboardService(t)

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Dubai", "Sharjah"}, opts.Cities)
	assert.Equal(t, []string{"Network Issue"}, opts.TicketCategories)
	assert.Equal(t, "2024-03-01", opts.MinDate)
	assert.Equal(t, "2024-03-05", opts.MaxDate)
}

func TestDashboardServiceFilteredViews(t *testing.T) {
	svc, _ := newDashboardService(t)

	views, err := svc.FilteredViews(context.Background(), &domain.FilterSpec{
		Cities: []string{"Dubai"},
	})
	require.NoError(t, err)

	require.Len(t, views.Subscribers, 1)
	assert.Equal(t, "SUB_00001", views.Subscribers[0].ID)
	require.Len(t, views.Billing, 1)
	assert.Equal(t, "BILL_000001", views.Billing[0].ID)
	require.Len(t, views.Tickets, 1)
	require.Len(t, views.Outages, 1)
}

func TestDashboardServiceMissingSourceFails(t *testing.T) {
	svc, sources := newDashboardService(t)
	require.NoError(t, os.Remove(sources[dataprocessing.TableBilling]))

	_, err := svc.ExecutiveView(context.Background(), &domain.FilterSpec{})
	assert.Error(t, err)
}

func TestHealthServiceCheck(t *testing.T) {
	svc, sources := newDashboardService(t)
	health := NewHealthService("1.0.0", sources, svc.store, slog.Default())

	status := health.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.False(t, status.DataLoaded, "health check must not trigger a load")

	_, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	status = health.Check(context.Background())
	assert.True(t, status.DataLoaded)
	require.NotNil(t, status.TableCounts)
	assert.Equal(t, 2, status.TableCounts["subscribers"])
	require.NotNil(t, status.CleaningStats)

	require.NoError(t, os.Remove(sources[dataprocessing.TableOutages]))
	status = health.Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Contains(t, status.MissingFiles, dataprocessing.TableOutages)

	// A second missing file lists in sorted order, not map order.
	require.NoError(t, os.Remove(sources[dataprocessing.TableUsage]))
	status = health.Check(context.Background())
	assert.Equal(t, []string{dataprocessing.TableOutages, dataprocessing.TableUsage}, status.MissingFiles)
}
