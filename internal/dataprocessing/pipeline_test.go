package dataprocessing

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/shared/testutil"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestImputeDataUsageUsesSubscriberMean(t *testing.T) {
	usage := []domain.UsageRecord{
		{ID: "USG_000001", SubscriberID: "SUB_00001", DataUsageGB: floatPtr(10)},
		{ID: "USG_000002", SubscriberID: "SUB_00001", DataUsageGB: floatPtr(15)},
		{ID: "USG_000003", SubscriberID: "SUB_00001", DataUsageGB: nil},
		{ID: "USG_000004", SubscriberID: "SUB_00002", DataUsageGB: nil},
	}

	imputed := imputeDataUsage(usage)

	assert.Equal(t, 2, imputed)
	require.NotNil(t, usage[2].DataUsageGB)
	assert.InDelta(t, 12.5, *usage[2].DataUsageGB, 1e-9)
	// Subscriber with no readings at all gets zero.
	require.NotNil(t, usage[3].DataUsageGB)
	assert.Equal(t, 0.0, *usage[3].DataUsageGB)
}

func TestCapDataUsage(t *testing.T) {
	usage := []domain.UsageRecord{
		{ID: "USG_000001", DataUsageGB: floatPtr(750)},
		{ID: "USG_000002", DataUsageGB: floatPtr(100)},
		{ID: "USG_000003", DataUsageGB: floatPtr(42.5)},
	}

	capped := capDataUsage(usage)

	assert.Equal(t, 1, capped)
	assert.Equal(t, domain.MaxDataUsageGB, *usage[0].DataUsageGB)
	assert.Equal(t, 100.0, *usage[1].DataUsageGB)
	assert.Equal(t, 42.5, *usage[2].DataUsageGB)
}

func TestBillAmountRules(t *testing.T) {
	bills := []domain.BillingRecord{
		{ID: "BILL_000001", BillAmount: 7500},
		{ID: "BILL_000002", BillAmount: -42},
		{ID: "BILL_000003", BillAmount: 150},
	}

	bills, dropped := dropNegativeBills(bills)
	capped := capBillAmounts(bills)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, capped)
	require.Len(t, bills, 2)
	assert.Equal(t, domain.MaxBillAmount, bills[0].BillAmount)
	assert.Equal(t, 150.0, bills[1].BillAmount)
}

func TestClearInvertedResolutions(t *testing.T) {
	tickets := []domain.Ticket{
		{
			ID:             "TKT_000001",
			TicketDate:     datePtr(2024, 3, 10),
			ResolutionDate: datePtr(2024, 3, 5),
		},
		{
			ID:             "TKT_000002",
			TicketDate:     datePtr(2024, 3, 10),
			ResolutionDate: datePtr(2024, 3, 12),
		},
	}

	cleared := clearInvertedResolutions(tickets)

	assert.Equal(t, 1, cleared)
	assert.Nil(t, tickets[0].ResolutionDate)
	assert.NotNil(t, tickets[1].ResolutionDate)
}

func TestDropImpossibleUsage(t *testing.T) {
	subs := []domain.Subscriber{
		{ID: "SUB_00001", ActivationDate: datePtr(2024, 1, 15)},
		{ID: "SUB_00002", ActivationDate: nil},
	}
	usage := []domain.UsageRecord{
		{ID: "USG_000001", SubscriberID: "SUB_00001", UsageDate: datePtr(2024, 2, 1)},
		{ID: "USG_000002", SubscriberID: "SUB_00001", UsageDate: datePtr(2024, 1, 1)}, // before activation
		{ID: "USG_000003", SubscriberID: "SUB_00001", UsageDate: nil},                 // no date
		{ID: "USG_000004", SubscriberID: "SUB_00002", UsageDate: datePtr(2024, 2, 1)}, // no activation
		{ID: "USG_000005", SubscriberID: "SUB_99999", UsageDate: datePtr(2024, 2, 1)}, // unknown subscriber
	}

	out, dropped := dropImpossibleUsage(usage, subs)

	assert.Equal(t, 4, dropped)
	require.Len(t, out, 1)
	assert.Equal(t, "USG_000001", out[0].ID)
}

func TestBackfillOutageDurations(t *testing.T) {
	start := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	outages := []domain.Outage{
		{
			ID:        "OUT_0001",
			StartTime: timePtr(start),
			EndTime:   timePtr(start.Add(45 * time.Minute)),
		},
		{
			ID:           "OUT_0002",
			StartTime:    timePtr(start),
			EndTime:      timePtr(start.Add(2 * time.Hour)),
			DurationMins: floatPtr(90), // already known, left alone
		},
		{
			ID: "OUT_0003", // no timestamps, stays unknown
		},
	}

	filled := backfillOutageDurations(outages)

	assert.Equal(t, 1, filled)
	require.NotNil(t, outages[0].DurationMins)
	assert.Equal(t, 45.0, *outages[0].DurationMins)
	assert.Equal(t, 90.0, *outages[1].DurationMins)
	assert.Nil(t, outages[2].DurationMins)
}

func TestPipelineCleanJoinsTicketAttributes(t *testing.T) {
	p := NewPipeline(testLogger())

	raw := &domain.Tables{
		Subscribers: []domain.Subscriber{
			{ID: "SUB_00001", City: "AbuDhabi", Zone: "Zone 3", PlanType: "post-paid"},
		},
		Tickets: []domain.Ticket{
			{ID: "TKT_000001", SubscriberID: "SUB_00001", Status: "Closed"},
			{ID: "TKT_000002", SubscriberID: "SUB_99999", Status: "Open", City: "Dubai"},
		},
	}

	cleaned, stats := p.Clean(context.Background(), raw)

	assert.Equal(t, 0, stats.DuplicateTickets)
	require.Len(t, cleaned.Tickets, 2)

	joined := cleaned.Tickets[0]
	assert.Equal(t, domain.TicketResolved, joined.Status)
	assert.Equal(t, domain.PlanTypePostpaid, joined.PlanType)
	assert.Equal(t, "Abu Dhabi", joined.City)
	assert.Equal(t, "Zone 3", joined.Zone)

	// Ticket for unknown subscriber keeps its own location and no plan type.
	orphan := cleaned.Tickets[1]
	assert.Equal(t, "Dubai", orphan.City)
	assert.Empty(t, orphan.PlanType)
}

func TestPipelineCleanIsIdempotent(t *testing.T) {
	p := NewPipeline(testLogger())

	makeRaw := func() *domain.Tables {
		return &domain.Tables{
			Subscribers: []domain.Subscriber{
				{ID: "SUB_00001", City: "AD", PlanType: "PREPAID", ActivationDate: datePtr(2023, 6, 1)},
				{ID: "SUB_00001", City: "Dubai", PlanType: "Prepaid", ActivationDate: datePtr(2023, 6, 1)},
				{ID: "SUB_00002", City: "Dubai", PlanType: "Postpaid", ActivationDate: datePtr(2022, 1, 1)},
			},
			Usage: []domain.UsageRecord{
				{ID: "USG_000001", SubscriberID: "SUB_00001", UsageDate: datePtr(2024, 1, 10), DataUsageGB: floatPtr(900)},
				{ID: "USG_000002", SubscriberID: "SUB_00001", UsageDate: datePtr(2024, 1, 11), DataUsageGB: nil},
			},
			Billing: []domain.BillingRecord{
				{ID: "BILL_000001", SubscriberID: "SUB_00002", BillAmount: 6000},
				{ID: "BILL_000002", SubscriberID: "SUB_00002", BillAmount: -10},
			},
			Tickets: []domain.Ticket{
				{ID: "TKT_000001", SubscriberID: "SUB_00002", Status: "RESOLVED",
					TicketDate: datePtr(2024, 2, 1), ResolutionDate: datePtr(2024, 1, 20)},
			},
			Outages: []domain.Outage{
				{ID: "OUT_0001", City: "Abu-Dhabi",
					StartTime: timePtr(time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)),
					EndTime:   timePtr(time.Date(2024, 2, 1, 11, 30, 0, 0, time.UTC))},
			},
		}
	}

	once, _ := p.Clean(context.Background(), makeRaw())
	twice, stats := p.Clean(context.Background(), once)

	assert.Equal(t, &CleaningStats{}, stats, "re-cleaning clean data must repair nothing")
	assert.Equal(t, once, twice)
}

func TestPipelineCleanLogsSummary(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	p := NewPipeline(logger)

	raw := &domain.Tables{
		Subscribers: []domain.Subscriber{
			{ID: "SUB_00001", City: "Dubai", PlanType: "Prepaid", ActivationDate: datePtr(2023, 1, 1)},
			{ID: "SUB_00001", City: "Dubai", PlanType: "Prepaid", ActivationDate: datePtr(2023, 1, 1)},
		},
		Billing: []domain.BillingRecord{
			{ID: "BILL_000001", SubscriberID: "SUB_00001", BillAmount: -5},
		},
	}

	_, stats := p.Clean(context.Background(), raw)
	require.Equal(t, 1, stats.DuplicateSubscribers)
	require.Equal(t, 1, stats.NegativeBillsDropped)

	rec, ok := buf.Find("cleaning pass complete")
	require.True(t, ok, "expected a cleaning summary log")
	assert.Equal(t, int64(1), rec.Attrs["duplicate_subscribers"])
	assert.Equal(t, int64(1), rec.Attrs["negative_bills_dropped"])
}
