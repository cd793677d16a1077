package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// CleaningStats counts every repair the pipeline made. Repairs are silent
// from the API's point of view; the stats are logged once per load and
// surfaced on the health endpoint.
type CleaningStats struct {
	DuplicateSubscribers int `json:"duplicate_subscribers_removed"`
	DuplicateBills       int `json:"duplicate_bills_removed"`
	DuplicateTickets     int `json:"duplicate_tickets_removed"`
	ImputedUsage         int `json:"data_usage_imputed"`
	CappedUsage          int `json:"data_usage_capped"`
	CappedBills          int `json:"bill_amounts_capped"`
	NegativeBillsDropped int `json:"negative_bills_dropped"`
	ClearedResolutions   int `json:"inverted_resolutions_cleared"`
	DroppedUsageRows     int `json:"impossible_usage_dropped"`
	BackfilledOutages    int `json:"outage_durations_backfilled"`
}

// Pipeline applies the fixed cleaning rules to raw tables. The rules are
// deterministic: cleaning the same raw data always yields the same result,
// and cleaning already-clean data changes nothing.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a cleaning pipeline with the given logger.
func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With(slog.String("component", "cleaning_pipeline")),
	}
}

// Clean runs the full cleaning pass over raw tables and returns the cleaned
// tables plus repair counts. The input is consumed: callers must not reuse it.
func (p *Pipeline) Clean(ctx context.Context, raw *domain.Tables) (*domain.Tables, *CleaningStats) {
	start := time.Now()
	stats := &CleaningStats{}
	out := &domain.Tables{
		Usage:   raw.Usage,
		Outages: raw.Outages,
	}

	// Duplicates go first so later per-subscriber passes see each entity once.
	out.Subscribers, stats.DuplicateSubscribers = dedupeSubscribers(raw.Subscribers)
	out.Billing, stats.DuplicateBills = dedupeBilling(raw.Billing)
	out.Tickets, stats.DuplicateTickets = dedupeTickets(raw.Tickets)

	for i := range out.Subscribers {
		s := &out.Subscribers[i]
		s.PlanType = NormalizePlanType(s.PlanType)
		s.City = NormalizeCity(s.City)
	}
	for i := range out.Tickets {
		t := &out.Tickets[i]
		t.Status = NormalizeTicketStatus(t.Status)
		t.City = NormalizeCity(t.City)
	}
	for i := range out.Outages {
		out.Outages[i].City = NormalizeCity(out.Outages[i].City)
	}

	p.joinTicketAttributes(out)

	stats.ImputedUsage = imputeDataUsage(out.Usage)
	stats.CappedUsage = capDataUsage(out.Usage)
	out.Billing, stats.NegativeBillsDropped = dropNegativeBills(out.Billing)
	stats.CappedBills = capBillAmounts(out.Billing)

	stats.ClearedResolutions = clearInvertedResolutions(out.Tickets)
	out.Usage, stats.DroppedUsageRows = dropImpossibleUsage(out.Usage, out.Subscribers)
	stats.BackfilledOutages = backfillOutageDurations(out.Outages)

	p.logger.InfoContext(ctx, "cleaning pass complete",
		slog.Int("duplicate_subscribers", stats.DuplicateSubscribers),
		slog.Int("duplicate_bills", stats.DuplicateBills),
		slog.Int("duplicate_tickets", stats.DuplicateTickets),
		slog.Int("usage_imputed", stats.ImputedUsage),
		slog.Int("usage_capped", stats.CappedUsage),
		slog.Int("bills_capped", stats.CappedBills),
		slog.Int("negative_bills_dropped", stats.NegativeBillsDropped),
		slog.Int("resolutions_cleared", stats.ClearedResolutions),
		slog.Int("usage_rows_dropped", stats.DroppedUsageRows),
		slog.Int("outage_durations_backfilled", stats.BackfilledOutages),
		slog.String("duration", time.Since(start).String()),
	)

	return out, stats
}

// joinTicketAttributes copies the plan type onto each ticket and backfills a
// missing ticket city or zone from the owning subscriber. Tickets for unknown
// subscribers keep whatever location the source row carried.
func (p *Pipeline) joinTicketAttributes(tables *domain.Tables) {
	byID := make(map[string]*domain.Subscriber, len(tables.Subscribers))
	for i := range tables.Subscribers {
		byID[tables.Subscribers[i].ID] = &tables.Subscribers[i]
	}

	for i := range tables.Tickets {
		t := &tables.Tickets[i]
		sub, ok := byID[t.SubscriberID]
		if !ok {
			continue
		}
		t.PlanType = sub.PlanType
		if t.City == "" {
			t.City = sub.City
		}
		if t.Zone == "" {
			t.Zone = sub.Zone
		}
	}
}
