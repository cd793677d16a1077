package dataprocessing

import (
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// clearInvertedResolutions blanks resolution dates that precede the ticket
// date. The ticket itself is kept; only the impossible timestamp is treated
// as missing. Returns the number of cleared resolutions.
func clearInvertedResolutions(tickets []domain.Ticket) int {
	cleared := 0
	for i := range tickets {
		t := &tickets[i]
		if t.TicketDate != nil && t.ResolutionDate != nil && t.ResolutionDate.Before(*t.TicketDate) {
			t.ResolutionDate = nil
			cleared++
		}
	}
	return cleared
}

// dropImpossibleUsage removes usage rows that cannot be attributed to real
// activity: rows dated before the subscriber's activation, rows with no usage
// date, and rows whose subscriber is unknown or has no activation date.
// Returns the surviving rows and the number dropped.
func dropImpossibleUsage(usage []domain.UsageRecord, subs []domain.Subscriber) ([]domain.UsageRecord, int) {
	activations := make(map[string]*domain.Subscriber, len(subs))
	for i := range subs {
		activations[subs[i].ID] = &subs[i]
	}

	out := usage[:0:0]
	for _, u := range usage {
		sub, ok := activations[u.SubscriberID]
		if !ok || sub.ActivationDate == nil || u.UsageDate == nil {
			continue
		}
		if u.UsageDate.Before(*sub.ActivationDate) {
			continue
		}
		out = append(out, u)
	}
	return out, len(usage) - len(out)
}

// backfillOutageDurations computes missing outage durations from the start
// and end timestamps. When either timestamp is also missing the duration
// stays unknown. Returns the number of backfilled records.
func backfillOutageDurations(outages []domain.Outage) int {
	filled := 0
	for i := range outages {
		o := &outages[i]
		if o.DurationMins != nil || o.StartTime == nil || o.EndTime == nil {
			continue
		}
		mins := o.EndTime.Sub(*o.StartTime).Minutes()
		o.DurationMins = &mins
		filled++
	}
	return filled
}
