package domain

import (
	"time"
)

// Outage represents a zone-level network outage event. Outages are not linked
// to individual subscribers. DurationMins may be missing in the raw data; the
// cleaning pipeline backfills it from the start and end times when both are
// present, and leaves it missing when both are absent.
type Outage struct {
	ID                  string     `json:"outage_id" csv:"outage_id" validate:"required"`
	Zone                string     `json:"zone" csv:"zone"`
	City                string     `json:"city" csv:"city"`
	OutageDate          *time.Time `json:"outage_date" csv:"outage_date"`
	StartTime           *time.Time `json:"outage_start_time" csv:"outage_start_time"`
	EndTime             *time.Time `json:"outage_end_time" csv:"outage_end_time"`
	DurationMins        *float64   `json:"outage_duration_mins" csv:"outage_duration_mins"`
	Type                string     `json:"outage_type" csv:"outage_type"`
	AffectedSubscribers int        `json:"affected_subscribers" csv:"affected_subscribers"`
}

// Duration returns the outage duration in minutes, or zero when unknown.
func (o *Outage) Duration() float64 {
	if o.DurationMins == nil {
		return 0
	}
	return *o.DurationMins
}
