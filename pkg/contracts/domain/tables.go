package domain

import (
	"time"
)

// Tables holds the five related datasets in memory. The same shape is used for
// raw loaded data and for cleaned data; cleaned tables are treated as immutable
// shared state and must never be mutated by consumers.
type Tables struct {
	Subscribers []Subscriber    `json:"subscribers"`
	Usage       []UsageRecord   `json:"usage"`
	Billing     []BillingRecord `json:"billing"`
	Tickets     []Ticket        `json:"tickets"`
	Outages     []Outage        `json:"outages"`
}

// Counts returns the per-table record counts, keyed by table name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		"subscribers": len(t.Subscribers),
		"usage":       len(t.Usage),
		"billing":     len(t.Billing),
		"tickets":     len(t.Tickets),
		"outages":     len(t.Outages),
	}
}

// FilterSpec describes one dashboard interaction: a date range plus membership
// sets for the sidebar filters. An empty set places no constraint on its field,
// which matches the dashboard's select-all defaults.
type FilterSpec struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end" validate:"omitempty,gtefield=Start"`
	Cities           []string  `json:"cities,omitempty" validate:"dive,cityname"`
	PlanTypes        []string  `json:"plan_types,omitempty" validate:"dive,oneof=Prepaid Postpaid"`
	PlanNames        []string  `json:"plan_names,omitempty"`
	TicketCategories []string  `json:"ticket_categories,omitempty"`
	Statuses         []string  `json:"statuses,omitempty" validate:"dive,oneof=Active Suspended Churned"`
}

// InRange reports whether a nullable date falls inside the filter's inclusive
// date range. Missing dates are never in range.
func (f *FilterSpec) InRange(d *time.Time) bool {
	if d == nil {
		return false
	}
	if !f.Start.IsZero() && d.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && d.After(f.End) {
		return false
	}
	return true
}
