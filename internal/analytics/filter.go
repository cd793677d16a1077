// Package analytics builds the filtered dashboard views and their
// aggregations from a cleaned dataset snapshot. All functions are pure:
// they never mutate the shared tables and always produce deterministic,
// stably-sorted output for the same inputs.
package analytics

import (
	"sort"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// Views holds the four filtered slices every dashboard aggregation reads.
// Subscribers are selected in two stages; billing follows the selected
// subscribers, while tickets and outages are filtered independently so a
// zone's ticket picture is not distorted by subscriber-level filters.
type Views struct {
	Subscribers []domain.Subscriber
	Billing     []domain.BillingRecord
	Tickets     []domain.Ticket
	Outages     []domain.Outage
}

// inSet reports membership with select-all semantics: an empty set matches
// everything.
func inSet(v string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// BuildViews applies a filter spec to the cleaned tables.
//
// Subscriber selection runs in two stages. Stage one keeps subscribers whose
// static attributes match. Stage two narrows to those with billing or ticket
// activity inside the date range; if no subscriber has any such activity the
// stage-one set is kept as-is, so an out-of-range window still shows the
// static population instead of an empty dashboard.
func BuildViews(tables *domain.Tables, spec *domain.FilterSpec) *Views {
	initial := make([]domain.Subscriber, 0, len(tables.Subscribers))
	initialIDs := make(map[string]struct{}, len(tables.Subscribers))
	for _, s := range tables.Subscribers {
		if !inSet(s.City, spec.Cities) || !inSet(s.PlanType, spec.PlanTypes) ||
			!inSet(s.PlanName, spec.PlanNames) || !inSet(s.Status, spec.Statuses) {
			continue
		}
		initial = append(initial, s)
		initialIDs[s.ID] = struct{}{}
	}

	active := make(map[string]struct{})
	for _, b := range tables.Billing {
		if _, ok := initialIDs[b.SubscriberID]; ok && spec.InRange(b.BillingMonth) {
			active[b.SubscriberID] = struct{}{}
		}
	}
	for _, t := range tables.Tickets {
		if _, ok := initialIDs[t.SubscriberID]; ok && spec.InRange(t.TicketDate) {
			active[t.SubscriberID] = struct{}{}
		}
	}

	subs := initial
	retainedIDs := initialIDs
	if len(active) > 0 {
		subs = make([]domain.Subscriber, 0, len(active))
		retainedIDs = active
		for _, s := range initial {
			if _, ok := active[s.ID]; ok {
				subs = append(subs, s)
			}
		}
	}

	v := &Views{Subscribers: subs}

	for _, b := range tables.Billing {
		if _, ok := retainedIDs[b.SubscriberID]; ok && spec.InRange(b.BillingMonth) {
			v.Billing = append(v.Billing, b)
		}
	}

	// Tickets are filtered on their own joined attributes, not through the
	// subscriber selection, so plan-name and status filters do not apply.
	for _, t := range tables.Tickets {
		if inSet(t.City, spec.Cities) && inSet(t.PlanType, spec.PlanTypes) &&
			inSet(t.Category, spec.TicketCategories) && spec.InRange(t.TicketDate) {
			v.Tickets = append(v.Tickets, t)
		}
	}

	for _, o := range tables.Outages {
		if inSet(o.City, spec.Cities) && spec.InRange(o.OutageDate) {
			v.Outages = append(v.Outages, o)
		}
	}

	return v
}

// FilterOptions lists the selectable values for each sidebar filter plus the
// date bounds of the dataset, so clients can render the controls without
// hardcoding vocabularies.
type FilterOptions struct {
	Cities           []string `json:"cities"`
	PlanTypes        []string `json:"plan_types"`
	PlanNames        []string `json:"plan_names"`
	TicketCategories []string `json:"ticket_categories"`
	Statuses         []string `json:"statuses"`
	MinDate          string   `json:"min_date,omitempty"`
	MaxDate          string   `json:"max_date,omitempty"`
}

// BuildFilterOptions derives the filter vocabulary from the cleaned tables.
// The date bounds span ticket dates and billing months, matching the two
// activity signals the date range filters on.
func BuildFilterOptions(tables *domain.Tables) *FilterOptions {
	cities := make(map[string]struct{})
	planNames := make(map[string]struct{})
	for _, s := range tables.Subscribers {
		if s.City != "" {
			cities[s.City] = struct{}{}
		}
		if s.PlanName != "" {
			planNames[s.PlanName] = struct{}{}
		}
	}
	categories := make(map[string]struct{})
	for _, t := range tables.Tickets {
		if t.Category != "" {
			categories[t.Category] = struct{}{}
		}
	}

	var minDate, maxDate *time.Time
	expand := func(d *time.Time) {
		if d == nil {
			return
		}
		if minDate == nil || d.Before(*minDate) {
			minDate = d
		}
		if maxDate == nil || d.After(*maxDate) {
			maxDate = d
		}
	}
	for _, t := range tables.Tickets {
		expand(t.TicketDate)
	}
	for _, b := range tables.Billing {
		expand(b.BillingMonth)
	}

	opts := &FilterOptions{
		Cities:           sortedKeys(cities),
		PlanTypes:        []string{domain.PlanTypePrepaid, domain.PlanTypePostpaid},
		PlanNames:        sortedKeys(planNames),
		TicketCategories: sortedKeys(categories),
		Statuses:         []string{domain.StatusActive, domain.StatusSuspended, domain.StatusChurned},
	}
	if minDate != nil {
		opts.MinDate = minDate.Format(time.DateOnly)
	}
	if maxDate != nil {
		opts.MaxDate = maxDate.Format(time.DateOnly)
	}
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
