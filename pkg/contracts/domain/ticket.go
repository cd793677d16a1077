package domain

import (
	"time"
)

// Ticket represents a support ticket. City and Zone may be missing in the raw
// data and are backfilled from the owning subscriber; PlanType and ServiceTier
// are joined from the subscriber so tickets can be filtered independently of
// the subscriber selection.
type Ticket struct {
	ID             string      `json:"ticket_id" csv:"ticket_id" validate:"required"`
	SubscriberID   string      `json:"subscriber_id" csv:"subscriber_id" validate:"required"`
	TicketDate     *time.Time  `json:"ticket_date" csv:"ticket_date"`
	Channel        string      `json:"ticket_channel" csv:"ticket_channel"`
	Category       string      `json:"ticket_category" csv:"ticket_category"`
	Priority       string      `json:"priority" csv:"priority"`
	Status         string      `json:"status" csv:"status"`
	ResolutionDate *time.Time  `json:"resolution_date" csv:"resolution_date"`
	SLATargetHours float64     `json:"sla_target_hours" csv:"sla_target_hours"`
	AssignedTeam   string      `json:"assigned_team" csv:"assigned_team"`
	City           string      `json:"city" csv:"city"`
	Zone           string      `json:"zone" csv:"zone"`
	PlanType       string      `json:"plan_type,omitempty"`
	ServiceTier    ServiceTier `json:"service_tier,omitempty"`
}

// Canonical ticket statuses
const (
	TicketOpen       = "Open"
	TicketInProgress = "In Progress"
	TicketResolved   = "Resolved"
	TicketEscalated  = "Escalated"
)

// IsBacklog reports whether the ticket counts toward the open-work backlog,
// i.e. it is not in a terminal status.
func (t *Ticket) IsBacklog() bool {
	switch t.Status {
	case TicketOpen, TicketInProgress, TicketEscalated:
		return true
	}
	return false
}

// ResolutionHours returns the elapsed hours between ticket creation and
// resolution, and false when either date is missing.
func (t *Ticket) ResolutionHours() (float64, bool) {
	if t.TicketDate == nil || t.ResolutionDate == nil {
		return 0, false
	}
	return t.ResolutionDate.Sub(*t.TicketDate).Hours(), true
}

// SLAMet reports whether a resolved ticket met its SLA target. Tickets without
// a resolution date never meet SLA.
func (t *Ticket) SLAMet() bool {
	hours, ok := t.ResolutionHours()
	return ok && hours <= t.SLATargetHours
}
