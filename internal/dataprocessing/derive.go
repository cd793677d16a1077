package dataprocessing

import (
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// TenureYears returns the subscriber's tenure in fractional years at the
// given evaluation time. Subscribers without an activation date have zero
// tenure.
func TenureYears(activation *time.Time, now time.Time) float64 {
	if activation == nil {
		return 0
	}
	days := now.Sub(*activation).Hours() / 24
	return days / 365.25
}

// ClassifyServiceTier assigns the triage tier. Rules are evaluated in order
// and the first match wins:
//
//	Postpaid Unlimited, or tenure over 3 years  -> Priority 1 (Critical)
//	Postpaid Premium, or tenure over 1 year     -> Priority 2 (High)
//	any other Postpaid                          -> Priority 3 (Standard)
//	everything else                             -> Priority 4 (Basic)
//
// Long tenure promotes prepaid subscribers into the top two tiers even
// though they can never reach Priority 3 on plan alone.
func ClassifyServiceTier(planType, planName string, tenureYears float64) domain.ServiceTier {
	postpaid := planType == domain.PlanTypePostpaid
	switch {
	case (postpaid && planName == domain.PlanUnlimited) || tenureYears > 3:
		return domain.TierCritical
	case (postpaid && planName == domain.PlanPremium) || tenureYears > 1:
		return domain.TierHigh
	case postpaid:
		return domain.TierStandard
	default:
		return domain.TierBasic
	}
}

// Derive returns a copy of the cleaned tables with the time-dependent
// attributes computed: subscriber tenure and service tier, plus the tier
// joined onto each ticket. The input tables are not mutated; derived
// attributes depend on the evaluation time and are computed per request
// against the shared immutable snapshot.
func Derive(tables *domain.Tables, now time.Time) *domain.Tables {
	out := &domain.Tables{
		Subscribers: make([]domain.Subscriber, len(tables.Subscribers)),
		Usage:       tables.Usage,
		Billing:     tables.Billing,
		Tickets:     make([]domain.Ticket, len(tables.Tickets)),
		Outages:     tables.Outages,
	}

	tierByID := make(map[string]domain.ServiceTier, len(tables.Subscribers))
	for i, s := range tables.Subscribers {
		s.TenureYears = TenureYears(s.ActivationDate, now)
		s.ServiceTier = ClassifyServiceTier(s.PlanType, s.PlanName, s.TenureYears)
		tierByID[s.ID] = s.ServiceTier
		out.Subscribers[i] = s
	}

	for i, t := range tables.Tickets {
		t.ServiceTier = tierByID[t.SubscriberID]
		out.Tickets[i] = t
	}

	return out
}
