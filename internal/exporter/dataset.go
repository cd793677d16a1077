package exporter

import (
	"strconv"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/analytics"
)

func day(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func stamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func month(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01")
}

// DatasetTables flattens the filtered record slices into export tables, one
// per source table. Missing dates render as empty cells.
func DatasetTables(v *analytics.Views) []Table {
	subs := Table{
		Name: "Subscribers",
		Header: []string{"subscriber_id", "city", "zone", "plan_type", "plan_name",
			"monthly_charge", "activation_date", "status", "tenure_years", "service_tier"},
	}
	for i := range v.Subscribers {
		s := &v.Subscribers[i]
		subs.Rows = append(subs.Rows, []string{
			s.ID, s.City, s.Zone, s.PlanType, s.PlanName,
			money(s.MonthlyCharge), day(s.ActivationDate), s.Status,
			strconv.FormatFloat(s.TenureYears, 'f', 2, 64), s.ServiceTier.String(),
		})
	}

	bills := Table{
		Name: "Billing",
		Header: []string{"bill_id", "subscriber_id", "billing_month", "bill_amount",
			"payment_status", "payment_date", "credit_adjustment", "adjustment_reason"},
	}
	for i := range v.Billing {
		b := &v.Billing[i]
		bills.Rows = append(bills.Rows, []string{
			b.ID, b.SubscriberID, month(b.BillingMonth), money(b.BillAmount),
			b.PaymentStatus, day(b.PaymentDate), money(b.CreditAdjustment), b.AdjustmentReason,
		})
	}

	tickets := Table{
		Name: "Tickets",
		Header: []string{"ticket_id", "subscriber_id", "ticket_date", "channel", "category",
			"priority", "status", "resolution_date", "sla_target_hours", "assigned_team",
			"city", "zone", "service_tier"},
	}
	for i := range v.Tickets {
		t := &v.Tickets[i]
		tickets.Rows = append(tickets.Rows, []string{
			t.ID, t.SubscriberID, day(t.TicketDate), t.Channel, t.Category,
			t.Priority, t.Status, day(t.ResolutionDate),
			strconv.FormatFloat(t.SLATargetHours, 'f', 0, 64), t.AssignedTeam,
			t.City, t.Zone, t.ServiceTier.String(),
		})
	}

	outages := Table{
		Name: "Outages",
		Header: []string{"outage_id", "zone", "city", "outage_date", "start_time",
			"end_time", "duration_mins", "outage_type", "affected_subscribers"},
	}
	for i := range v.Outages {
		o := &v.Outages[i]
		duration := ""
		if o.DurationMins != nil {
			duration = strconv.FormatFloat(*o.DurationMins, 'f', 0, 64)
		}
		outages.Rows = append(outages.Rows, []string{
			o.ID, o.Zone, o.City, day(o.OutageDate), stamp(o.StartTime),
			stamp(o.EndTime), duration, o.Type, strconv.Itoa(o.AffectedSubscribers),
		})
	}

	return []Table{subs, bills, tickets, outages}
}
