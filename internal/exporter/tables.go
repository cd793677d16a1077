// Package exporter renders dashboard views as downloadable CSV or Excel
// documents. Each view flattens into a list of named tables; the format
// writers only decide how those tables land on the wire.
package exporter

import (
	"fmt"
	"strconv"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/analytics"
)

// Table is one named section of an export: a header row plus data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// ExecutiveTables flattens an executive view into export tables.
func ExecutiveTables(v *analytics.ExecutiveView) []Table {
	kpis := Table{
		Name:   "KPIs",
		Header: []string{"metric", "value"},
		Rows: [][]string{
			{"total_revenue", money(v.TotalRevenue)},
			{"arpu", money(v.ARPU)},
			{"retention_ratio", percent(v.RetentionRatio)},
			{"overdue_revenue", money(v.OverdueRevenue)},
			{"active_subscribers", strconv.Itoa(v.ActiveSubscribers)},
			{"total_subscribers", strconv.Itoa(v.TotalSubscribers)},
			{"postpaid_revenue_share", percent(v.PostpaidRevenueShare)},
			{"credit_adjustments", money(v.CreditAdjustments)},
			{"top_overdue_city", v.TopOverdueCity},
		},
	}

	arpu := Table{Name: "Monthly ARPU", Header: []string{"month", "arpu"}}
	for _, p := range v.MonthlyARPUTrend {
		arpu.Rows = append(arpu.Rows, []string{p.Month, money(p.Value)})
	}

	planRev := Table{Name: "Revenue by Plan Type", Header: []string{"month", "plan_type", "revenue"}}
	for _, p := range v.RevenueByPlanType {
		planRev.Rows = append(planRev.Rows, []string{p.Month, p.PlanType, money(p.Revenue)})
	}

	cityRev := Table{Name: "Revenue by City", Header: []string{"city", "revenue"}}
	for _, p := range v.RevenueByCity {
		cityRev.Rows = append(cityRev.Rows, []string{p.City, money(p.Revenue)})
	}

	payments := Table{Name: "Payment Status", Header: []string{"status", "count"}}
	for _, p := range v.PaymentStatus {
		payments.Rows = append(payments.Rows, []string{p.Status, strconv.Itoa(p.Count)})
	}

	return []Table{kpis, arpu, planRev, cityRev, payments}
}

// OperationsTables flattens an operations view into export tables.
func OperationsTables(v *analytics.OperationsView) []Table {
	kpis := Table{
		Name:   "KPIs",
		Header: []string{"metric", "value"},
		Rows: [][]string{
			{"sla_compliance_rate", percent(v.SLAComplianceRate)},
			{"ticket_backlog", strconv.Itoa(v.TicketBacklog)},
			{"avg_resolution_hours", percent(v.AvgResolutionHours)},
			{"total_outage_minutes", fmt.Sprintf("%.0f", v.TotalOutageMinutes)},
		},
	}

	daily := Table{Name: "Daily Ticket Volume", Header: []string{"date", "tickets"}}
	for _, p := range v.DailyTicketVolume {
		daily.Rows = append(daily.Rows, []string{p.Date, strconv.Itoa(p.Count)})
	}

	backlog := Table{Name: "Backlog by Zone", Header: []string{"zone", "open_tickets"}}
	for _, p := range v.BacklogByZone {
		backlog.Rows = append(backlog.Rows, []string{p.Zone, strconv.Itoa(p.Count)})
	}

	channels := Table{Name: "SLA by Channel", Header: []string{"channel", "sla_rate", "resolved"}}
	for _, p := range v.SLAByChannel {
		channels.Rows = append(channels.Rows, []string{p.Key, percent(p.Rate), strconv.Itoa(p.Resolved)})
	}

	zones := Table{Name: "Problem Zones", Header: []string{"zone", "open_tickets", "avg_resolution_hours", "outage_minutes", "sla_breaches"}}
	for _, p := range v.ProblemZones {
		zones.Rows = append(zones.Rows, []string{
			p.Zone,
			strconv.Itoa(p.OpenTickets),
			percent(p.AvgResolutionHours),
			fmt.Sprintf("%.0f", p.OutageMinutes),
			strconv.Itoa(p.SLABreaches),
		})
	}

	tiers := Table{Name: "Tier Distribution", Header: []string{"tier", "subscribers"}}
	for _, p := range v.TierDistribution {
		tiers.Rows = append(tiers.Rows, []string{p.Tier, strconv.Itoa(p.Count)})
	}

	tierSLA := Table{Name: "SLA by Tier", Header: []string{"tier", "sla_rate", "resolved"}}
	for _, p := range v.SLAByTier {
		tierSLA.Rows = append(tierSLA.Rows, []string{p.Key, percent(p.Rate), strconv.Itoa(p.Resolved)})
	}

	return []Table{kpis, daily, backlog, channels, zones, tiers, tierSLA}
}
