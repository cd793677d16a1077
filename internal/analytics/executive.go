package analytics

import (
	"sort"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// monthKey formats a billing month for grouping. Bills without a month fall
// into an empty bucket that sorts first.
func monthKey(d *domain.BillingRecord) string {
	if d.BillingMonth == nil {
		return ""
	}
	return d.BillingMonth.Format("2006-01")
}

// MonthlyValue is one point on a per-month trend line.
type MonthlyValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// MonthlyPlanRevenue is revenue for one plan type in one month.
type MonthlyPlanRevenue struct {
	Month    string  `json:"month"`
	PlanType string  `json:"plan_type"`
	Revenue  float64 `json:"revenue"`
}

// CityRevenue is total revenue attributed to one city.
type CityRevenue struct {
	City    string  `json:"city"`
	Revenue float64 `json:"revenue"`
}

// StatusCount is the number of bills in one payment status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ExecutiveView is the revenue-side dashboard payload. All ratios are
// zero-safe: an empty selection yields zeros, never NaN or a division error.
type ExecutiveView struct {
	TotalRevenue         float64 `json:"total_revenue"`
	ARPU                 float64 `json:"arpu"`
	RetentionRatio       float64 `json:"retention_ratio"`
	OverdueRevenue       float64 `json:"overdue_revenue"`
	ActiveSubscribers    int     `json:"active_subscribers"`
	TotalSubscribers     int     `json:"total_subscribers"`
	PostpaidRevenueShare float64 `json:"postpaid_revenue_share"`
	CreditAdjustments    float64 `json:"credit_adjustments"`
	TopOverdueCity       string  `json:"top_overdue_city,omitempty"`

	MonthlyARPUTrend  []MonthlyValue       `json:"monthly_arpu_trend"`
	RevenueByPlanType []MonthlyPlanRevenue `json:"revenue_by_plan_type"`
	RevenueByCity     []CityRevenue        `json:"revenue_by_city"`
	PaymentStatus     []StatusCount        `json:"payment_status_distribution"`
}

// BuildExecutiveView computes the executive aggregates over filtered views.
func BuildExecutiveView(v *Views) *ExecutiveView {
	out := &ExecutiveView{
		TotalSubscribers:  len(v.Subscribers),
		MonthlyARPUTrend:  []MonthlyValue{},
		RevenueByPlanType: []MonthlyPlanRevenue{},
		RevenueByCity:     []CityRevenue{},
		PaymentStatus:     []StatusCount{},
	}

	subAttrs := make(map[string]*domain.Subscriber, len(v.Subscribers))
	for i := range v.Subscribers {
		s := &v.Subscribers[i]
		subAttrs[s.ID] = s
		if s.Status == domain.StatusActive {
			out.ActiveSubscribers++
		}
	}
	if out.TotalSubscribers > 0 {
		out.RetentionRatio = float64(out.ActiveSubscribers) / float64(out.TotalSubscribers) * 100
	}

	monthlyRevenue := make(map[string]float64)
	planRevenue := make(map[string]map[string]float64) // month -> plan type -> revenue
	cityRevenue := make(map[string]float64)
	overdueByCity := make(map[string]float64)
	statusCounts := make(map[string]int)
	var postpaidRevenue float64

	for _, b := range v.Billing {
		out.TotalRevenue += b.BillAmount
		out.CreditAdjustments += b.CreditAdjustment
		statusCounts[b.PaymentStatus]++

		month := monthKey(&b)
		monthlyRevenue[month] += b.BillAmount

		sub := subAttrs[b.SubscriberID]
		if sub != nil {
			if planRevenue[month] == nil {
				planRevenue[month] = make(map[string]float64)
			}
			planRevenue[month][sub.PlanType] += b.BillAmount
			cityRevenue[sub.City] += b.BillAmount
			if sub.PlanType == domain.PlanTypePostpaid {
				postpaidRevenue += b.BillAmount
			}
		}

		if b.PaymentStatus == domain.PaymentOverdue {
			out.OverdueRevenue += b.BillAmount
			if sub != nil {
				overdueByCity[sub.City] += b.BillAmount
			}
		}
	}

	if out.ActiveSubscribers > 0 {
		out.ARPU = out.TotalRevenue / float64(out.ActiveSubscribers)
	}
	if out.TotalRevenue > 0 {
		out.PostpaidRevenueShare = postpaidRevenue / out.TotalRevenue * 100
	}

	// Monthly ARPU uses the same active-subscriber denominator as the
	// headline ARPU, so the trend isolates the revenue movement.
	for _, month := range sortedFloatKeys(monthlyRevenue) {
		value := 0.0
		if out.ActiveSubscribers > 0 {
			value = monthlyRevenue[month] / float64(out.ActiveSubscribers)
		}
		out.MonthlyARPUTrend = append(out.MonthlyARPUTrend, MonthlyValue{Month: month, Value: value})
	}

	for _, month := range sortedPlanMonths(planRevenue) {
		plans := planRevenue[month]
		for _, planType := range sortedFloatKeys(plans) {
			out.RevenueByPlanType = append(out.RevenueByPlanType, MonthlyPlanRevenue{
				Month:    month,
				PlanType: planType,
				Revenue:  plans[planType],
			})
		}
	}

	for city, revenue := range cityRevenue {
		out.RevenueByCity = append(out.RevenueByCity, CityRevenue{City: city, Revenue: revenue})
	}
	sort.Slice(out.RevenueByCity, func(i, j int) bool {
		if out.RevenueByCity[i].Revenue != out.RevenueByCity[j].Revenue {
			return out.RevenueByCity[i].Revenue > out.RevenueByCity[j].Revenue
		}
		return out.RevenueByCity[i].City < out.RevenueByCity[j].City
	})

	for status, count := range statusCounts {
		out.PaymentStatus = append(out.PaymentStatus, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out.PaymentStatus, func(i, j int) bool {
		if out.PaymentStatus[i].Count != out.PaymentStatus[j].Count {
			return out.PaymentStatus[i].Count > out.PaymentStatus[j].Count
		}
		return out.PaymentStatus[i].Status < out.PaymentStatus[j].Status
	})

	out.TopOverdueCity = maxKey(overdueByCity)

	return out
}

func sortedFloatKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPlanMonths(m map[string]map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// maxKey returns the key with the largest value, ties broken alphabetically.
// Empty maps yield an empty string.
func maxKey(m map[string]float64) string {
	best := ""
	var bestValue float64
	for k, v := range m {
		if best == "" || v > bestValue || (v == bestValue && k < best) {
			best = k
			bestValue = v
		}
	}
	return best
}
