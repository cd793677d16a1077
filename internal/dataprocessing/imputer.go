package dataprocessing

import (
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// imputeDataUsage fills missing data_usage_gb values with the mean of the
// subscriber's other, non-missing usage readings. Subscribers with no
// readings at all get zero. Returns the number of imputed records.
func imputeDataUsage(usage []domain.UsageRecord) int {
	type acc struct {
		sum   float64
		count int
	}
	bySub := make(map[string]*acc)
	for i := range usage {
		if usage[i].DataUsageGB == nil {
			continue
		}
		a := bySub[usage[i].SubscriberID]
		if a == nil {
			a = &acc{}
			bySub[usage[i].SubscriberID] = a
		}
		a.sum += *usage[i].DataUsageGB
		a.count++
	}

	imputed := 0
	for i := range usage {
		if usage[i].DataUsageGB != nil {
			continue
		}
		var v float64
		if a := bySub[usage[i].SubscriberID]; a != nil && a.count > 0 {
			v = a.sum / float64(a.count)
		}
		usage[i].DataUsageGB = &v
		imputed++
	}
	return imputed
}

// capDataUsage clamps daily data usage to the domain ceiling. Returns the
// number of clamped records.
func capDataUsage(usage []domain.UsageRecord) int {
	capped := 0
	for i := range usage {
		if usage[i].DataUsageGB != nil && *usage[i].DataUsageGB > domain.MaxDataUsageGB {
			v := domain.MaxDataUsageGB
			usage[i].DataUsageGB = &v
			capped++
		}
	}
	return capped
}

// capBillAmounts clamps bill amounts to the domain ceiling. Returns the
// number of clamped records.
func capBillAmounts(bills []domain.BillingRecord) int {
	capped := 0
	for i := range bills {
		if bills[i].BillAmount > domain.MaxBillAmount {
			bills[i].BillAmount = domain.MaxBillAmount
			capped++
		}
	}
	return capped
}

// dropNegativeBills removes bills with negative amounts. A negative bill is a
// data-entry error, not a credit; credits live in credit_adjustment.
func dropNegativeBills(bills []domain.BillingRecord) ([]domain.BillingRecord, int) {
	out := bills[:0:0]
	for _, b := range bills {
		if b.BillAmount < 0 {
			continue
		}
		out = append(out, b)
	}
	return out, len(bills) - len(out)
}
