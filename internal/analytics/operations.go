package analytics

import (
	"sort"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// DateCount is the ticket count for one calendar day.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ZoneCount is a ticket count for one zone.
type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
}

// RateByKey is an SLA compliance percentage grouped by some dimension,
// with the number of resolved tickets behind the rate.
type RateByKey struct {
	Key      string  `json:"key"`
	Rate     float64 `json:"rate"`
	Resolved int     `json:"resolved"`
}

// ZoneOutageTickets pairs a zone's outage minutes with its ticket volume.
type ZoneOutageTickets struct {
	Zone          string  `json:"zone"`
	OutageMinutes float64 `json:"outage_minutes"`
	TicketCount   int     `json:"ticket_count"`
}

// ProblemZone is one row of the problem-zones table: the zones with the
// largest open backlog, with their resolution and outage context.
type ProblemZone struct {
	Zone               string  `json:"zone"`
	OpenTickets        int     `json:"open_tickets"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	OutageMinutes      float64 `json:"outage_minutes"`
	SLABreaches        int     `json:"sla_breaches"`
}

// TierCount is a count grouped by service tier.
type TierCount struct {
	Tier  string `json:"tier"`
	Count int    `json:"count"`
}

// OperationsView is the service-operations dashboard payload. All rates are
// zero-safe and all groupings are stably sorted.
type OperationsView struct {
	SLAComplianceRate  float64 `json:"sla_compliance_rate"`
	TicketBacklog      int     `json:"ticket_backlog"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	TotalOutageMinutes float64 `json:"total_outage_minutes"`

	DailyTicketVolume []DateCount         `json:"daily_ticket_volume"`
	BacklogByZone     []ZoneCount         `json:"backlog_by_zone"`
	SLAByChannel      []RateByKey         `json:"sla_by_channel"`
	ZoneOutageTickets []ZoneOutageTickets `json:"zone_outage_tickets"`
	ProblemZones      []ProblemZone       `json:"problem_zones"`
	TierDistribution  []TierCount         `json:"tier_distribution"`
	BacklogByTier     []TierCount         `json:"backlog_by_tier"`
	SLAByTier         []RateByKey         `json:"sla_by_tier"`
}

const problemZoneLimit = 10

// slaAcc tallies resolved tickets and how many met their SLA target.
type slaAcc struct {
	resolved int
	met      int
}

// BuildOperationsView computes the operations aggregates over filtered views.
//
// SLA figures use every Resolved ticket as the denominator; tickets resolved
// without a recorded resolution date count against compliance but are not
// counted as breaches, since the breach can't be proven. Average resolution
// time considers only tickets with a measurable duration.
func BuildOperationsView(v *Views) *OperationsView {
	out := &OperationsView{
		DailyTicketVolume: []DateCount{},
		BacklogByZone:     []ZoneCount{},
		SLAByChannel:      []RateByKey{},
		ZoneOutageTickets: []ZoneOutageTickets{},
		ProblemZones:      []ProblemZone{},
		TierDistribution:  []TierCount{},
		BacklogByTier:     []TierCount{},
		SLAByTier:         []RateByKey{},
	}

	var (
		resolvedTotal   int
		metTotal        int
		resolutionSum   float64
		resolutionCount int

		dailyVolume    = make(map[string]int)
		backlogByZone  = make(map[string]int)
		ticketsByZone  = make(map[string]int)
		outageByZone   = make(map[string]float64)
		slaByChannel   = make(map[string]*slaAcc)
		slaByTier      = make(map[string]*slaAcc)
		breachesByZone = make(map[string]int)
		zoneResSum     = make(map[string]float64)
		zoneResCount   = make(map[string]int)
		backlogByTier  = make(map[string]int)
	)

	for i := range v.Tickets {
		t := &v.Tickets[i]
		ticketsByZone[t.Zone]++
		if t.TicketDate != nil {
			dailyVolume[t.TicketDate.Format(time.DateOnly)]++
		}

		// Tickets whose subscriber join failed carry no tier and are left
		// out of the tier groupings, like any other missing group key.
		tier := t.ServiceTier.String()

		if t.IsBacklog() {
			out.TicketBacklog++
			backlogByZone[t.Zone]++
			if tier != "" {
				backlogByTier[tier]++
			}
			continue
		}
		if t.Status != domain.TicketResolved {
			continue
		}

		resolvedTotal++
		met := t.SLAMet()
		if met {
			metTotal++
		}

		record := func(m map[string]*slaAcc, key string) {
			acc := m[key]
			if acc == nil {
				acc = &slaAcc{}
				m[key] = acc
			}
			acc.resolved++
			if met {
				acc.met++
			}
		}
		record(slaByChannel, t.Channel)
		if tier != "" {
			record(slaByTier, tier)
		}

		if hours, ok := t.ResolutionHours(); ok {
			resolutionSum += hours
			resolutionCount++
			zoneResSum[t.Zone] += hours
			zoneResCount[t.Zone]++
			if hours > t.SLATargetHours {
				breachesByZone[t.Zone]++
			}
		}
	}

	if resolvedTotal > 0 {
		out.SLAComplianceRate = float64(metTotal) / float64(resolvedTotal) * 100
	}
	if resolutionCount > 0 {
		out.AvgResolutionHours = resolutionSum / float64(resolutionCount)
	}

	for i := range v.Outages {
		o := &v.Outages[i]
		out.TotalOutageMinutes += o.Duration()
		outageByZone[o.Zone] += o.Duration()
	}

	for _, day := range sortedIntKeys(dailyVolume) {
		out.DailyTicketVolume = append(out.DailyTicketVolume, DateCount{Date: day, Count: dailyVolume[day]})
	}

	out.BacklogByZone = topZoneCounts(backlogByZone, problemZoneLimit)
	out.SLAByChannel = slaRates(slaByChannel)
	out.SLAByTier = slaRates(slaByTier)

	zones := make(map[string]struct{})
	for z := range outageByZone {
		zones[z] = struct{}{}
	}
	for z := range ticketsByZone {
		zones[z] = struct{}{}
	}
	for _, z := range sortedKeys(zones) {
		out.ZoneOutageTickets = append(out.ZoneOutageTickets, ZoneOutageTickets{
			Zone:          z,
			OutageMinutes: outageByZone[z],
			TicketCount:   ticketsByZone[z],
		})
	}

	// Problem zones: the top backlog zones, annotated with resolution and
	// outage context. Zones with no open tickets never make the table.
	for _, zc := range topZoneCounts(backlogByZone, problemZoneLimit) {
		row := ProblemZone{
			Zone:          zc.Zone,
			OpenTickets:   zc.Count,
			OutageMinutes: outageByZone[zc.Zone],
			SLABreaches:   breachesByZone[zc.Zone],
		}
		if n := zoneResCount[zc.Zone]; n > 0 {
			row.AvgResolutionHours = zoneResSum[zc.Zone] / float64(n)
		}
		out.ProblemZones = append(out.ProblemZones, row)
	}

	tierDist := make(map[string]int)
	for i := range v.Subscribers {
		if tier := v.Subscribers[i].ServiceTier.String(); tier != "" {
			tierDist[tier]++
		}
	}
	out.TierDistribution = tierCounts(tierDist)
	out.BacklogByTier = tierCounts(backlogByTier)

	return out
}

// slaRates converts per-key accumulators into sorted compliance rows.
func slaRates(m map[string]*slaAcc) []RateByKey {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]RateByKey, 0, len(keys))
	for _, k := range keys {
		acc := m[k]
		rate := 0.0
		if acc.resolved > 0 {
			rate = float64(acc.met) / float64(acc.resolved) * 100
		}
		out = append(out, RateByKey{Key: k, Rate: rate, Resolved: acc.resolved})
	}
	return out
}

func sortedIntKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// topZoneCounts returns the highest-count zones, ties broken by zone name.
func topZoneCounts(m map[string]int, limit int) []ZoneCount {
	counts := make([]ZoneCount, 0, len(m))
	for zone, count := range m {
		counts = append(counts, ZoneCount{Zone: zone, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Zone < counts[j].Zone
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func tierCounts(m map[string]int) []TierCount {
	out := make([]TierCount, 0, len(m))
	for _, tier := range sortedIntKeys(m) {
		out = append(out, TierCount{Tier: tier, Count: m[tier]})
	}
	return out
}
