package dataprocessing

import (
	"strings"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// cityVariants maps known misspellings of city names to their canonical form.
// The source systems emit several renderings of Abu Dhabi; hyphens are folded
// to spaces before the lookup, so "Abu-Dhabi" resolves via "Abu Dhabi" itself.
var cityVariants = map[string]string{
	"abudhabi":  "Abu Dhabi",
	"abu dhabi": "Abu Dhabi",
	"ad":        "Abu Dhabi",
}

// titleCase uppercases the first letter of each space-separated word of an
// already-lowercased value.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NormalizePlanType canonicalizes free-form plan type labels. Any label
// containing "pre" (after lowercasing and stripping hyphens) is Prepaid, any
// containing "post" is Postpaid. Unrecognized labels keep the folded form,
// title-cased.
func NormalizePlanType(raw string) string {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""))
	switch {
	case strings.Contains(s, "pre"):
		return domain.PlanTypePrepaid
	case strings.Contains(s, "post"):
		return domain.PlanTypePostpaid
	}
	return titleCase(s)
}

// NormalizeCity canonicalizes city labels: hyphens become spaces, then known
// variants collapse to the canonical name. Unknown cities pass through.
func NormalizeCity(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "-", " "))
	if canonical, ok := cityVariants[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// NormalizeTicketStatus canonicalizes ticket status labels case-insensitively
// into the closed status set. "Closed" is treated as Resolved. Unrecognized
// labels are title-cased and kept.
func NormalizeTicketStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "open":
		return domain.TicketOpen
	case "in progress":
		return domain.TicketInProgress
	case "resolved", "closed":
		return domain.TicketResolved
	case "escalated":
		return domain.TicketEscalated
	}
	return titleCase(s)
}

// dedupeSubscribers keeps the first occurrence of each subscriber ID.
func dedupeSubscribers(subs []domain.Subscriber) ([]domain.Subscriber, int) {
	seen := make(map[string]struct{}, len(subs))
	out := subs[:0:0]
	for _, s := range subs {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out, len(subs) - len(out)
}

// dedupeBilling keeps the first occurrence of each bill ID.
func dedupeBilling(bills []domain.BillingRecord) ([]domain.BillingRecord, int) {
	seen := make(map[string]struct{}, len(bills))
	out := bills[:0:0]
	for _, b := range bills {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out, len(bills) - len(out)
}

// dedupeTickets keeps the first occurrence of each ticket ID.
func dedupeTickets(tickets []domain.Ticket) ([]domain.Ticket, int) {
	seen := make(map[string]struct{}, len(tickets))
	out := tickets[:0:0]
	for _, t := range tickets {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, len(tickets) - len(out)
}
