package domain

import (
	"time"
)

// BillingRecord represents one monthly bill for a subscriber.
// After cleaning, BillAmount is always in [0, MaxBillAmount]: negative bills
// are removed outright and amounts above the ceiling are clamped.
type BillingRecord struct {
	ID               string     `json:"bill_id" csv:"bill_id" validate:"required"`
	SubscriberID     string     `json:"subscriber_id" csv:"subscriber_id" validate:"required"`
	BillingMonth     *time.Time `json:"billing_month" csv:"billing_month"`
	BillAmount       float64    `json:"bill_amount" csv:"bill_amount"`
	PaymentStatus    string     `json:"payment_status" csv:"payment_status"`
	PaymentDate      *time.Time `json:"payment_date" csv:"payment_date"`
	CreditAdjustment float64    `json:"credit_adjustment" csv:"credit_adjustment"`
	AdjustmentReason string     `json:"adjustment_reason,omitempty" csv:"adjustment_reason"`
}

// Canonical payment statuses
const (
	PaymentPaid    = "Paid"
	PaymentOverdue = "Overdue"
	PaymentPartial = "Partial"
	PaymentPending = "Pending"
)

// MaxBillAmount is the domain ceiling for a single monthly bill in AED.
const MaxBillAmount = 2000.0
