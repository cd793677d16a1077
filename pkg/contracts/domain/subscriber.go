package domain

import (
	"time"
)

// Subscriber represents a single subscriber account after cleaning.
// TenureYears and ServiceTier are derived fields: they are zero-valued until
// the derivation step runs and are recomputed per request because tenure
// depends on the evaluation time.
type Subscriber struct {
	ID             string      `json:"subscriber_id" csv:"subscriber_id" validate:"required"`
	Name           string      `json:"subscriber_name,omitempty" csv:"subscriber_name"`
	City           string      `json:"city" csv:"city"`
	Zone           string      `json:"zone" csv:"zone"`
	PlanType       string      `json:"plan_type" csv:"plan_type"`
	PlanName       string      `json:"plan_name" csv:"plan_name"`
	MonthlyCharge  float64     `json:"monthly_charge" csv:"monthly_charge" validate:"min=0"`
	ActivationDate *time.Time  `json:"activation_date" csv:"activation_date"`
	Status         string      `json:"status" csv:"status"`
	TenureYears    float64     `json:"tenure_years,omitempty"`
	ServiceTier    ServiceTier `json:"service_tier,omitempty"`
}

// Canonical plan types
const (
	PlanTypePrepaid  = "Prepaid"
	PlanTypePostpaid = "Postpaid"
)

// Canonical plan names
const (
	PlanBasic     = "Basic"
	PlanStandard  = "Standard"
	PlanPremium   = "Premium"
	PlanUnlimited = "Unlimited"
)

// Canonical subscriber statuses
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusChurned   = "Churned"
)

// ServiceTier is the derived priority classification used for ticket triage.
// It is a closed set: classification always returns exactly one of these.
type ServiceTier string

const (
	TierCritical ServiceTier = "Priority 1 (Critical)"
	TierHigh     ServiceTier = "Priority 2 (High)"
	TierStandard ServiceTier = "Priority 3 (Standard)"
	TierBasic    ServiceTier = "Priority 4 (Basic)"
)

// String returns the display form of the tier.
func (t ServiceTier) String() string {
	return string(t)
}
