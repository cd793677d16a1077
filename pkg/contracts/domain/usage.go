package domain

import (
	"time"
)

// UsageRecord represents one day of metered usage for a subscriber.
// DataUsageGB is nullable in the raw data; after cleaning it is always set
// (imputed from the subscriber's mean, or zero) and capped at MaxDataUsageGB.
type UsageRecord struct {
	ID             string     `json:"usage_id" csv:"usage_id" validate:"required"`
	SubscriberID   string     `json:"subscriber_id" csv:"subscriber_id" validate:"required"`
	UsageDate      *time.Time `json:"usage_date" csv:"usage_date"`
	DataUsageGB    *float64   `json:"data_usage_gb" csv:"data_usage_gb"`
	VoiceMinutes   int        `json:"voice_minutes" csv:"voice_minutes"`
	SMSCount       int        `json:"sms_count" csv:"sms_count"`
	RoamingCharges float64    `json:"roaming_charges" csv:"roaming_charges"`
	AddonCharges   float64    `json:"addon_charges" csv:"addon_charges"`
}

// MaxDataUsageGB is the domain ceiling for a single day of data usage.
// Values above it are measurement artifacts and are clamped, not dropped.
const MaxDataUsageGB = 100.0
