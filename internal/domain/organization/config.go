package organization

import (
	"time"

	"github.com/orghub/server/internal/model"
)

// Config holds organization domain configuration.
type Config struct {
	// InvitationExpiry is how long an invitation is valid.
	InvitationExpiry time.Duration

	// InvitationTokenBytes is the number of random bytes in an invitation token.
	InvitationTokenBytes int

	// DefaultSettings are applied to new organizations before caller overrides.
	DefaultSettings model.OrganizationSettings

	// DefaultPlanID and DefaultPlanName describe the plan new organizations start on.
	DefaultPlanID   string
	DefaultPlanName string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		InvitationExpiry:     7 * 24 * time.Hour,
		InvitationTokenBytes: 32,
		DefaultSettings: model.OrganizationSettings{
			Timezone:   "UTC",
			DateFormat: "MM/DD/YYYY",
			Language:   "en",
			Currency:   "USD",
			Features: model.OrganizationFeatures{
				Analytics:         true,
				Scheduling:        true,
				TeamCollaboration: true,
			},
			Limits: model.OrganizationLimits{
				MaxUsers:          10,
				MaxBrands:         5,
				MaxPostsPerMonth:  1000,
				MaxSocialAccounts: 25,
			},
		},
		DefaultPlanID:   "free",
		DefaultPlanName: "Free Plan",
	}
}

// applyDefaults fills unset values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.InvitationExpiry <= 0 {
		c.InvitationExpiry = defaults.InvitationExpiry
	}
	if c.InvitationTokenBytes < 16 {
		c.InvitationTokenBytes = defaults.InvitationTokenBytes
	}
	if c.DefaultSettings.Limits.MaxUsers <= 0 {
		c.DefaultSettings.Limits.MaxUsers = defaults.DefaultSettings.Limits.MaxUsers
	}
	if c.DefaultPlanID == "" {
		c.DefaultPlanID = defaults.DefaultPlanID
		c.DefaultPlanName = defaults.DefaultPlanName
	}
}

func (c *Config) defaultSubscription(now time.Time) model.Subscription {
	return model.Subscription{
		PlanID:       c.DefaultPlanID,
		PlanName:     c.DefaultPlanName,
		Status:       model.SubscriptionStatusActive,
		StartDate:    now,
		BillingCycle: model.BillingCycleMonthly,
		Amount:       0,
		Currency:     c.DefaultSettings.Currency,
		AutoRenew:    true,
		Metadata:     map[string]any{},
	}
}
