package organization

import (
	"github.com/orghub/server/internal/model"
	"github.com/orghub/server/internal/port/inbound"
)

// mergeSettings overlays each non-nil top-level key of in onto base.
func mergeSettings(base model.OrganizationSettings, in *inbound.SettingsInput) model.OrganizationSettings {
	if in == nil {
		return base
	}
	if in.Timezone != nil {
		base.Timezone = *in.Timezone
	}
	if in.DateFormat != nil {
		base.DateFormat = *in.DateFormat
	}
	if in.Language != nil {
		base.Language = *in.Language
	}
	if in.Currency != nil {
		base.Currency = *in.Currency
	}
	if in.Features != nil {
		base.Features = *in.Features
	}
	if in.Limits != nil {
		base.Limits = *in.Limits
	}
	return base
}

// settingsChanges lists the keys present in in for the audit trail.
func settingsChanges(in *inbound.SettingsInput) map[string]any {
	changes := map[string]any{}
	if in.Timezone != nil {
		changes["timezone"] = *in.Timezone
	}
	if in.DateFormat != nil {
		changes["date_format"] = *in.DateFormat
	}
	if in.Language != nil {
		changes["language"] = *in.Language
	}
	if in.Currency != nil {
		changes["currency"] = *in.Currency
	}
	if in.Features != nil {
		changes["features"] = *in.Features
	}
	if in.Limits != nil {
		changes["limits"] = *in.Limits
	}
	return changes
}

func validateSettings(in *inbound.SettingsInput) error {
	if in == nil || in.Limits == nil {
		return nil
	}
	l := in.Limits
	if l.MaxUsers < 1 || l.MaxBrands < 0 || l.MaxPostsPerMonth < 0 || l.MaxSocialAccounts < 0 {
		return ErrInvalidLimits
	}
	return nil
}
