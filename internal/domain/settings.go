package domain

// Billing settings are key/value rows. Missing or malformed values fall
// back to these defaults rather than erroring.
const (
	SettingBillingDay     = "billing_day"
	SettingBillingEnabled = "billing_enabled"

	DefaultBillingDay     = 1
	DefaultBillingEnabled = true
)

type Setting struct {
	Name  string `json:"name" db:"setting_name"`
	Value string `json:"value" db:"setting_value"`
}

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}
