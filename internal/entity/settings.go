package entity

import "time"

// Settings holds operator-editable application settings. A single row in
// storage; the extraction webhook URL here overrides the environment
// default when set.
type Settings struct {
	WebhookURL  string    `json:"webhook_url"`
	CompanyName string    `json:"company_name,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
