package store

import "time"

// ButtonRecord is a command the dashboard sent to an appliance.
type ButtonRecord struct {
	ApplianceID string
	Button      string
	Params      map[string]string
	SentAt      time.Time
}

// Air-con buttons understood by the vendor.
const (
	ButtonPowerOff = "power-off"
	ButtonPowerOn  = "power-on"
)
