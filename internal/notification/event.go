package notification

import "time"

// EventKind distinguishes commands sent from the dashboard from state
// changes observed by the poller.
type EventKind string

const (
	EventCommand EventKind = "command"
	EventStatus  EventKind = "status"
)

// Event is one appliance event published to the broker.
type Event struct {
	Kind          EventKind         `json:"kind"`
	ApplianceID   string            `json:"appliance_id"`
	ApplianceName string            `json:"appliance_name,omitempty"`
	Type          string            `json:"type"`
	Button        string            `json:"button,omitempty"`
	Params        map[string]string `json:"params,omitempty"`
	Power         string            `json:"power,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}
