package model

import "time"

// SensorValue is a single reading from a Remo hub sensor.
type SensorValue struct {
	Value     float64   `json:"val"`
	CreatedAt time.Time `json:"created_at"`
}

// NewestEvents holds the latest reading of each sensor the hub reports.
type NewestEvents struct {
	Temperature *SensorValue `json:"te,omitempty"`
	Humidity    *SensorValue `json:"hu,omitempty"`
	Illuminance *SensorValue `json:"il,omitempty"`
}

// Device represents a Nature Remo hub.
type Device struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	TemperatureOffset float64      `json:"temperature_offset"`
	HumidityOffset    float64      `json:"humidity_offset"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	FirmwareVersion   string       `json:"firmware_version"`
	MacAddress        string       `json:"mac_address"`
	BtMacAddress      string       `json:"bt_mac_address"`
	SerialNumber      string       `json:"serial_number"`
	NewestEvents      NewestEvents `json:"newest_events"`
}
