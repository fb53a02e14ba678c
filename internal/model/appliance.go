package model

import "encoding/json"

// ApplianceType is the vendor's tag selecting which settings shape an
// appliance carries.
type ApplianceType string

const (
	ApplianceTypeAC     ApplianceType = "AC"
	ApplianceTypeLight  ApplianceType = "LIGHT"
	ApplianceTypeTV     ApplianceType = "TV"
	ApplianceTypeLock   ApplianceType = "LOCK"
	ApplianceTypeIR     ApplianceType = "IR"
	ApplianceTypeSesame ApplianceType = "BLE_SESAME5"
)

// ApplianceModel identifies the remote model an appliance was registered with.
type ApplianceModel struct {
	ID           string `json:"id"`
	Manufacturer string `json:"manufacturer"`
	RemoteName   string `json:"remote_name"`
	Name         string `json:"name"`
	Image        string `json:"image"`
}

// Appliance is a controllable entity registered on a Remo hub. Only the
// sub-object matching Type is populated.
type Appliance struct {
	ID         string          `json:"id"`
	Device     Device          `json:"device"`
	Model      *ApplianceModel `json:"model"`
	Type       ApplianceType   `json:"type"`
	Nickname   string          `json:"nickname"`
	Image      string          `json:"image"`
	Settings   *AirConSettings `json:"settings,omitempty"`
	AirCon     *AirCon         `json:"aircon,omitempty"`
	Light      *Light          `json:"light,omitempty"`
	BLE        *BLE            `json:"ble,omitempty"`
	Lock       *LockState      `json:"lock,omitempty"`
	TV         *TvState        `json:"tv,omitempty"`
	Signals    []Signal        `json:"signals"`
	SmartMeter json.RawMessage `json:"smart_meter,omitempty"`
}

// AirConSettings is the last settings snapshot the vendor holds for an AC.
type AirConSettings struct {
	Temp      string `json:"temp"`
	TempUnit  string `json:"temp_unit"`
	Mode      string `json:"mode"`
	Vol       string `json:"vol"`
	Dir       string `json:"dir"`
	DirH      string `json:"dirh"`
	Button    string `json:"button"`
	UpdatedAt string `json:"updated_at"`
}

// AirConModeRange lists the values accepted in one operation mode.
type AirConModeRange struct {
	Temp []string `json:"temp"`
	Dir  []string `json:"dir"`
	DirH []string `json:"dirh"`
	Vol  []string `json:"vol"`
}

// AirConRange describes the capabilities of an AC remote.
type AirConRange struct {
	Modes        map[string]AirConModeRange `json:"modes"`
	FixedButtons []string                   `json:"fixedButtons"`
}

// AirCon holds the capability description of an AC appliance.
type AirCon struct {
	Range    AirConRange `json:"range"`
	TempUnit string      `json:"tempUnit"`
}

// LightButton is one button of a light remote.
type LightButton struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Label string `json:"label"`
}

// LightState is the vendor's view of a light.
type LightState struct {
	Brightness string `json:"brightness"`
	Power      string `json:"power"`
	LastButton string `json:"last_button"`
}

// Light holds the buttons and state of a LIGHT appliance.
type Light struct {
	Buttons []LightButton `json:"buttons"`
	State   LightState    `json:"state"`
}

// Sesame is the pairing information of a Sesame smart lock.
type Sesame struct {
	UUID       string `json:"uuid"`
	DeviceType string `json:"device_type"`
	KeyLevel   string `json:"key_level"`
	UserIndex  string `json:"user_index"`
}

// BLE is the Bluetooth pairing of a lock appliance.
type BLE struct {
	Addr     string  `json:"addr"`
	AddrType string  `json:"addr_type"`
	Bonded   bool    `json:"bonded"`
	Sesame   *Sesame `json:"sesame,omitempty"`
}

// LockState reports whether a smart lock is locked.
type LockState struct {
	Lock string `json:"lock"`
}

// TvState is the vendor's view of a TV.
type TvState struct {
	Input string `json:"input"`
	Power string `json:"power"`
}

// Signal is a stored infrared recording that can be replayed.
type Signal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// HasButton reports whether the light remote exposes the named button.
func (l *Light) HasButton(name string) bool {
	if l == nil {
		return false
	}
	for _, b := range l.Buttons {
		if b.Name == name {
			return true
		}
	}
	return false
}
