package view

import (
	"remo-dashboard/internal/model"
	"remo-dashboard/internal/store"
)

// Kind selects the control surface rendered for an appliance.
type Kind string

const (
	KindAirCon Kind = "aircon"
	KindLight  Kind = "light"
	KindLock   Kind = "lock"
	KindSignal Kind = "signal"
)

// Panel is everything the page needs to render and drive one appliance card.
type Panel struct {
	ID         string              `json:"id"`
	Nickname   string              `json:"nickname"`
	DeviceName string              `json:"device_name"`
	Type       model.ApplianceType `json:"type"`
	Kind       Kind                `json:"kind"`
	Icon       string              `json:"icon"`
	TypeLabel  string              `json:"type_label"`
	ModelName  string              `json:"model_name,omitempty"`
	Maker      string              `json:"manufacturer,omitempty"`
	AirCon     *AirConPanel        `json:"aircon,omitempty"`
	Light      *LightPanel         `json:"light,omitempty"`
	Lock       *LockPanel          `json:"lock,omitempty"`
	Signals    []model.Signal      `json:"signals"`
}

// AirConPanel is the AC control surface.
type AirConPanel struct {
	Settings    model.AirConSettings `json:"settings"`
	Power       Power                `json:"power"`
	Pending     bool                 `json:"pending"`
	ModeLabel   string               `json:"mode_label"`
	Modes       []ModeOption         `json:"modes"`
	TempUp      map[string]string    `json:"temp_up,omitempty"`
	TempDown    map[string]string    `json:"temp_down,omitempty"`
	PowerToggle map[string]string    `json:"power_toggle"`
	// TurnOn and TurnOff let the page pick the toggle after an optimistic
	// power change without another round trip.
	TurnOn  map[string]string `json:"turn_on"`
	TurnOff map[string]string `json:"turn_off"`
}

// ModeOption is one operation mode button.
type ModeOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// LightPanel is the light control surface.
type LightPanel struct {
	State   *model.LightState `json:"state,omitempty"`
	Pending bool              `json:"pending"`
	Buttons []ButtonOption    `json:"buttons"`
}

// ButtonOption is one remote button offered on a panel.
type ButtonOption struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// LockPanel is the smart lock state.
type LockPanel struct {
	Known  bool   `json:"known"`
	Locked bool   `json:"locked"`
	Label  string `json:"label"`
}

// lightButtons are the light remote buttons the page offers, in order.
var lightButtons = []ButtonOption{
	{Name: "on", Label: "On", Icon: "💡"},
	{Name: "off", Label: "Off", Icon: "⚫"},
	{Name: "bright-up", Label: "Brighter", Icon: "🔆"},
	{Name: "bright-down", Label: "Dimmer", Icon: "🔅"},
	{Name: "colortemp-up", Label: "Warmer", Icon: "🌅"},
	{Name: "colortemp-down", Label: "Cooler", Icon: "🌌"},
}

// KindOf maps an appliance type to its control surface.
func KindOf(t model.ApplianceType) Kind {
	switch t {
	case model.ApplianceTypeAC:
		return KindAirCon
	case model.ApplianceTypeLight:
		return KindLight
	case model.ApplianceTypeLock, model.ApplianceTypeSesame:
		return KindLock
	default:
		return KindSignal
	}
}

// Build creates the panel of one appliance. history may be nil.
func Build(a model.Appliance, history store.Store) Panel {
	p := Panel{
		ID:         a.ID,
		Nickname:   a.Nickname,
		DeviceName: a.Device.Name,
		Type:       a.Type,
		Kind:       KindOf(a.Type),
		Signals:    a.Signals,
	}
	if p.Signals == nil {
		p.Signals = []model.Signal{}
	}
	if a.Model != nil {
		p.ModelName = a.Model.Name
		p.Maker = a.Model.Manufacturer
	}

	switch p.Kind {
	case KindAirCon:
		p.Icon, p.TypeLabel = "❄️", "Air conditioner"
		if a.Settings != nil {
			p.AirCon = buildAirCon(a, history)
		} else {
			// An AC without settings can only replay its signals.
			p.Kind = KindSignal
		}
	case KindLight:
		p.Icon, p.TypeLabel = "💡", "Light"
		p.Light = buildLight(a, history)
	case KindLock:
		p.Icon, p.TypeLabel = "🔐", "Smart lock"
		p.Lock = buildLock(a)
	default:
		switch a.Type {
		case model.ApplianceTypeTV:
			p.Icon, p.TypeLabel = "📺", "TV"
		case model.ApplianceTypeIR:
			p.Icon, p.TypeLabel = "📱", "IR device"
		default:
			p.Icon, p.TypeLabel = "🏠", "Other device"
		}
	}
	return p
}

// BuildAll creates the panels of every appliance, keeping their order.
func BuildAll(appliances []model.Appliance, history store.Store) []Panel {
	panels := make([]Panel, 0, len(appliances))
	for _, a := range appliances {
		panels = append(panels, Build(a, history))
	}
	return panels
}

func buildAirCon(a model.Appliance, history store.Store) *AirConPanel {
	var last *store.ButtonRecord
	if history != nil {
		if rec, ok := history.LastButton(a.ID); ok {
			last = &rec
		}
	}

	settings := *a.Settings
	pending := false
	if last != nil && newerThanSettings(last.SentAt, a.Settings) {
		settings = ApplyAirCon(settings, last.Params)
		pending = true
	}

	shown := a
	shown.Settings = &settings
	power := DerivePower(a, last)

	panel := &AirConPanel{
		Settings:    settings,
		Power:       power,
		Pending:     pending,
		ModeLabel:   ModeLabel(settings.Mode),
		PowerToggle: PowerToggleCommand(shown, power),
		TurnOn:      PowerToggleCommand(shown, PowerOff),
		TurnOff:     PowerToggleCommand(shown, PowerOn),
	}
	for _, m := range orderedModes(airConRange(a)) {
		panel.Modes = append(panel.Modes, ModeOption{
			Value:  m,
			Label:  ModeLabel(m),
			Icon:   modeIcons[m],
			Active: m == settings.Mode,
		})
	}
	if up, ok := AdjustTemperature(settings.Temp, 1); ok {
		panel.TempUp = map[string]string{"temp": up}
	}
	if down, ok := AdjustTemperature(settings.Temp, -1); ok {
		panel.TempDown = map[string]string{"temp": down}
	}
	return panel
}

func buildLight(a model.Appliance, history store.Store) *LightPanel {
	panel := &LightPanel{Buttons: []ButtonOption{}}
	if a.Light == nil {
		return panel
	}
	state := a.Light.State
	panel.State = &state
	// Some remotes report no state at all; show the last button sent from here.
	if state.Power == "" && history != nil {
		if rec, ok := history.LastButton(a.ID); ok && rec.Button != "" {
			shown := ApplyLight(nil, rec.Button)
			panel.State = &shown
			panel.Pending = true
		}
	}
	for _, b := range lightButtons {
		if a.Light.HasButton(b.Name) {
			panel.Buttons = append(panel.Buttons, b)
		}
	}
	return panel
}

func buildLock(a model.Appliance) *LockPanel {
	if a.Lock == nil {
		return &LockPanel{Label: "Unknown"}
	}
	locked := a.Lock.Lock == "locked"
	label := "Unlocked"
	if locked {
		label = "Locked"
	}
	return &LockPanel{Known: true, Locked: locked, Label: label}
}
