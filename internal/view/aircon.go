package view

import (
	"sort"
	"strconv"
	"time"

	"remo-dashboard/internal/model"
	"remo-dashboard/internal/store"
)

// Temperature bounds offered by the +/- controls.
const (
	MinTemperature = 16
	MaxTemperature = 30
)

// Fallbacks used when the remote does not describe its range.
const (
	defaultMode = "cool"
	defaultTemp = "25"
	defaultVol  = "auto"
)

// Power is the on/off indicator shown for an appliance.
type Power string

const (
	PowerOn  Power = "on"
	PowerOff Power = "off"
)

// modeOrder is the display order of the vendor's operation modes.
var modeOrder = []string{"cool", "warm", "dry", "blow", "auto"}

var modeLabels = map[string]string{
	"cool": "Cool",
	"warm": "Heat",
	"dry":  "Dry",
	"blow": "Fan",
	"auto": "Auto",
}

var modeIcons = map[string]string{
	"cool": "❄️",
	"warm": "🔥",
	"dry":  "💨",
	"blow": "🌪️",
	"auto": "🤖",
}

// ModeLabel returns the display name of an operation mode.
func ModeLabel(mode string) string {
	if label, ok := modeLabels[mode]; ok {
		return label
	}
	return mode
}

// DerivePower infers whether an AC is running. The vendor reports no power
// flag, so the answer comes from the last command sent from here, the
// settings' button, the remote's fixed buttons and whether the settings
// describe a usable temperature and mode.
func DerivePower(a model.Appliance, last *store.ButtonRecord) Power {
	s := a.Settings

	if last != nil && newerThanSettings(last.SentAt, s) {
		if last.Button == store.ButtonPowerOff {
			return PowerOff
		}
		return PowerOn
	}

	if s == nil {
		return PowerOff
	}

	switch s.Button {
	case store.ButtonPowerOff:
		return PowerOff
	case store.ButtonPowerOn:
		return PowerOn
	}

	rng := airConRange(a)
	if rng != nil && len(rng.Modes) == 0 && contains(rng.FixedButtons, store.ButtonPowerOff) && s.Button == "" {
		return PowerOff
	}

	if s.Mode == "" {
		return PowerOff
	}
	var modeRange *model.AirConModeRange
	if rng != nil && len(rng.Modes) > 0 {
		mr, ok := rng.Modes[s.Mode]
		if !ok {
			return PowerOff
		}
		modeRange = &mr
	}

	if _, err := strconv.ParseFloat(s.Temp, 64); err != nil {
		// Fan-only modes carry no temperature, or only an empty one.
		if modeRange == nil || hasTemperatures(*modeRange) {
			return PowerOff
		}
	}

	return PowerOn
}

// PowerToggleCommand returns the settings to send when the power button is
// pressed. Turning an AC on sends a full mode, temperature and volume triple
// so the remote never receives a bare power button it may interpret as a
// toggle; turning it off sends the power-off button.
func PowerToggleCommand(a model.Appliance, current Power) map[string]string {
	if current == PowerOn {
		return map[string]string{"button": store.ButtonPowerOff}
	}

	var s model.AirConSettings
	if a.Settings != nil {
		s = *a.Settings
	}
	rng := airConRange(a)

	mode := pickMode(s.Mode, rng)
	var modeRange *model.AirConModeRange
	if rng != nil {
		if mr, ok := rng.Modes[mode]; ok {
			modeRange = &mr
		}
	}

	return map[string]string{
		"mode": mode,
		"temp": pickTemp(s.Temp, modeRange),
		"vol":  pickVol(s.Vol, modeRange),
	}
}

// AdjustTemperature returns the temperature after pressing +/-, clamped to
// the supported bounds, and whether the value changed.
func AdjustTemperature(temp string, delta int) (string, bool) {
	f, err := strconv.ParseFloat(temp, 64)
	if err != nil {
		return temp, false
	}
	current := int(f)
	next := current + delta
	if next < MinTemperature {
		next = MinTemperature
	}
	if next > MaxTemperature {
		next = MaxTemperature
	}
	// A value already outside the bounds never moves against delta.
	if (delta > 0 && next <= current) || (delta < 0 && next >= current) {
		return temp, false
	}
	return strconv.Itoa(next), true
}

// ApplyAirCon overlays a partial update on settings the way the page does
// before the vendor confirms it.
func ApplyAirCon(s model.AirConSettings, partial map[string]string) model.AirConSettings {
	if v := partial["temp"]; v != "" {
		s.Temp = v
	}
	if v := partial["mode"]; v != "" {
		s.Mode = v
	}
	if v := partial["vol"]; v != "" {
		s.Vol = v
	}
	if v, ok := partial["button"]; ok {
		s.Button = v
	} else if partial["mode"] != "" || partial["temp"] != "" {
		s.Button = ""
	}
	return s
}

// HistoryApplies reports whether a recorded command is newer than the
// settings the vendor reports. Once it is not, the vendor has caught up.
func HistoryApplies(rec store.ButtonRecord, s *model.AirConSettings) bool {
	return newerThanSettings(rec.SentAt, s)
}

func newerThanSettings(sentAt time.Time, s *model.AirConSettings) bool {
	if s == nil || s.UpdatedAt == "" {
		return true
	}
	updated, err := time.Parse(time.RFC3339, s.UpdatedAt)
	if err != nil {
		return true
	}
	return sentAt.After(updated)
}

func airConRange(a model.Appliance) *model.AirConRange {
	if a.AirCon == nil {
		return nil
	}
	return &a.AirCon.Range
}

// orderedModes lists the modes of a range in display order.
func orderedModes(rng *model.AirConRange) []string {
	if rng == nil || len(rng.Modes) == 0 {
		return append([]string(nil), modeOrder...)
	}
	var modes []string
	for _, m := range modeOrder {
		if _, ok := rng.Modes[m]; ok {
			modes = append(modes, m)
		}
	}
	var extra []string
	for m := range rng.Modes {
		if !contains(modeOrder, m) {
			extra = append(extra, m)
		}
	}
	sort.Strings(extra)
	return append(modes, extra...)
}

func pickMode(current string, rng *model.AirConRange) string {
	if rng == nil || len(rng.Modes) == 0 {
		if current != "" {
			return current
		}
		return defaultMode
	}
	if mr, ok := rng.Modes[current]; ok && hasTemperatures(mr) {
		return current
	}
	modes := orderedModes(rng)
	for _, m := range modes {
		if hasTemperatures(rng.Modes[m]) {
			return m
		}
	}
	return modes[0]
}

func pickTemp(current string, mr *model.AirConModeRange) string {
	var temps []string
	if mr != nil {
		temps = numericTemps(mr.Temp)
	}
	if len(temps) == 0 {
		if _, err := strconv.ParseFloat(current, 64); err == nil {
			return current
		}
		return defaultTemp
	}
	if contains(temps, current) {
		return current
	}
	return temps[len(temps)/2]
}

// hasTemperatures reports whether a mode accepts a numeric temperature.
func hasTemperatures(mr model.AirConModeRange) bool {
	return len(numericTemps(mr.Temp)) > 0
}

func numericTemps(list []string) []string {
	var temps []string
	for _, t := range list {
		if _, err := strconv.ParseFloat(t, 64); err == nil {
			temps = append(temps, t)
		}
	}
	return temps
}

func pickVol(current string, mr *model.AirConModeRange) string {
	if mr == nil || len(mr.Vol) == 0 {
		if current != "" {
			return current
		}
		return defaultVol
	}
	if contains(mr.Vol, current) {
		return current
	}
	if contains(mr.Vol, defaultVol) {
		return defaultVol
	}
	return mr.Vol[0]
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
