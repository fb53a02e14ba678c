package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"remo-dashboard/internal/model"
	"remo-dashboard/internal/store"
)

func testAirCon(settings *model.AirConSettings) model.Appliance {
	return model.Appliance{
		ID:       "ac-1",
		Type:     model.ApplianceTypeAC,
		Nickname: "Bedroom AC",
		Settings: settings,
		AirCon: &model.AirCon{Range: model.AirConRange{
			Modes: map[string]model.AirConModeRange{
				"cool": {Temp: []string{"24", "25", "26"}, Vol: []string{"1", "2", "auto"}},
				"warm": {Temp: []string{"20", "21"}, Vol: []string{"auto"}},
				"blow": {Vol: []string{"1"}},
			},
			FixedButtons: []string{"power-off"},
		}},
	}
}

// fanAirCon reports its fan mode with a single empty temperature, as the
// vendor does for fan-only modes.
func fanAirCon(settings *model.AirConSettings) model.Appliance {
	return model.Appliance{
		ID:       "ac-2",
		Type:     model.ApplianceTypeAC,
		Settings: settings,
		AirCon: &model.AirCon{Range: model.AirConRange{
			Modes: map[string]model.AirConModeRange{
				"blow": {Temp: []string{""}, Vol: []string{"auto", "1"}},
				"cool": {Temp: []string{"", "24", "25", "26"}, Vol: []string{"auto"}},
			},
		}},
	}
}

func TestDerivePower(t *testing.T) {
	updated := "2024-05-01T10:00:00Z"
	updatedAt, _ := time.Parse(time.RFC3339, updated)

	tests := []struct {
		name     string
		app      model.Appliance
		last     *store.ButtonRecord
		expected Power
	}{
		{
			name:     "no settings",
			app:      testAirCon(nil),
			expected: PowerOff,
		},
		{
			name:     "power-off button",
			app:      testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", Button: "power-off", UpdatedAt: updated}),
			expected: PowerOff,
		},
		{
			name:     "power-on button",
			app:      testAirCon(&model.AirConSettings{Button: "power-on", UpdatedAt: updated}),
			expected: PowerOn,
		},
		{
			name:     "valid mode and temperature",
			app:      testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", UpdatedAt: updated}),
			expected: PowerOn,
		},
		{
			name:     "mode outside range",
			app:      testAirCon(&model.AirConSettings{Mode: "dry", Temp: "25", UpdatedAt: updated}),
			expected: PowerOff,
		},
		{
			name:     "missing mode",
			app:      testAirCon(&model.AirConSettings{Temp: "25", UpdatedAt: updated}),
			expected: PowerOff,
		},
		{
			name:     "invalid temperature",
			app:      testAirCon(&model.AirConSettings{Mode: "cool", Temp: "", UpdatedAt: updated}),
			expected: PowerOff,
		},
		{
			name:     "mode without temperatures",
			app:      testAirCon(&model.AirConSettings{Mode: "blow", Temp: "", UpdatedAt: updated}),
			expected: PowerOn,
		},
		{
			name:     "fan mode with empty temperature list",
			app:      fanAirCon(&model.AirConSettings{Mode: "blow", Temp: "", UpdatedAt: updated}),
			expected: PowerOn,
		},
		{
			name:     "cool mode with empty temperature",
			app:      fanAirCon(&model.AirConSettings{Mode: "cool", Temp: "", UpdatedAt: updated}),
			expected: PowerOff,
		},
		{
			name: "only fixed buttons",
			app: model.Appliance{
				Type:     model.ApplianceTypeAC,
				Settings: &model.AirConSettings{Mode: "cool", Temp: "25", UpdatedAt: updated},
				AirCon:   &model.AirCon{Range: model.AirConRange{FixedButtons: []string{"power-on", "power-off"}}},
			},
			expected: PowerOff,
		},
		{
			name:     "newer history wins",
			app:      testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", UpdatedAt: updated}),
			last:     &store.ButtonRecord{Button: "power-off", SentAt: updatedAt.Add(time.Minute)},
			expected: PowerOff,
		},
		{
			name:     "newer settings command turns on",
			app:      testAirCon(&model.AirConSettings{Button: "power-off", UpdatedAt: updated}),
			last:     &store.ButtonRecord{Params: map[string]string{"mode": "cool"}, SentAt: updatedAt.Add(time.Minute)},
			expected: PowerOn,
		},
		{
			name:     "older history ignored",
			app:      testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", UpdatedAt: updated}),
			last:     &store.ButtonRecord{Button: "power-off", SentAt: updatedAt.Add(-time.Minute)},
			expected: PowerOn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DerivePower(tt.app, tt.last))
		})
	}
}

func TestPowerToggleCommand_WhenOn(t *testing.T) {
	app := testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25"})

	assert.Equal(t, map[string]string{"button": "power-off"}, PowerToggleCommand(app, PowerOn))
}

func TestPowerToggleCommand_WhenOff(t *testing.T) {
	t.Run("keeps valid settings", func(t *testing.T) {
		app := testAirCon(&model.AirConSettings{Mode: "warm", Temp: "21", Vol: "auto", Button: "power-off"})

		cmd := PowerToggleCommand(app, PowerOff)
		assert.Equal(t, map[string]string{"mode": "warm", "temp": "21", "vol": "auto"}, cmd)
		assert.NotContains(t, cmd, "button")
	})

	t.Run("picks from range", func(t *testing.T) {
		app := testAirCon(&model.AirConSettings{Mode: "blow", Button: "power-off"})

		cmd := PowerToggleCommand(app, PowerOff)
		assert.Equal(t, map[string]string{"mode": "cool", "temp": "25", "vol": "auto"}, cmd)
	})

	t.Run("skips fan mode with empty temperature list", func(t *testing.T) {
		app := fanAirCon(&model.AirConSettings{Mode: "blow", Temp: "", Vol: "auto", Button: "power-off"})

		cmd := PowerToggleCommand(app, PowerOff)
		assert.Equal(t, map[string]string{"mode": "cool", "temp": "25", "vol": "auto"}, cmd)
		assert.NotEmpty(t, cmd["temp"])
	})

	t.Run("no range falls back to defaults", func(t *testing.T) {
		app := model.Appliance{Type: model.ApplianceTypeAC, Settings: &model.AirConSettings{Button: "power-off"}}

		cmd := PowerToggleCommand(app, PowerOff)
		assert.Equal(t, map[string]string{"mode": "cool", "temp": "25", "vol": "auto"}, cmd)
	})
}

func TestAdjustTemperature(t *testing.T) {
	tests := []struct {
		temp    string
		delta   int
		want    string
		changed bool
	}{
		{"25", 1, "26", true},
		{"25", -1, "24", true},
		{"30", 1, "30", false},
		{"16", -1, "16", false},
		{"35", -1, "30", true},
		{"35", 1, "35", false},
		{"10", -1, "10", false},
		{"10", 1, "16", true},
		{"", 1, "", false},
		{"abc", -1, "abc", false},
	}
	for _, tt := range tests {
		got, changed := AdjustTemperature(tt.temp, tt.delta)
		assert.Equal(t, tt.want, got, "temp %q delta %d", tt.temp, tt.delta)
		assert.Equal(t, tt.changed, changed, "temp %q delta %d", tt.temp, tt.delta)
	}
}

func TestHistoryApplies(t *testing.T) {
	s := &model.AirConSettings{UpdatedAt: "2024-05-01T10:00:00Z"}
	sent := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, HistoryApplies(store.ButtonRecord{SentAt: sent.Add(time.Second)}, s))
	assert.False(t, HistoryApplies(store.ButtonRecord{SentAt: sent.Add(-time.Second)}, s))
	assert.True(t, HistoryApplies(store.ButtonRecord{SentAt: sent}, &model.AirConSettings{}))
}

func TestApplyAirCon(t *testing.T) {
	base := model.AirConSettings{Temp: "25", Mode: "cool", Vol: "auto", Button: "power-off"}

	on := ApplyAirCon(base, map[string]string{"temp": "26"})
	assert.Equal(t, "26", on.Temp)
	assert.Equal(t, "cool", on.Mode)
	assert.Empty(t, on.Button)

	off := ApplyAirCon(model.AirConSettings{Temp: "25", Mode: "cool"}, map[string]string{"button": "power-off"})
	assert.Equal(t, "power-off", off.Button)
	assert.Equal(t, "25", off.Temp)
}

func TestModeLabel(t *testing.T) {
	assert.Equal(t, "Heat", ModeLabel("warm"))
	assert.Equal(t, "turbo", ModeLabel("turbo"))
}
