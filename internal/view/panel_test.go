package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remo-dashboard/internal/model"
	"remo-dashboard/internal/store"
)

func TestBuild_AirCon(t *testing.T) {
	app := testAirCon(&model.AirConSettings{Mode: "cool", Temp: "30", Vol: "auto", UpdatedAt: "2024-05-01T10:00:00Z"})
	app.Device = model.Device{Name: "Living"}

	p := Build(app, nil)

	assert.Equal(t, KindAirCon, p.Kind)
	assert.Equal(t, "Living", p.DeviceName)
	require.NotNil(t, p.AirCon)
	assert.Equal(t, PowerOn, p.AirCon.Power)
	assert.False(t, p.AirCon.Pending)
	assert.Equal(t, "Cool", p.AirCon.ModeLabel)
	assert.Nil(t, p.AirCon.TempUp, "30 is the upper bound")
	assert.Equal(t, map[string]string{"temp": "29"}, p.AirCon.TempDown)
	assert.Equal(t, map[string]string{"button": "power-off"}, p.AirCon.PowerToggle)

	var modes []string
	for _, m := range p.AirCon.Modes {
		modes = append(modes, m.Value)
		assert.Equal(t, m.Value == "cool", m.Active)
	}
	assert.Equal(t, []string{"cool", "warm", "blow"}, modes)
	assert.NotNil(t, p.Signals)
}

func TestBuild_AirConPendingHistory(t *testing.T) {
	history := store.NewCacheStore(time.Minute)
	history.RecordButton(store.ButtonRecord{
		ApplianceID: "ac-1",
		Params:      map[string]string{"mode": "warm", "temp": "21", "vol": "auto"},
		SentAt:      time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC),
	})
	app := testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", Button: "power-off", UpdatedAt: "2024-05-01T10:00:00Z"})

	p := Build(app, history)

	require.NotNil(t, p.AirCon)
	assert.True(t, p.AirCon.Pending)
	assert.Equal(t, "warm", p.AirCon.Settings.Mode)
	assert.Equal(t, "21", p.AirCon.Settings.Temp)
	assert.Empty(t, p.AirCon.Settings.Button)
	assert.Equal(t, PowerOn, p.AirCon.Power)
}

func TestBuild_AirConWithoutSettings(t *testing.T) {
	app := testAirCon(nil)
	app.Signals = []model.Signal{{ID: "s1", Name: "Power"}}

	p := Build(app, nil)

	assert.Equal(t, KindSignal, p.Kind)
	assert.Nil(t, p.AirCon)
	assert.Len(t, p.Signals, 1)
}

func TestBuild_Light(t *testing.T) {
	app := model.Appliance{
		ID:   "light-1",
		Type: model.ApplianceTypeLight,
		Light: &model.Light{
			Buttons: []model.LightButton{{Name: "off"}, {Name: "on"}, {Name: "night"}},
			State:   model.LightState{Power: "on", Brightness: "100", LastButton: "on"},
		},
	}

	p := Build(app, nil)

	assert.Equal(t, KindLight, p.Kind)
	require.NotNil(t, p.Light)
	require.NotNil(t, p.Light.State)
	assert.Equal(t, "on", p.Light.State.Power)
	var names []string
	for _, b := range p.Light.Buttons {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"on", "off"}, names)
}

func TestBuild_Lock(t *testing.T) {
	locked := Build(model.Appliance{Type: model.ApplianceTypeSesame, Lock: &model.LockState{Lock: "locked"}}, nil)
	require.NotNil(t, locked.Lock)
	assert.Equal(t, KindLock, locked.Kind)
	assert.True(t, locked.Lock.Locked)
	assert.Equal(t, "Locked", locked.Lock.Label)

	unknown := Build(model.Appliance{Type: model.ApplianceTypeLock}, nil)
	require.NotNil(t, unknown.Lock)
	assert.False(t, unknown.Lock.Known)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSignal, KindOf(model.ApplianceTypeTV))
	assert.Equal(t, KindSignal, KindOf("SMART_METER"))
	assert.Equal(t, KindAirCon, KindOf(model.ApplianceTypeAC))
}

func TestBuild_AirConCarriesBothPowerCommands(t *testing.T) {
	off := Build(testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", Vol: "auto", Button: "power-off"}), nil)
	on := Build(testAirCon(&model.AirConSettings{Mode: "cool", Temp: "25", Vol: "auto"}), nil)

	for _, p := range []Panel{off, on} {
		require.NotNil(t, p.AirCon)
		assert.Equal(t, map[string]string{"mode": "cool", "temp": "25", "vol": "auto"}, p.AirCon.TurnOn)
		assert.Equal(t, map[string]string{"button": "power-off"}, p.AirCon.TurnOff)
	}
	assert.Equal(t, off.AirCon.TurnOn, off.AirCon.PowerToggle)
	assert.Equal(t, on.AirCon.TurnOff, on.AirCon.PowerToggle)
}

func TestBuild_LightWithoutStateUsesHistory(t *testing.T) {
	history := store.NewCacheStore(time.Minute)
	history.RecordButton(store.ButtonRecord{ApplianceID: "light-2", Button: "off"})
	app := model.Appliance{
		ID:    "light-2",
		Type:  model.ApplianceTypeLight,
		Light: &model.Light{Buttons: []model.LightButton{{Name: "on"}, {Name: "off"}}},
	}

	p := Build(app, history)

	require.NotNil(t, p.Light)
	require.NotNil(t, p.Light.State)
	assert.True(t, p.Light.Pending)
	assert.Equal(t, "off", p.Light.State.Power)
	assert.Equal(t, "off", p.Light.State.LastButton)

	reported := Build(model.Appliance{
		ID:    "light-2",
		Type:  model.ApplianceTypeLight,
		Light: &model.Light{State: model.LightState{Power: "on"}},
	}, history)
	assert.False(t, reported.Light.Pending, "a reported state wins over history")
	assert.Equal(t, "on", reported.Light.State.Power)
}
