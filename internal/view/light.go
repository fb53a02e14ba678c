package view

import "remo-dashboard/internal/model"

// ApplyLight returns the state the page shows right after a light button is
// pressed. state may be nil when the vendor reported none.
func ApplyLight(state *model.LightState, button string) model.LightState {
	var next model.LightState
	if state != nil {
		next = *state
	} else {
		next = model.LightState{Power: string(PowerOn), Brightness: "favorite"}
	}
	switch button {
	case "on":
		next.Power = string(PowerOn)
	case "off":
		next.Power = string(PowerOff)
	}
	next.LastButton = button
	return next
}
