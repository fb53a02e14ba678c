package remo

import "net/url"

// airConFields maps the field names used by the dashboard to the names the
// aircon_settings endpoint expects.
var airConFields = map[string]string{
	"temp": "temperature",
	"mode": "operation_mode",
	"vol":  "air_volume",
	"dir":  "air_direction",
	"dirh": "air_direction_h",
}

// Fields reported by the vendor that cannot be written back.
var readOnlyFields = map[string]bool{
	"updated_at": true,
	"temp_unit":  true,
}

// AirConForm builds the form body for an aircon_settings request. Empty
// values, including an empty button, are omitted rather than sent. Keys the
// dashboard does not rename pass through unchanged.
func AirConForm(settings map[string]string) url.Values {
	form := url.Values{}
	for key, value := range settings {
		if value == "" || readOnlyFields[key] {
			continue
		}
		if wire, ok := airConFields[key]; ok {
			key = wire
		}
		form.Set(key, value)
	}
	return form
}

// LightForm builds the form body for a light request.
func LightForm(button string) url.Values {
	form := url.Values{}
	if button != "" {
		form.Set("button", button)
	}
	return form
}
