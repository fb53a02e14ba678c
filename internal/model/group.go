package model

// DeviceGroup is the set of appliances registered on one hub.
type DeviceGroup struct {
	DeviceName string
	Appliances []Appliance
}

// GroupByDevice groups appliances by the name of their hub. Groups appear in
// the order their first appliance appears, and appliances keep their order
// inside each group.
func GroupByDevice(appliances []Appliance) []DeviceGroup {
	index := make(map[string]int)
	var groups []DeviceGroup
	for _, a := range appliances {
		name := a.Device.Name
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, DeviceGroup{DeviceName: name})
		}
		groups[i].Appliances = append(groups[i].Appliances, a)
	}
	return groups
}
