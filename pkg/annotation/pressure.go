package annotation

// PressureMap records, for a temperature span id, the pressure span linked to it.
type PressureMap map[string]string

// Bind records that pressureID applies to temperatureID.
func (m PressureMap) Bind(temperatureID, pressureID string) {
	m[temperatureID] = pressureID
}

// Take returns the pressure bound to temperatureID and removes the binding, so a
// pressure is attached to one row only.
func (m PressureMap) Take(temperatureID string) (string, bool) {
	p, ok := m[temperatureID]
	if ok {
		delete(m, temperatureID)
	}
	return p, ok
}
