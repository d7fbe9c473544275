// internal/component/health.go
package component

// Health tracks current and maximum hit points.
type Health struct {
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
}

// HealBy raises Value by amount, clamped to Max.
func (h *Health) HealBy(amount float64) {
	h.Value += amount
	if h.Value > h.Max {
		h.Value = h.Max
	}
}
