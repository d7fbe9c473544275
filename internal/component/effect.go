// internal/component/effect.go
package component

// Effect is a transient visual-effect record. It is presentation-only: the
// simulation creates and expires these but never reads them back.
type Effect struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Offset float64 `json:"offset"`
	Radius float64 `json:"radius,omitempty"`
	TTL    float64 `json:"ttl"`
}
