// internal/component/unit.go
package component

import "go-lane-war/internal/types"

// Unit marks an entity as a combat unit fielded by one side.
type Unit struct {
	DefID string     `json:"def_id"`
	Owner types.Side `json:"owner"`
}
