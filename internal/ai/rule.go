// internal/ai/rule.go
package ai

import "github.com/expr-lang/expr/vm"

// ActionFunc produces the decision a fired rule commits to. It may update
// the env's memory map; those writes persist across invocations and are
// included in save/restore.
type ActionFunc func(env RuleEnv) Decision

// Rule is the atomic unit of opponent behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive to
// keep conflicting purchases from competing for the same gold in one pass.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for diagnostics)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
