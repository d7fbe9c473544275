// internal/ai/engine.go
package ai

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
)

const actionLogSize = 16

// ActionRecord is one entry in the diagnostic action log.
type ActionRecord struct {
	At       float64 `json:"at"`
	Rule     string  `json:"rule"`
	Decision string  `json:"decision"`
}

// DebugInfo is the read-only diagnostic surface: it must never influence
// the simulation outcome.
type DebugInfo struct {
	Profile   string         `json:"profile"`
	Threat    float64        `json:"threat"`
	State     string         `json:"state"`
	Rationale string         `json:"rationale"`
	ActionLog []ActionRecord `json:"action_log"`
}

// Engine runs compiled rules against each observation. Rules fire in
// priority order; exclusive rules block lower-priority rules in the same
// category, so one pass never commits the same gold twice. The simulation
// core invokes Decide synchronously from its own single thread.
type Engine struct {
	profile Profile
	rules   []*Rule
	memory  map[string]any
	logger  *slog.Logger

	lastThreat    float64
	lastRationale string
	actionLog     []ActionRecord
}

// NewEngine compiles the named profile's rule set into expr bytecode.
func NewEngine(profileName string, logger *slog.Logger) (*Engine, error) {
	profile, ok := Profiles[profileName]
	if !ok {
		return nil, fmt.Errorf("unknown opponent profile %q", profileName)
	}
	if logger == nil {
		logger = slog.Default()
	}
	compiled, err := compileRules(CompileProfile(profile))
	if err != nil {
		return nil, err
	}
	return &Engine{
		profile: profile,
		rules:   compiled,
		memory:  make(map[string]any),
		logger:  logger.With("profile", profileName),
	}, nil
}

// Decide evaluates the rule set against one observation and returns the
// first decision that fires, or Wait.
func (e *Engine) Decide(obs Observation) Decision {
	env := RuleEnv{Obs: obs, Memory: e.memory}
	e.lastThreat = env.Threat()

	fired := make(map[string]bool) // category → exclusive rule already fired
	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}
		result, err := expr.Run(r.program, env)
		if err != nil {
			e.logger.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		match, ok := result.(bool)
		if !ok || !match {
			continue
		}
		if r.Exclusive {
			fired[r.Category] = true
		}

		decision := r.Action(env)
		if decision.Kind == Wait {
			// A deliberate hold (e.g. saving for a purchase) still blocks its
			// category but lets unrelated rules run.
			e.lastRationale = decision.Rationale
			continue
		}

		e.logger.Debug("rule fired", "rule", r.Name, "decision", decision.String())
		e.lastRationale = decision.Rationale
		e.record(obs.GameTime, r.Name, decision)
		return decision
	}
	return Decision{Kind: Wait, Rationale: e.lastRationale}
}

func (e *Engine) record(at float64, rule string, d Decision) {
	e.actionLog = append(e.actionLog, ActionRecord{At: at, Rule: rule, Decision: d.String()})
	if len(e.actionLog) > actionLogSize {
		e.actionLog = e.actionLog[len(e.actionLog)-actionLogSize:]
	}
}

// Debug returns the current diagnostic view.
func (e *Engine) Debug() DebugInfo {
	state := "building"
	if v, ok := e.memory["saving_for"].(string); ok && v != "" {
		state = "saving:" + v
	}
	log := make([]ActionRecord, len(e.actionLog))
	copy(log, e.actionLog)
	return DebugInfo{
		Profile:   e.profile.Name,
		Threat:    e.lastThreat,
		State:     state,
		Rationale: e.lastRationale,
		ActionLog: log,
	}
}

// MemorySnapshot copies the persistent decision memory for serialization.
func (e *Engine) MemorySnapshot() map[string]any {
	out := make(map[string]any, len(e.memory))
	for k, v := range e.memory {
		out[k] = v
	}
	return out
}

// RestoreMemory replaces the persistent decision memory, used on restore so
// a resumed game behaves as if uninterrupted.
func (e *Engine) RestoreMemory(mem map[string]any) {
	e.memory = make(map[string]any, len(mem))
	for k, v := range mem {
		e.memory[k] = v
	}
}

// Profile returns the profile name the engine was built with.
func (e *Engine) Profile() string {
	return e.profile.Name
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

var _ Controller = (*Engine)(nil)
