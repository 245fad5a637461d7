// Package rules defines the correction heuristic abstraction and the built-in
// rule set. Every heuristic is an independent predicate over a failed command
// plus a function producing replacement scripts; the corrector combines them.
package rules

import "oops/internal/core"

// DefaultPriority is the rank a rule gets unless it declares otherwise.
// Lower values surface earlier.
const DefaultPriority = 1000

// Rule is one correction heuristic. Match and NewCommands must be pure
// functions of the given command and process-external state (filesystem,
// PATH, env); no rule may depend on another rule's internals.
type Rule interface {
	// Name is the unique, stable identifier used for configuration
	// enable/disable and priority overrides.
	Name() string
	// Priority ranks this rule's suggestions; lower surfaces earlier.
	Priority() int
	// EnabledByDefault reports whether the rule runs without an explicit
	// allow-list entry.
	EnabledByDefault() bool
	// RequiresOutput reports whether a command with empty output should be
	// skipped without testing.
	RequiresOutput() bool
	// Match reports whether this rule applies to the command.
	Match(cmd *core.Command) bool
	// NewCommands returns candidate replacement scripts. Only called when
	// Match returned true; may return zero, one, or many.
	NewCommands(cmd *core.Command) []string
	// SideEffect runs after a corrected command executed successfully.
	SideEffect(cmd *core.Command, chosenScript string) error
}

// Simple implements Rule through plain function fields. The heuristic
// population is hundreds of near-identical cases, so a declarative struct
// beats a named type per rule.
type Simple struct {
	RuleName        string
	RulePriority    int // 0 means DefaultPriority
	Disabled        bool
	NeedsOutput     bool
	MatchFunc       func(cmd *core.Command) bool
	NewCommandsFunc func(cmd *core.Command) []string
	SideEffectFunc  func(cmd *core.Command, chosenScript string) error
}

func (r *Simple) Name() string { return r.RuleName }

func (r *Simple) Priority() int {
	if r.RulePriority == 0 {
		return DefaultPriority
	}
	return r.RulePriority
}

func (r *Simple) EnabledByDefault() bool { return !r.Disabled }

func (r *Simple) RequiresOutput() bool { return r.NeedsOutput }

func (r *Simple) Match(cmd *core.Command) bool {
	if r.MatchFunc == nil {
		return false
	}
	return r.MatchFunc(cmd)
}

func (r *Simple) NewCommands(cmd *core.Command) []string {
	if r.NewCommandsFunc == nil {
		return nil
	}
	return r.NewCommandsFunc(cmd)
}

func (r *Simple) SideEffect(cmd *core.Command, chosenScript string) error {
	if r.SideEffectFunc == nil {
		return nil
	}
	return r.SideEffectFunc(cmd, chosenScript)
}
