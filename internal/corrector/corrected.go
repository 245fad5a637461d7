package corrector

import (
	"context"

	"oops/internal/core"
	"oops/internal/logger"
	"oops/internal/metrics"
	"oops/internal/middleware"
	"oops/internal/rules"
	"oops/internal/shell"
)

// CorrectedCommand is one ranked candidate replacement for a failed command.
// It keeps a reference to the rule that produced it and the original command,
// so the rule's side effect can run after successful execution.
type CorrectedCommand struct {
	Script   string
	Priority int

	rule   rules.Rule
	source *core.Command
}

// RuleName returns the name of the rule that produced this correction.
func (c CorrectedCommand) RuleName() string {
	if c.rule == nil {
		return ""
	}
	return c.rule.Name()
}

// less defines the total order used for ranking: priority ascending, then
// script lexicographic ascending so equal priorities still sort
// deterministically.
func (c CorrectedCommand) less(other CorrectedCommand) bool {
	if c.Priority != other.Priority {
		return c.Priority < other.Priority
	}
	return c.Script < other.Script
}

// Run executes the corrected script through the platform shell with inherited
// stdio. A non-zero exit comes back as *shell.ExitError; on success the
// originating rule's side effect runs against the original command.
func (c CorrectedCommand) Run(ctx context.Context) error {
	if err := shell.Run(ctx, c.Script); err != nil {
		metrics.RecordCorrectionFailed()
		return err
	}
	metrics.RecordCorrectionExecuted()
	if c.rule != nil {
		effect := func() error { return c.rule.SideEffect(c.source, c.Script) }
		if err := middleware.SafeCall(effect); err != nil {
			// The user's command already succeeded; a side-effect failure
			// is noteworthy but not fatal.
			logger.Warn("rule side effect failed", "rule", c.rule.Name(), "error", err)
		}
	}
	return nil
}
