// Package corrector combines independent correction rules into one
// deterministic, configurable, deduplicated, priority-ordered pipeline.
package corrector

import (
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"oops/internal/config"
	"oops/internal/core"
	"oops/internal/logger"
	"oops/internal/metrics"
	"oops/internal/middleware"
	"oops/internal/rules"
)

// parallelThreshold is the rule-set size below which pooled evaluation is not
// worth the scheduling overhead.
const parallelThreshold = 32

// Corrector produces ranked corrections for a failed command. It holds no
// per-pass state: the command, settings, and rule set fully determine the
// output, independent of rule iteration order.
type Corrector struct {
	rules []rules.Rule
	pool  *ants.Pool
	log   *logger.Logger
}

// New creates a Corrector over the given rule set.
func New(ruleSet []rules.Rule) *Corrector {
	return &Corrector{
		rules: ruleSet,
		log:   logger.With("corrector"),
	}
}

// WithPool installs a worker pool used to evaluate rules concurrently on
// large rule sets. Results are collected and globally sorted either way, so
// the output is identical to the serial path.
func (c *Corrector) WithPool(size int) *Corrector {
	pool, err := ants.NewPool(size)
	if err != nil {
		c.log.Warn("could not create worker pool, staying serial", "error", err)
		return c
	}
	c.pool = pool
	return c
}

// Close releases the worker pool, if any.
func (c *Corrector) Close() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// GetCorrectedCommands evaluates every enabled rule against the command and
// returns the ranked, deduplicated, truncated corrections.
func (c *Corrector) GetCorrectedCommands(cmd *core.Command, settings config.Settings) []CorrectedCommand {
	var active []rules.Rule
	for _, rule := range c.rules {
		if !settings.RuleEnabled(rule.Name(), rule.EnabledByDefault()) {
			continue
		}
		if rule.RequiresOutput() && !cmd.HasOutput() {
			continue
		}
		active = append(active, rule)
	}

	var corrected []CorrectedCommand
	if c.pool != nil && len(active) >= parallelThreshold {
		corrected = c.evaluateParallel(active, cmd, settings)
	} else {
		for _, rule := range active {
			corrected = append(corrected, c.evaluate(rule, cmd, settings)...)
		}
	}

	result := organize(corrected, settings.NumCloseMatches)
	for range result {
		metrics.RecordCorrectionSuggested()
	}
	return result
}

// GetBestCorrection returns the top-ranked correction, if any.
func (c *Corrector) GetBestCorrection(cmd *core.Command, settings config.Settings) (CorrectedCommand, bool) {
	corrected := c.GetCorrectedCommands(cmd, settings)
	if len(corrected) == 0 {
		return CorrectedCommand{}, false
	}
	return corrected[0], true
}

// MatchRule runs a single named rule regardless of its enabled state. Used by
// tooling and tests to probe one heuristic in isolation.
func (c *Corrector) MatchRule(cmd *core.Command, name string) ([]CorrectedCommand, error) {
	rule, ok := rules.Find(c.rules, name)
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	if rule.RequiresOutput() && !cmd.HasOutput() {
		return nil, nil
	}
	return organize(c.evaluate(rule, cmd, config.DefaultSettings()), 0), nil
}

// evaluate runs one rule against the command. A panicking or erroring rule is
// contained here and treated as non-matching; one bad heuristic must not
// abort the pass.
func (c *Corrector) evaluate(rule rules.Rule, cmd *core.Command, settings config.Settings) []CorrectedCommand {
	metrics.RecordRuleEvaluated()
	scripts, err := middleware.SafeCallWithResult(func() ([]string, error) {
		if !rule.Match(cmd) {
			return nil, nil
		}
		return rule.NewCommands(cmd), nil
	})
	if err != nil {
		metrics.RecordRulePanicked()
		c.log.Warn("rule evaluation failed, skipping", "rule", rule.Name(), "error", err)
		return nil
	}

	priority := settings.RulePriority(rule.Name(), rule.Priority())
	var corrected []CorrectedCommand
	for _, script := range scripts {
		if script == "" || script == cmd.Script {
			// A no-op suggestion is never useful.
			continue
		}
		corrected = append(corrected, CorrectedCommand{
			Script:   script,
			Priority: priority,
			rule:     rule,
			source:   cmd,
		})
	}
	return corrected
}

func (c *Corrector) evaluateParallel(active []rules.Rule, cmd *core.Command, settings config.Settings) []CorrectedCommand {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		corrected []CorrectedCommand
	)
	for _, rule := range active {
		rule := rule
		wg.Add(1)
		submitErr := c.pool.Submit(func() {
			defer wg.Done()
			found := c.evaluate(rule, cmd, settings)
			if len(found) == 0 {
				return
			}
			mu.Lock()
			corrected = append(corrected, found...)
			mu.Unlock()
		})
		if submitErr != nil {
			// Pool rejected the task; fall back to evaluating inline.
			found := c.evaluate(rule, cmd, settings)
			mu.Lock()
			corrected = append(corrected, found...)
			mu.Unlock()
			wg.Done()
		}
	}
	wg.Wait()
	return corrected
}

// organize sorts, deduplicates, and truncates raw corrections. Sorting is the
// only thing that determines final order, which keeps the result independent
// of rule evaluation order.
func organize(corrected []CorrectedCommand, limit int) []CorrectedCommand {
	sort.SliceStable(corrected, func(i, j int) bool {
		return corrected[i].less(corrected[j])
	})

	seen := make(map[string]struct{}, len(corrected))
	deduped := corrected[:0]
	for _, cc := range corrected {
		if _, dup := seen[cc.Script]; dup {
			continue // first occurrence after sort wins, so the best priority survives
		}
		seen[cc.Script] = struct{}{}
		deduped = append(deduped, cc)
	}

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}
