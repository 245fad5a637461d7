package rules

import (
	"oops/internal/executable"
	"oops/pkg/fuzzy"
)

// All returns the full built-in rule set. Construction is cheap and
// side-effect-free; callers get a fresh slice per invocation and the order
// carries no meaning — the corrector sorts its own output. A cutoff <= 0
// falls back to fuzzy.DefaultCutoff.
func All(ix *executable.Index, cutoff float64) []Rule {
	if cutoff <= 0 {
		cutoff = fuzzy.DefaultCutoff
	}
	return []Rule{
		sudoRule(),
		cdParentRule(),
		noCommandRule(ix, cutoff),
		gitPushSetUpstreamRule(),
		gitNotCommandRule(cutoff),
		gitAddRule(),
		gitPushForceRule(),
		aptCacheSearchRule(),
		brewUpdateRule(),
		dockerDaemonRule(),
		portInUseRule(),
		goRunRule(),
		npmMissingScriptRule(),
		mkdirPRule(),
	}
}

// Find returns the rule with the given name, if registered.
func Find(ruleSet []Rule, name string) (Rule, bool) {
	for _, r := range ruleSet {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
