package config

import "testing"

func TestRuleEnabledDefaults(t *testing.T) {
	s := DefaultSettings()

	if !s.RuleEnabled("sudo", true) {
		t.Error("default-enabled rule should run under the sentinel")
	}
	if s.RuleEnabled("opt_in", false) {
		t.Error("opt-in rule should not run without an explicit entry")
	}
}

func TestRuleEnabledExplicitAllowList(t *testing.T) {
	s := DefaultSettings()
	s.Rules = []string{"sudo", "opt_in"}

	if !s.RuleEnabled("sudo", true) {
		t.Error("explicitly listed rule should run")
	}
	if !s.RuleEnabled("opt_in", false) {
		t.Error("explicitly listed opt-in rule should run")
	}
	if s.RuleEnabled("cd_parent", true) {
		t.Error("rule outside a restrictive allow-list should not run")
	}
}

func TestRuleEnabledExclusionWins(t *testing.T) {
	s := DefaultSettings()
	s.Rules = []string{AllRulesSentinel, "sudo"}
	s.ExcludeRules = []string{"sudo"}

	if s.RuleEnabled("sudo", true) {
		t.Error("exclusion must win over inclusion")
	}
}

func TestRulePriorityOverride(t *testing.T) {
	s := DefaultSettings()
	s.Priorities = map[string]int{"sudo": 42}

	if got := s.RulePriority("sudo", 1000); got != 42 {
		t.Errorf("RulePriority = %d, want 42", got)
	}
	if got := s.RulePriority("other", 1000); got != 1000 {
		t.Errorf("RulePriority fallback = %d, want 1000", got)
	}
}

func TestConfigSettingsSnapshot(t *testing.T) {
	cfg := &Config{
		Rules: RulesConfig{
			Enabled:         []string{"sudo"},
			Excluded:        []string{"cd_parent"},
			Priorities:      map[string]int{"sudo": 1},
			NumCloseMatches: 2,
		},
		Fuzzy: FuzzyConfig{Cutoff: 0.8},
	}

	s := cfg.Settings()
	if len(s.Rules) != 1 || s.Rules[0] != "sudo" {
		t.Errorf("Rules = %v", s.Rules)
	}
	if s.NumCloseMatches != 2 {
		t.Errorf("NumCloseMatches = %d", s.NumCloseMatches)
	}
	if s.FuzzyCutoff != 0.8 {
		t.Errorf("FuzzyCutoff = %f", s.FuzzyCutoff)
	}
	if !s.RuleEnabled("sudo", true) || s.RuleEnabled("cd_parent", true) {
		t.Error("snapshot did not carry enable/exclude lists")
	}
}
