package rules

import (
	"testing"

	"oops/internal/core"
)

func alwaysMatch() *Simple {
	return &Simple{
		RuleName:  "inner",
		MatchFunc: func(cmd *core.Command) bool { return true },
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{"fixed"}
		},
	}
}

func TestForAppScopesMatch(t *testing.T) {
	rule := ForApp(alwaysMatch(), "git", "hub")

	cases := []struct {
		script string
		want   bool
	}{
		{"git status", true},
		{"hub pr list", true},
		{"/usr/local/bin/git status", true},
		{`C:\tools\git.exe status`, true},
		{"gitk", false},
		{"docker ps", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := rule.Match(core.NewCommand(tc.script, "out")); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.script, got, tc.want)
		}
	}
}

func TestForAppForwardsInnerCapabilities(t *testing.T) {
	inner := alwaysMatch()
	inner.RulePriority = 42
	inner.NeedsOutput = true
	rule := ForApp(inner, "git")

	if rule.Name() != "inner" {
		t.Errorf("Name = %q, want inner", rule.Name())
	}
	if rule.Priority() != 42 {
		t.Errorf("Priority = %d, want 42", rule.Priority())
	}
	if !rule.RequiresOutput() {
		t.Error("RequiresOutput should forward to the inner rule")
	}
	got := rule.NewCommands(core.NewCommand("git status", "out"))
	if len(got) != 1 || got[0] != "fixed" {
		t.Errorf("NewCommands = %v, want [fixed]", got)
	}
}

func TestForAppInnerPredicateStillApplies(t *testing.T) {
	inner := alwaysMatch()
	inner.MatchFunc = func(cmd *core.Command) bool { return false }
	rule := ForApp(inner, "git")

	if rule.Match(core.NewCommand("git status", "out")) {
		t.Error("app scoping must not bypass the inner predicate")
	}
}

func TestGitSupportRequiresGit(t *testing.T) {
	rule := GitSupport(alwaysMatch())

	if rule.Match(core.NewCommand("svn commit", "out")) {
		t.Error("matched a non-git command")
	}
	if !rule.Match(core.NewCommand("git push", "out")) {
		t.Error("did not match a git command")
	}
	if !rule.Match(core.NewCommand("hub push", "out")) {
		t.Error("did not match a hub command")
	}
}

func TestGitSupportExpandsAlias(t *testing.T) {
	var seen string
	inner := &Simple{
		RuleName: "inner",
		MatchFunc: func(cmd *core.Command) bool {
			seen = cmd.Script
			return true
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{cmd.Script + " --all"}
		},
	}
	rule := GitSupport(inner)

	output := "trace: alias expansion: co => checkout master\nerror: pathspec 'master' did not match"
	cmd := core.NewCommand("git co", output)

	if !rule.Match(cmd) {
		t.Fatal("alias-expanded command did not match")
	}
	if seen != "git checkout master" {
		t.Errorf("inner rule saw %q, want the expanded script", seen)
	}

	got := rule.NewCommands(cmd)
	if len(got) != 1 || got[0] != "git checkout master --all" {
		t.Errorf("NewCommands = %v, want the expansion applied", got)
	}
}

func TestGitSupportPassthroughWithoutAlias(t *testing.T) {
	var seen string
	inner := &Simple{
		RuleName: "inner",
		MatchFunc: func(cmd *core.Command) bool {
			seen = cmd.Script
			return true
		},
	}
	rule := GitSupport(inner)

	rule.Match(core.NewCommand("git push", "rejected"))
	if seen != "git push" {
		t.Errorf("inner rule saw %q, want the script untouched", seen)
	}
}

func TestGitSupportAliasWordBoundary(t *testing.T) {
	var seen string
	inner := &Simple{
		RuleName: "inner",
		MatchFunc: func(cmd *core.Command) bool {
			seen = cmd.Script
			return true
		},
	}
	rule := GitSupport(inner)

	// "st" must not rewrite the "st" inside "stash".
	output := "trace: alias expansion: st => status"
	rule.Match(core.NewCommand("git st stash", output))
	if seen != "git status stash" {
		t.Errorf("inner rule saw %q, want only the alias token replaced", seen)
	}
}
