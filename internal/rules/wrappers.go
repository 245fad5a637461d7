package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"oops/internal/core"
)

// ForApp scopes a rule to a set of program names. The wrapped rule matches
// only when the command's first token resolves to one of the accepted names;
// every other capability forwards to the inner rule untouched.
//
// This replaces the "is this even git?" boilerplate that would otherwise open
// every heuristic's predicate.
func ForApp(rule Rule, apps ...string) Rule {
	return &appScoped{Rule: rule, apps: apps}
}

type appScoped struct {
	Rule
	apps []string
}

func (a *appScoped) Match(cmd *core.Command) bool {
	return matchesApp(cmd, a.apps) && a.Rule.Match(cmd)
}

// matchesApp compares the first token's basename against the accepted names.
// A path prefix and a Windows .exe suffix are both ignored, so
// `/usr/local/bin/git.exe` still counts as git.
func matchesApp(cmd *core.Command, apps []string) bool {
	first := cmd.ScriptPart(0)
	if first == "" {
		return false
	}
	app := strings.TrimSuffix(filepath.Base(first), ".exe")
	for _, accepted := range apps {
		if app == accepted {
			return true
		}
	}
	return false
}

// gitAliasRE captures git's trace line emitted when the invoked name was an
// alias, e.g. "trace: alias expansion: co => checkout master".
var gitAliasRE = regexp.MustCompile(`trace: alias expansion: ([^ ]*) => ([^\n]*)`)

// GitSupport scopes a rule to git invocations and normalizes alias usage.
// When the captured output shows that git expanded an alias, the inner rule
// sees a command whose script already contains the expansion, so heuristics
// can assume canonical git syntax without reimplementing alias resolution.
func GitSupport(rule Rule) Rule {
	return &gitScoped{Rule: rule}
}

type gitScoped struct {
	Rule
}

var gitApps = []string{"git", "hub"}

func (g *gitScoped) Match(cmd *core.Command) bool {
	if !matchesApp(cmd, gitApps) {
		return false
	}
	return g.Rule.Match(expandGitAlias(cmd))
}

func (g *gitScoped) NewCommands(cmd *core.Command) []string {
	return g.Rule.NewCommands(expandGitAlias(cmd))
}

func (g *gitScoped) SideEffect(cmd *core.Command, chosenScript string) error {
	return g.Rule.SideEffect(expandGitAlias(cmd), chosenScript)
}

// expandGitAlias rewrites the alias token in the script to its expansion,
// preserving the output. Commands without a trace line pass through as-is.
func expandGitAlias(cmd *core.Command) *core.Command {
	m := gitAliasRE.FindStringSubmatch(cmd.Output)
	if m == nil {
		return cmd
	}
	alias, expansion := m[1], strings.TrimSpace(m[2])
	wordRE, err := regexp.Compile(`\b` + regexp.QuoteMeta(alias) + `\b`)
	if err != nil {
		return cmd
	}
	return cmd.Update(wordRE.ReplaceAllString(cmd.Script, expansion))
}
