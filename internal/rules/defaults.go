package rules

import (
	"fmt"
	"regexp"
	"strings"

	"oops/internal/core"
	"oops/internal/executable"
	"oops/pkg/fuzzy"
)

// sudoMarkers are output fragments indicating the command needed elevation.
var sudoMarkers = []string{
	"permission denied",
	"eacces",
	"must be root",
	"need to be root",
	"operation not permitted",
	"are you root",
	"requested operation requires superuser privilege",
	"authentication is required",
}

func sudoRule() Rule {
	return &Simple{
		RuleName:     "sudo",
		RulePriority: 100,
		NeedsOutput:  true,
		MatchFunc: func(cmd *core.Command) bool {
			if cmd.ScriptPart(0) == "sudo" {
				return false
			}
			out := strings.ToLower(cmd.Output)
			for _, marker := range sudoMarkers {
				if strings.Contains(out, marker) {
					return true
				}
			}
			return false
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{"sudo " + cmd.Script}
		},
	}
}

func cdParentRule() Rule {
	return &Simple{
		RuleName: "cd_parent",
		MatchFunc: func(cmd *core.Command) bool {
			return cmd.ScriptPart(0) == "cd.."
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{strings.Replace(cmd.Script, "cd..", "cd ..", 1)}
		},
	}
}

// maxTypoDistance caps how many edits away a suggested executable may be.
// Jaro-Winkler is generous on long names sharing a prefix; the Levenshtein
// cap keeps "close" meaning close to what was typed.
const maxTypoDistance = 3

func noCommandRule(ix *executable.Index, cutoff float64) Rule {
	return &Simple{
		RuleName:     "no_command",
		RulePriority: 900,
		NeedsOutput:  true,
		MatchFunc: func(cmd *core.Command) bool {
			first := cmd.ScriptPart(0)
			if first == "" || first == "sudo" {
				return false
			}
			out := strings.ToLower(cmd.Output)
			if !strings.Contains(out, "not found") && !strings.Contains(out, "is not recognized") {
				return false
			}
			return !ix.Contains(first)
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			first := cmd.ScriptPart(0)
			candidates := append(ix.All(), executable.ShellBuiltins()...)
			var scripts []string
			for _, match := range fuzzy.Rank(first, candidates, cutoff) {
				if match.Distance > maxTypoDistance {
					continue
				}
				scripts = append(scripts, match.Word+strings.TrimPrefix(cmd.Script, first))
				if len(scripts) == fuzzy.DefaultN {
					break
				}
			}
			return scripts
		},
	}
}

var setUpstreamRE = regexp.MustCompile(`git push --set-upstream [^\n]*`)

func gitPushSetUpstreamRule() Rule {
	return GitSupport(&Simple{
		RuleName:    "git_push_set_upstream",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return strings.HasPrefix(cmd.Script, "git push") &&
				strings.Contains(cmd.Output, "git push --set-upstream")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			m := setUpstreamRE.FindString(cmd.Output)
			if m == "" {
				return nil
			}
			return []string{strings.TrimSpace(m)}
		},
	})
}

var (
	notGitCommandRE = regexp.MustCompile(`'([^']+)' is not a git command`)
	gitSuggestionRE = regexp.MustCompile(`(?m)^\s+([A-Za-z0-9_-]+)\s*$`)
)

func gitNotCommandRule(cutoff float64) Rule {
	return GitSupport(&Simple{
		RuleName:    "git_not_command",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return notGitCommandRE.MatchString(cmd.Output) &&
				(strings.Contains(cmd.Output, "The most similar command") ||
					strings.Contains(cmd.Output, "Did you mean"))
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			broken := notGitCommandRE.FindStringSubmatch(cmd.Output)
			if broken == nil {
				return nil
			}
			var suggested []string
			for _, m := range gitSuggestionRE.FindAllStringSubmatch(cmd.Output, -1) {
				suggested = append(suggested, m[1])
			}
			var scripts []string
			for _, match := range fuzzy.GetCloseMatches(broken[1], suggested, fuzzy.DefaultN, cutoff) {
				scripts = append(scripts, strings.Replace(cmd.Script, broken[1], match, 1))
			}
			return scripts
		},
	})
}

var pathspecRE = regexp.MustCompile(`error: pathspec '([^']*)' did not match`)

func gitAddRule() Rule {
	return GitSupport(&Simple{
		RuleName:    "git_add",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return pathspecRE.MatchString(cmd.Output)
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			m := pathspecRE.FindStringSubmatch(cmd.Output)
			if m == nil {
				return nil
			}
			return []string{fmt.Sprintf("git add -- %s && %s", m[1], cmd.Script)}
		},
	})
}

func gitPushForceRule() Rule {
	// Force pushing is opinionated enough to be opt-in.
	return GitSupport(&Simple{
		RuleName:    "git_push_force",
		Disabled:    true,
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return strings.HasPrefix(cmd.Script, "git push") &&
				strings.Contains(cmd.Output, "Updates were rejected")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{strings.Replace(cmd.Script, "git push", "git push --force-with-lease", 1)}
		},
	})
}

func aptCacheSearchRule() Rule {
	return ForApp(&Simple{
		RuleName: "apt_cache_search",
		MatchFunc: func(cmd *core.Command) bool {
			return cmd.ScriptPart(1) == "search"
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			script := strings.Replace(cmd.Script, "apt-get", "apt-cache", 1)
			return []string{strings.Replace(script, "apt search", "apt-cache search", 1)}
		},
	}, "apt", "apt-get")
}

func brewUpdateRule() Rule {
	return ForApp(&Simple{
		RuleName:    "brew_update",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return cmd.ScriptPart(1) == "install" &&
				strings.Contains(cmd.Output, "No available formula")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{"brew update && " + cmd.Script}
		},
	}, "brew")
}

func dockerDaemonRule() Rule {
	return ForApp(&Simple{
		RuleName:    "docker_daemon_not_running",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return strings.Contains(cmd.Output, "Cannot connect to the Docker daemon")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{
				"sudo systemctl start docker && " + cmd.Script,
				"sudo service docker start && " + cmd.Script,
			}
		},
	}, "docker", "docker-compose")
}

var portRE = regexp.MustCompile(`(?i):(\d{2,5})`)

func portInUseRule() Rule {
	return &Simple{
		RuleName:    "port_in_use",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return strings.Contains(cmd.Output, "address already in use") ||
				strings.Contains(cmd.Output, "port is already allocated")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			m := portRE.FindStringSubmatch(cmd.Output)
			if m == nil {
				return nil
			}
			return []string{fmt.Sprintf("kill -9 $(lsof -t -i:%s) && %s", m[1], cmd.Script)}
		},
	}
}

func goRunRule() Rule {
	return ForApp(&Simple{
		RuleName:    "go_run",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return cmd.ScriptPart(1) == "run" &&
				strings.Contains(cmd.Output, "no go files listed")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{"go run ."}
		},
	}, "go")
}

var npmDidYouMeanRE = regexp.MustCompile(`Did you mean (?:one of )?(?:this|these)\?\n\s+([A-Za-z0-9:_-]+)`)

func npmMissingScriptRule() Rule {
	return ForApp(&Simple{
		RuleName:    "npm_missing_script",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return cmd.ScriptPart(1) == "run" &&
				strings.Contains(cmd.Output, "Missing script:")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			m := npmDidYouMeanRE.FindStringSubmatch(cmd.Output)
			if m == nil {
				return nil
			}
			parts := append([]string(nil), cmd.Parts()...)
			if len(parts) < 3 {
				return nil
			}
			parts[2] = m[1]
			return []string{strings.Join(parts, " ")}
		},
	}, "npm")
}

func mkdirPRule() Rule {
	return ForApp(&Simple{
		RuleName:    "mkdir_p",
		NeedsOutput: true,
		MatchFunc: func(cmd *core.Command) bool {
			return strings.Contains(cmd.Output, "No such file or directory")
		},
		NewCommandsFunc: func(cmd *core.Command) []string {
			return []string{strings.Replace(cmd.Script, "mkdir ", "mkdir -p ", 1)}
		},
	}, "mkdir")
}
