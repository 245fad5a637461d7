// Package shell owns every interaction with the user's shell: capturing the
// output of a failed command, executing a chosen correction, and emitting the
// alias hook that wires oops into the shell.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Type identifies a supported shell.
type Type string

const (
	Bash       Type = "bash"
	Zsh        Type = "zsh"
	Fish       Type = "fish"
	PowerShell Type = "powershell"
)

// Detect returns the current shell, falling back to bash.
func Detect() Type {
	shell := os.Getenv("SHELL")
	if shell == "" {
		if runtime.GOOS == "windows" {
			return PowerShell
		}
		return Bash
	}
	switch filepath.Base(shell) {
	case "zsh":
		return Zsh
	case "fish":
		return Fish
	case "pwsh", "powershell":
		return PowerShell
	default:
		return Bash
	}
}

// ExitError reports a spawned command exiting non-zero.
type ExitError struct {
	Script string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%q exited with code %d", e.Script, e.Code)
}

// shellCommand builds the shell invocation for a script.
func shellCommand(ctx context.Context, script string) *exec.Cmd {
	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "/bin/sh"
	}
	return exec.CommandContext(ctx, sh, "-c", script)
}

// RunAndCapture re-runs a script and returns its merged output with stderr
// ordered before stdout, which is what correction rules want to scan: the
// diagnostic text is almost always on stderr. The process is bounded by the
// timeout; expiry simply truncates the capture.
func RunAndCapture(ctx context.Context, script string, timeout time.Duration) string {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := shellCommand(ctx, script)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	_ = cmd.Run() // a failure exit is the expected case here

	out := stderr.String()
	if stdout.Len() > 0 {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += stdout.String()
	}
	return out
}

// Run executes a script through the platform shell with inherited stdio.
// A non-zero exit is surfaced as *ExitError.
func Run(ctx context.Context, script string) error {
	cmd := shellCommand(ctx, script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Script: script, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to run %q: %w", script, err)
}

// AliasScript returns the shell function users source to get an `alias`-named
// command that corrects their previous invocation.
func AliasScript(t Type, alias string) string {
	switch t {
	case Fish:
		return fmt.Sprintf(`function %[1]s
    set -l prev $history[1]
    oops fix -- $prev
end`, alias)
	case PowerShell:
		return fmt.Sprintf(`function %[1]s {
    $prev = (Get-History -Count 1).CommandLine
    oops fix -- $prev
}`, alias)
	default: // bash and zsh share syntax here
		return fmt.Sprintf(`%[1]s () {
    local prev=$(fc -ln -1)
    oops fix -- "$prev"
}`, alias)
	}
}
