package shell

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		env  string
		want Type
	}{
		{"/bin/bash", Bash},
		{"/usr/bin/zsh", Zsh},
		{"/usr/local/bin/fish", Fish},
		{"/usr/bin/pwsh", PowerShell},
		{"/bin/dash", Bash},
	}
	for _, tc := range cases {
		t.Setenv("SHELL", tc.env)
		if got := Detect(); got != tc.want {
			t.Errorf("Detect() with SHELL=%s = %s, want %s", tc.env, got, tc.want)
		}
	}
}

func TestRunAndCaptureOrdersStderrFirst(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
	t.Setenv("SHELL", "/bin/sh")

	out := RunAndCapture(context.Background(), "echo on-stdout; echo on-stderr >&2", 5*time.Second)
	stderrAt := strings.Index(out, "on-stderr")
	stdoutAt := strings.Index(out, "on-stdout")
	if stderrAt < 0 || stdoutAt < 0 {
		t.Fatalf("captured %q, want both streams", out)
	}
	if stderrAt > stdoutAt {
		t.Errorf("captured %q, want stderr before stdout", out)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
	t.Setenv("SHELL", "/bin/sh")

	if err := Run(context.Background(), "true"); err != nil {
		t.Fatalf("Run(true): %v", err)
	}

	err := Run(context.Background(), "exit 3")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run(exit 3) = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("exit code %d, want 3", exitErr.Code)
	}
}

func TestAliasScript(t *testing.T) {
	for _, shellType := range []Type{Bash, Zsh, Fish, PowerShell} {
		script := AliasScript(shellType, "oops")
		if !strings.Contains(script, "oops fix -- ") {
			t.Errorf("%s hook %q does not invoke the fixer", shellType, script)
		}
	}

	if got := AliasScript(Fish, "fix"); !strings.Contains(got, "function fix") {
		t.Errorf("fish hook does not honor a custom alias name: %q", got)
	}
}
