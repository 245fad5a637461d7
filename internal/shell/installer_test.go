package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstallUninstallRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	profile := filepath.Join(home, ".zshrc")
	if err := os.WriteFile(profile, []byte("export EDITOR=vim\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Install(Zsh, "oops"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	installed, err := IsInstalled(Zsh)
	if err != nil || !installed {
		t.Fatalf("IsInstalled = %v, %v after install", installed, err)
	}

	content, err := os.ReadFile(profile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "oops fix -- ") {
		t.Errorf("profile missing the hook: %q", content)
	}
	if !strings.Contains(string(content), "export EDITOR=vim") {
		t.Error("install clobbered existing profile content")
	}

	// Second install must not duplicate the block.
	if err := Install(Zsh, "oops"); err != nil {
		t.Fatalf("second Install: %v", err)
	}
	content, _ = os.ReadFile(profile)
	if strings.Count(string(content), installMarkerBegin) != 1 {
		t.Errorf("hook installed twice:\n%s", content)
	}

	if err := Uninstall(Zsh); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	content, _ = os.ReadFile(profile)
	if strings.Contains(string(content), installMarkerBegin) {
		t.Errorf("hook still present after uninstall:\n%s", content)
	}
	if !strings.Contains(string(content), "export EDITOR=vim") {
		t.Error("uninstall removed unrelated profile content")
	}

	installed, err = IsInstalled(Zsh)
	if err != nil || installed {
		t.Errorf("IsInstalled = %v, %v after uninstall", installed, err)
	}
}

func TestUninstallMissingProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := Uninstall(Bash); err != nil {
		t.Errorf("Uninstall without a profile: %v", err)
	}
}
