package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	installMarkerBegin = "# >>> oops hook >>>"
	installMarkerEnd   = "# <<< oops hook <<<"
)

// profilePath returns the startup file the hook goes into.
func profilePath(t Type) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch t {
	case Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	case PowerShell:
		return filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1"), nil
	default:
		return filepath.Join(home, ".bashrc"), nil
	}
}

// hookBlock is the marked region appended to the profile. Markers make the
// install idempotent and the uninstall exact.
func hookBlock(t Type, alias string) string {
	return fmt.Sprintf("%s\n%s\n%s\n", installMarkerBegin, AliasScript(t, alias), installMarkerEnd)
}

// Install appends the correction hook to the shell's profile. Installing
// twice is a no-op.
func Install(t Type, alias string) error {
	path, err := profilePath(t)
	if err != nil {
		return err
	}

	installed, err := IsInstalled(t)
	if err != nil {
		return err
	}
	if installed {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", hookBlock(t, alias)); err != nil {
		return fmt.Errorf("failed to write hook to %s: %w", path, err)
	}
	return nil
}

// Uninstall removes the marked hook region from the shell's profile.
func Uninstall(t Type) error {
	path, err := profilePath(t)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	stripped, found := stripHook(string(content))
	if !found {
		return nil
	}
	return os.WriteFile(path, []byte(stripped), 0o644)
}

// IsInstalled reports whether the profile already carries the hook.
func IsInstalled(t Type) (bool, error) {
	path, err := profilePath(t)
	if err != nil {
		return false, err
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.Contains(string(content), installMarkerBegin), nil
}

// stripHook removes every marked hook region, including the blank line the
// installer put in front of it.
func stripHook(content string) (string, bool) {
	found := false
	for {
		begin := strings.Index(content, installMarkerBegin)
		if begin < 0 {
			return content, found
		}
		end := strings.Index(content[begin:], installMarkerEnd)
		if end < 0 {
			return content, found
		}
		after := begin + end + len(installMarkerEnd)
		if after < len(content) && content[after] == '\n' {
			after++
		}
		head := strings.TrimRight(content[:begin], "\n")
		if head != "" {
			head += "\n"
		}
		content = head + content[after:]
		found = true
	}
}
