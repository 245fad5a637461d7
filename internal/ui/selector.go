package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"oops/internal/corrector"
)

// ErrNoSelection is returned when the user dismisses the picker.
var ErrNoSelection = errors.New("no correction selected")

// IsInteractive reports whether stdin and stdout are both terminals, so the
// picker can fall back to printing when output is piped.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or a sane default off-terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// SelectCorrection shows the ranked corrections and returns the chosen one.
// With a single candidate the picker is skipped and the candidate returned
// directly, mirroring what confirmation-free operation expects.
func SelectCorrection(corrected []corrector.CorrectedCommand, requireConfirmation bool) (corrector.CorrectedCommand, error) {
	if len(corrected) == 0 {
		return corrector.CorrectedCommand{}, ErrNoSelection
	}
	if !requireConfirmation {
		return corrected[0], nil
	}

	options := make([]huh.Option[int], len(corrected))
	for i, cc := range corrected {
		label := cc.Script
		if name := cc.RuleName(); name != "" {
			label = fmt.Sprintf("%s  %s", cc.Script, HiBlack("["+name+"]"))
		}
		options[i] = huh.NewOption(label, i)
	}

	var picked int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Did you mean:").
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return corrector.CorrectedCommand{}, ErrNoSelection
		}
		return corrector.CorrectedCommand{}, err
	}
	return corrected[picked], nil
}

// PrintCorrections writes the ranked corrections to stdout, one per line,
// wrapped to the terminal width. Used off-terminal and with --list.
func PrintCorrections(corrected []corrector.CorrectedCommand) {
	width := terminalWidth()
	for i, cc := range corrected {
		line := fmt.Sprintf("%s %s", Green(fmt.Sprintf("%d.", i+1)), cc.Script)
		if name := cc.RuleName(); name != "" {
			line += "  " + HiBlack("["+name+"]")
		}
		fmt.Println(wordwrap.String(line, width))
	}
}

// PrintNoCorrections tells the user nothing matched.
func PrintNoCorrections(script string) {
	fmt.Printf("%s no corrections for %s\n", Yellow("?"), lipgloss.NewStyle().Bold(true).Render(script))
}
