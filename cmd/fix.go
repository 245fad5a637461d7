package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"oops/internal/config"
	"oops/internal/core"
	"oops/internal/corrector"
	"oops/internal/executable"
	"oops/internal/logger"
	"oops/internal/metrics"
	"oops/internal/rules"
	"oops/internal/shell"
	"oops/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix -- <command>...",
	Short: "Correct a failed command",
	Long: `Re-runs the given command to capture its output, evaluates the
correction rules against it, and executes the correction you pick.`,
	Example: `  oops fix -- gti status
  oops fix --list -- apt install vim
  oops fix --rule sudo -- apt install vim`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

var (
	fixCopy bool
	fixList bool
	fixYes  bool
	fixRule string
)

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().BoolVarP(&fixCopy, "copy", "c", false, "copy the chosen correction to the clipboard instead of running it")
	fixCmd.Flags().BoolVarP(&fixList, "list", "l", false, "print all corrections without running any")
	fixCmd.Flags().BoolVarP(&fixYes, "yes", "y", false, "run the best correction without confirming")
	fixCmd.Flags().StringVar(&fixRule, "rule", "", "evaluate a single named rule, even if disabled")
}

func runFix(cobraCmd *cobra.Command, args []string) error {
	ctx := cobraCmd.Context()
	cfg := config.Get()
	settings := cfg.Settings()
	if debug {
		settings.Debug = true
	}

	script := strings.TrimSpace(strings.Join(args, " "))
	if script == "" {
		return fmt.Errorf("nothing to fix")
	}
	if first := strings.Fields(script)[0]; first == "oops" {
		// The alias hands us the previous history entry; correcting our own
		// invocation would loop.
		return fmt.Errorf("refusing to correct an oops invocation")
	}

	output := shell.RunAndCapture(ctx, script, settings.WaitCommand)
	failed := core.NewCommand(script, output)

	ix := executable.NewIndex(filepath.Join(config.GetDataDir(), "executables.db"))
	c := corrector.New(rules.All(ix, settings.FuzzyCutoff))
	defer c.Close()

	var corrected []corrector.CorrectedCommand
	if fixRule != "" {
		var err error
		corrected, err = c.MatchRule(failed, fixRule)
		if err != nil {
			return err
		}
	} else {
		corrected = c.GetCorrectedCommands(failed, settings)
	}

	if settings.Debug {
		if snapshot, err := metrics.Get().JSON(); err == nil {
			logger.Debug("correction pass finished", "metrics", string(snapshot))
		}
	}

	if len(corrected) == 0 {
		ui.PrintNoCorrections(script)
		return nil
	}

	if fixList || !ui.IsInteractive() {
		ui.PrintCorrections(corrected)
		return nil
	}

	chosen, err := ui.SelectCorrection(corrected, settings.RequireConfirmation && !fixYes)
	if err != nil {
		if errors.Is(err, ui.ErrNoSelection) {
			return nil
		}
		return err
	}

	if fixCopy {
		if err := clipboard.WriteAll(chosen.Script); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Printf("%s copied %s\n", ui.Green("✓"), chosen.Script)
		return nil
	}

	logger.Debug("running correction", "script", chosen.Script, "rule", chosen.RuleName())
	return chosen.Run(ctx)
}
