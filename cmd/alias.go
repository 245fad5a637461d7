package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"oops/internal/shell"
)

var aliasCmd = &cobra.Command{
	Use:   "alias [name]",
	Short: "Print the shell hook",
	Long: `Prints a shell function that corrects your previous command. Source it
from your shell profile, e.g.

  eval "$(oops alias)"      # bash, zsh
  oops alias | source       # fish`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAlias,
}

var (
	aliasShell     string
	aliasInstall   bool
	aliasUninstall bool
)

func init() {
	rootCmd.AddCommand(aliasCmd)

	aliasCmd.Flags().StringVarP(&aliasShell, "shell", "s", "", "target shell: bash, zsh, fish, or powershell")
	aliasCmd.Flags().BoolVar(&aliasInstall, "install", false, "write the hook into the shell profile")
	aliasCmd.Flags().BoolVar(&aliasUninstall, "uninstall", false, "remove the hook from the shell profile")
}

func runAlias(cobraCmd *cobra.Command, args []string) error {
	name := "oops"
	if len(args) > 0 {
		name = args[0]
	}

	target := shell.Detect()
	switch aliasShell {
	case "":
	case "bash":
		target = shell.Bash
	case "zsh":
		target = shell.Zsh
	case "fish":
		target = shell.Fish
	case "powershell", "pwsh":
		target = shell.PowerShell
	default:
		return fmt.Errorf("unknown shell %q", aliasShell)
	}

	switch {
	case aliasInstall:
		if err := shell.Install(target, name); err != nil {
			return err
		}
		fmt.Printf("installed the %s hook, restart your shell to pick it up\n", target)
	case aliasUninstall:
		if err := shell.Uninstall(target); err != nil {
			return err
		}
		fmt.Printf("removed the %s hook\n", target)
	default:
		fmt.Println(shell.AliasScript(target, name))
	}
	return nil
}
