package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"oops/internal/config"
	"oops/internal/executable"
	"oops/internal/rules"
	"oops/internal/ui"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the correction rules",
	Long: `Shows every registered rule with its effective enabled state and
priority under the current configuration.`,
	Example: `  oops rules
  oops rules --filter git
  oops rules --format yaml`,
	RunE: runRules,
}

var (
	rulesFilter string
	rulesFormat string
)

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVarP(&rulesFilter, "filter", "f", "", "fuzzy-filter rules by name")
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "table", "output format: table, json, or yaml")
}

// ruleInfo is the listing row, shared by all output formats.
type ruleInfo struct {
	Name     string `json:"name" yaml:"name"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Priority int    `json:"priority" yaml:"priority"`
}

func runRules(cobraCmd *cobra.Command, args []string) error {
	settings := config.Get().Settings()
	ix := executable.NewIndex(filepath.Join(config.GetDataDir(), "executables.db"))

	var infos []ruleInfo
	for _, rule := range rules.All(ix, settings.FuzzyCutoff) {
		if rulesFilter != "" && !fuzzy.MatchFold(rulesFilter, rule.Name()) {
			continue
		}
		infos = append(infos, ruleInfo{
			Name:     rule.Name(),
			Enabled:  settings.RuleEnabled(rule.Name(), rule.EnabledByDefault()),
			Priority: settings.RulePriority(rule.Name(), rule.Priority()),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	switch rulesFormat {
	case "json":
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(infos)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	case "table":
		printRulesTable(infos)
	default:
		return fmt.Errorf("unknown format %q", rulesFormat)
	}
	return nil
}

func printRulesTable(infos []ruleInfo) {
	title := cases.Title(language.English)
	fmt.Printf("%-28s %-10s %s\n", title.String("name"), title.String("state"), title.String("priority"))
	for _, info := range infos {
		state := ui.Green("enabled")
		if !info.Enabled {
			state = ui.HiBlack("disabled")
		}
		fmt.Printf("%-28s %-10s %d\n", info.Name, state, info.Priority)
	}
}
