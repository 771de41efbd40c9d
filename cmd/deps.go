package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starfeel/star/internal/tokenizer"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check which tokenizer backends are available",
	Long: `Probe each tokenizer backend in auto-selection order. Without any backend
star still works in keyword-only mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		statuses := tokenizer.Probe(tokenizer.Options{
			Debug:     settings.Debug,
			MecabPath: settings.Tokenizer.MecabPath,
		})

		if output, _ := cmd.Flags().GetString("output"); output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(statuses)
		}

		out := cmd.OutOrStdout()
		for _, s := range statuses {
			mark := "✗"
			if s.Installed {
				mark = "✓"
			}
			line := fmt.Sprintf("%s %-7s", mark, s.Name)
			if s.Version != "" {
				line += " " + s.Version
			}
			if s.Message != "" {
				line += " (" + s.Message + ")"
			}
			fmt.Fprintln(out, line)
		}
		selected := tokenizer.Open(settings.Tokenizer.Backend, tokenizer.Options{MecabPath: settings.Tokenizer.MecabPath})
		defer selected.Close()
		fmt.Fprintf(out, "\nselected backend for %q: %s\n", settings.Tokenizer.Backend, selected.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().String("output", "text", "Output format: text, json")
}
