package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect and validate analysis documents",
	Long: `An analysis document holds the keyword lexicons, thresholds and modifier
tables. star embeds a default one; --lexicon or analysis.lexicon points to
a replacement.`,
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an analysis document and list every problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else if settings, err := loadSettings(); err == nil {
			path = settings.Analysis.Lexicon
		}

		lex, err := lexicon.Load(path)
		var cfgErr *lexicon.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d problem(s)\n", cfgErr.Source, len(cfgErr.Problems))
			for _, p := range cfgErr.Problems {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
			}
			return fmt.Errorf("%s is not a valid analysis document", cfgErr.Source)
		}
		if err != nil {
			return err
		}

		total := 0
		for _, c := range model.Categories {
			total += len(lex.Entries(c))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d keywords)\n", lex.Source(), total)
		return nil
	},
}

var lexiconShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show keyword counts and thresholds of the active document",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		lex, err := lexicon.Load(settings.Analysis.Lexicon)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		th := lex.Thresholds()
		fmt.Fprintf(out, "Source:     %s\n", lex.Source())
		fmt.Fprintf(out, "Thresholds: high %.2f, medium %.2f, low %.2f\n", th.High, th.Medium, th.Low)
		fmt.Fprintf(out, "Ambiguity:  %.2f (score scale %.2f)\n\n", lex.AmbiguityThreshold(), lex.ScoreScale())

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tGROUP\tKEYWORDS")
		for _, g := range lex.Summary() {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", g.Category, g.Group, g.Keywords)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out, "\nStructure patterns:")
		for _, c := range model.Categories {
			fmt.Fprintf(out, "  %-6s %s\n", c, lex.StructurePattern(c))
		}
		return nil
	},
}

var lexiconDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in analysis document",
	Long: `Print the embedded document so it can be copied and edited:

  star lexicon default > my-lexicon.yaml
  star analyze --lexicon my-lexicon.yaml "..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(lexicon.DefaultDocument())
		return err
	},
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconValidateCmd)
	lexiconCmd.AddCommand(lexiconShowCmd)
	lexiconCmd.AddCommand(lexiconDefaultCmd)
}
