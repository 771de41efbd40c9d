package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starfeel/star/internal/analyzer"
	"github.com/starfeel/star/internal/export"
	"github.com/starfeel/star/internal/model"
)

var (
	analyzeFormat  string
	analyzeTrace   bool
	analyzeSamples bool
)

// sampleTexts covers each category once plus a mixed SENSE text.
var sampleTexts = []string{
	"この料理、本当においしい！素晴らしい味でした。",
	"やっと数学の問題が解けた！理解できて嬉しい。",
	"マラソンを完走できて本当に嬉しい。頑張った甲斐があった。",
	"友達が励ましてくれて心から感謝している。温かい気持ちになった。",
	"夕日がとても美しく、心が洗われるような気持ちになった。",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze one or more texts",
	Long: `Analyze each argument as a separate text. With no arguments the whole of
standard input is analyzed as one text.

Examples:
  star analyze "この料理、本当においしい！"
  echo "できた、やった！" | star analyze --format json
  star analyze --samples --trace`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", string(export.FormatText), "Output format: text, json, yaml, csv")
	analyzeCmd.Flags().BoolVar(&analyzeTrace, "trace", false, "Include the normalized text, tokens and per-match scoring steps")
	analyzeCmd.Flags().BoolVar(&analyzeSamples, "samples", false, "Analyze the built-in sample texts")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	texts := args
	switch {
	case analyzeSamples:
		texts = append(append([]string(nil), sampleTexts...), args...)
	case len(texts) == 0:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		texts = []string{strings.TrimRight(string(data), "\r\n")}
	}

	an, err := newAnalyzer(settings, analyzer.WithTrace(analyzeTrace))
	if err != nil {
		return err
	}
	defer an.Close()

	results := make([]model.Result, 0, len(texts))
	for i, text := range texts {
		res, err := an.Analyze(text)
		if err != nil {
			return fmt.Errorf("text %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return export.Write(cmd.OutOrStdout(), format, results)
}
