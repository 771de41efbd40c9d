package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starfeel/star/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long: `Serve the Model Context Protocol on standard input and output with a
single tool, analyze_emotion, so assistants can classify Japanese text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		an, err := newAnalyzer(settings)
		if err != nil {
			return err
		}
		defer an.Close()

		return mcpserver.ServeStdio(mcpserver.New(an, Version, settings.Debug))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
