package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starfeel/star/internal/export"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of an analysis result",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := export.Schema()
		if err != nil {
			return fmt.Errorf("build schema: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
