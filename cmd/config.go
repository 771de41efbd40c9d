package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/starfeel/star/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage star configuration",
	Long:  `Create and inspect the star configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a default configuration file in your home directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("error finding home directory: %w", err)
			}
			configPath = filepath.Join(home, config.FileName+".yaml")
		}

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file already exists at %s\n", configPath)
			return nil
		}

		if err := os.WriteFile(configPath, []byte(config.DefaultFile), 0644); err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective settings after merging the config file,
STAR_* environment variables and command-line flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# Configuration file: %s\n", used)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "# No configuration file found. Run 'star config init' to create one.")
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("error encoding settings: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
