package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/starfeel/star/internal/analyzer"
	"github.com/starfeel/star/internal/config"
	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/tokenizer"
)

var cfgFile string

// Version is set at build time with -ldflags "-X github.com/starfeel/star/cmd.Version=...".
var Version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "star",
	Short: "STAR+FEEL emotion analysis for Japanese text",
	Long: `star classifies a Japanese text about a moving experience into one of the
four STAR categories (SENSE, THINK, ACT, RELATE) and measures its FEEL
intensity. Results come with confidence scores, matched keywords and the
sentence type that supported the decision.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.star.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (tokenizer choice, per-analysis summaries)")
	rootCmd.PersistentFlags().String("tokenizer", tokenizer.BackendAuto, "tokenizer backend: auto, kagome, mecab, none")
	rootCmd.PersistentFlags().String("mecab-path", "", "mecab binary (default: search PATH)")
	rootCmd.PersistentFlags().String("lexicon", "", "analysis document to use instead of the built-in one")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("tokenizer.backend", rootCmd.PersistentFlags().Lookup("tokenizer"))
	viper.BindPFlag("tokenizer.mecab_path", rootCmd.PersistentFlags().Lookup("mecab-path"))
	viper.BindPFlag("analysis.lexicon", rootCmd.PersistentFlags().Lookup("lexicon"))

	config.SetDefaults(viper.GetViper())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(config.FileName)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadSettings returns the validated settings after flags and config are merged.
func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// newAnalyzer builds the analyzer every command shares: lexicon from
// settings, tokenizer acquired once.
func newAnalyzer(s config.Settings, opts ...analyzer.Option) (*analyzer.Analyzer, error) {
	lex, err := lexicon.Load(s.Analysis.Lexicon)
	if err != nil {
		return nil, err
	}
	tok := tokenizer.Open(s.Tokenizer.Backend, tokenizer.Options{
		Debug:     s.Debug,
		MecabPath: s.Tokenizer.MecabPath,
	})
	opts = append([]analyzer.Option{analyzer.WithDebug(s.Debug)}, opts...)
	an, err := analyzer.New(lex, tok, opts...)
	if err != nil {
		_ = tok.Close()
		return nil, err
	}
	return an, nil
}
