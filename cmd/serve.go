package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/starfeel/star/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer as a JSON HTTP API",
	Long: `Start an HTTP server with the endpoints:

  POST /api/analyze        {"text": "..."}
  POST /api/analyze/batch  {"texts": ["...", "..."]}
  GET  /api/info

Examples:
  star serve --addr :9090
  star serve --cors-origin https://app.example.com`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", []string{"*"}, "Allowed CORS origins")
	serveCmd.Flags().Int("max-batch", server.DefaultMaxBatch, "Maximum texts per batch request")

	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve.cors_origins", serveCmd.Flags().Lookup("cors-origin"))
	viper.BindPFlag("serve.max_batch", serveCmd.Flags().Lookup("max-batch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	an, err := newAnalyzer(settings)
	if err != nil {
		return err
	}
	defer an.Close()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "star %s serving on %s (tokenizer: %s)\n", Version, settings.Serve.Addr, an.TokenizerName())
	srv := server.New(an, server.Config{
		Addr:        settings.Serve.Addr,
		CORSOrigins: settings.Serve.CORSOrigins,
		Workers:     settings.Batch.Workers,
		MaxBatch:    settings.Serve.MaxBatch,
		Version:     Version,
		Debug:       settings.Debug,
	})
	return srv.ListenAndServe(ctx)
}
