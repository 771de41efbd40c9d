package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/starfeel/star/internal/export"
	"github.com/starfeel/star/internal/model"
	"github.com/starfeel/star/internal/store"
)

var (
	batchFormat string
	batchDB     string
)

var batchCmd = &cobra.Command{
	Use:   "batch <file|->",
	Short: "Analyze a file with one text per line",
	Long: `Analyze every non-empty line of a file (or standard input with "-") in
parallel and write the results in input order.

Examples:
  star batch reviews.txt --format csv > results.csv
  star batch reviews.txt --db sqlite:results.db
  cat reviews.txt | star batch - --workers 4 --db postgres://localhost/star`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", string(export.FormatJSON), "Output format: json, csv")
	batchCmd.Flags().Int("workers", 0, "Parallel workers (default: one per CPU)")
	batchCmd.Flags().StringVar(&batchDB, "db", "", "Also store rows in a SQL table (sqlite:path, postgres://..., mysql://...)")

	viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
}

// readLines returns the non-empty lines of r with their 1-based line numbers.
func readLines(r io.Reader) ([]string, []int, error) {
	var (
		texts []string
		lines []int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		texts = append(texts, line)
		lines = append(lines, n)
	}
	return texts, lines, sc.Err()
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(batchFormat)
	if err != nil {
		return err
	}
	if format != export.FormatJSON && format != export.FormatCSV {
		return fmt.Errorf("batch supports json and csv output, not %s", format)
	}
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	texts, lines, err := readLines(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	an, err := newAnalyzer(settings)
	if err != nil {
		return err
	}
	defer an.Close()

	items, err := an.AnalyzeBatch(ctx, texts, settings.Batch.Workers)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	results := make([]model.Result, 0, len(items))
	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lines[item.Index], item.Err)
			continue
		}
		results = append(results, item.Result)
	}

	if batchDB != "" {
		db, err := store.Open(ctx, batchDB)
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := db.Insert(ctx, results)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "stored %d results in %s (%s)\n", n, store.Table, db.Dialect())
	}

	if err := export.WriteList(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d texts could not be analyzed", failed, len(texts))
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
