package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmcnab/motorsales/internal/cache"
	"github.com/rmcnab/motorsales/internal/fetch"
	"github.com/rmcnab/motorsales/internal/logger"
	"github.com/rmcnab/motorsales/internal/output"
	"github.com/rmcnab/motorsales/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch and extract listings for one make/model search",
	Long: `Scrape search result pages for a make/model near a postcode and
write the extracted listings as one tabular dataset.

Pages are fetched strictly in the order given and the dataset preserves
that order. Raw pages are cached per hour under <data-dir>/cache, so
re-running within the hour reuses the cached markup.

Examples:
  motorsales scrape --make Ford --model Fiesta --postcode SW1A1AA
  motorsales scrape --make BMW --model 320d --postcode M11AE \
      --pages 1,2 --format jsonl`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	flags.String("make", "", "vehicle make (required)")
	flags.String("model", "", "vehicle model (required)")
	flags.String("postcode", "", "search postcode (required)")
	flags.StringSlice("pages", nil, "page tokens to fetch (default: first page only)")
	flags.String("format", "csv", "output format: csv, json, jsonl, yaml")
	flags.Duration("timeout", 30*time.Second, "request timeout")

	_ = scrapeCmd.MarkFlagRequired("make")
	_ = scrapeCmd.MarkFlagRequired("model")
	_ = scrapeCmd.MarkFlagRequired("postcode")
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	carMake, _ := cmd.Flags().GetString("make")
	carModel, _ := cmd.Flags().GetString("model")
	postcode, _ := cmd.Flags().GetString("postcode")
	pages, _ := cmd.Flags().GetStringSlice("pages")
	format, _ := cmd.Flags().GetString("format")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	dataDir := viper.GetString("data_dir")

	// One timestamp per run: it keys the cache bucket and names the
	// output artifact.
	now := time.Now()

	store := cache.New(filepath.Join(dataDir, "cache"))
	client := fetch.New(store, now, fetch.Config{Timeout: timeout})
	runner := scrape.NewRunner(client, now)

	logger.Info("starting scrape",
		"make", carMake, "model", carModel, "postcode", postcode, "pages", len(pages))

	path, err := runner.Run(ctx, scrape.Params{
		Make:     carMake,
		Model:    carModel,
		Postcode: postcode,
		Pages:    pages,
		Format:   output.Format(format),
		DataDir:  dataDir,
	})
	if err != nil {
		logger.Error("scrape failed", "error", err)
		return err
	}

	logger.Info("scrape complete", "output", path)
	return nil
}
