// Package scrape orchestrates a full run: fetch each requested page in
// order, extract its listings, aggregate into one dataset, and persist
// a tabular artifact named from (date, make, model).
package scrape

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rmcnab/motorsales/internal/dataset"
	"github.com/rmcnab/motorsales/internal/extract"
	"github.com/rmcnab/motorsales/internal/fetch"
	"github.com/rmcnab/motorsales/internal/logger"
	"github.com/rmcnab/motorsales/internal/output"
)

// Fetcher abstracts the page source so runs can be tested without the
// network.
type Fetcher interface {
	Page(ctx context.Context, q fetch.Query) (string, error)
}

// Params describes one scrape invocation.
type Params struct {
	Make     string   `validate:"required"`
	Model    string   `validate:"required"`
	Postcode string   `validate:"required,min=5,max=8"`
	Pages    []string `validate:"dive,numeric"` // empty means one unpaginated fetch
	Format   output.Format
	DataDir  string `validate:"required"`
}

// Runner executes scrapes. The run timestamp is captured once at
// construction and threaded through cache keys and the artifact name,
// so a run is deterministic for a given markup.
type Runner struct {
	fetcher  Fetcher
	now      time.Time
	validate *validator.Validate
}

// NewRunner creates a runner around f with now as the run timestamp.
func NewRunner(f Fetcher, now time.Time) *Runner {
	return &Runner{
		fetcher:  f,
		now:      now,
		validate: validator.New(),
	}
}

// Run executes one scrape and returns the path of the written artifact.
// Pages are processed strictly sequentially; the first fetch or
// extraction failure aborts the whole run.
func (r *Runner) Run(ctx context.Context, p Params) (string, error) {
	if err := r.validate.Struct(p); err != nil {
		return "", fmt.Errorf("invalid scrape parameters: %w", err)
	}

	tokens := p.Pages
	if len(tokens) == 0 {
		tokens = []string{""}
	}

	pages := make([][]extract.Listing, 0, len(tokens))
	for _, token := range tokens {
		html, err := r.fetcher.Page(ctx, fetch.Query{
			Make:     p.Make,
			Model:    p.Model,
			Postcode: p.Postcode,
			Page:     token,
		})
		if err != nil {
			return "", err
		}

		listings, err := extract.Extract(html)
		if err != nil {
			return "", err
		}
		logger.Debug("extracted page", "page", token, "listings", len(listings))
		pages = append(pages, listings)
	}

	records := dataset.Aggregate(pages)

	format := p.Format
	if format == "" {
		format = output.FormatCSV
	}

	dir := filepath.Join(p.DataDir, "clean")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.%s",
		r.now.Format("2006-01-02"), p.Make, p.Model, format.Ext()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w, err := output.NewWriter(f, format)
	if err != nil {
		return "", err
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to flush dataset: %w", err)
	}

	logger.Info("wrote dataset", "path", path, "records", len(records))
	return path, nil
}
