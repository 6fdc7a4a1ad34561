// Package dataset assembles extracted listings into the final tabular
// dataset: pages are concatenated in caller order, prices coerced to
// numbers, and titles split into make and model columns.
package dataset

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rmcnab/motorsales/internal/extract"
)

// Record is one row of the output dataset. Nil pointers mean the value
// was missing or failed coercion; empty enum strings mean missing.
type Record struct {
	Price        *float64             `json:"price" yaml:"price"`
	Title        string               `json:"title" yaml:"title"`
	Subtitle     string               `json:"subtitle" yaml:"subtitle"`
	Year         *int                 `json:"year" yaml:"year"`
	Style        extract.Style        `json:"style" yaml:"style"`
	Mileage      *int                 `json:"mileage" yaml:"mileage"`
	Engine       *float64             `json:"engine" yaml:"engine"`
	Transmission extract.Transmission `json:"transmission" yaml:"transmission"`
	Fuel         extract.Fuel         `json:"fuel" yaml:"fuel"`
	Make         string               `json:"make" yaml:"make"`
	Model        string               `json:"model" yaml:"model"`
}

// Aggregate flattens per-page listing slices into one ordered dataset.
// Relative order is exactly the caller's: page order first, document
// order within a page. No sorting, no deduplication.
func Aggregate(pages [][]extract.Listing) []Record {
	var total int
	for _, page := range pages {
		total += len(page)
	}

	records := make([]Record, 0, total)
	for _, page := range pages {
		for _, l := range page {
			carMake, carModel := SplitTitle(l.Title)
			records = append(records, Record{
				Price:        CoercePrice(l.PriceText),
				Title:        l.Title,
				Subtitle:     l.Subtitle,
				Year:         l.Year,
				Style:        l.Style,
				Mileage:      l.Mileage,
				Engine:       l.Engine,
				Transmission: l.Transmission,
				Fuel:         l.Fuel,
				Make:         carMake,
				Model:        carModel,
			})
		}
	}
	return records
}

// CoercePrice parses currency text like "£12,450" into a number.
// Unparseable text ("Call for price", "POA") becomes nil, never an
// error: price is the one field where bad values are tolerated.
func CoercePrice(text string) *float64 {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// SplitTitle splits a listing title on its first whitespace run into
// make and model. A title with no whitespace is all make, model empty.
func SplitTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	i := strings.IndexFunc(title, unicode.IsSpace)
	if i < 0 {
		return title, ""
	}
	return title[:i], strings.TrimLeftFunc(title[i:], unicode.IsSpace)
}
