// Package extract turns raw search result markup into typed listings.
//
// The page layout is fixed: a result list of listing cards, each with a
// price, title, subtitle and a variable-length list of short "key spec"
// fragments ("2019 (19 reg)", "Manual", "1.2L", ...). Fragments are
// classified independently into six fields by anchored pattern matches.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	resultSelector   = ".search-page__results ul li.search-page__result"
	contentSelector  = ".product-card-content"
	priceSelector    = ".product-card-pricing__price"
	titleSelector    = ".product-card-details__title"
	subtitleSelector = ".product-card-details__subtitle"
	specsSelector    = "ul.listing-key-specs li"
)

// Listing is one vehicle card as extracted from the page. Price stays
// raw text here; numeric coercion happens during aggregation. Nil
// pointers and zero-valued enums mean the field was missing.
type Listing struct {
	PriceText    string
	Title        string
	Subtitle     string
	Year         *int
	Style        Style
	Mileage      *int
	Engine       *float64
	Transmission Transmission
	Fuel         Fuel
}

// MalformedListingError reports a listing card missing a required
// sub-element. It aborts extraction for the whole page: there is no
// per-listing skip, a broken card means the layout assumptions no
// longer hold.
type MalformedListingError struct {
	Element string // selector of the absent sub-element
}

func (e *MalformedListingError) Error() string {
	return fmt.Sprintf("malformed listing: missing required element %q", e.Element)
}

// Extract parses one search results page into listings, preserving
// document order. A page with no listing cards yields an empty slice
// and no error. Extraction is a pure function of the markup.
func Extract(html string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var listings []Listing
	var extractErr error

	doc.Find(resultSelector).EachWithBreak(func(_ int, result *goquery.Selection) bool {
		content := result.Find(contentSelector).First()
		if content.Length() == 0 {
			extractErr = &MalformedListingError{Element: contentSelector}
			return false
		}

		var l Listing
		for _, req := range []struct {
			sel string
			dst *string
		}{
			{priceSelector, &l.PriceText},
			{titleSelector, &l.Title},
			{subtitleSelector, &l.Subtitle},
		} {
			node := content.Find(req.sel).First()
			if node.Length() == 0 {
				extractErr = &MalformedListingError{Element: req.sel}
				return false
			}
			*req.dst = strings.TrimSpace(node.Text())
		}

		content.Find(specsSelector).Each(func(_ int, spec *goquery.Selection) {
			l.classifySpec(strings.TrimSpace(spec.Text()))
		})

		listings = append(listings, l)
		return true
	})

	if extractErr != nil {
		return nil, extractErr
	}
	return listings, nil
}
