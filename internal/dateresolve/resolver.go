// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dateresolve determines the publication date of a search
// result. Implements: prd002-dating (R1-R4).
//
// Resolution runs three tiers in order, first success wins: provider
// metadata fields, date-shaped patterns in the visible text, and
// structural markers in the fetched page source. A candidate that fails
// all three tiers is reported as not found and must be dropped by the
// caller.
package dateresolve

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Item is one raw search result to date. Metatags holds however many
// metadata records the provider returned for the page, each a flat
// field-name → value map.
type Item struct {
	Title    string
	Snippet  string
	Link     string
	Metatags []map[string]string
}

// Resolution is the outcome of date resolution for one item.
type Resolution struct {
	// Date is the normalized ISO date (YYYY-MM-DD); empty when Source
	// is DateNotFound.
	Date string

	// Source is the tier that produced the date.
	Source types.DateSource

	// SourceCodeLink points at the raw markup when the date was found
	// there.
	SourceCodeLink string
}

// metadataFields is the ordered list of known metadata field names
// scanned by the metadata tier.
var metadataFields = []string{
	"article:published_time",
	"datePublished",
	"date",
	"dc.date",
	"og:updated_time",
	"publisheddate",
	"pubdate",
	"datemodified",
	"created",
	"lastmodified",
}

// dateLayouts is the ordered list of accepted timestamp layouts for
// metadata and page-source values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"2 January 2006",
	"2006/01/02",
}

// Resolver resolves publication dates, fetching page source for the
// final tier. The zero value is not usable; use New.
type Resolver struct {
	client    *http.Client
	userAgent string

	// pages caches fetched page bodies by URL for the session, so
	// repeated links are inspected only once.
	pages *lru.Cache[string, string]
}

// New returns a Resolver using the given HTTP client for source-page
// inspection.
func New(client *http.Client, cfg types.DateResolveConfig) *Resolver {
	size := cfg.PageCacheSize
	if size <= 0 {
		size = 128
	}
	// Size is positive, so constructing the cache cannot fail.
	pages, _ := lru.New[string, string](size)
	return &Resolver{
		client:    client,
		userAgent: cfg.UserAgent,
		pages:     pages,
	}
}

// Resolve runs the tiers in order and returns the first hit. Fetch
// failures in the source tier are absorbed, never returned as errors.
func (r *Resolver) Resolve(ctx context.Context, item Item) Resolution {
	tiers := []func(context.Context, Item) (Resolution, bool){
		r.fromMetadata,
		r.fromContent,
		r.fromSource,
	}
	for _, tier := range tiers {
		if res, ok := tier(ctx, item); ok {
			return res
		}
	}
	return Resolution{Source: types.DateNotFound}
}

// fromMetadata scans the provider metadata records for the first field
// that parses to a valid calendar date.
func (r *Resolver) fromMetadata(_ context.Context, item Item) (Resolution, bool) {
	for _, record := range item.Metatags {
		for _, field := range metadataFields {
			value, ok := record[field]
			if !ok || value == "" {
				continue
			}
			if t, ok := parseDate(value); ok {
				return Resolution{
					Date:   t.Format("2006-01-02"),
					Source: types.DateFromMetadata,
				}, true
			}
		}
	}
	return Resolution{}, false
}

// fromContent matches date-shaped text patterns against the title and
// snippet.
func (r *Resolver) fromContent(_ context.Context, item Item) (Resolution, bool) {
	if t, ok := extractTextDate(item.Title + " " + item.Snippet); ok {
		return Resolution{
			Date:   t.Format("2006-01-02"),
			Source: types.DateFromContent,
		}, true
	}
	return Resolution{}, false
}

// fromSource fetches the linked page and scans its markup for
// structural date markers.
func (r *Resolver) fromSource(ctx context.Context, item Item) (Resolution, bool) {
	if item.Link == "" {
		return Resolution{}, false
	}
	slog.Debug("inspecting page source for date", "url", item.Link)
	html, err := r.fetchPage(ctx, item.Link)
	if err != nil {
		slog.Debug("page source unavailable", "url", item.Link, "error", err)
		return Resolution{}, false
	}
	t, ok := extractMarkupDate(html)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		Date:           t.Format("2006-01-02"),
		Source:         types.DateFromSource,
		SourceCodeLink: "view-source:" + item.Link,
	}, true
}

// parseDate parses a timestamp-like string into a calendar date.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
