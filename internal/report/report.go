// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders accepted articles for the user, grouped by
// publication year. Implements: prd005-reporting.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Report is the final result set handed to the presentation boundary.
type Report struct {
	Parameters types.SearchParameters  `json:"parameters" yaml:"parameters"`
	Articles   []types.ArticleResult   `json:"articles" yaml:"articles"`
	Sources    []types.GroundingSource `json:"grounding_sources,omitempty" yaml:"grounding_sources,omitempty"`
}

// GroupByYear buckets articles by publication year and returns the
// years in descending order alongside the buckets. Article order
// within a bucket is preserved.
func GroupByYear(articles []types.ArticleResult) ([]string, map[string][]types.ArticleResult) {
	buckets := make(map[string][]types.ArticleResult)
	for _, a := range articles {
		year := a.Year()
		if year == "" {
			year = "undated"
		}
		buckets[year] = append(buckets[year], a)
	}

	years := make([]string, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, buckets
}

// FormatTable writes a human-readable, year-grouped listing to w.
func FormatTable(r Report, w io.Writer) {
	if len(r.Articles) == 0 && len(r.Sources) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	years, buckets := GroupByYear(r.Articles)
	for _, year := range years {
		fmt.Fprintf(w, "%s\n%s\n", year, strings.Repeat("-", 80))
		for _, a := range buckets[year] {
			fmt.Fprintf(w, "%-7s %-12s %s\n", stars(a.RelevanceScore), a.Date, a.Headline)
			if a.Snippet != "" {
				fmt.Fprintf(w, "        %s\n", a.Snippet)
			}
			fmt.Fprintf(w, "        %s", a.URL)
			if a.DateSource != "" {
				fmt.Fprintf(w, "  (date: %s)", a.DateSource)
			}
			fmt.Fprintln(w)
			if a.SourceCodeLink != "" {
				fmt.Fprintf(w, "        %s\n", a.SourceCodeLink)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(w, "%d articles", len(r.Articles))
	if n := len(r.Sources); n > 0 {
		fmt.Fprintf(w, ", %d grounding sources", n)
	}
	fmt.Fprintln(w)

	if len(r.Sources) > 0 {
		fmt.Fprintf(w, "\nGrounding sources\n%s\n", strings.Repeat("-", 80))
		for _, s := range r.Sources {
			fmt.Fprintf(w, "%s\n        %s\n", s.Title, s.URI)
		}
	}
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(r Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes the report as YAML to w.
func FormatYAML(r Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// stars renders a 1-5 score as a star gauge; unscored (AI fallback)
// articles render blank.
func stars(score int) string {
	if score <= 0 {
		return ""
	}
	if score > 5 {
		score = 5
	}
	return strings.Repeat("*", score) + strings.Repeat(".", 5-score)
}
