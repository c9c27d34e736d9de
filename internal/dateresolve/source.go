// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dateresolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxPageBytes caps how much of a source page is read for inspection.
const maxPageBytes = 2 << 20

// fetchPage retrieves the raw markup at url, serving repeats from the
// session cache.
func (r *Resolver) fetchPage(ctx context.Context, url string) (string, error) {
	if body, ok := r.pages.Get(url); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("reading page body: %w", err)
	}

	body := string(data)
	r.pages.Add(url, body)
	return body, nil
}

// markupMarkers is the ordered list of structural date markers scanned
// in page source. Each selector's extracted value is parsed as a
// timestamp; for the JSON-LD marker the embedded payload is decoded and
// its publication, creation, or modification date used.
var markupMarkers = []struct {
	selector string
	extract  func(*goquery.Selection) string
}{
	{
		selector: "time[datetime]",
		extract:  func(s *goquery.Selection) string { v, _ := s.Attr("datetime"); return v },
	},
	{
		selector: `meta[property="article:published_time"]`,
		extract:  func(s *goquery.Selection) string { v, _ := s.Attr("content"); return v },
	},
	{
		selector: `meta[name="date"]`,
		extract:  func(s *goquery.Selection) string { v, _ := s.Attr("content"); return v },
	},
	{
		selector: `meta[name="publishdate"]`,
		extract:  func(s *goquery.Selection) string { v, _ := s.Attr("content"); return v },
	},
	{
		selector: `script[type="application/ld+json"]`,
		extract:  func(s *goquery.Selection) string { return structuredDataDate(s.Text()) },
	},
}

// extractMarkupDate scans page markup for the first structural marker
// carrying a valid date.
func extractMarkupDate(html string) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return time.Time{}, false
	}

	for _, marker := range markupMarkers {
		var found time.Time
		ok := false
		doc.Find(marker.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			value := marker.extract(s)
			if value == "" {
				return true
			}
			if t, valid := parseDate(value); valid {
				found, ok = t, true
				return false
			}
			return true
		})
		if ok {
			return found, true
		}
	}
	return time.Time{}, false
}

// structuredDataDate pulls a date string from a JSON-LD payload. The
// payload may be a single object or an array of objects; the first of
// datePublished, dateCreated, dateModified found wins.
func structuredDataDate(payload string) string {
	var node any
	if err := json.Unmarshal([]byte(payload), &node); err != nil {
		return ""
	}

	objects := []any{node}
	if list, ok := node.([]any); ok {
		objects = list
	}

	for _, o := range objects {
		obj, ok := o.(map[string]any)
		if !ok {
			continue
		}
		for _, field := range []string{"datePublished", "dateCreated", "dateModified"} {
			if v, ok := obj[field].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}
