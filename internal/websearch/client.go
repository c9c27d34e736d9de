// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch drives the direct web-search path: it builds the
// provider query, paginates the Google Custom Search API, enriches each
// raw item with a publication date and a relevance score, and returns
// accepted articles in ranked order. Implements: prd001-discovery
// (R1-R6).
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/pdiddy/evidence-engine/internal/dateresolve"
	"github.com/pdiddy/evidence-engine/internal/relevance"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// searchBase is the Google Custom Search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchBase = "https://www.googleapis.com/customsearch/v1"

// DateResolver resolves a publication date for one raw result item.
// *dateresolve.Resolver implements it; tests supply a stub.
type DateResolver interface {
	Resolve(ctx context.Context, item dateresolve.Item) dateresolve.Resolution
}

// Client queries the Google Custom Search API.
type Client struct {
	HTTP     *http.Client
	Resolver DateResolver
	Config   types.WebSearchConfig
}

// Search runs the full paginated search for params and returns accepted
// articles sorted by relevance score, most recent first on ties.
//
// Pagination stops early on an empty page or a provider rate limit
// (HTTP 429); the rate limit is a graceful stop, not an error, and
// whatever was accumulated so far is returned. Any other non-200
// response fails the whole search.
func (c *Client) Search(ctx context.Context, params types.SearchParameters) ([]types.ArticleResult, error) {
	if c.Config.APIKey == "" || c.Config.EngineID == "" {
		return nil, fmt.Errorf("web search credentials not configured")
	}

	query := BuildQuery(params)
	slog.Info("starting direct search", "query", query)

	var articles []types.ArticleResult
	for page := 0; page < c.Config.MaxPages; page++ {
		items, err := c.fetchPage(ctx, query, params, page)
		if err != nil {
			if errors.Is(err, errRateLimited) {
				slog.Warn("provider rate limit reached, stopping pagination", "page", page)
				break
			}
			return nil, err
		}
		if len(items) == 0 {
			slog.Debug("no more results", "page", page)
			break
		}

		for _, item := range items {
			article, ok := c.evaluate(ctx, item, params)
			if !ok {
				continue
			}
			articles = append(articles, article)
		}

		// Wait between pages to respect provider rate limits, but not
		// after the last page.
		if page < c.Config.MaxPages-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.Config.InterPageDelay):
			}
		}
	}

	sortArticles(articles)
	return articles, nil
}

// errRateLimited signals a 429 from the provider inside fetchPage.
var errRateLimited = errors.New("rate limited")

// searchItem is one raw result from the provider.
type searchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Pagemap struct {
		Metatags []map[string]string `json:"metatags"`
	} `json:"pagemap"`
}

// searchResponse is the provider's page payload.
type searchResponse struct {
	Items             []searchItem `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

// fetchPage requests one result page. Returns errRateLimited on 429.
func (c *Client) fetchPage(ctx context.Context, query string, params types.SearchParameters, page int) ([]searchItem, error) {
	values := url.Values{
		"key":   {c.Config.APIKey},
		"cx":    {c.Config.EngineID},
		"q":     {query},
		"start": {strconv.Itoa(page*c.Config.PageSize + 1)},
		"num":   {strconv.Itoa(c.Config.PageSize)},
	}

	// A day-span freshness hint keeps the provider focused on the
	// requested window; a single-day range still sends d0.
	if !params.StartDate.IsZero() && !params.EndDate.IsZero() {
		days := int(params.EndDate.Sub(params.StartDate).Hours() / 24)
		values.Set("dateRestrict", fmt.Sprintf("d%d", days))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchBase+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	slog.Debug("fetching result page", "page", page+1)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.Items, nil
}

// evaluate turns a raw item into an accepted article, or reports false
// when the item must be dropped: no verbatim trademark hit, no
// resolvable date, or a date outside the requested range.
func (c *Client) evaluate(ctx context.Context, item searchItem, params types.SearchParameters) (types.ArticleResult, bool) {
	fullText := item.Title + " " + item.Snippet
	if !relevance.ContainsVerbatim(fullText, params.Trademark) {
		return types.ArticleResult{}, false
	}

	score, details := relevance.Score(item.Title, item.Snippet, params.Trademark)

	res := c.Resolver.Resolve(ctx, dateresolve.Item{
		Title:    item.Title,
		Snippet:  item.Snippet,
		Link:     item.Link,
		Metatags: item.Pagemap.Metatags,
	})
	if res.Source == types.DateNotFound {
		slog.Debug("dropping candidate without resolvable date", "title", item.Title)
		return types.ArticleResult{}, false
	}
	if !withinRange(res.Date, params.StartDate, params.EndDate) {
		slog.Debug("dropping candidate outside date range", "title", item.Title, "date", res.Date)
		return types.ArticleResult{}, false
	}

	return types.ArticleResult{
		Headline:         item.Title,
		Date:             res.Date,
		Snippet:          relevance.Highlight(item.Snippet, params.Trademark),
		URL:              item.Link,
		Language:         params.Language,
		Country:          params.Country,
		Trademark:        params.Trademark,
		RelevanceScore:   score,
		RelevanceDetails: &details,
		DateSource:       res.Source,
		SourceCodeLink:   res.SourceCodeLink,
	}, true
}

// withinRange reports whether the ISO date lies in [start, end],
// inclusive on both ends.
func withinRange(isoDate string, start, end time.Time) bool {
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// sortArticles orders by relevance score descending, then by date
// descending. ISO dates compare correctly as strings.
func sortArticles(articles []types.ArticleResult) {
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].RelevanceScore != articles[j].RelevanceScore {
			return articles[i].RelevanceScore > articles[j].RelevanceScore
		}
		return articles[i].Date > articles[j].Date
	})
}
