// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aisearch

import (
	"log/slog"
	"strings"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// articleDelimiter separates article blocks in the model response.
const articleDelimiter = "---ARTICLE---"

// noResultsSentinel at the start of the response text means zero
// articles, which is a valid outcome rather than a parse failure.
const noResultsSentinel = "no articles found"

// ParseArticles converts the model's delimited text response into
// articles. Blocks missing any of headline, date, snippet, or URL are
// logged and dropped, never fatal. Language and country default to the
// search parameters and are overridden when the block restates them.
func ParseArticles(text string, params types.SearchParameters) []types.ArticleResult {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToLower(trimmed), noResultsSentinel) {
		return nil
	}

	var articles []types.ArticleResult
	for _, block := range strings.Split(trimmed, articleDelimiter) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		article := types.ArticleResult{
			Trademark: params.Trademark,
			Language:  params.Language,
			Country:   params.Country,
		}
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "HEADLINE:"):
				article.Headline = strings.TrimSpace(strings.TrimPrefix(line, "HEADLINE:"))
			case strings.HasPrefix(line, "DATE:"):
				article.Date = strings.TrimSpace(strings.TrimPrefix(line, "DATE:"))
			case strings.HasPrefix(line, "SNIPPET:"):
				article.Snippet = strings.TrimSpace(strings.TrimPrefix(line, "SNIPPET:"))
			case strings.HasPrefix(line, "URL:"):
				article.URL = strings.TrimSpace(strings.TrimPrefix(line, "URL:"))
			case strings.HasPrefix(line, "LANGUAGE:"):
				article.Language = strings.TrimSpace(strings.TrimPrefix(line, "LANGUAGE:"))
			case strings.HasPrefix(line, "COUNTRY:"):
				article.Country = strings.TrimSpace(strings.TrimPrefix(line, "COUNTRY:"))
			}
		}

		if article.Headline == "" || article.Date == "" || article.Snippet == "" || article.URL == "" {
			slog.Warn("dropping partially parsed article block", "block", block)
			continue
		}
		articles = append(articles, article)
	}
	return articles
}
