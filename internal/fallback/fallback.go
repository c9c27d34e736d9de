// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fallback orchestrates the two search paths: the direct
// web-search path is tried first, and the generative-AI path runs only
// when the direct path errors or finds nothing. Implements:
// prd004-fallback (R1).
package fallback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// DirectSearcher is the direct web-search path.
type DirectSearcher interface {
	Search(ctx context.Context, params types.SearchParameters) ([]types.ArticleResult, error)
}

// AISearcher is the generative-AI fallback path.
type AISearcher interface {
	Search(ctx context.Context, params types.SearchParameters) ([]types.ArticleResult, []types.GroundingSource, error)
}

// Method identifies which path produced the outcome.
type Method string

const (
	// MethodDirect: the direct web-search path returned articles.
	MethodDirect Method = "direct"
	// MethodAI: the AI fallback path returned articles or citations.
	MethodAI Method = "ai"
	// MethodNone: both paths completed but found nothing. A valid
	// empty outcome, not an error.
	MethodNone Method = "none"
)

// Outcome is the terminal result of one search invocation.
type Outcome struct {
	Articles []types.ArticleResult
	Sources  []types.GroundingSource
	Method   Method
}

// Run executes one search. The AI path is never invoked when the direct
// path returns at least one article. A direct-path failure is absorbed
// into the fallback transition; if the AI path then fails too, a single
// consolidated error is returned.
func Run(ctx context.Context, direct DirectSearcher, ai AISearcher, params types.SearchParameters) (Outcome, error) {
	articles, directErr := direct.Search(ctx, params)
	if directErr == nil && len(articles) > 0 {
		slog.Info("direct search succeeded", "articles", len(articles))
		return Outcome{Articles: articles, Method: MethodDirect}, nil
	}
	if directErr != nil {
		slog.Warn("direct search failed, falling back to AI search", "error", directErr)
	} else {
		slog.Info("direct search found nothing, falling back to AI search")
	}

	aiArticles, sources, aiErr := ai.Search(ctx, params)
	if aiErr != nil {
		if directErr != nil {
			return Outcome{}, fmt.Errorf("both search paths failed: direct: %v; ai: %w", directErr, aiErr)
		}
		return Outcome{}, fmt.Errorf("AI fallback search failed: %w", aiErr)
	}

	if len(aiArticles) == 0 && len(sources) == 0 {
		slog.Info("no results from any search method")
		return Outcome{Method: MethodNone}, nil
	}

	slog.Info("AI fallback search succeeded", "articles", len(aiArticles), "sources", len(sources))
	return Outcome{Articles: aiArticles, Sources: sources, Method: MethodAI}, nil
}
