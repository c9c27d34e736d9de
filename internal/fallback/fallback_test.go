// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

type mockDirect struct {
	articles []types.ArticleResult
	err      error
	calls    int
}

func (m *mockDirect) Search(_ context.Context, _ types.SearchParameters) ([]types.ArticleResult, error) {
	m.calls++
	return m.articles, m.err
}

type mockAI struct {
	articles []types.ArticleResult
	sources  []types.GroundingSource
	err      error
	calls    int
}

func (m *mockAI) Search(_ context.Context, _ types.SearchParameters) ([]types.ArticleResult, []types.GroundingSource, error) {
	m.calls++
	return m.articles, m.sources, m.err
}

func article(headline string) types.ArticleResult {
	return types.ArticleResult{Headline: headline, Date: "2021-01-01"}
}

func params() types.SearchParameters {
	return types.SearchParameters{Trademark: "Acme", Language: "en", Country: "ALL"}
}

func TestRunDirectSuccessSkipsAI(t *testing.T) {
	direct := &mockDirect{articles: []types.ArticleResult{article("hit")}}
	ai := &mockAI{articles: []types.ArticleResult{article("should not appear")}}

	out, err := Run(context.Background(), direct, ai, params())
	require.NoError(t, err)

	assert.Equal(t, MethodDirect, out.Method)
	require.Len(t, out.Articles, 1)
	assert.Equal(t, "hit", out.Articles[0].Headline)
	assert.Equal(t, 0, ai.calls)
}

func TestRunEmptyDirectTriggersAI(t *testing.T) {
	direct := &mockDirect{}
	ai := &mockAI{
		articles: []types.ArticleResult{article("ai hit")},
		sources:  []types.GroundingSource{{URI: "https://s.example", Title: "src"}},
	}

	out, err := Run(context.Background(), direct, ai, params())
	require.NoError(t, err)

	assert.Equal(t, MethodAI, out.Method)
	require.Len(t, out.Articles, 1)
	assert.Equal(t, "ai hit", out.Articles[0].Headline)
	assert.Len(t, out.Sources, 1)
	assert.Equal(t, 1, direct.calls)
	assert.Equal(t, 1, ai.calls)
}

func TestRunDirectErrorTriggersAI(t *testing.T) {
	direct := &mockDirect{err: errors.New("provider down")}
	ai := &mockAI{articles: []types.ArticleResult{article("ai hit")}}

	out, err := Run(context.Background(), direct, ai, params())
	require.NoError(t, err)
	assert.Equal(t, MethodAI, out.Method)
}

func TestRunBothPathsFailConsolidatedError(t *testing.T) {
	direct := &mockDirect{err: errors.New("provider down")}
	aiErr := errors.New("quota exhausted")
	ai := &mockAI{err: aiErr}

	_, err := Run(context.Background(), direct, ai, params())
	require.Error(t, err)
	assert.ErrorIs(t, err, aiErr)
	assert.Contains(t, err.Error(), "provider down")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestRunAIFailsAfterEmptyDirect(t *testing.T) {
	direct := &mockDirect{}
	ai := &mockAI{err: errors.New("quota exhausted")}

	_, err := Run(context.Background(), direct, ai, params())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI fallback")
}

func TestRunNothingAnywhereIsValidEmptyOutcome(t *testing.T) {
	direct := &mockDirect{}
	ai := &mockAI{}

	out, err := Run(context.Background(), direct, ai, params())
	require.NoError(t, err)
	assert.Equal(t, MethodNone, out.Method)
	assert.Empty(t, out.Articles)
	assert.Empty(t, out.Sources)
}

func TestRunAISourcesOnlyStillAIOutcome(t *testing.T) {
	direct := &mockDirect{}
	ai := &mockAI{sources: []types.GroundingSource{{URI: "https://s.example", Title: "src"}}}

	out, err := Run(context.Background(), direct, ai, params())
	require.NoError(t, err)
	assert.Equal(t, MethodAI, out.Method)
	assert.Empty(t, out.Articles)
	assert.Len(t, out.Sources, 1)
}
