// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aisearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func testParams() types.SearchParameters {
	return types.SearchParameters{
		Trademark: "Acme",
		Language:  "en",
		Country:   "USA",
	}
}

func TestParseArticles(t *testing.T) {
	text := `HEADLINE: Acme opens new plant
DATE: 2021-03-15
SNIPPET: The Acme facility employs 200 people.
URL: https://news.example/acme-plant
LANGUAGE: English
COUNTRY: USA
---ARTICLE---
HEADLINE: Acme en expansión
DATE: 2021-06-01
SNIPPET: La marca Acme llega a nuevos mercados.
URL: https://noticias.example/acme
LANGUAGE: Spanish
COUNTRY: Mexico`

	articles := ParseArticles(text, testParams())
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "Acme opens new plant", first.Headline)
	assert.Equal(t, "2021-03-15", first.Date)
	assert.Equal(t, "The Acme facility employs 200 people.", first.Snippet)
	assert.Equal(t, "https://news.example/acme-plant", first.URL)
	assert.Equal(t, "English", first.Language)
	assert.Equal(t, "USA", first.Country)
	assert.Equal(t, "Acme", first.Trademark)

	assert.Equal(t, "Spanish", articles[1].Language)
	assert.Equal(t, "Mexico", articles[1].Country)
}

func TestParseArticlesNoResultsSentinel(t *testing.T) {
	articles := ParseArticles("No articles found matching the criteria.", testParams())
	assert.Empty(t, articles)
}

func TestParseArticlesSentinelCaseAndWhitespace(t *testing.T) {
	articles := ParseArticles("  NO ARTICLES FOUND matching anything", testParams())
	assert.Empty(t, articles)
}

func TestParseArticlesDropsIncompleteBlocks(t *testing.T) {
	text := `HEADLINE: Missing URL
DATE: 2021-01-01
SNIPPET: Acme something.
---ARTICLE---
HEADLINE: Complete block
DATE: 2021-02-02
SNIPPET: Acme again.
URL: https://news.example/ok`

	articles := ParseArticles(text, testParams())
	require.Len(t, articles, 1)
	assert.Equal(t, "Complete block", articles[0].Headline)
}

func TestParseArticlesDefaultsLanguageAndCountry(t *testing.T) {
	text := `HEADLINE: Bare block
DATE: 2021-02-02
SNIPPET: Acme again.
URL: https://news.example/bare`

	articles := ParseArticles(text, testParams())
	require.Len(t, articles, 1)
	assert.Equal(t, "en", articles[0].Language)
	assert.Equal(t, "USA", articles[0].Country)
}

func TestParseArticlesEmptyText(t *testing.T) {
	assert.Empty(t, ParseArticles("", testParams()))
	assert.Empty(t, ParseArticles("   \n  ", testParams()))
}
