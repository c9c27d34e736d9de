// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aisearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func fullParams() types.SearchParameters {
	start, _ := time.Parse("2006-01-02", "2020-01-01")
	end, _ := time.Parse("2006-01-02", "2021-12-31")
	return types.SearchParameters{
		Trademark: "Acme",
		StartDate: start,
		EndDate:   end,
		Language:  "en",
		Country:   "USA",
	}
}

func testClient(ts *httptest.Server) *Client {
	return &Client{
		HTTP: ts.Client(),
		Config: types.AISearchConfig{
			Model:      "test-model",
			APIKey:     "key",
			MaxRetries: 1,
		},
	}
}

// candidateJSON renders a generateContent response carrying text and
// optional grounding chunk (uri, title) pairs.
func candidateJSON(text string, chunks ...[2]string) string {
	type web struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	}
	var gc []map[string]web
	for _, c := range chunks {
		gc = append(gc, map[string]web{"web": {URI: c[0], Title: c[1]}})
	}
	payload := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			},
			"groundingMetadata": map[string]any{
				"groundingChunks": gc,
			},
		}},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestSearchParsesArticlesAndSources(t *testing.T) {
	responseText := `HEADLINE: Acme opens plant
DATE: 2021-03-15
SNIPPET: The Acme facility opened.
URL: https://news.example/acme`

	var gotPrompt string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "test-model:generateContent")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		gotPrompt = req.Contents[0].Parts[0].Text
		require.Len(t, req.Tools, 1)

		fmt.Fprint(w, candidateJSON(responseText,
			[2]string{"https://src.example/1", "Source one"}))
	}))
	defer ts.Close()

	old := generateBase
	generateBase = ts.URL
	defer func() { generateBase = old }()

	articles, sources, err := testClient(ts).Search(context.Background(), fullParams())
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, "Acme opens plant", articles[0].Headline)

	require.Len(t, sources, 1)
	assert.Equal(t, "https://src.example/1", sources[0].URI)
	assert.Equal(t, "Source one", sources[0].Title)

	// Prompt embeds the search criteria and the output format spec.
	assert.Contains(t, gotPrompt, `Trademark: "Acme"`)
	assert.Contains(t, gotPrompt, "From 2020-01-01 to 2021-12-31")
	assert.Contains(t, gotPrompt, "---ARTICLE---")
	assert.True(t, strings.Contains(gotPrompt, "HEADLINE:"))
}

func TestSearchNoResultsSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, candidateJSON("No articles found matching the criteria."))
	}))
	defer ts.Close()

	old := generateBase
	generateBase = ts.URL
	defer func() { generateBase = old }()

	articles, sources, err := testClient(ts).Search(context.Background(), fullParams())
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Empty(t, sources)
}

func TestSearchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := generateBase
	generateBase = ts.URL
	defer func() { generateBase = old }()

	_, _, err := testClient(ts).Search(context.Background(), fullParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSearchMissingAPIKey(t *testing.T) {
	c := &Client{HTTP: http.DefaultClient}
	_, _, err := c.Search(context.Background(), fullParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSearchNoCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer ts.Close()

	old := generateBase
	generateBase = ts.URL
	defer func() { generateBase = old }()

	_, _, err := testClient(ts).Search(context.Background(), fullParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
