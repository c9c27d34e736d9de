// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aisearch is the generative-AI fallback path. It prompts a
// Gemini model with search grounding enabled, parses the delimited text
// response into articles, and surfaces the grounding citations.
// Implements: prd004-fallback (R2-R4).
package aisearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/pdiddy/evidence-engine/internal/httputil"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// generateBase is the Gemini API endpoint prefix. Package-level var for
// test substitution.
var generateBase = "https://generativelanguage.googleapis.com/v1beta/models"

// searchPromptTmpl instructs the model to find evidencing articles and
// answer in the ---ARTICLE--- delimited format the parser expects.
var searchPromptTmpl = template.Must(template.New("aisearch").Parse(`You are an AI assistant specialized in Proof of Use of Trademarks.
Your task is to find articles using Google Search based on the following criteria:
Trademark: "{{.Trademark}}" (must appear verbatim)
Date Range: From {{.StartDate.Format "2006-01-02"}} to {{.EndDate.Format "2006-01-02"}}
Language: {{.Language}}
Country/Region of Origin: {{.Country}}

For each relevant article found, please provide the information in the following format, with each piece of information on a new line, and each article separated by '---ARTICLE---':
HEADLINE: [Article Headline]
DATE: [Publication Date, e.g., YYYY-MM-DD or Month Day, Year]
SNIPPET: [A short quote from the article where the trademark "{{.Trademark}}" appears verbatim.]
URL: [Full URL of the article]
LANGUAGE: [Language of the article, e.g., English, Spanish]
COUNTRY: [Country of origin of the article, e.g., USA, UK]

If no articles are found matching all criteria, respond with 'No articles found matching the criteria.'
Ensure the trademark term "{{.Trademark}}" appears verbatim in the snippet.
Prioritize sources that are clearly news articles, official publications, or reputable industry websites.
`))

// Client calls the Gemini generateContent API with search grounding.
type Client struct {
	HTTP   *http.Client
	Config types.AISearchConfig
}

// generateRequest is the request body for the generateContent API.
type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch struct{} `json:"google_search"`
}

// generateResponse is the response body from the generateContent API.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           content            `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *struct {
		URI   string `json:"uri"`
		Title string `json:"title"`
	} `json:"web"`
}

// Search prompts the model for evidencing articles and returns the
// parsed articles plus the grounding citations the model consulted.
func (c *Client) Search(ctx context.Context, params types.SearchParameters) ([]types.ArticleResult, []types.GroundingSource, error) {
	if c.Config.APIKey == "" {
		return nil, nil, fmt.Errorf("AI search API key not configured")
	}

	var prompt bytes.Buffer
	if err := searchPromptTmpl.Execute(&prompt, params); err != nil {
		return nil, nil, fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt.String()}}}},
		Tools:    []tool{{}},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", generateBase, c.Config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.Config.APIKey)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries)
	if err != nil {
		return nil, nil, fmt.Errorf("AI API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("AI API returned HTTP %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, nil, fmt.Errorf("parsing AI response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return nil, nil, fmt.Errorf("AI response contained no candidates")
	}

	cand := gr.Candidates[0]
	var text string
	for _, p := range cand.Content.Parts {
		text += p.Text
	}

	articles := ParseArticles(text, params)

	var sources []types.GroundingSource
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web != nil && chunk.Web.URI != "" && chunk.Web.Title != "" {
				sources = append(sources, types.GroundingSource{
					URI:   chunk.Web.URI,
					Title: chunk.Web.Title,
				})
			}
		}
	}

	return articles, sources, nil
}
