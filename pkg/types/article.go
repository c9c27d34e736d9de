// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the evidence-engine pipeline.
// Implements: prd001-discovery (SearchParameters, ArticleResult);
//
//	prd002-dating (DateSource);
//	prd003-relevance (RelevanceDetails);
//	prd004-fallback (GroundingSource).
package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Option is a selectable value with a display label.
type Option struct {
	Value string
	Label string
}

// LanguageOptions is the fixed set of supported article languages.
var LanguageOptions = []Option{
	{Value: "en", Label: "English"},
	{Value: "es", Label: "Spanish"},
	{Value: "fr", Label: "French"},
	{Value: "de", Label: "German"},
	{Value: "it", Label: "Italian"},
	{Value: "pt", Label: "Portuguese"},
}

// CountryOptions is the fixed set of supported countries and regions.
// CountryOther marks the choice where the caller supplies a free-text
// country value instead of a code.
var CountryOptions = []Option{
	{Value: "ALL", Label: "All countries"},
	{Value: "USA", Label: "United States"},
	{Value: "ES", Label: "Spain"},
	{Value: "MX", Label: "Mexico"},
	{Value: "AR", Label: "Argentina"},
	{Value: "CO", Label: "Colombia"},
	{Value: "PE", Label: "Peru"},
	{Value: "CL", Label: "Chile"},
	{Value: "EU", Label: "European Union"},
	{Value: "UK", Label: "United Kingdom"},
	{Value: "CA", Label: "Canada"},
	{Value: "AU", Label: "Australia"},
	{Value: "BR", Label: "Brazil"},
	{Value: "FR", Label: "France"},
	{Value: "DE", Label: "Germany"},
	{Value: "IT", Label: "Italy"},
}

// CountryOther is the sentinel country value meaning "user-supplied".
const CountryOther = "ELSEWHERE"

// languageCodes returns the valid language values for validation rules.
func languageCodes() []interface{} {
	codes := make([]interface{}, len(LanguageOptions))
	for i, o := range LanguageOptions {
		codes[i] = o.Value
	}
	return codes
}

// SearchParameters holds one search request. Immutable once submitted;
// owned by the orchestration layer for the duration of a single search.
type SearchParameters struct {
	// Trademark is the mark whose use in commerce is being evidenced.
	// Matched verbatim (whole-word, case-insensitive) in results.
	Trademark string `json:"trademark" yaml:"trademark"`

	// StartDate and EndDate bound the publication dates of accepted
	// articles, inclusive on both ends.
	StartDate time.Time `json:"start_date" yaml:"start_date"`
	EndDate   time.Time `json:"end_date" yaml:"end_date"`

	// Language is a code from LanguageOptions (e.g. "en", "es").
	Language string `json:"language" yaml:"language"`

	// Country is a code from CountryOptions, or an arbitrary free-text
	// value when the "other" option was chosen.
	Country string `json:"country" yaml:"country"`
}

// Validate checks the parameters before a search starts.
func (p SearchParameters) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Trademark, validation.Required),
		validation.Field(&p.StartDate, validation.Required),
		validation.Field(&p.EndDate, validation.Required),
		validation.Field(&p.Language, validation.Required, validation.In(languageCodes()...)),
		validation.Field(&p.Country, validation.Required),
	)
	if err != nil {
		return err
	}
	if p.EndDate.Before(p.StartDate) {
		return validation.Errors{
			"end_date": validation.NewError("validation_date_order", "must not be before start_date"),
		}
	}
	return nil
}

// DateSource identifies which resolution tier produced an article's
// publication date.
type DateSource string

const (
	// DateFromMetadata: a provider-supplied metadata field.
	DateFromMetadata DateSource = "metadata"
	// DateFromContent: a date-shaped pattern in the title or snippet.
	DateFromContent DateSource = "content"
	// DateFromSource: a structural marker in the fetched page markup.
	DateFromSource DateSource = "source-code"
	// DateNotFound: no tier produced a valid date. Candidates with this
	// source are dropped, never surfaced.
	DateNotFound DateSource = "not-found"
)

// ContextRelevance classifies how central a trademark mention is.
type ContextRelevance string

const (
	ContextHigh   ContextRelevance = "high"
	ContextMedium ContextRelevance = "medium"
	ContextLow    ContextRelevance = "low"
)

// RelevanceDetails explains an article's relevance score.
type RelevanceDetails struct {
	// KeywordFrequency counts whole-word, case-insensitive occurrences
	// of the trademark across headline and snippet.
	KeywordFrequency int `json:"keyword_frequency" yaml:"keyword_frequency"`

	// ContextRelevance is high when the mark appears in the headline,
	// medium when it appears early or repeatedly, low otherwise.
	ContextRelevance ContextRelevance `json:"context_relevance" yaml:"context_relevance"`

	// IsMainContent reports whether the mention is likely central to
	// the article rather than incidental.
	IsMainContent bool `json:"is_main_content" yaml:"is_main_content"`
}

// ArticleResult is one accepted piece of evidence. Never mutated after
// creation; discarded at the end of the search session.
type ArticleResult struct {
	// Headline is the article title as returned by the provider.
	Headline string `json:"headline" yaml:"headline"`

	// Date is the publication date: ISO form (YYYY-MM-DD) for
	// direct-search results, which are always strictly within the
	// requested range; AI-path results may carry a prose form such as
	// "March 15, 2021".
	Date string `json:"date" yaml:"date"`

	// Snippet is display text; verbatim trademark occurrences are
	// wrapped in ** emphasis markers.
	Snippet string `json:"snippet" yaml:"snippet"`

	// URL is the article location.
	URL string `json:"url" yaml:"url"`

	Language  string `json:"language" yaml:"language"`
	Country   string `json:"country" yaml:"country"`
	Trademark string `json:"trademark" yaml:"trademark"`

	// RelevanceScore is a 1-5 star rating. Zero when the article came
	// from the AI fallback path, which does not score.
	RelevanceScore int `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`

	RelevanceDetails *RelevanceDetails `json:"relevance_details,omitempty" yaml:"relevance_details,omitempty"`

	// DateSource records which tier resolved the date.
	DateSource DateSource `json:"date_source,omitempty" yaml:"date_source,omitempty"`

	// SourceCodeLink is set only when DateSource is DateFromSource.
	SourceCodeLink string `json:"source_code_link,omitempty" yaml:"source_code_link,omitempty"`
}

// yearLayouts covers the date forms articles carry: ISO from the
// direct path, and the freer prose forms the AI path passes through.
var yearLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006/01/02",
}

// Year returns the article's four-digit publication year, or "" when
// the date string does not parse under any accepted layout.
func (a ArticleResult) Year() string {
	for _, layout := range yearLayouts {
		if t, err := time.Parse(layout, a.Date); err == nil {
			return t.Format("2006")
		}
	}
	return ""
}

// GroundingSource is a citation surfaced by the AI fallback path as
// supporting evidence, distinct from a full ArticleResult.
type GroundingSource struct {
	URI   string `json:"uri" yaml:"uri"`
	Title string `json:"title" yaml:"title"`
}
