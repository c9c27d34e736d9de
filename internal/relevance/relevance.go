// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores how strongly a search result evidences use
// of a trademark. Implements: prd003-relevance (R1-R4).
//
// All functions are pure: same inputs always produce the same outputs.
package relevance

import (
	"regexp"
	"strings"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// wordPattern compiles a case-insensitive whole-word pattern for the
// trademark. Regex metacharacters in the mark are escaped so they match
// literally instead of breaking the pattern.
func wordPattern(trademark string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(trademark) + `\b`)
}

// ContainsVerbatim reports whether the trademark occurs as a whole word
// in text, case-insensitive. Partial substring hits do not count.
func ContainsVerbatim(text, trademark string) bool {
	return wordPattern(trademark).MatchString(text)
}

// Highlight wraps every verbatim trademark occurrence in text with **
// emphasis markers, preserving the original casing of each hit.
func Highlight(text, trademark string) string {
	re := regexp.MustCompile(`(?i)\b(` + regexp.QuoteMeta(trademark) + `)\b`)
	return re.ReplaceAllString(text, "**${1}**")
}

// Score rates a result 1-5 from keyword frequency and mention context.
//
// Frequency sets the base: 3 for three or more whole-word occurrences
// across title and snippet, 2 for two, 1 otherwise. Context adds 2 when
// the mark appears in the title (high), 1 when it appears in the first
// sentence of the snippet or at least twice overall (medium). The final
// score is capped at 5.
func Score(title, snippet, trademark string) (int, types.RelevanceDetails) {
	fullText := title + " " + snippet
	occurrences := len(wordPattern(trademark).FindAllString(fullText, -1))

	titleLower := strings.ToLower(title)
	markLower := strings.ToLower(trademark)
	inTitle := strings.Contains(titleLower, markLower)

	firstSentence, _, _ := strings.Cut(snippet, ".")
	inFirstSentence := strings.Contains(strings.ToLower(firstSentence), markLower)

	context := types.ContextLow
	mainContent := false
	switch {
	case inTitle:
		context = types.ContextHigh
		mainContent = true
	case inFirstSentence:
		context = types.ContextMedium
		mainContent = true
	case occurrences >= 2:
		context = types.ContextMedium
	}

	score := 1
	if occurrences >= 3 {
		score = 3
	} else if occurrences >= 2 {
		score = 2
	}
	switch context {
	case types.ContextHigh:
		score += 2
	case types.ContextMedium:
		score++
	}
	if score > 5 {
		score = 5
	}

	return score, types.RelevanceDetails{
		KeywordFrequency: occurrences,
		ContextRelevance: context,
		IsMainContent:    mainContent,
	}
}
