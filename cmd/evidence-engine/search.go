// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/evidence-engine/internal/aisearch"
	"github.com/pdiddy/evidence-engine/internal/dateresolve"
	"github.com/pdiddy/evidence-engine/internal/fallback"
	"github.com/pdiddy/evidence-engine/internal/report"
	"github.com/pdiddy/evidence-engine/internal/secrets"
	"github.com/pdiddy/evidence-engine/internal/websearch"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for articles evidencing trademark use in commerce",
	Long: `Search finds published articles in which the trademark appears verbatim
within the requested date range. Results are ranked by relevance and
grouped by year. The AI fallback runs only when the direct web search
errors or finds nothing.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("trademark", "", "trademark to evidence (required)")
	searchCmd.Flags().String("from", "", "publication date range start, YYYY-MM-DD (required)")
	searchCmd.Flags().String("to", "", "publication date range end, YYYY-MM-DD (required)")
	searchCmd.Flags().String("language", "en", "article language code")
	searchCmd.Flags().String("country", "ALL", "country code, or free text for other regions")
	searchCmd.Flags().Int("max-pages", 0, "page budget for the direct search (default 10)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("yaml", false, "output results as YAML")
	searchCmd.Flags().Bool("list-options", false, "list supported languages and countries, then exit")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-options"); list {
		printOptions(cmd)
		return nil
	}

	params, err := paramsFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid search parameters: %w", err)
	}

	cfg := pipelineConfig(cmd)

	resolver := dateresolve.New(&http.Client{Timeout: cfg.DateResolve.Timeout}, cfg.DateResolve)
	direct := &websearch.Client{
		HTTP:     &http.Client{Timeout: cfg.WebSearch.Timeout},
		Resolver: resolver,
		Config:   cfg.WebSearch,
	}
	ai := &aisearch.Client{
		HTTP:   &http.Client{Timeout: cfg.AISearch.Timeout},
		Config: cfg.AISearch,
	}

	out, err := fallback.Run(cmd.Context(), direct, ai, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	r := report.Report{Parameters: params, Articles: out.Articles, Sources: out.Sources}

	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON:
		return report.FormatJSON(r, os.Stdout)
	case asYAML:
		return report.FormatYAML(r, os.Stdout)
	default:
		report.FormatTable(r, os.Stdout)
		if out.Method == fallback.MethodNone {
			fmt.Fprintln(os.Stdout, "No articles found by any search method. Try widening the date range or checking the trademark spelling.")
		}
		return nil
	}
}

// paramsFromFlags builds and normalizes the search parameters.
func paramsFromFlags(cmd *cobra.Command) (types.SearchParameters, error) {
	trademark, _ := cmd.Flags().GetString("trademark")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	language, _ := cmd.Flags().GetString("language")
	country, _ := cmd.Flags().GetString("country")

	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return types.SearchParameters{}, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", from)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return types.SearchParameters{}, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", to)
	}

	return types.SearchParameters{
		Trademark: trademark,
		StartDate: start,
		EndDate:   end,
		Language:  language,
		Country:   country,
	}, nil
}

// pipelineConfig merges flags, config file values, and loaded secrets.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		WebSearch: types.WebSearchConfig{
			APIKey:   secrets.Get(loadedSecrets, secrets.KeyGoogleSearchAPIKey),
			EngineID: secrets.Get(loadedSecrets, secrets.KeyGoogleSearchCX),
		},
		AISearch: types.AISearchConfig{
			Model:  viper.GetString("ai_search.model"),
			APIKey: secrets.Get(loadedSecrets, secrets.KeyGeminiAPIKey),
		},
	}

	if maxPages, _ := cmd.Flags().GetInt("max-pages"); maxPages > 0 {
		cfg.WebSearch.MaxPages = maxPages
	}

	return cfg.Defaults()
}

func printOptions(cmd *cobra.Command) {
	fmt.Fprintln(os.Stdout, "Languages:")
	for _, o := range types.LanguageOptions {
		fmt.Fprintf(os.Stdout, "  %-10s %s\n", o.Value, o.Label)
	}
	fmt.Fprintln(os.Stdout, "Countries:")
	for _, o := range types.CountryOptions {
		fmt.Fprintf(os.Stdout, "  %-10s %s\n", o.Value, o.Label)
	}
	fmt.Fprintf(os.Stdout, "  %-10s %s\n", types.CountryOther, "Other (pass any free-text value)")
}
