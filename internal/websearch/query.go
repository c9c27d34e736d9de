// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"fmt"
	"strings"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// languageSites maps a non-default language to a site: disjunction of
// top-level domains conventionally publishing in it. Unmapped languages
// add no filter.
var languageSites = map[string]string{
	"es": ".es OR .mx OR .ar OR .co OR .pe OR .cl OR .ve OR .ec OR .bo OR .py OR .uy",
	"fr": ".fr OR .ca OR .be OR .ch",
	"de": ".de OR .at OR .ch",
	"it": ".it OR .ch",
	"pt": ".br OR .pt",
}

// countryFilters maps a country code to a domain disjunction. Unmapped
// codes (including user-supplied "other" values) add no site filter.
var countryFilters = map[string]string{
	"USA": "site:.com OR site:.us OR site:.gov OR site:.edu",
	"EU":  "site:.eu OR site:.de OR site:.fr OR site:.it OR site:.es OR site:.nl OR site:.be",
	"UK":  "site:.uk OR site:.co.uk",
	"CA":  "site:.ca",
	"AU":  "site:.au",
	"MX":  "site:.mx",
	"ES":  "site:.es",
	"FR":  "site:.fr",
	"DE":  "site:.de",
	"IT":  "site:.it",
	"AR":  "site:.ar",
	"CO":  "site:.co",
	"PE":  "site:.pe",
	"CL":  "site:.cl",
	"BR":  "site:.br",
}

// BuildQuery constructs the provider query string: the trademark quoted
// for phrase match, date bounds, and best-effort language and country
// site filters. A usable string is always produced.
func BuildQuery(p types.SearchParameters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", p.Trademark)

	if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
		fmt.Fprintf(&b, " after:%s before:%s",
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}

	if p.Language != "" && p.Language != "en" {
		if sites := languageSites[p.Language]; sites != "" {
			b.WriteString(" site:" + sites)
		}
	}

	switch {
	case p.Country == "" || p.Country == "ALL":
		// No country narrowing.
	default:
		if filter := countryFilters[p.Country]; filter != "" {
			b.WriteString(" " + filter)
		} else {
			// A free-text country from the "other" option narrows the
			// query as a plain term rather than a site filter.
			b.WriteString(" " + p.Country)
		}
	}

	return b.String()
}
