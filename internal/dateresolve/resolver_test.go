// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dateresolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

func testResolver(client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return New(client, types.DateResolveConfig{
		HTTPConfig:    types.HTTPConfig{UserAgent: "test/0.1"},
		PageCacheSize: 8,
	})
}

func TestResolveMetadataTier(t *testing.T) {
	r := testResolver(nil)

	res := r.Resolve(context.Background(), Item{
		Title:   "Acme expands",
		Snippet: "no date here",
		Metatags: []map[string]string{
			{"og:title": "irrelevant"},
			{"datePublished": "2021-03-15T00:00:00Z"},
		},
	})

	assert.Equal(t, "2021-03-15", res.Date)
	assert.Equal(t, types.DateFromMetadata, res.Source)
	assert.Empty(t, res.SourceCodeLink)
}

func TestResolveMetadataWinsOverContent(t *testing.T) {
	r := testResolver(nil)

	// Both tiers could produce a date; the metadata tier must win even
	// though the text mentions a different one.
	res := r.Resolve(context.Background(), Item{
		Title:   "Published 2019-01-01",
		Snippet: "archive copy",
		Metatags: []map[string]string{
			{"article:published_time": "2021-06-02T10:30:00Z"},
		},
	})

	assert.Equal(t, types.DateFromMetadata, res.Source)
	assert.Equal(t, "2021-06-02", res.Date)
}

func TestResolveContentTier(t *testing.T) {
	r := testResolver(nil)

	res := r.Resolve(context.Background(), Item{
		Title:   "Acme in the news",
		Snippet: "Reported on 15 de marzo de 2021 by the wire services.",
	})

	assert.Equal(t, "2021-03-15", res.Date)
	assert.Equal(t, types.DateFromContent, res.Source)
}

func TestResolveSourceTier(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="article:published_time" content="2020-11-05T08:00:00Z">
		</head><body>story</body></html>`))
	}))
	defer ts.Close()

	r := testResolver(ts.Client())
	res := r.Resolve(context.Background(), Item{
		Title:   "no date in text",
		Snippet: "none here either",
		Link:    ts.URL,
	})

	assert.Equal(t, "2020-11-05", res.Date)
	assert.Equal(t, types.DateFromSource, res.Source)
	assert.Equal(t, "view-source:"+ts.URL, res.SourceCodeLink)
}

func TestResolveFetchFailureIsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	r := testResolver(ts.Client())
	res := r.Resolve(context.Background(), Item{
		Title:   "no usable date",
		Snippet: "anywhere",
		Link:    ts.URL,
	})

	assert.Equal(t, types.DateNotFound, res.Source)
	assert.Empty(t, res.Date)
}

func TestResolveNoLinkNoDate(t *testing.T) {
	r := testResolver(nil)

	res := r.Resolve(context.Background(), Item{Title: "nothing", Snippet: "at all"})

	assert.Equal(t, types.DateNotFound, res.Source)
}

func TestFetchPageCached(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`<html><head><meta name="date" content="2022-02-02"></head></html>`))
	}))
	defer ts.Close()

	r := testResolver(ts.Client())
	item := Item{Title: "x", Snippet: "y", Link: ts.URL}

	first := r.Resolve(context.Background(), item)
	second := r.Resolve(context.Background(), item)

	require.Equal(t, types.DateFromSource, first.Source)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		value string
		want  string
		ok    bool
	}{
		{"2021-03-15T00:00:00Z", "2021-03-15", true},
		{"2021-03-15T12:30:45+02:00", "2021-03-15", true},
		{"2021-03-15", "2021-03-15", true},
		{"March 15, 2021", "2021-03-15", true},
		{"15 March 2021", "2021-03-15", true},
		{"2021/03/15", "2021-03-15", true},
		{"not a date", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := parseDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}
