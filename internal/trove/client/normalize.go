package client

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/haideraly09/trove-api-integration/internal/trove/types"
)

// recordSet is the result list and total count located inside an upstream
// response body, whatever shape it arrived in.
type recordSet struct {
	records []gjson.Result
	total   int64
}

// shapeMatcher tries to locate the result list under one known upstream
// response shape.
type shapeMatcher func(root gjson.Result) (recordSet, bool)

// shapeMatchers are tried in order, first match wins. The v3 category
// shapes come first; the v2 zone shape is kept for deployments that still
// answer with it. The caller cannot know in advance which shape a given
// upstream will return, so there is no configuration flag.
var shapeMatchers = []shapeMatcher{
	matchCategoryArticles,
	matchCategoryWorks,
	matchLegacyZone,
}

// extractRecords locates the result list and total in an upstream body.
// When no known shape matches it returns an empty set rather than an
// error, to stay resilient to schema drift.
func extractRecords(body []byte) recordSet {
	root := gjson.ParseBytes(body)
	for _, match := range shapeMatchers {
		if set, ok := match(root); ok {
			return set
		}
	}
	return recordSet{}
}

func matchCategoryArticles(root gjson.Result) (recordSet, bool) {
	records := firstCategoryRecords(root)
	articles := records.Get("article")
	if !articles.IsArray() {
		return recordSet{}, false
	}
	return recordSet{records: articles.Array(), total: records.Get("total").Int()}, true
}

func matchCategoryWorks(root gjson.Result) (recordSet, bool) {
	records := firstCategoryRecords(root)
	works := records.Get("work")
	if !works.IsArray() {
		return recordSet{}, false
	}
	return recordSet{records: works.Array(), total: records.Get("total").Int()}, true
}

func firstCategoryRecords(root gjson.Result) gjson.Result {
	category := root.Get("category")
	if !category.IsArray() {
		return gjson.Result{}
	}
	return category.Get("0.records")
}

func matchLegacyZone(root gjson.Result) (recordSet, bool) {
	works := root.Get("response.zone.0.records.work")
	if !works.IsArray() {
		return recordSet{}, false
	}
	total := root.Get("response.zone.0.records.total").Int()
	return recordSet{records: works.Array(), total: total}, true
}

// normalizeRecord maps one upstream record of unknown shape into a Record.
// Field extraction tries several source key names in a fixed priority
// order; every field has a fallback, so this never fails.
func normalizeRecord(rec gjson.Result, index int) types.Record {
	out := types.Record{
		ID:      firstScalar(rec, "id"),
		Title:   "Untitled",
		Snippet: firstScalar(rec, "snippet"),
		Date:    firstScalar(rec, "date", "issued"),
		Type:    "newspaper",
	}

	if out.ID == "" {
		out.ID = fmt.Sprintf("result-%d", index)
	}

	// Newspaper articles carry their headline under "heading"; for those,
	// "title" is an object naming the publication.
	title := rec.Get("title")
	if heading := firstScalar(rec, "heading"); heading != "" {
		out.Title = heading
	} else if title.Type == gjson.String && title.String() != "" {
		out.Title = title.String()
	}

	if t := firstScalar(rec, "category", "type"); t != "" {
		out.Type = t
	}

	if title.IsObject() {
		out.Contributor = scalarString(title.Get("title"))
	}
	if out.Contributor == "" {
		out.Contributor = firstScalar(rec, "contributor")
	}

	out.SourceURL = firstScalar(rec, "troveUrl", "url", "identifier")

	return out
}

// firstScalar returns the first non-empty string or number value among the
// given keys.
func firstScalar(rec gjson.Result, keys ...string) string {
	for _, key := range keys {
		if s := scalarString(rec.Get(key)); s != "" {
			return s
		}
	}
	return ""
}

func scalarString(v gjson.Result) string {
	if v.Type == gjson.String || v.Type == gjson.Number {
		return v.String()
	}
	return ""
}
