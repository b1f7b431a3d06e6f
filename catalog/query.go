package catalog

import (
	"math"
	"net/http"
	"strconv"

	"maison/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Query holds the parsed catalog parameters. Every field is optional; the
// zero value means "not supplied".
type Query struct {
	Q             string
	Keyword       string
	Categories    []string
	SubCategories []string
	MinPrice      *float64
	MaxPrice      *float64
	Sort          string
	Skip          int64
	Limit         int64
}

// ParseQuery reads the catalog parameters from the query string. Parsing is
// defensive: malformed numbers degrade to the default behavior for that
// parameter instead of failing the request.
func ParseQuery(r *http.Request) Query {
	qs := r.URL.Query()
	skip, limit := utils.ParsePagination(r, 12, 100)

	return Query{
		Q:             qs.Get("q"),
		Keyword:       qs.Get("keyword"),
		Categories:    utils.SplitCSV(qs.Get("categories")),
		SubCategories: utils.SplitCSV(qs.Get("subCategories")),
		MinPrice:      parsePrice(qs.Get("minPrice")),
		MaxPrice:      parsePrice(qs.Get("maxPrice")),
		Sort:          qs.Get("sort"),
		Skip:          skip,
		Limit:         limit,
	}
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// Filter composes the mongo filter: the non-overridable base predicate
// (live products only) conjoined with one clause per supplied parameter.
func (q Query) Filter() bson.M {
	filter := bson.M{"status": "live"}

	if c := textClause(q.Q, q.Keyword); c != nil {
		for k, v := range c {
			filter[k] = v
		}
	}
	if c := membershipClause(q.Categories); c != nil {
		filter["category"] = c
	}
	if c := membershipClause(q.SubCategories); c != nil {
		filter["subCategory"] = c
	}
	if c := priceClause(q.MinPrice, q.MaxPrice); c != nil {
		filter["variants.price"] = c
	}

	return filter
}

// textClause matches q against title, brand, or description; the legacy
// keyword parameter matches title only. q wins when both are given.
func textClause(q, keyword string) bson.M {
	if q != "" {
		return bson.M{"$or": []bson.M{
			utils.RegexFilter("title", q),
			utils.RegexFilter("brand", q),
			utils.RegexFilter("description", q),
		}}
	}
	if keyword != "" {
		return utils.RegexFilter("title", keyword)
	}
	return nil
}

// membershipClause restricts a field to a set of ids.
func membershipClause(ids []string) bson.M {
	if len(ids) == 0 {
		return nil
	}
	return bson.M{"$in": ids}
}

// priceClause bounds the price of any contained variant.
func priceClause(min, max *float64) bson.M {
	if min == nil && max == nil {
		return nil
	}
	c := bson.M{}
	if min != nil {
		c["$gte"] = *min
	}
	if max != nil {
		c["$lte"] = *max
	}
	return c
}

var sortDocs = map[string]bson.D{
	"newest":     {{Key: "createdAt", Value: -1}},
	"price-low":  {{Key: "variants.price", Value: 1}},
	"price-high": {{Key: "variants.price", Value: -1}},
	"popular":    {{Key: "ratings.average", Value: -1}},
}

// SortDoc maps the sort key to its mongo sort document; unknown keys fall
// back to newest.
func (q Query) SortDoc() bson.D {
	return utils.ParseSort(q.Sort, sortDocs["newest"], sortDocs)
}

// Pages is the page count for a total under the query's limit.
func Pages(total, limit int64) int64 {
	if limit < 1 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}
