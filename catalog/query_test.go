package catalog

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func parse(t *testing.T, url string) Query {
	t.Helper()
	return ParseQuery(httptest.NewRequest("GET", url, nil))
}

func TestBaseFilterAlwaysLive(t *testing.T) {
	q := parse(t, "/api/products")
	assert.Equal(t, bson.M{"status": "live"}, q.Filter())
}

func TestTextSearchMatchesTitleBrandDescription(t *testing.T) {
	q := parse(t, "/api/products?q=linen")
	filter := q.Filter()

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"title": bson.M{"$regex": "linen", "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"brand": bson.M{"$regex": "linen", "$options": "i"}}, or[1])
	assert.Equal(t, bson.M{"description": bson.M{"$regex": "linen", "$options": "i"}}, or[2])
	assert.Equal(t, "live", filter["status"])
}

func TestKeywordMatchesTitleOnly(t *testing.T) {
	q := parse(t, "/api/products?keyword=coat")
	filter := q.Filter()

	assert.Equal(t, bson.M{"$regex": "coat", "$options": "i"}, filter["title"])
	assert.NotContains(t, filter, "$or")
}

func TestQTakesPrecedenceOverKeyword(t *testing.T) {
	q := parse(t, "/api/products?q=silk&keyword=coat")
	filter := q.Filter()

	assert.Contains(t, filter, "$or")
	assert.NotContains(t, filter, "title")
}

func TestCategoryMembership(t *testing.T) {
	q := parse(t, "/api/products?categories=c1,c2&subCategories=s1")
	filter := q.Filter()

	assert.Equal(t, bson.M{"$in": []string{"c1", "c2"}}, filter["category"])
	assert.Equal(t, bson.M{"$in": []string{"s1"}}, filter["subCategory"])
}

func TestPriceBoundsOnVariants(t *testing.T) {
	q := parse(t, "/api/products?minPrice=50&maxPrice=200")
	assert.Equal(t, bson.M{"$gte": 50.0, "$lte": 200.0}, q.Filter()["variants.price"])

	q = parse(t, "/api/products?minPrice=50")
	assert.Equal(t, bson.M{"$gte": 50.0}, q.Filter()["variants.price"])

	q = parse(t, "/api/products?maxPrice=200")
	assert.Equal(t, bson.M{"$lte": 200.0}, q.Filter()["variants.price"])
}

func TestMalformedPricesDegradeToAbsent(t *testing.T) {
	q := parse(t, "/api/products?minPrice=cheap&maxPrice=-3")
	assert.NotContains(t, q.Filter(), "variants.price")
}

func TestFilterChangesWithEveryParameter(t *testing.T) {
	// count and fetch use the same composed filter, so any parameter change
	// must change the filter itself
	base := parse(t, "/api/products").Filter()
	withCat := parse(t, "/api/products?categories=c1").Filter()
	withPrice := parse(t, "/api/products?minPrice=10").Filter()

	assert.NotEqual(t, base, withCat)
	assert.NotEqual(t, base, withPrice)
	assert.NotEqual(t, withCat, withPrice)
}

func TestSortMapping(t *testing.T) {
	cases := map[string]bson.D{
		"":           {{Key: "createdAt", Value: -1}},
		"newest":     {{Key: "createdAt", Value: -1}},
		"price-low":  {{Key: "variants.price", Value: 1}},
		"price-high": {{Key: "variants.price", Value: -1}},
		"popular":    {{Key: "ratings.average", Value: -1}},
		"unknown":    {{Key: "createdAt", Value: -1}},
	}
	for key, want := range cases {
		q := Query{Sort: key}
		assert.Equal(t, want, q.SortDoc(), "sort=%q", key)
	}
}

func TestPaginationWindow(t *testing.T) {
	q := parse(t, "/api/products?pageNumber=2")
	assert.Equal(t, int64(12), q.Skip)
	assert.Equal(t, int64(12), q.Limit)

	q = parse(t, "/api/products?pageNumber=junk&limit=0")
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(12), q.Limit)
}

func TestPages(t *testing.T) {
	assert.Equal(t, int64(0), Pages(0, 12))
	assert.Equal(t, int64(1), Pages(12, 12))
	assert.Equal(t, int64(2), Pages(13, 12))
	assert.Equal(t, int64(3), Pages(25, 12))
}
