package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)
	skip, limit := ParsePagination(r, 12, 100)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(12), limit)
}

func TestParsePaginationWindow(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?pageNumber=3&limit=20", nil)
	skip, limit := ParsePagination(r, 12, 100)
	assert.Equal(t, int64(40), skip)
	assert.Equal(t, int64(20), limit)
}

func TestParsePaginationMalformed(t *testing.T) {
	// garbage and negatives degrade to defaults, never error
	r := httptest.NewRequest("GET", "/api/products?pageNumber=abc&limit=-5", nil)
	skip, limit := ParsePagination(r, 12, 100)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(12), limit)
}

func TestParsePaginationCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?limit=5000", nil)
	_, limit := ParsePagination(r, 12, 100)
	assert.Equal(t, int64(100), limit)
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}
	allowed := map[string]bson.D{
		"price-low": {{Key: "variants.price", Value: 1}},
	}
	assert.Equal(t, allowed["price-low"], ParseSort("price-low", def, allowed))
	assert.Equal(t, def, ParseSort("bogus", def, allowed))
	assert.Equal(t, def, ParseSort("", def, allowed))
}

func TestRegexFilterQuotesMeta(t *testing.T) {
	f := RegexFilter("title", "a.b*")
	assert.Equal(t, bson.M{"title": bson.M{"$regex": `a\.b\*`, "$options": "i"}}, f)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCSV("a, b,"))
	assert.Nil(t, SplitCSV(""))
}
