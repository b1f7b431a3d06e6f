package utils

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// ParsePagination reads page/limit from the query string and returns the
// mongo skip/limit window. Malformed or out-of-range values fall back to the
// defaults rather than erroring.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("pageNumber"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// ParseSort maps a sort key to its mongo sort document, falling back to def
// for unknown or empty keys.
func ParseSort(key string, def bson.D, allowed map[string]bson.D) bson.D {
	if s, ok := allowed[key]; ok {
		return s
	}
	return def
}

// RegexFilter builds a case-insensitive substring match on field.
func RegexFilter(field, term string) bson.M {
	return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}}
}

// SplitCSV takes a comma-separated string and returns the cleaned parts.
func SplitCSV(input string) []string {
	if input == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
