package query

import (
	"strconv"
	"strings"
)

// Token is one parsed filter term: a field name, a comparison operator and
// the raw string value from the query string.
type Token struct {
	Field string
	Op    string
	Value string
}

// operators maps the query-string operator suffix to its mongo counterpart.
// New operators are added here without touching call sites.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Tokenize splits a raw query-string key of the form "field" or "field[op]"
// into a Token. A bare key, or a bracket suffix that is not a recognised
// operator, yields the equality operator "$eq".
func Tokenize(key, value string) Token {
	open := strings.IndexByte(key, '[')
	if open > 0 && strings.HasSuffix(key, "]") {
		if op, ok := operators[key[open+1:len(key)-1]]; ok {
			return Token{Field: key[:open], Op: op, Value: value}
		}
	}
	return Token{Field: key, Op: "$eq", Value: value}
}

// coerce converts a raw query-string value into the most specific type the
// storage layer can compare against: int, float64, bool, falling back to
// the original string.
func coerce(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// coerceList splits a comma-separated value and coerces each element.
// Used for the $in operator.
func coerceList(raw string) []any {
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, coerce(strings.TrimSpace(p)))
	}
	return out
}
