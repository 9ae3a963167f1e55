// Package query compiles flat query-string parameters into a deterministic
// query plan against one mongo collection: filter, projection, sort and a
// page window, plus the pagination metadata for the response envelope.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// control keys are stripped before filter construction; everything else is
// treated as a field filter.
var controlKeys = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

// Options is a compiled query plan. Zero value is not useful; build one
// with Compile.
type Options struct {
	Filter     bson.M
	Projection bson.M // nil means all fields
	Sort       bson.D
	Page       int
	Limit      int

	// Populate names a relation to expand after the primary query
	// resolves. It is set by the caller, never parsed from the query
	// string.
	Populate string
}

// Compile translates query-string parameters into an Options plan.
// Malformed numeric values for page/limit fall back to defaults rather than
// failing; unrecognised field names pass through as equality filters.
func Compile(values url.Values) Options {
	opts := Options{
		Filter: bson.M{},
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		if _, ok := controlKeys[key]; ok {
			continue
		}
		for _, v := range vals {
			opts.addFilter(Tokenize(key, v))
		}
	}

	if sel := values.Get("select"); sel != "" {
		opts.Projection = bson.M{}
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.Projection[f] = 1
			}
		}
	}

	if sort := values.Get("sort"); sort != "" {
		opts.Sort = parseSort(sort)
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}

	return opts
}

// addFilter merges one token into the filter. Repeated operators against
// the same field merge into one operator document, so
// "tuition[gte]=1000&tuition[lte]=9000" becomes a single range filter.
func (o *Options) addFilter(t Token) {
	if t.Op == "$eq" {
		o.Filter[t.Field] = coerce(t.Value)
		return
	}

	var value any
	if t.Op == "$in" {
		value = coerceList(t.Value)
	} else {
		value = coerce(t.Value)
	}

	if existing, ok := o.Filter[t.Field].(bson.M); ok {
		existing[t.Op] = value
		return
	}
	o.Filter[t.Field] = bson.M{t.Op: value}
}

// parseSort turns "a,-b" into an ordered sort document: ascending on a,
// descending on b.
func parseSort(raw string) bson.D {
	var sort bson.D
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(f, "-") {
			dir = -1
			f = f[1:]
		}
		sort = append(sort, bson.E{Key: f, Value: dir})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}

// Skip returns the number of documents to skip for the page window.
func (o Options) Skip() int {
	return (o.Page - 1) * o.Limit
}

// Find renders the plan as mongo find options (sort, projection, window).
func (o Options) Find() *options.FindOptions {
	fo := options.Find().
		SetSort(o.Sort).
		SetSkip(int64(o.Skip())).
		SetLimit(int64(o.Limit))
	if o.Projection != nil {
		fo.SetProjection(o.Projection)
	}
	return fo
}

// Page reference inside pagination metadata.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries navigation metadata for list responses. Next and Prev
// are omitted, not empty, when not applicable.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate builds the navigation metadata for a total count over the same
// filter: prev exists iff page > 1, next iff the window end is before the
// total. Returns nil when neither applies so the envelope omits the field
// entirely.
func (o Options) Paginate(total int64) *Pagination {
	var p Pagination
	if o.Page > 1 {
		p.Prev = &PageRef{Page: o.Page - 1, Limit: o.Limit}
	}
	if int64(o.Skip()+o.Limit) < total {
		p.Next = &PageRef{Page: o.Page + 1, Limit: o.Limit}
	}
	if p.Next == nil && p.Prev == nil {
		return nil
	}
	return &p
}
