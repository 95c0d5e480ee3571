// file: internals/helpers/paginate/options.go
package paginate

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortField = "createdAt"
)

// RawOptions is the loosely typed option bag handed in by handlers
// (query string values, or numbers when built in code).
type RawOptions map[string]any

type SortField struct {
	Field string
	Desc  bool
}

// Descriptor is the normalized form of RawOptions. Treat it as a value.
type Descriptor struct {
	Filter       Filter
	Sort         []SortField
	Projection   map[string]bool // true = include, false = exclude
	Page         int
	Limit        int
	Search       string
	SearchTerms  []string
	SearchFields []string
}

func (d Descriptor) Offset() int { return (d.Page - 1) * d.Limit }

// Parse normalizes raw options. Bad page/limit values never error,
// they silently fall back to the defaults. Limit is clamped to MaxLimit.
func Parse(raw RawOptions) Descriptor {
	d := Descriptor{
		Sort:       parseSort(lookupString(raw, "sortBy", "sort_by")),
		Projection: parseProjection(lookupString(raw, "projectBy", "project_by")),
		Page:       DefaultPage,
		Limit:      DefaultLimit,
	}

	if n, ok := positiveInt(lookup(raw, "limit", "per_page")); ok {
		d.Limit = min(n, MaxLimit)
	}
	if n, ok := positiveInt(lookup(raw, "page")); ok {
		d.Page = n
	}

	d.Search = strings.TrimSpace(lookupString(raw, "search"))
	d.SearchTerms = strings.Fields(d.Search)
	d.SearchFields = parseFieldList(lookup(raw, "searchFields", "search_fields"))
	d.Filter = SearchFilter(d.SearchTerms, d.SearchFields)
	return d
}

// normalized guards against zero-value descriptors built by hand.
func (d Descriptor) normalized() Descriptor {
	if d.Page < 1 {
		d.Page = DefaultPage
	}
	if d.Limit < 1 {
		d.Limit = DefaultLimit
	}
	if d.Limit > MaxLimit {
		d.Limit = MaxLimit
	}
	if d.Filter == nil {
		d.Filter = MatchAll{}
	}
	if len(d.Sort) == 0 {
		d.Sort = []SortField{{Field: DefaultSortField, Desc: true}}
	}
	return d
}

// "name:desc,createdAt:asc" -> ordered fields; token tanpa nama dilewati
func parseSort(s string) []SortField {
	var out []SortField
	for _, tok := range strings.Split(s, ",") {
		field, dir, _ := strings.Cut(strings.TrimSpace(tok), ":")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		out = append(out, SortField{
			Field: field,
			Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	if len(out) == 0 {
		return []SortField{{Field: DefaultSortField, Desc: true}}
	}
	return out
}

// "password:hide,name:include" -> {password:false, name:true}
func parseProjection(s string) map[string]bool {
	out := map[string]bool{}
	for _, tok := range strings.Split(s, ",") {
		field, mode, _ := strings.Cut(strings.TrimSpace(tok), ":")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		out[field] = strings.TrimSpace(mode) != "hide"
	}
	return out
}

func parseFieldList(v any) []string {
	var parts []string
	switch t := v.(type) {
	case []string:
		parts = t
	case []any:
		for _, x := range t {
			if s, ok := x.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		parts = strings.Split(t, ",")
	}

	out := make([]string, 0, len(parts))
	seen := map[string]struct{}{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// positiveInt accepts ints, integral floats and decimal strings > 0.
func positiveInt(v any) (int, bool) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int32:
		n = int64(t)
	case int64:
		n = t
	case uint:
		if uint64(t) > math.MaxInt32 {
			return 0, false
		}
		n = int64(t)
	case float32:
		return positiveInt(float64(t))
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt32 {
			return 0, false
		}
		n = int64(t)
	case string:
		p, err := strconv.ParseInt(strings.TrimSpace(t), 10, 32)
		if err != nil {
			return 0, false
		}
		n = p
	default:
		return 0, false
	}
	if n < 1 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func lookup(raw RawOptions, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func lookupString(raw RawOptions, keys ...string) string {
	switch t := lookup(raw, keys...).(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	default:
		return ""
	}
}
