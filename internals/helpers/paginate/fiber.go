// file: internals/helpers/paginate/fiber.go
package paginate

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var queryKeys = []string{
	"sortBy", "sort_by",
	"projectBy", "project_by",
	"limit", "per_page",
	"page",
	"search",
	"searchFields", "search_fields",
}

// ParseFiber collects the pagination keys from the query string.
func ParseFiber(c *fiber.Ctx) RawOptions {
	q := c.Queries()
	raw := RawOptions{}
	for _, k := range queryKeys {
		if v, ok := q[k]; ok {
			raw[k] = v
		}
	}
	return raw
}

// Pick turns the whitelisted query keys into equality filters,
// e.g. Pick(c, "status", "user_id") for ?status=success.
func Pick(c *fiber.Ctx, keys ...string) Filter {
	var fs []Filter
	for _, k := range keys {
		v := strings.TrimSpace(c.Query(k))
		if v == "" {
			continue
		}
		fs = append(fs, Eq{Field: k, Value: v})
	}
	return AndOf(fs...)
}

// DefaultSearch fills searchFields when the caller only sent ?search=.
func DefaultSearch(raw RawOptions, fields ...string) RawOptions {
	if _, ok := raw["searchFields"]; ok {
		return raw
	}
	if _, ok := raw["search_fields"]; ok {
		return raw
	}
	out := make(RawOptions, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}
	out["searchFields"] = fields
	return out
}
