// file: internals/helpers/paginate/engine.go
package paginate

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/metrics"
)

type FindOptions struct {
	Sort       []SortField
	Projection map[string]bool
	Offset     int
	Limit      int
}

// Collection is the document store view the engine runs against.
type Collection[T any] interface {
	Count(ctx context.Context, f Filter) (int64, error)
	Find(ctx context.Context, f Filter, opts FindOptions) ([]T, error)
}

// Named collections get their own label on the latency histogram.
type Named interface{ Name() string }

type QueryResult[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

// TotalPages = ceil(total/limit), 0 when there is nothing to page.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Execute runs count and find concurrently against coll.
//
// The two reads are not linked by a transaction: a write landing between them
// may show up in one and not the other. Store errors come back as a single
// PAGINATION_FAILED error with the original cause attached; validation errors
// raised by the collection (unknown field) are returned untouched.
func Execute[T any](ctx context.Context, coll Collection[T], base Filter, d Descriptor) (*QueryResult[T], error) {
	d = d.normalized()
	filter := AndOf(base, d.Filter)

	name := "unknown"
	if n, ok := coll.(Named); ok {
		name = n.Name()
	}
	start := time.Now()
	defer func() {
		metrics.PaginationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	var (
		total int64
		rows  []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := coll.Count(gctx, filter)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		r, err := coll.Find(gctx, filter, FindOptions{
			Sort:       d.Sort,
			Projection: d.Projection,
			Offset:     d.Offset(),
			Limit:      d.Limit,
		})
		if err != nil {
			return err
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		if apperror.Is(err, apperror.CodeValidation) {
			return nil, err
		}
		return nil, apperror.Pagination(err)
	}

	if rows == nil {
		rows = []T{}
	}
	if len(rows) > d.Limit {
		rows = rows[:d.Limit]
	}

	return &QueryResult[T]{
		Results:      rows,
		Page:         d.Page,
		Limit:        d.Limit,
		TotalPages:   TotalPages(total, d.Limit),
		TotalResults: total,
	}, nil
}
