// file: internals/helpers/paginate/gorm_collection.go
package paginate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"smartedu_backend/internals/helpers/apperror"
)

// GormCollection adapts a gorm model to Collection.
//
// Field names in filters, sort and projection may be given as the json tag,
// the column name, the Go field name or its lowerCamel form (createdAt).
// Fields tagged json:"-" cannot be filtered, sorted or projected on.
type GormCollection[T any] struct {
	db   *gorm.DB
	name string

	once    sync.Once
	columns map[string]string
	initErr error
}

func NewGormCollection[T any](db *gorm.DB, name string) *GormCollection[T] {
	return &GormCollection[T]{db: db, name: name}
}

func (g *GormCollection[T]) Name() string { return g.name }

func (g *GormCollection[T]) init() error {
	g.once.Do(func() {
		s, err := schema.Parse(new(T), &sync.Map{}, g.db.NamingStrategy)
		if err != nil {
			g.initErr = fmt.Errorf("parse schema %s: %w", g.name, err)
			return
		}
		g.columns = map[string]string{}
		add := func(alias, col string) {
			if alias == "" || alias == "-" {
				return
			}
			if _, taken := g.columns[alias]; !taken {
				g.columns[alias] = col
			}
		}
		// urutan prioritas: nama kolom, json tag, nama field Go, lowerCamel
		var fields []*schema.Field
		for _, f := range s.Fields {
			if f.DBName == "" || f.Tag.Get("json") == "-" {
				continue
			}
			fields = append(fields, f)
			add(f.DBName, f.DBName)
		}
		for _, f := range fields {
			jsonName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			add(jsonName, f.DBName)
			add(f.Name, f.DBName)
			add(lowerCamel(f.Name), f.DBName)
		}
	})
	return g.initErr
}

// Column resolves a public field name to its column.
func (g *GormCollection[T]) Column(field string) (string, bool) {
	if err := g.init(); err != nil {
		return "", false
	}
	col, ok := g.columns[strings.TrimSpace(field)]
	return col, ok
}

func (g *GormCollection[T]) where(ctx context.Context, f Filter) (*gorm.DB, error) {
	if err := g.init(); err != nil {
		return nil, err
	}
	q := g.db.WithContext(ctx).Model(new(T))
	if f == nil {
		return q, nil
	}
	if _, all := f.(MatchAll); all {
		return q, nil
	}
	sql, vars, err := g.render(f)
	if err != nil {
		return nil, err
	}
	return q.Where(clause.Expr{SQL: sql, Vars: vars}), nil
}

func (g *GormCollection[T]) Count(ctx context.Context, f Filter) (int64, error) {
	q, err := g.where(ctx, f)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (g *GormCollection[T]) Find(ctx context.Context, f Filter, opts FindOptions) ([]T, error) {
	q, err := g.where(ctx, f)
	if err != nil {
		return nil, err
	}

	sorted := false
	for _, s := range opts.Sort {
		col, ok := g.columns[s.Field]
		if !ok {
			continue // sort tak dikenal: dilewati
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: s.Desc})
		sorted = true
	}
	// tidak ada sort yang dikenali: pakai default supaya halaman tetap stabil
	if col, ok := g.columns[DefaultSortField]; !sorted && ok {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true})
	}

	var include, exclude []string
	for field, keep := range opts.Projection {
		col, ok := g.columns[field]
		if !ok {
			continue
		}
		if keep {
			include = append(include, col)
		} else {
			exclude = append(exclude, col)
		}
	}
	if len(include) > 0 {
		q = q.Select(include)
	} else if len(exclude) > 0 {
		q = q.Omit(exclude...)
	}

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// render turns a filter tree into one fully parenthesized SQL fragment.
func (g *GormCollection[T]) render(f Filter) (string, []any, error) {
	switch t := f.(type) {
	case nil, MatchAll:
		return "1 = 1", nil, nil

	case Eq:
		col, err := g.filterColumn(t.Field)
		if err != nil {
			return "", nil, err
		}
		if t.Value == nil {
			return "(? IS NULL)", []any{clause.Column{Name: col}}, nil
		}
		return "(? = ?)", []any{clause.Column{Name: col}, t.Value}, nil

	case In:
		col, err := g.filterColumn(t.Field)
		if err != nil {
			return "", nil, err
		}
		if len(t.Values) == 0 {
			return "1 = 0", nil, nil
		}
		return "(? IN ?)", []any{clause.Column{Name: col}, t.Values}, nil

	case Contains:
		col, err := g.filterColumn(t.Field)
		if err != nil {
			return "", nil, err
		}
		pattern := "%" + escapeLike(strings.ToLower(t.Term)) + "%"
		return "(LOWER(CAST(? AS TEXT)) LIKE ? ESCAPE '!')", []any{clause.Column{Name: col}, pattern}, nil

	case And:
		return g.join(t, " AND ", "1 = 1")
	case Or:
		return g.join(t, " OR ", "1 = 0")
	}
	return "", nil, fmt.Errorf("paginate: unsupported filter %T", f)
}

func (g *GormCollection[T]) join(fs []Filter, op, empty string) (string, []any, error) {
	if len(fs) == 0 {
		return empty, nil, nil
	}
	parts := make([]string, 0, len(fs))
	var vars []any
	for _, f := range fs {
		sql, v, err := g.render(f)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		vars = append(vars, v...)
	}
	return "(" + strings.Join(parts, op) + ")", vars, nil
}

func (g *GormCollection[T]) filterColumn(field string) (string, error) {
	col, ok := g.columns[field]
	if !ok {
		return "", apperror.Validation(fmt.Sprintf("unknown filter field %q", field))
	}
	return col, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	// ID -> id, UserID -> userID
	i := 0
	for i < len(rs) && unicode.IsUpper(rs[i]) {
		if i > 0 && i+1 < len(rs) && unicode.IsLower(rs[i+1]) {
			break
		}
		rs[i] = unicode.ToLower(rs[i])
		i++
	}
	return string(rs)
}
