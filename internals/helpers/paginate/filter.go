// file: internals/helpers/paginate/filter.go
package paginate

// Filter is a store-agnostic predicate tree. Collections render it.
type Filter interface{ isFilter() }

// MatchAll matches every document.
type MatchAll struct{}

// Eq is field = value. A nil Value means IS NULL.
type Eq struct {
	Field string
	Value any
}

// In is field IN (values). Empty Values matches nothing.
type In struct {
	Field  string
	Values []any
}

// Contains is a case-insensitive substring match.
type Contains struct {
	Field string
	Term  string
}

type And []Filter
type Or []Filter

func (MatchAll) isFilter() {}
func (Eq) isFilter()       {}
func (In) isFilter()       {}
func (Contains) isFilter() {}
func (And) isFilter()      {}
func (Or) isFilter()       {}

// AndOf flattens nested conjunctions and drops MatchAll operands.
func AndOf(fs ...Filter) Filter {
	var out And
	for _, f := range fs {
		switch t := f.(type) {
		case nil, MatchAll:
		case And:
			switch inner := AndOf(t...).(type) {
			case MatchAll:
			case And:
				out = append(out, inner...)
			default:
				out = append(out, inner)
			}
		default:
			out = append(out, f)
		}
	}
	switch len(out) {
	case 0:
		return MatchAll{}
	case 1:
		return out[0]
	}
	return out
}

// SearchFilter builds AND over terms of (OR over fields contains term).
func SearchFilter(terms, fields []string) Filter {
	if len(terms) == 0 || len(fields) == 0 {
		return MatchAll{}
	}
	conj := make(And, 0, len(terms))
	for _, term := range terms {
		disj := make(Or, 0, len(fields))
		for _, f := range fields {
			disj = append(disj, Contains{Field: f, Term: term})
		}
		conj = append(conj, disj)
	}
	return conj
}
