// Package query turns filter value objects into composable specifications and
// renders them as PostgreSQL statements. Nothing here talks to the database.
package query

import "slices"

// Op tags the comparison a Predicate performs.
type Op int

const (
	OpTrue Op = iota
	OpFalse
	OpEq
	OpNe
	OpIn
	OpNotIn
	OpGt
	OpGte
	OpLt
	OpLte
	OpIsNull
	OpNotNull
	OpContains
	OpNotContains
)

var opNames = [...]string{
	OpTrue:        "true",
	OpFalse:       "false",
	OpEq:          "eq",
	OpNe:          "ne",
	OpIn:          "in",
	OpNotIn:       "not_in",
	OpGt:          "gt",
	OpGte:         "gte",
	OpLt:          "lt",
	OpLte:         "lte",
	OpIsNull:      "is_null",
	OpNotNull:     "not_null",
	OpContains:    "contains",
	OpNotContains: "not_contains",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "unknown"
	}
	return opNames[o]
}

// Column is a table-qualified column reference. Table is the alias used in FROM/JOIN.
type Column struct {
	Table string
	Name  string
}

// Col builds a Column.
func Col(table, name string) Column { return Column{Table: table, Name: name} }

func (c Column) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// Join is a LEFT OUTER join of Table under Alias.
type Join struct {
	Table string
	Alias string
	On    string
}

// Predicate is a single comparison against one column.
type Predicate struct {
	Op     Op
	Column Column
	Value  any
	Values []any
}

// Specification is an ordered conjunction of predicates over entity E, plus the
// joins those predicates need and a DISTINCT flag. The zero value matches all rows.
// Specifications are immutable; every method returns a new value.
type Specification[E any] struct {
	distinct bool
	joins    []Join
	preds    []Predicate
}

// Where returns the always-true specification.
func Where[E any]() Specification[E] { return Specification[E]{} }

// Distinct returns a specification that only carries the DISTINCT flag.
// Predicates and joins accumulated on s are not carried over, so Distinct has
// to be applied before anything else.
func (s Specification[E]) Distinct(d bool) Specification[E] {
	return Specification[E]{distinct: d}
}

// And adds predicates to the conjunction.
func (s Specification[E]) And(preds ...Predicate) Specification[E] {
	if len(preds) == 0 {
		return s
	}
	out := s
	out.preds = append(slices.Clip(s.preds), preds...)
	return out
}

// Join adds a LEFT OUTER join unless one with the same alias is already present.
func (s Specification[E]) Join(j Join) Specification[E] {
	for _, have := range s.joins {
		if have.Alias == j.Alias {
			return s
		}
	}
	out := s
	out.joins = append(slices.Clip(s.joins), j)
	return out
}

// IsDistinct reports whether results must be deduplicated.
func (s Specification[E]) IsDistinct() bool { return s.distinct }

// Predicates returns a copy of the conjunction in insertion order.
func (s Specification[E]) Predicates() []Predicate { return slices.Clone(s.preds) }

// Joins returns a copy of the joins in insertion order.
func (s Specification[E]) Joins() []Join { return slices.Clone(s.joins) }
