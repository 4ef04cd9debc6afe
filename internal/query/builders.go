package query

import (
	"cmp"

	"github.com/kaizenmobile/tenant-registry/internal/filter"
)

// BuildFilter maps the shared operators of f onto col. Equals wins over
// everything, then In; otherwise the remaining operators are ANDed.
func BuildFilter[T comparable](f *filter.Filter[T], col Column) []Predicate {
	if f == nil {
		return nil
	}
	if f.Equals != nil {
		return []Predicate{{Op: OpEq, Column: col, Value: *f.Equals}}
	}
	if f.In != nil {
		return []Predicate{inPredicate(OpIn, col, f.In)}
	}
	return baseRest(f, col)
}

// BuildRange is BuildFilter plus the ordering comparisons.
func BuildRange[T cmp.Ordered](f *filter.RangeFilter[T], col Column) []Predicate {
	if f == nil {
		return nil
	}
	if f.Equals != nil || f.In != nil {
		return BuildFilter(&f.Filter, col)
	}
	return append(baseRest(&f.Filter, col), rangeRest(f, col)...)
}

// BuildString is BuildRange plus substring matching. Equals short-circuits,
// then In; every other operator present is ANDed.
func BuildString(f *filter.StringFilter, col Column) []Predicate {
	if f == nil {
		return nil
	}
	if f.Equals != nil || f.In != nil {
		return BuildFilter(&f.Filter, col)
	}
	var out []Predicate
	if f.Contains != nil {
		out = append(out, Predicate{Op: OpContains, Column: col, Value: *f.Contains})
	}
	if f.DoesNotContain != nil {
		out = append(out, Predicate{Op: OpNotContains, Column: col, Value: *f.DoesNotContain})
	}
	out = append(out, baseRest(&f.Filter, col)...)
	return append(out, rangeRest(&f.RangeFilter, col)...)
}

func baseRest[T comparable](f *filter.Filter[T], col Column) []Predicate {
	var out []Predicate
	if f.Specified != nil {
		op := OpIsNull
		if *f.Specified {
			op = OpNotNull
		}
		out = append(out, Predicate{Op: op, Column: col})
	}
	if f.NotEquals != nil {
		out = append(out, Predicate{Op: OpNe, Column: col, Value: *f.NotEquals})
	}
	if len(f.NotIn) > 0 {
		out = append(out, inPredicate(OpNotIn, col, f.NotIn))
	}
	return out
}

func rangeRest[T cmp.Ordered](f *filter.RangeFilter[T], col Column) []Predicate {
	var out []Predicate
	add := func(op Op, v *T) {
		if v != nil {
			out = append(out, Predicate{Op: op, Column: col, Value: *v})
		}
	}
	add(OpGt, f.GreaterThan)
	add(OpGte, f.GreaterThanOrEqual)
	add(OpLt, f.LessThan)
	add(OpLte, f.LessThanOrEqual)
	return out
}

func inPredicate[T any](op Op, col Column, vals []T) Predicate {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return Predicate{Op: op, Column: col, Values: out}
}
