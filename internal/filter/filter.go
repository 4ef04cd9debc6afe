// Package filter defines typed per-field predicate holders used by criteria aggregates.
//
// A filter only describes a comparison; no evaluation happens here. Absent
// operators are nil (or a nil slice), so the zero value of every filter
// matches everything.
package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Filter holds the operators shared by every field type.
type Filter[T comparable] struct {
	Equals    *T
	NotEquals *T
	Specified *bool
	In        []T
	NotIn     []T
}

// RangeFilter adds ordering comparisons to Filter.
type RangeFilter[T cmp.Ordered] struct {
	Filter[T]
	GreaterThan        *T
	GreaterThanOrEqual *T
	LessThan           *T
	LessThanOrEqual    *T
}

// StringFilter adds case-sensitive substring matching to RangeFilter.
type StringFilter struct {
	RangeFilter[string]
	Contains       *string
	DoesNotContain *string
}

// LongFilter filters identifiers and other int64 columns.
type LongFilter = RangeFilter[int64]

// BooleanFilter filters boolean columns. It accepts only the shared operators.
type BooleanFilter = Filter[bool]

// Copy returns an independent filter with the same operator values.
func (f *Filter[T]) Copy() *Filter[T] {
	if f == nil {
		return nil
	}
	out := f.copyValue()
	return &out
}

func (f *Filter[T]) copyValue() Filter[T] {
	return Filter[T]{
		Equals:    copyPtr(f.Equals),
		NotEquals: copyPtr(f.NotEquals),
		Specified: copyPtr(f.Specified),
		In:        copySlice(f.In),
		NotIn:     copySlice(f.NotIn),
	}
}

// Equal reports structural equality.
func (f *Filter[T]) Equal(o *Filter[T]) bool {
	if f == nil || o == nil {
		return f == o
	}
	return ptrEqual(f.Equals, o.Equals) &&
		ptrEqual(f.NotEquals, o.NotEquals) &&
		ptrEqual(f.Specified, o.Specified) &&
		sliceEqual(f.In, o.In) &&
		sliceEqual(f.NotIn, o.NotIn)
}

func (f *Filter[T]) String() string {
	if f == nil {
		return "<nil>"
	}
	return describe("Filter", f.parts())
}

func (f *Filter[T]) parts() []string {
	var p []string
	p = appendPtr(p, "equals", f.Equals)
	p = appendPtr(p, "notEquals", f.NotEquals)
	p = appendPtr(p, "specified", f.Specified)
	p = appendSlice(p, "in", f.In)
	p = appendSlice(p, "notIn", f.NotIn)
	return p
}

// Copy returns an independent filter with the same operator values.
func (f *RangeFilter[T]) Copy() *RangeFilter[T] {
	if f == nil {
		return nil
	}
	out := f.copyValue()
	return &out
}

func (f *RangeFilter[T]) copyValue() RangeFilter[T] {
	return RangeFilter[T]{
		Filter:             f.Filter.copyValue(),
		GreaterThan:        copyPtr(f.GreaterThan),
		GreaterThanOrEqual: copyPtr(f.GreaterThanOrEqual),
		LessThan:           copyPtr(f.LessThan),
		LessThanOrEqual:    copyPtr(f.LessThanOrEqual),
	}
}

// Equal reports structural equality.
func (f *RangeFilter[T]) Equal(o *RangeFilter[T]) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Filter.Equal(&o.Filter) &&
		ptrEqual(f.GreaterThan, o.GreaterThan) &&
		ptrEqual(f.GreaterThanOrEqual, o.GreaterThanOrEqual) &&
		ptrEqual(f.LessThan, o.LessThan) &&
		ptrEqual(f.LessThanOrEqual, o.LessThanOrEqual)
}

func (f *RangeFilter[T]) String() string {
	if f == nil {
		return "<nil>"
	}
	return describe("RangeFilter", f.parts())
}

func (f *RangeFilter[T]) parts() []string {
	p := f.Filter.parts()
	p = appendPtr(p, "greaterThan", f.GreaterThan)
	p = appendPtr(p, "greaterThanOrEqual", f.GreaterThanOrEqual)
	p = appendPtr(p, "lessThan", f.LessThan)
	p = appendPtr(p, "lessThanOrEqual", f.LessThanOrEqual)
	return p
}

// Copy returns an independent filter with the same operator values.
func (f *StringFilter) Copy() *StringFilter {
	if f == nil {
		return nil
	}
	return &StringFilter{
		RangeFilter:    f.RangeFilter.copyValue(),
		Contains:       copyPtr(f.Contains),
		DoesNotContain: copyPtr(f.DoesNotContain),
	}
}

// Equal reports structural equality.
func (f *StringFilter) Equal(o *StringFilter) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.RangeFilter.Equal(&o.RangeFilter) &&
		ptrEqual(f.Contains, o.Contains) &&
		ptrEqual(f.DoesNotContain, o.DoesNotContain)
}

func (f *StringFilter) String() string {
	if f == nil {
		return "<nil>"
	}
	p := f.RangeFilter.parts()
	p = appendPtr(p, "contains", f.Contains)
	p = appendPtr(p, "doesNotContain", f.DoesNotContain)
	return describe("StringFilter", p)
}

// --- helpers ---

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// copySlice keeps nil and empty apart: an empty In list still means "match nothing".
func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sliceEqual[T comparable](a, b []T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

func appendPtr[T any](parts []string, name string, p *T) []string {
	if p == nil {
		return parts
	}
	return append(parts, fmt.Sprintf("%s=%v", name, *p))
}

func appendSlice[T any](parts []string, name string, s []T) []string {
	if s == nil {
		return parts
	}
	return append(parts, fmt.Sprintf("%s=%v", name, s))
}

func describe(kind string, parts []string) string {
	return kind + " [" + strings.Join(parts, ", ") + "]"
}
