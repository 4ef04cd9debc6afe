package filter

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
)

// Operator names accepted in "<field>.<operator>=<value>" query keys.
const (
	OpEquals             = "equals"
	OpNotEquals          = "notEquals"
	OpSpecified          = "specified"
	OpIn                 = "in"
	OpNotIn              = "notIn"
	OpGreaterThan        = "greaterThan"
	OpGreaterThanOrEqual = "greaterThanOrEqual"
	OpLessThan           = "lessThan"
	OpLessThanOrEqual    = "lessThanOrEqual"
	OpContains           = "contains"
	OpDoesNotContain     = "doesNotContain"
)

// ParseLong reads "<field>.<op>" keys into a LongFilter. It returns nil when
// no key for field is present.
func ParseLong(values url.Values, field string) (*LongFilter, error) {
	f := &LongFilter{}
	found, err := parseKeys(values, field, func(op string, raw []string) (bool, error) {
		return applyRange(f, op, raw, parseInt64)
	})
	if err != nil || !found {
		return nil, err
	}
	return f, nil
}

// ParseString reads "<field>.<op>" keys into a StringFilter.
func ParseString(values url.Values, field string) (*StringFilter, error) {
	f := &StringFilter{}
	found, err := parseKeys(values, field, func(op string, raw []string) (bool, error) {
		switch op {
		case OpContains:
			v := raw[0]
			f.Contains = &v
			return true, nil
		case OpDoesNotContain:
			v := raw[0]
			f.DoesNotContain = &v
			return true, nil
		}
		return applyRange(&f.RangeFilter, op, raw, parseString)
	})
	if err != nil || !found {
		return nil, err
	}
	return f, nil
}

// ParseBool reads "<field>.<op>" keys into a BooleanFilter. Neither AppStats
// nor AppUser has a boolean column; it serves criteria for flag fields such
// as jhi_user.activated.
func ParseBool(values url.Values, field string) (*BooleanFilter, error) {
	f := &BooleanFilter{}
	found, err := parseKeys(values, field, func(op string, raw []string) (bool, error) {
		return applyBase(f, op, raw, parseBool)
	})
	if err != nil || !found {
		return nil, err
	}
	return f, nil
}

// parseKeys walks keys prefixed with "field." in sorted order so errors are stable.
func parseKeys(values url.Values, field string, apply func(op string, raw []string) (bool, error)) (bool, error) {
	prefix := field + "."
	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	found := false
	for _, key := range keys {
		raw := values[key]
		if len(raw) == 0 {
			continue
		}
		ok, err := apply(strings.TrimPrefix(key, prefix), raw)
		if err != nil {
			return false, fmt.Errorf("%w: %s: %v", errs.ErrInvalidFilter, key, err)
		}
		if !ok {
			return false, fmt.Errorf("%w: unknown operator %q", errs.ErrInvalidFilter, key)
		}
		found = true
	}
	return found, nil
}

func applyBase[T comparable](f *Filter[T], op string, raw []string, conv func(string) (T, error)) (bool, error) {
	var err error
	switch op {
	case OpEquals:
		f.Equals, err = convPtr(raw[0], conv)
	case OpNotEquals:
		f.NotEquals, err = convPtr(raw[0], conv)
	case OpSpecified:
		f.Specified, err = convPtr(raw[0], parseBool)
	case OpIn:
		f.In, err = convList(raw, conv)
	case OpNotIn:
		f.NotIn, err = convList(raw, conv)
	default:
		return false, nil
	}
	return true, err
}

func applyRange[T cmp.Ordered](f *RangeFilter[T], op string, raw []string, conv func(string) (T, error)) (bool, error) {
	var err error
	switch op {
	case OpGreaterThan:
		f.GreaterThan, err = convPtr(raw[0], conv)
	case OpGreaterThanOrEqual:
		f.GreaterThanOrEqual, err = convPtr(raw[0], conv)
	case OpLessThan:
		f.LessThan, err = convPtr(raw[0], conv)
	case OpLessThanOrEqual:
		f.LessThanOrEqual, err = convPtr(raw[0], conv)
	default:
		return applyBase(&f.Filter, op, raw, conv)
	}
	return true, err
}

func convPtr[T any](s string, conv func(string) (T, error)) (*T, error) {
	v, err := conv(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// convList accepts both repeated keys and comma-separated values.
func convList[T any](raw []string, conv func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := conv(part)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func parseInt64(s string) (int64, error) { return strconv.ParseInt(strings.TrimSpace(s), 10, 64) }

func parseString(s string) (string, error) { return s, nil }

func parseBool(s string) (bool, error) { return strconv.ParseBool(strings.TrimSpace(s)) }
