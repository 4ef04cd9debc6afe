package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
)

const (
	// DefaultPageSize applies when page is given without size.
	DefaultPageSize = 20
	// MaxPageSize caps size.
	MaxPageSize = 2000
)

// Order sorts by one column.
type Order struct {
	Property string
	Column   Column
	Desc     bool
}

// Pageable carries caller-supplied ordering and paging. Size 0 means unpaged.
type Pageable struct {
	Sort []Order
	Page int
	Size int
}

// Paged reports whether LIMIT/OFFSET apply.
func (p Pageable) Paged() bool { return p.Size > 0 }

// Offset returns the first row index of the page.
func (p Pageable) Offset() int { return p.Page * p.Size }

// OrderBySQL renders " ORDER BY ..." or "" when no sort is set.
func (p Pageable) OrderBySQL() string {
	if len(p.Sort) == 0 {
		return ""
	}
	parts := make([]string, len(p.Sort))
	for i, o := range p.Sort {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = o.Column.String() + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// LimitSQL renders " LIMIT $n OFFSET $m" for paged requests.
func (p Pageable) LimitSQL(b *Binder) string {
	if !p.Paged() {
		return ""
	}
	return " LIMIT " + b.Bind(int64(p.Size)) + " OFFSET " + b.Bind(int64(p.Offset()))
}

// ParsePageable reads sort, page and size. Each sort value is
// "prop[,prop...][,asc|desc]"; properties must be keys of allowed.
func ParsePageable(values url.Values, allowed map[string]Column) (Pageable, error) {
	var p Pageable
	for _, raw := range values["sort"] {
		orders, err := parseSort(raw, allowed)
		if err != nil {
			return Pageable{}, err
		}
		p.Sort = append(p.Sort, orders...)
	}

	page, hasPage, err := intParam(values, "page")
	if err != nil {
		return Pageable{}, err
	}
	size, hasSize, err := intParam(values, "size")
	if err != nil {
		return Pageable{}, err
	}
	if page < 0 || size < 0 {
		return Pageable{}, fmt.Errorf("%w: negative page or size", errs.ErrInvalidFilter)
	}
	if hasPage && !hasSize {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if size > 0 && page > math.MaxInt/size {
		return Pageable{}, fmt.Errorf("%w: page %d out of range", errs.ErrInvalidFilter, page)
	}
	p.Page, p.Size = page, size
	return p, nil
}

func parseSort(raw string, allowed map[string]Column) ([]Order, error) {
	tokens := strings.Split(raw, ",")
	desc := false
	switch last := strings.ToLower(strings.TrimSpace(tokens[len(tokens)-1])); last {
	case "asc", "desc":
		desc = last == "desc"
		tokens = tokens[:len(tokens)-1]
	}
	var out []Order
	for _, t := range tokens {
		prop := strings.TrimSpace(t)
		if prop == "" {
			continue
		}
		col, ok := allowed[prop]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sort property %q", errs.ErrInvalidFilter, prop)
		}
		out = append(out, Order{Property: prop, Column: col, Desc: desc})
	}
	return out, nil
}

func intParam(values url.Values, key string) (int, bool, error) {
	s := strings.TrimSpace(values.Get(key))
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", errs.ErrInvalidFilter, key, err)
	}
	return n, true, nil
}
