package query

import (
	"strconv"
	"strings"
)

// Binder collects positional arguments and hands out $n placeholders.
type Binder struct {
	args []any
}

// Bind appends v and returns its placeholder.
func (b *Binder) Bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// Args returns the arguments bound so far, in placeholder order.
func (b *Binder) Args() []any { return b.args }

// SQL renders the predicate, binding its values through b.
func (p Predicate) SQL(b *Binder) string {
	col := p.Column.String()
	switch p.Op {
	case OpTrue:
		return "TRUE"
	case OpFalse:
		return "FALSE"
	case OpEq:
		return col + " = " + b.Bind(p.Value)
	case OpNe:
		return col + " <> " + b.Bind(p.Value)
	case OpGt:
		return col + " > " + b.Bind(p.Value)
	case OpGte:
		return col + " >= " + b.Bind(p.Value)
	case OpLt:
		return col + " < " + b.Bind(p.Value)
	case OpLte:
		return col + " <= " + b.Bind(p.Value)
	case OpIsNull:
		return col + " IS NULL"
	case OpNotNull:
		return col + " IS NOT NULL"
	case OpContains:
		return "strpos(" + col + ", " + b.Bind(p.Value) + ") > 0"
	case OpNotContains:
		return "strpos(" + col + ", " + b.Bind(p.Value) + ") = 0"
	case OpIn:
		if len(p.Values) == 0 {
			return "FALSE"
		}
		return col + " IN (" + bindList(b, p.Values) + ")"
	case OpNotIn:
		if len(p.Values) == 0 {
			return "TRUE"
		}
		return col + " NOT IN (" + bindList(b, p.Values) + ")"
	}
	return "FALSE"
}

func bindList(b *Binder, vals []any) string {
	ph := make([]string, len(vals))
	for i, v := range vals {
		ph[i] = b.Bind(v)
	}
	return strings.Join(ph, ", ")
}

// WhereSQL renders the conjunction; the empty conjunction is TRUE.
func (s Specification[E]) WhereSQL(b *Binder) string {
	if len(s.preds) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(s.preds))
	for i, p := range s.preds {
		parts[i] = p.SQL(b)
	}
	return strings.Join(parts, " AND ")
}

// JoinSQL renders the joins, each prefixed with a space.
func (s Specification[E]) JoinSQL() string {
	var sb strings.Builder
	for _, j := range s.joins {
		sb.WriteString(" LEFT JOIN ")
		sb.WriteString(j.Table)
		sb.WriteString(" ")
		sb.WriteString(j.Alias)
		sb.WriteString(" ON ")
		sb.WriteString(j.On)
	}
	return sb.String()
}

// SelectSQL renders a SELECT of cols from table (with alias equal to table name),
// applying joins, the conjunction, ordering and paging.
func (s Specification[E]) SelectSQL(table string, cols []string, page Pageable, b *Binder) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	sb.WriteString(s.JoinSQL())
	sb.WriteString(" WHERE ")
	sb.WriteString(s.WhereSQL(b))
	sb.WriteString(page.OrderBySQL())
	sb.WriteString(page.LimitSQL(b))
	return sb.String()
}

// CountSQL renders a COUNT over key; DISTINCT specifications count distinct keys.
func (s Specification[E]) CountSQL(table string, key Column, b *Binder) string {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(key.String())
	sb.WriteString(") FROM ")
	sb.WriteString(table)
	sb.WriteString(s.JoinSQL())
	sb.WriteString(" WHERE ")
	sb.WriteString(s.WhereSQL(b))
	return sb.String()
}
