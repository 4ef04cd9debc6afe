// Package criteria holds the per-entity filter aggregates read from list and
// count requests.
package criteria

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
)

// DistinctKey is the query key of the distinct flag.
const DistinctKey = "distinct"

func parseDistinct(values url.Values) (*bool, error) {
	raw, ok := values[DistinctKey]
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidFilter, DistinctKey, err)
	}
	return &v, nil
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// describer renders "Name{k=v, k=v, }" skipping absent slots.
type describer struct {
	sb strings.Builder
}

func newDescriber(name string) *describer {
	d := &describer{}
	d.sb.WriteString(name)
	d.sb.WriteString("{")
	return d
}

func (d *describer) add(name string, present bool, v fmt.Stringer) {
	if present {
		d.sb.WriteString(name + "=" + v.String() + ", ")
	}
}

func (d *describer) addBool(name string, v *bool) {
	if v != nil {
		d.sb.WriteString(name + "=" + strconv.FormatBool(*v) + ", ")
	}
}

func (d *describer) String() string {
	d.sb.WriteString("}")
	return d.sb.String()
}
