package criteria

import (
	"net/url"

	"github.com/kaizenmobile/tenant-registry/internal/filter"
)

// AppStatsCriteria filters AppStats listings. A nil slot means "no constraint".
type AppStatsCriteria struct {
	ID           *filter.LongFilter
	UsedTenantID *filter.StringFilter
	Distinct     *bool
}

// IDFilter returns the id slot, creating an empty filter on first use.
func (c *AppStatsCriteria) IDFilter() *filter.LongFilter {
	if c.ID == nil {
		c.ID = &filter.LongFilter{}
	}
	return c.ID
}

// UsedTenantIDFilter returns the usedTenantId slot, creating it on first use.
func (c *AppStatsCriteria) UsedTenantIDFilter() *filter.StringFilter {
	if c.UsedTenantID == nil {
		c.UsedTenantID = &filter.StringFilter{}
	}
	return c.UsedTenantID
}

// DistinctValue returns the distinct flag, setting it to true on first use.
func (c *AppStatsCriteria) DistinctValue() bool {
	if c.Distinct == nil {
		v := true
		c.Distinct = &v
	}
	return *c.Distinct
}

// Copy deep-copies present slots; absent slots stay absent.
func (c *AppStatsCriteria) Copy() *AppStatsCriteria {
	if c == nil {
		return nil
	}
	return &AppStatsCriteria{
		ID:           c.ID.Copy(),
		UsedTenantID: c.UsedTenantID.Copy(),
		Distinct:     copyBool(c.Distinct),
	}
}

// Equal compares every slot and the distinct flag.
func (c *AppStatsCriteria) Equal(o *AppStatsCriteria) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ID.Equal(o.ID) &&
		c.UsedTenantID.Equal(o.UsedTenantID) &&
		boolPtrEqual(c.Distinct, o.Distinct)
}

func (c *AppStatsCriteria) String() string {
	d := newDescriber("AppStatsCriteria")
	if c == nil {
		return d.String()
	}
	d.add("id", c.ID != nil, c.ID)
	d.add("usedTenantId", c.UsedTenantID != nil, c.UsedTenantID)
	d.addBool("distinct", c.Distinct)
	return d.String()
}

// ParseAppStatsCriteria reads id.*, usedTenantId.* and distinct keys.
func ParseAppStatsCriteria(values url.Values) (*AppStatsCriteria, error) {
	id, err := filter.ParseLong(values, "id")
	if err != nil {
		return nil, err
	}
	tenant, err := filter.ParseString(values, "usedTenantId")
	if err != nil {
		return nil, err
	}
	distinct, err := parseDistinct(values)
	if err != nil {
		return nil, err
	}
	return &AppStatsCriteria{ID: id, UsedTenantID: tenant, Distinct: distinct}, nil
}
