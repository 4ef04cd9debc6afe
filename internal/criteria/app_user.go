package criteria

import (
	"net/url"

	"github.com/kaizenmobile/tenant-registry/internal/filter"
)

// AppUserCriteria filters AppUser listings. InternalUserID constrains the id of
// the linked user.
type AppUserCriteria struct {
	ID             *filter.LongFilter
	TenantID       *filter.StringFilter
	InternalUserID *filter.LongFilter
	Distinct       *bool
}

func (c *AppUserCriteria) IDFilter() *filter.LongFilter {
	if c.ID == nil {
		c.ID = &filter.LongFilter{}
	}
	return c.ID
}

func (c *AppUserCriteria) TenantIDFilter() *filter.StringFilter {
	if c.TenantID == nil {
		c.TenantID = &filter.StringFilter{}
	}
	return c.TenantID
}

func (c *AppUserCriteria) InternalUserIDFilter() *filter.LongFilter {
	if c.InternalUserID == nil {
		c.InternalUserID = &filter.LongFilter{}
	}
	return c.InternalUserID
}

// DistinctValue returns the distinct flag, setting it to true on first use.
func (c *AppUserCriteria) DistinctValue() bool {
	if c.Distinct == nil {
		v := true
		c.Distinct = &v
	}
	return *c.Distinct
}

func (c *AppUserCriteria) Copy() *AppUserCriteria {
	if c == nil {
		return nil
	}
	return &AppUserCriteria{
		ID:             c.ID.Copy(),
		TenantID:       c.TenantID.Copy(),
		InternalUserID: c.InternalUserID.Copy(),
		Distinct:       copyBool(c.Distinct),
	}
}

func (c *AppUserCriteria) Equal(o *AppUserCriteria) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ID.Equal(o.ID) &&
		c.TenantID.Equal(o.TenantID) &&
		c.InternalUserID.Equal(o.InternalUserID) &&
		boolPtrEqual(c.Distinct, o.Distinct)
}

func (c *AppUserCriteria) String() string {
	d := newDescriber("AppUserCriteria")
	if c == nil {
		return d.String()
	}
	d.add("id", c.ID != nil, c.ID)
	d.add("tenantId", c.TenantID != nil, c.TenantID)
	d.add("internalUserId", c.InternalUserID != nil, c.InternalUserID)
	d.addBool("distinct", c.Distinct)
	return d.String()
}

// ParseAppUserCriteria reads id.*, tenantId.*, internalUserId.* and distinct keys.
func ParseAppUserCriteria(values url.Values) (*AppUserCriteria, error) {
	id, err := filter.ParseLong(values, "id")
	if err != nil {
		return nil, err
	}
	tenant, err := filter.ParseString(values, "tenantId")
	if err != nil {
		return nil, err
	}
	internal, err := filter.ParseLong(values, "internalUserId")
	if err != nil {
		return nil, err
	}
	distinct, err := parseDistinct(values)
	if err != nil {
		return nil, err
	}
	return &AppUserCriteria{ID: id, TenantID: tenant, InternalUserID: internal, Distinct: distinct}, nil
}
