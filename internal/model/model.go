// Package model defines domain entities used by services and repositories.
package model

import (
	"fmt"
	"unicode/utf8"

	"github.com/kaizenmobile/tenant-registry/internal/errs"
)

// Bounds of AppStats.UsedTenantID.
const (
	MinTenantIDLen = 1
	MaxTenantIDLen = 254
)

// AppStats records a tenant identifier that is in use.
type AppStats struct {
	ID           int64   `json:"id,omitempty"`
	UsedTenantID *string `json:"usedTenantId"` // nil when unset; 1..254 runes otherwise
}

// User is an account owned by the identity side of the platform (table jhi_user).
// This service only reads it.
type User struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// AppUser attaches a tenant to an internal user. Its ID is the ID of InternalUser.
type AppUser struct {
	ID           int64   `json:"id,omitempty"`
	TenantID     *string `json:"tenantId"`
	InternalUser *User   `json:"internalUser"`
}

// InternalUserID returns the linked user id or 0 when the relation is unset.
func (u *AppUser) InternalUserID() int64 {
	if u == nil || u.InternalUser == nil {
		return 0
	}
	return u.InternalUser.ID
}

// CheckMapsID enforces the shared-identifier rule: a linked user is required and,
// once the AppUser has an ID, it must equal the linked user's ID.
func (u *AppUser) CheckMapsID() error {
	if u.InternalUser == nil || u.InternalUser.ID <= 0 {
		return fmt.Errorf("%w: internalUser is required", errs.ErrValidation)
	}
	if u.ID != 0 && u.ID != u.InternalUser.ID {
		return fmt.Errorf("%w: id %d does not match internalUser id %d", errs.ErrValidation, u.ID, u.InternalUser.ID)
	}
	return nil
}

// ValidateUsedTenantID checks the size constraint of a present tenant id.
func ValidateUsedTenantID(v *string) error {
	if v == nil {
		return nil
	}
	n := utf8.RuneCountInString(*v)
	if n < MinTenantIDLen || n > MaxTenantIDLen {
		return fmt.Errorf("%w: usedTenantId size must be between %d and %d", errs.ErrValidation, MinTenantIDLen, MaxTenantIDLen)
	}
	return nil
}
