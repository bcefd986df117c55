package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

// User is the aggregate root for account owners.
// HashedPassword holds a bcrypt hash and must never be copied into a response.
//
// ID and CreatedAt are assigned by the repository on save and are not
// rewritten afterwards.
type User struct {
	ID             string
	Name           string
	Email          string
	HashedPassword string
	Address        *string
	Coordinates    *Coordinates
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser builds an active user. Exactly one of address and coords must be
// supplied; a blank address counts as absent.
func NewUser(name, email, hashedPassword string, address *string, coords *Coordinates) (*User, error) {
	if err := ValidateLocation(address, coords); err != nil {
		return nil, err
	}
	u := &User{
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Coordinates:    coords,
		IsActive:       true,
	}
	if address != nil {
		a := strings.TrimSpace(*address)
		u.Address = &a
	}
	return u, nil
}

// ValidateLocation enforces the creation-time exclusivity of address and
// coordinates.
func ValidateLocation(address *string, coords *Coordinates) error {
	hasAddress := address != nil && strings.TrimSpace(*address) != ""
	hasCoords := coords != nil
	switch {
	case !hasAddress && !hasCoords:
		return errs.LocationInvariant("Either address or coordinates must be provided.")
	case hasAddress && hasCoords:
		return errs.LocationInvariant("You cannot provide both address and coordinates.")
	}
	return nil
}

// HasAddress reports whether a non-blank address is set.
func (u *User) HasAddress() bool {
	return u.Address != nil && strings.TrimSpace(*u.Address) != ""
}

func (u *User) HasCoordinates() bool { return u.Coordinates != nil }

// LocationComplete is true once both halves of the location are known.
func (u *User) LocationComplete() bool { return u.HasAddress() && u.HasCoordinates() }

// Deactivate soft-deletes the user. Calling it again keeps the user inactive.
func (u *User) Deactivate(now time.Time) {
	u.IsActive = false
	u.UpdatedAt = now
}

// UserPatch is a partial update; absent fields are left untouched.
type UserPatch struct {
	Name           Optional[string]
	Email          Optional[string]
	HashedPassword Optional[string]
	Address        Optional[string]
	Coordinates    Optional[Coordinates]
	IsActive       Optional[bool]
	UpdatedAt      Optional[time.Time]
}

// TouchesLocation reports whether the patch supplies address or coordinates.
func (p UserPatch) TouchesLocation() bool {
	return p.Address.IsSet() || p.Coordinates.IsSet()
}

// Apply merges the present fields of p into u.
func (p UserPatch) Apply(u *User) {
	if v, ok := p.Name.Get(); ok {
		u.Name = v
	}
	if v, ok := p.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := p.HashedPassword.Get(); ok {
		u.HashedPassword = v
	}
	if p.Address.IsSet() {
		u.Address = p.Address.Ptr()
	}
	if p.Coordinates.IsSet() {
		u.Coordinates = p.Coordinates.Ptr()
	}
	if v, ok := p.IsActive.Get(); ok {
		u.IsActive = v
	}
	if v, ok := p.UpdatedAt.Get(); ok {
		u.UpdatedAt = v
	}
}
