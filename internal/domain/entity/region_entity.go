package entity

import (
	"time"
)

// Region is a named polygon owned by a user. At rest only the owner id is
// stored; reads populate Owner with the full user when it resolves.
type Region struct {
	ID        string
	Name      string
	Location  Polygon
	Owner     *User
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRegion builds an active region. It fails with a coordinates error when
// rings are missing, empty, open, or too short.
func NewRegion(name string, rings []Ring, owner *User) (*Region, error) {
	loc, err := NewPolygon(rings)
	if err != nil {
		return nil, err
	}
	return &Region{
		Name:     name,
		Location: loc,
		Owner:    owner,
		IsActive: true,
	}, nil
}

// OwnerID returns the owning user's id, or "" when unset.
func (r *Region) OwnerID() string {
	if r.Owner == nil {
		return ""
	}
	return r.Owner.ID
}

// Deactivate soft-deletes the region. It is idempotent.
func (r *Region) Deactivate(now time.Time) {
	r.IsActive = false
	r.UpdatedAt = now
}

// RegionPatch is a partial update. Location replaces the whole polygon.
type RegionPatch struct {
	Name      Optional[string]
	Location  Optional[Polygon]
	OwnerID   Optional[string]
	IsActive  Optional[bool]
	UpdatedAt Optional[time.Time]
}

// Apply merges the present fields of p into r. A new owner id replaces the
// populated owner with an id-only reference.
func (p RegionPatch) Apply(r *Region) {
	if v, ok := p.Name.Get(); ok {
		r.Name = v
	}
	if v, ok := p.Location.Get(); ok {
		r.Location = v
	}
	if v, ok := p.OwnerID.Get(); ok && v != r.OwnerID() {
		r.Owner = &User{ID: v}
	}
	if v, ok := p.IsActive.Get(); ok {
		r.IsActive = v
	}
	if v, ok := p.UpdatedAt.Get(); ok {
		r.UpdatedAt = v
	}
}
