package postgres

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

const userColumns = `u.id::text, u.name, u.email, u.password_hash, u.address, u.latitude, u.longitude,
	u.is_active, u.created_at, u.updated_at`

const regionColumns = `r.id::text, r.name, ST_AsGeoJSON(r.location), r.owner_id::text, r.is_active,
	r.created_at, r.updated_at,
	u.id::text, u.name, u.email, u.password_hash, u.address, u.latitude, u.longitude,
	u.is_active, u.created_at, u.updated_at`

// userRecord mirrors a users row.
type userRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *userRecord) fields() []any {
	return []any{&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.Address, &r.Latitude, &r.Longitude,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt}
}

func (r userRecord) toDomain() *entity.User {
	u := &entity.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		HashedPassword: r.PasswordHash,
		Address:        r.Address,
		IsActive:       r.IsActive,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.Latitude != nil && r.Longitude != nil {
		u.Coordinates = &entity.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	return u
}

// ownerRecord is the LEFT JOINed side of a region row; every column is NULL
// when the owner no longer exists.
type ownerRecord struct {
	ID           *string
	Name         *string
	Email        *string
	PasswordHash *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	IsActive     *bool
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

type regionRecord struct {
	ID        string
	Name      string
	Location  string
	OwnerID   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Owner     ownerRecord
}

func (r *regionRecord) fields() []any {
	o := &r.Owner
	return []any{&r.ID, &r.Name, &r.Location, &r.OwnerID, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
		&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.Address, &o.Latitude, &o.Longitude,
		&o.IsActive, &o.CreatedAt, &o.UpdatedAt}
}

// toDomain decodes the GeoJSON location and populates the owner when the
// join resolved; otherwise the owner carries only its id.
func (r regionRecord) toDomain() (*entity.Region, error) {
	var loc entity.Polygon
	if err := json.Unmarshal([]byte(r.Location), &loc); err != nil {
		return nil, err
	}
	reg := &entity.Region{
		ID:        r.ID,
		Name:      r.Name,
		Location:  loc,
		Owner:     &entity.User{ID: r.OwnerID},
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if o := r.Owner; o.ID != nil {
		reg.Owner = userRecord{
			ID:           *o.ID,
			Name:         deref(o.Name),
			Email:        deref(o.Email),
			PasswordHash: deref(o.PasswordHash),
			Address:      o.Address,
			Latitude:     o.Latitude,
			Longitude:    o.Longitude,
			IsActive:     o.IsActive != nil && *o.IsActive,
			CreatedAt:    derefTime(o.CreatedAt),
			UpdatedAt:    derefTime(o.UpdatedAt),
		}.toDomain()
	}
	return reg, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var rec userRecord
	if err := row.Scan(rec.fields()...); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func scanRegion(row pgx.Row) (*entity.Region, error) {
	var rec regionRecord
	if err := row.Scan(rec.fields()...); err != nil {
		return nil, err
	}
	return rec.toDomain()
}

func scanRegions(rows pgx.Rows) ([]*entity.Region, error) {
	defer rows.Close()
	out := make([]*entity.Region, 0)
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// polygonJSON encodes a location for ST_GeomFromGeoJSON.
func polygonJSON(p entity.Polygon) (string, error) {
	if p.Type == "" {
		p.Type = entity.PolygonType
	}
	b, err := json.Marshal(p)
	return string(b), err
}

// validID reports whether id can be compared against a uuid column. Any
// other string can never match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
