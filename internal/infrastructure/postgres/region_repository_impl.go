package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
)

// geogFromJSON turns a GeoJSON parameter into a geography value.
const geogFromJSON = `ST_SetSRID(ST_GeomFromGeoJSON(%s), 4326)::geography`

// RegionRepository stores locations as geography(Polygon, 4326) and relies on
// the GIST index for the point queries.
type RegionRepository struct {
	pool *pgxpool.Pool
}

func NewRegionRepository(pool *pgxpool.Pool) *RegionRepository {
	return &RegionRepository{pool: pool}
}

func (r *RegionRepository) FindByID(ctx context.Context, id string) (*entity.Region, error) {
	if !validID(id) {
		return nil, nil
	}
	reg, err := scanRegion(r.pool.QueryRow(ctx, `
		SELECT `+regionColumns+`
		FROM regions r LEFT JOIN users u ON u.id = r.owner_id
		WHERE r.id = $1::uuid
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindByID", err)
	}
	return reg, nil
}

func (r *RegionRepository) FindAll(ctx context.Context, ownerID *string) ([]*entity.Region, error) {
	if ownerID != nil && !validID(*ownerID) {
		return []*entity.Region{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+regionColumns+`
		FROM regions r LEFT JOIN users u ON u.id = r.owner_id
		WHERE ($1::uuid IS NULL OR r.owner_id = $1::uuid)
		ORDER BY r.created_at, r.id
	`, ownerID)
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindAll", err)
	}
	out, err := scanRegions(rows)
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindAll", err)
	}
	return out, nil
}

func (r *RegionRepository) Save(ctx context.Context, reg *entity.Region) error {
	loc, err := polygonJSON(reg.Location)
	if err != nil {
		return errs.Storage("RegionRepository.Save", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO regions (name, location, owner_id, is_active)
		VALUES ($1, `+fmt.Sprintf(geogFromJSON, "$2")+`, $3::uuid, $4)
		RETURNING id::text, created_at, updated_at
	`, reg.Name, loc, reg.OwnerID(), reg.IsActive)
	if err := row.Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
		return errs.Storage("RegionRepository.Save", err)
	}
	return nil
}

func (r *RegionRepository) Update(ctx context.Context, id string, patch entity.RegionPatch) (*entity.Region, error) {
	if !validID(id) {
		return nil, errs.RegionNotUpdatable(id)
	}
	set := newSetList()
	if v, ok := patch.Name.Get(); ok {
		set.add("name", v)
	}
	if v, ok := patch.Location.Get(); ok {
		loc, err := polygonJSON(v)
		if err != nil {
			return nil, errs.Storage("RegionRepository.Update", err)
		}
		set.addExpr("location", geogFromJSON, loc)
	}
	if v, ok := patch.OwnerID.Get(); ok {
		set.addExpr("owner_id", "%s::uuid", v)
	}
	if v, ok := patch.IsActive.Get(); ok {
		set.add("is_active", v)
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set.add("updated_at", v)
	} else {
		set.raw("updated_at = now()")
	}

	args := append(set.args, id)
	q := fmt.Sprintf(`
		WITH r AS (
			UPDATE regions SET %s WHERE id = $%d::uuid RETURNING *
		)
		SELECT %s FROM r LEFT JOIN users u ON u.id = r.owner_id
	`, set.String(), len(args), regionColumns)

	reg, err := scanRegion(r.pool.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.RegionNotUpdatable(id)
	}
	if err != nil {
		return nil, errs.Storage("RegionRepository.Update", err)
	}
	return reg, nil
}

func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM regions WHERE id = $1::uuid`, id); err != nil {
		return errs.Storage("RegionRepository.Delete", err)
	}
	return nil
}

func (r *RegionRepository) FindContainingPoint(ctx context.Context, point entity.Coordinates) ([]*entity.Region, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+regionColumns+`
		FROM regions r LEFT JOIN users u ON u.id = r.owner_id
		WHERE r.is_active
		  AND ST_Intersects(r.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)
		ORDER BY r.created_at, r.id
	`, point.Longitude, point.Latitude)
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindContainingPoint", err)
	}
	out, err := scanRegions(rows)
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindContainingPoint", err)
	}
	return out, nil
}

func (r *RegionRepository) FindNearPoint(ctx context.Context, point entity.Coordinates, maxMeters float64, ownerID *string) ([]*entity.Region, error) {
	if ownerID != nil && !validID(*ownerID) {
		return []*entity.Region{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		WITH p AS (SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS g)
		SELECT `+regionColumns+`
		FROM regions r
		CROSS JOIN p
		LEFT JOIN users u ON u.id = r.owner_id
		WHERE r.is_active
		  AND ST_DWithin(r.location, p.g, $3)
		  AND ($4::uuid IS NULL OR r.owner_id = $4::uuid)
		ORDER BY ST_Distance(r.location, p.g), r.created_at
	`, point.Longitude, point.Latitude, maxMeters, ownerID)
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindNearPoint", err)
	}
	out, err := scanRegions(rows)
	if err != nil {
		return nil, errs.Storage("RegionRepository.FindNearPoint", err)
	}
	return out, nil
}

var _ repository.RegionRepository = (*RegionRepository)(nil)
