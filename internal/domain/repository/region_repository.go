package repository

import (
	"context"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

// RegionRepository persists regions and answers point queries over their
// polygons. Returned regions carry a populated Owner when the owner exists.
type RegionRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Region, error)
	// FindAll lists every region, or only those of ownerID when non-nil.
	FindAll(ctx context.Context, ownerID *string) ([]*entity.Region, error)
	Save(ctx context.Context, r *entity.Region) error
	// Update fails with a not-updatable error when id does not exist.
	Update(ctx context.Context, id string, patch entity.RegionPatch) (*entity.Region, error)
	Delete(ctx context.Context, id string) error

	// FindContainingPoint returns active regions whose polygon contains or
	// touches point, regardless of owner.
	FindContainingPoint(ctx context.Context, point entity.Coordinates) ([]*entity.Region, error)
	// FindNearPoint returns active regions within maxMeters of point, closest
	// first, optionally restricted to one owner.
	FindNearPoint(ctx context.Context, point entity.Coordinates, maxMeters float64, ownerID *string) ([]*entity.Region, error)
}
