package repository

import (
	"context"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

// UserRepository persists users. Lookups that miss return (nil, nil); every
// provider failure comes back as an errs.KindStorage error.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	// Save inserts u and fills in ID, CreatedAt and UpdatedAt.
	Save(ctx context.Context, u *entity.User) error
	// Update merges the present fields of patch and returns the stored user,
	// or nil when id does not exist.
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
