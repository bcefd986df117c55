// Package application holds the use-cases. Each use-case takes its
// collaborators by constructor and is safe for concurrent use.
package application

import (
	"context"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

// Lifecycle events published after successful writes.
const (
	EventRegionCreated     = "region.created"
	EventRegionDeactivated = "region.deactivated"
	EventRegionDeleted     = "region.deleted"
	EventUserDeactivated   = "user.deactivated"
	EventUserDeleted       = "user.deleted"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type TokenIssuer interface {
	Issue(subjectID string) (string, error)
	Verify(token string) (string, error)
}

// Geocoder resolves addresses and coordinates. A nil result with a nil error
// means the provider had no match.
type Geocoder interface {
	Forward(ctx context.Context, address string) (*entity.Coordinates, error)
	Reverse(ctx context.Context, c entity.Coordinates) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event, entityID string, payload any) error
}
