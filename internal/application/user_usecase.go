package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
	"github.com/oksasatya/geo-region-service/internal/mapper"
)

const msgLocationIncomplete = "Unable to resolve both address and coordinates for the user."

type CreateUserUseCase struct {
	Users  repository.UserRepository
	Auth   *AuthUseCase
	Geo    *GeoLocationUseCase
	Logger *logrus.Logger
}

func NewCreateUserUseCase(users repository.UserRepository, auth *AuthUseCase, geo *GeoLocationUseCase, logger *logrus.Logger) *CreateUserUseCase {
	return &CreateUserUseCase{Users: users, Auth: auth, Geo: geo, Logger: logger}
}

// Execute creates an active user. Exactly one of address and coordinates
// must be supplied, and the other half must be resolvable by geocoding.
func (uc *CreateUserUseCase) Execute(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	draft := mapper.UserFromCreateRequest(req)
	u, err := entity.NewUser(draft.Name, draft.Email, "", draft.Address, draft.Coordinates)
	if err != nil {
		return nil, err
	}

	hash, err := uc.Auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.HashedPassword = hash

	uc.Geo.Enrich(ctx, u)
	if !u.LocationComplete() {
		return nil, errs.LocationValidation(msgLocationIncomplete)
	}

	u.IsActive = true
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	if uc.Logger != nil {
		uc.Logger.WithField("user_id", u.ID).Info("user created")
	}
	return u, nil
}

type UpdateUserUseCase struct {
	Users  repository.UserRepository
	Auth   *AuthUseCase
	Geo    *GeoLocationUseCase
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewUpdateUserUseCase(users repository.UserRepository, auth *AuthUseCase, geo *GeoLocationUseCase, logger *logrus.Logger) *UpdateUserUseCase {
	return &UpdateUserUseCase{Users: users, Auth: auth, Geo: geo, Logger: logger, Now: time.Now}
}

// Execute applies a partial update. A new password is re-hashed and a new
// address or coordinates pair is enriched before it is stored.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, id string, req dto.UpdateUserRequest) (*entity.User, error) {
	patch := mapper.UserPatchFromRequest(req)

	if req.Password != nil {
		hash, err := uc.Auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.HashedPassword = entity.Some(hash)
	}

	if patch.TouchesLocation() {
		loc := &entity.User{Address: patch.Address.Ptr(), Coordinates: patch.Coordinates.Ptr()}
		uc.Geo.Enrich(ctx, loc)
		patch.Address = entity.FromPtr(loc.Address)
		patch.Coordinates = entity.FromPtr(loc.Coordinates)
	}

	patch.UpdatedAt = entity.Some(uc.Now().UTC())
	u, err := uc.Users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.EntityNotFound("User", id)
	}
	return u, nil
}

type DeleteUserUseCase struct {
	Users  repository.UserRepository
	Events EventPublisher
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewDeleteUserUseCase(users repository.UserRepository, events EventPublisher, logger *logrus.Logger) *DeleteUserUseCase {
	return &DeleteUserUseCase{Users: users, Events: events, Logger: logger, Now: time.Now}
}

// Execute soft-deletes the user. Repeating it keeps the user inactive.
// Regions owned by the user are not touched.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, id string) error {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return errs.EntityNotFound("User", id)
	}
	u.Deactivate(uc.Now().UTC())
	if _, err := uc.Users.Update(ctx, id, entity.UserPatch{
		IsActive:  entity.Some(u.IsActive),
		UpdatedAt: entity.Some(u.UpdatedAt),
	}); err != nil {
		return err
	}
	publish(ctx, uc.Events, uc.Logger, EventUserDeactivated, id, nil)
	return nil
}

// ExecuteHard removes the user permanently.
func (uc *DeleteUserUseCase) ExecuteHard(ctx context.Context, id string) error {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return errs.EntityNotFound("User", id)
	}
	if err := uc.Users.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.Events, uc.Logger, EventUserDeleted, id, nil)
	return nil
}

// FindUserUseCase turns repository misses into not-found errors.
type FindUserUseCase struct {
	Users repository.UserRepository
}

func NewFindUserUseCase(users repository.UserRepository) *FindUserUseCase {
	return &FindUserUseCase{Users: users}
}

func (uc *FindUserUseCase) ByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.EntityNotFound("User", id)
	}
	return u, nil
}

func (uc *FindUserUseCase) ByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.EntityNotFound("User", "")
	}
	return u, nil
}

func (uc *FindUserUseCase) All(ctx context.Context) ([]*entity.User, error) {
	return uc.Users.FindAll(ctx)
}

// publish is best effort: a broker failure is logged and never returned.
func publish(ctx context.Context, events EventPublisher, logger *logrus.Logger, event, id string, payload any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event, id, payload); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{"event": event, "entity_id": id}).Warn("publish event failed")
	}
}
