package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
	"github.com/oksasatya/geo-region-service/internal/mapper"
)

const msgOwnerNotFound = "Owner not found"

type regionCreatedPayload struct {
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

type CreateRegionUseCase struct {
	Regions repository.RegionRepository
	Users   repository.UserRepository
	Events  EventPublisher
	Logger  *logrus.Logger
}

func NewCreateRegionUseCase(regions repository.RegionRepository, users repository.UserRepository, events EventPublisher, logger *logrus.Logger) *CreateRegionUseCase {
	return &CreateRegionUseCase{Regions: regions, Users: users, Events: events, Logger: logger}
}

// Execute resolves the owner, wraps the rings into a Polygon and stores an
// active region.
func (uc *CreateRegionUseCase) Execute(ctx context.Context, req dto.CreateRegionRequest) (*entity.Region, error) {
	rings, err := req.Rings()
	if err != nil {
		return nil, err
	}
	owner, err := uc.Users.FindByID(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errs.RegionValidation(msgOwnerNotFound)
	}

	reg, err := entity.NewRegion(req.Name, rings, owner)
	if err != nil {
		return nil, err
	}
	reg.IsActive = true
	if err := uc.Regions.Save(ctx, reg); err != nil {
		return nil, err
	}
	publish(ctx, uc.Events, uc.Logger, EventRegionCreated, reg.ID, regionCreatedPayload{Name: reg.Name, OwnerID: owner.ID})
	return reg, nil
}

type UpdateRegionUseCase struct {
	Regions repository.RegionRepository
	Users   repository.UserRepository
	Now     func() time.Time
}

func NewUpdateRegionUseCase(regions repository.RegionRepository, users repository.UserRepository) *UpdateRegionUseCase {
	return &UpdateRegionUseCase{Regions: regions, Users: users, Now: time.Now}
}

// Execute re-validates a new owner and replaces the whole polygon when
// coordinates are supplied.
func (uc *UpdateRegionUseCase) Execute(ctx context.Context, id string, req dto.UpdateRegionRequest) (*entity.Region, error) {
	patch := mapper.RegionPatchFromRequest(req)

	if ownerID, ok := patch.OwnerID.Get(); ok {
		owner, err := uc.Users.FindByID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, errs.RegionValidation(msgOwnerNotFound)
		}
	}

	rings, err := req.Rings()
	if err != nil {
		return nil, err
	}
	if rings != nil {
		poly, err := entity.NewPolygon(rings)
		if err != nil {
			return nil, err
		}
		patch.Location = entity.Some(poly)
	}

	patch.UpdatedAt = entity.Some(uc.Now().UTC())
	return uc.Regions.Update(ctx, id, patch)
}

type DeleteRegionUseCase struct {
	Regions repository.RegionRepository
	Events  EventPublisher
	Logger  *logrus.Logger
	Now     func() time.Time
}

func NewDeleteRegionUseCase(regions repository.RegionRepository, events EventPublisher, logger *logrus.Logger) *DeleteRegionUseCase {
	return &DeleteRegionUseCase{Regions: regions, Events: events, Logger: logger, Now: time.Now}
}

// Execute soft-deletes the region and persists it. It is idempotent.
func (uc *DeleteRegionUseCase) Execute(ctx context.Context, id string) error {
	reg, err := uc.Regions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reg == nil {
		return errs.EntityNotFound("Region", id)
	}
	reg.Deactivate(uc.Now().UTC())
	if _, err := uc.Regions.Update(ctx, id, entity.RegionPatch{
		IsActive:  entity.Some(reg.IsActive),
		UpdatedAt: entity.Some(reg.UpdatedAt),
	}); err != nil {
		return err
	}
	publish(ctx, uc.Events, uc.Logger, EventRegionDeactivated, id, nil)
	return nil
}

func (uc *DeleteRegionUseCase) ExecuteHard(ctx context.Context, id string) error {
	reg, err := uc.Regions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reg == nil {
		return errs.EntityNotFound("Region", id)
	}
	if err := uc.Regions.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.Events, uc.Logger, EventRegionDeleted, id, nil)
	return nil
}

// FindRegionUseCase passes queries through; ByID adds the not-found
// translation.
type FindRegionUseCase struct {
	Regions repository.RegionRepository
}

func NewFindRegionUseCase(regions repository.RegionRepository) *FindRegionUseCase {
	return &FindRegionUseCase{Regions: regions}
}

func (uc *FindRegionUseCase) ByID(ctx context.Context, id string) (*entity.Region, error) {
	reg, err := uc.Regions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, errs.EntityNotFound("Region", id)
	}
	return reg, nil
}

func (uc *FindRegionUseCase) All(ctx context.Context, ownerID *string) ([]*entity.Region, error) {
	return uc.Regions.FindAll(ctx, ownerID)
}

func (uc *FindRegionUseCase) ContainingPoint(ctx context.Context, point entity.Coordinates) ([]*entity.Region, error) {
	return uc.Regions.FindContainingPoint(ctx, point)
}

func (uc *FindRegionUseCase) NearPoint(ctx context.Context, point entity.Coordinates, maxMeters float64, ownerID *string) ([]*entity.Region, error) {
	return uc.Regions.FindNearPoint(ctx, point, maxMeters, ownerID)
}
