// Package mapper converts between request DTOs, domain entities and response
// DTOs. DTO to domain is a structural copy; validation happens before.
package mapper

import (
	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

func CoordinatesFromDTO(c *dto.CoordinatesDTO) *entity.Coordinates {
	if c == nil || c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	return &entity.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}
}

// UserFromCreateRequest copies the request into an unsaved user. The plain
// password is not carried over.
func UserFromCreateRequest(req dto.CreateUserRequest) *entity.User {
	u := &entity.User{
		Name:        req.Name,
		Email:       req.Email,
		Coordinates: CoordinatesFromDTO(req.Coordinates),
	}
	if req.Address != nil {
		a := *req.Address
		u.Address = &a
	}
	return u
}

// UserPatchFromRequest marks every non-nil request field as present. The
// password is left out; the caller hashes it.
func UserPatchFromRequest(req dto.UpdateUserRequest) entity.UserPatch {
	return entity.UserPatch{
		Name:        entity.FromPtr(req.Name),
		Email:       entity.FromPtr(req.Email),
		Address:     entity.FromPtr(req.Address),
		Coordinates: entity.FromPtr(CoordinatesFromDTO(req.Coordinates)),
	}
}

// ToUserResponse is the response boundary for users.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
	if u.Address != nil {
		a := *u.Address
		out.Address = &a
	}
	if u.Coordinates != nil {
		out.Coordinates = &dto.CoordinatesOut{Latitude: u.Coordinates.Latitude, Longitude: u.Coordinates.Longitude}
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		out.CreatedAt = &t
	}
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func ToUserResponses(users []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		if r := ToUserResponse(u); r != nil {
			out = append(out, *r)
		}
	}
	return out
}
