// Package dto holds request and response shapes for the HTTP boundary.
// Requests are validated with gin binding tags plus an explicit Validate
// where a rule cannot be expressed as a tag.
package dto

import "time"

type CoordinatesDTO struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

type CreateUserRequest struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,password"`
	Address     *string         `json:"address"`
	Coordinates *CoordinatesDTO `json:"coordinates"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name        *string         `json:"name" binding:"omitempty,min=1"`
	Email       *string         `json:"email" binding:"omitempty,email"`
	Password    *string         `json:"password" binding:"omitempty,password"`
	Address     *string         `json:"address" binding:"omitempty,min=1"`
	Coordinates *CoordinatesDTO `json:"coordinates"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type DeleteQuery struct {
	HardDelete bool `form:"hardDelete"`
}

// UserResponse is the only user shape that leaves the service. It has no
// password field.
type UserResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     *string         `json:"address,omitempty"`
	Coordinates *CoordinatesOut `json:"coordinates,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

type CoordinatesOut struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LoginResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type IDResponse struct {
	ID string `json:"id"`
}
