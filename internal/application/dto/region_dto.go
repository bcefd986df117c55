package dto

import (
	"time"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/geometry"
)

// DefaultMaxDistance is the near-query radius in meters when none is given.
const DefaultMaxDistance = 5000

// CreateRegionRequest keeps coordinates loosely typed so the geometry
// validator can report exactly which element is malformed.
type CreateRegionRequest struct {
	Name        string `json:"name" binding:"required"`
	Owner       string `json:"owner" binding:"required"`
	Coordinates any    `json:"coordinates" binding:"required"`
}

func (r CreateRegionRequest) Validate() error {
	return geometry.ValidatePolygonCoordinates("coordinates", r.Coordinates)
}

// Rings converts the validated coordinates.
func (r CreateRegionRequest) Rings() ([]entity.Ring, error) {
	return geometry.ToRings("coordinates", r.Coordinates)
}

type UpdateRegionRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Coordinates any     `json:"coordinates"`
	OwnerID     *string `json:"ownerId" binding:"omitempty,min=1"`
}

func (r UpdateRegionRequest) Validate() error {
	if r.Coordinates == nil {
		return nil
	}
	return geometry.ValidatePolygonCoordinates("coordinates", r.Coordinates)
}

// Rings returns nil when coordinates were not supplied.
func (r UpdateRegionRequest) Rings() ([]entity.Ring, error) {
	if r.Coordinates == nil {
		return nil, nil
	}
	return geometry.ToRings("coordinates", r.Coordinates)
}

type PointRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

func (p PointRequest) Coordinates() entity.Coordinates {
	return entity.Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}
}

type NearQuery struct {
	MaxDistance *float64 `form:"maxDistance" binding:"omitempty,gt=0"`
	OwnerID     *string  `form:"ownerId"`
}

// Distance returns the requested radius or DefaultMaxDistance.
func (q NearQuery) Distance() float64 {
	if q.MaxDistance == nil {
		return DefaultMaxDistance
	}
	return *q.MaxDistance
}

// Owner treats an empty ownerId as absent.
func (q NearQuery) Owner() *string {
	if q.OwnerID == nil || *q.OwnerID == "" {
		return nil
	}
	return q.OwnerID
}

type ListRegionsQuery struct {
	OwnerID string `form:"ownerId"`
}

func (q ListRegionsQuery) Owner() *string {
	if q.OwnerID == "" {
		return nil
	}
	return &q.OwnerID
}

type RegionResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Location  entity.Polygon `json:"location"`
	Owner     *UserResponse  `json:"owner,omitempty"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type RegionListResponse struct {
	Regions []RegionResponse `json:"regions"`
}

type ContainingPointResponse struct {
	Regions      []RegionResponse `json:"regions"`
	RegionsCount int              `json:"regionsCount"`
}

type NearResponse struct {
	Regions          []RegionResponse `json:"regions"`
	Distance         float64          `json:"distance"`
	OnlyOwnerRegions bool             `json:"onlyOwnerRegions"`
}
