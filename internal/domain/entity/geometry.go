package entity

import (
	"fmt"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

// PolygonType is the only GeoJSON geometry type a region location may have.
const PolygonType = "Polygon"

// Coordinates is a WGS84 point as users submit it.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Position is a GeoJSON position: [longitude, latitude].
type Position [2]float64

func (p Position) Longitude() float64 { return p[0] }
func (p Position) Latitude() float64  { return p[1] }

// Ring is a closed sequence of positions. The first ring of a polygon is its
// outer boundary; further rings are holes.
type Ring []Position

// IsClosed reports whether the first and last positions are identical.
func (r Ring) IsClosed() bool {
	if len(r) == 0 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// Polygon is the GeoJSON Polygon value stored as a region's location.
type Polygon struct {
	Type        string `json:"type"`
	Coordinates []Ring `json:"coordinates"`
}

// MinRingPositions is three distinct points plus the closing repeat.
const MinRingPositions = 4

// InRange reports whether p is a valid WGS84 position.
func (p Position) InRange() bool {
	return p[0] >= -180 && p[0] <= 180 && p[1] >= -90 && p[1] <= 90
}

// NewPolygon wraps rings into a fresh Polygon value. Every ring must be closed
// and hold at least MinRingPositions positions within WGS84 bounds.
func NewPolygon(rings []Ring) (Polygon, error) {
	if len(rings) == 0 {
		return Polygon{}, errs.CoordinatesInvalid("Coordinates must contain at least one ring.")
	}
	out := make([]Ring, len(rings))
	for i, r := range rings {
		if len(r) < MinRingPositions {
			return Polygon{}, errs.CoordinatesInvalid(fmt.Sprintf("Ring %d must contain at least %d positions.", i, MinRingPositions))
		}
		if !r.IsClosed() {
			return Polygon{}, errs.CoordinatesInvalid(fmt.Sprintf("Ring %d is not closed.", i))
		}
		for j, p := range r {
			if !p.InRange() {
				return Polygon{}, errs.CoordinatesInvalid(fmt.Sprintf(
					"Ring %d, position %d is out of range: longitude must be within [-180, 180] and latitude within [-90, 90].", i, j))
			}
		}
		cp := make(Ring, len(r))
		copy(cp, r)
		out[i] = cp
	}
	return Polygon{Type: PolygonType, Coordinates: out}, nil
}

// OuterRing returns the polygon boundary, or nil for an empty polygon.
func (p Polygon) OuterRing() Ring {
	if len(p.Coordinates) == 0 {
		return nil
	}
	return p.Coordinates[0]
}
