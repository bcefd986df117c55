// Package geometry validates polygon coordinates submitted as loosely typed
// JSON before they are turned into domain values.
package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

// Messages produced by ValidatePolygonCoordinates.
const (
	msgNotPolygon  = "%s must be a 3D array (GeoJSON Polygon)."
	msgPairLength  = "Coordinate at index %d must be an array of two numbers."
	msgPairType    = "Coordinate at index %d contains invalid data types."
	msgNotClosed   = "First and last coordinates must match (polygon is not closed)."
	msgRingInvalid = "Ring %d, coordinate at index %d must be an array of two numbers."
)

// ValidatePolygonCoordinates checks value, as decoded from JSON, against the
// polygon rules and returns a field-scoped validation error for the first
// failure. Only the first ring is inspected. value is not modified.
func ValidatePolygonCoordinates(field string, value any) error {
	if msg := check(field, value); msg != "" {
		return errs.Validation("Validation failed", errs.FieldError{Field: field, Message: msg})
	}
	return nil
}

func check(field string, value any) string {
	rings, ok := value.([]any)
	if !ok || len(rings) == 0 {
		return fmt.Sprintf(msgNotPolygon, field)
	}
	ring, ok := rings[0].([]any)
	if !ok || len(ring) == 0 {
		return fmt.Sprintf(msgNotPolygon, field)
	}
	if _, ok := ring[0].([]any); !ok {
		return fmt.Sprintf(msgNotPolygon, field)
	}

	pairs := make([][2]float64, len(ring))
	for i, el := range ring {
		pair, ok := el.([]any)
		if !ok || len(pair) != 2 {
			return fmt.Sprintf(msgPairLength, i)
		}
		lon, okLon := number(pair[0])
		lat, okLat := number(pair[1])
		if !okLon || !okLat {
			return fmt.Sprintf(msgPairType, i)
		}
		pairs[i] = [2]float64{lon, lat}
	}

	if pairs[0] != pairs[len(pairs)-1] {
		return msgNotClosed
	}
	return ""
}

// ToRings converts validated JSON coordinates into domain rings. Rings after
// the first are converted too, and a malformed pair in any of them is
// reported as a validation error.
func ToRings(field string, value any) ([]entity.Ring, error) {
	if err := ValidatePolygonCoordinates(field, value); err != nil {
		return nil, err
	}
	raw := value.([]any)
	out := make([]entity.Ring, 0, len(raw))
	for ri, rv := range raw {
		items, ok := rv.([]any)
		if !ok {
			return nil, errs.Validation("Validation failed", errs.FieldError{Field: field, Message: fmt.Sprintf(msgNotPolygon, field)})
		}
		ring := make(entity.Ring, 0, len(items))
		for pi, pv := range items {
			pair, ok := pv.([]any)
			if !ok || len(pair) != 2 {
				return nil, errs.Validation("Validation failed", errs.FieldError{Field: field, Message: fmt.Sprintf(msgRingInvalid, ri, pi)})
			}
			lon, okLon := number(pair[0])
			lat, okLat := number(pair[1])
			if !okLon || !okLat {
				return nil, errs.Validation("Validation failed", errs.FieldError{Field: field, Message: fmt.Sprintf(msgRingInvalid, ri, pi)})
			}
			ring = append(ring, entity.Position{lon, lat})
		}
		out = append(out, ring)
	}
	return out, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
