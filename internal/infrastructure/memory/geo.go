package memory

import (
	"math"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

const (
	earthRadiusMeters = 6371008.8
	onSegmentEpsilon  = 1e-12
)

// containsPoint reports whether p lies inside the polygon or on its boundary.
// Points strictly inside a hole are outside.
func containsPoint(poly entity.Polygon, p entity.Position) bool {
	outer := poly.OuterRing()
	if len(outer) == 0 {
		return false
	}
	if onBoundary(outer, p) {
		return true
	}
	if !insideRing(outer, p) {
		return false
	}
	for _, hole := range poly.Coordinates[1:] {
		if onBoundary(hole, p) {
			return true
		}
		if insideRing(hole, p) {
			return false
		}
	}
	return true
}

// insideRing is the even-odd ray casting test in lon/lat space.
func insideRing(ring entity.Ring, p entity.Position) bool {
	x, y := p.Longitude(), p.Latitude()
	in := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Longitude(), ring[i].Latitude()
		xj, yj := ring[j].Longitude(), ring[j].Latitude()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

func onBoundary(ring entity.Ring, p entity.Position) bool {
	for i := 1; i < len(ring); i++ {
		if onSegment(ring[i-1], ring[i], p) {
			return true
		}
	}
	return false
}

func onSegment(a, b, p entity.Position) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > onSegmentEpsilon {
		return false
	}
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}

// distanceMeters is zero for points inside the polygon, otherwise the
// shortest distance to any ring edge. Edges are measured in an
// equirectangular projection centred on p, which is accurate enough for the
// few-kilometre radii near queries use.
func distanceMeters(poly entity.Polygon, p entity.Position) float64 {
	if containsPoint(poly, p) {
		return 0
	}
	lat0 := p.Latitude() * math.Pi / 180
	project := func(q entity.Position) (float64, float64) {
		x := (q.Longitude() - p.Longitude()) * math.Pi / 180 * math.Cos(lat0) * earthRadiusMeters
		y := (q.Latitude() - p.Latitude()) * math.Pi / 180 * earthRadiusMeters
		return x, y
	}
	best := math.Inf(1)
	for _, ring := range poly.Coordinates {
		for i := 1; i < len(ring); i++ {
			ax, ay := project(ring[i-1])
			bx, by := project(ring[i])
			if d := originToSegment(ax, ay, bx, by); d < best {
				best = d
			}
		}
	}
	return best
}

func originToSegment(ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = -(ax*dx + ay*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	return math.Hypot(ax+t*dx, ay+t*dy)
}
