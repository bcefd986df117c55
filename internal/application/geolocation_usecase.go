package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

// GeoLocationUseCase fills in the missing half of a user's location. It
// never fails: provider errors and empty results are logged and the user is
// left as it was.
type GeoLocationUseCase struct {
	Geocoder Geocoder
	Logger   *logrus.Logger
}

func NewGeoLocationUseCase(geocoder Geocoder, logger *logrus.Logger) *GeoLocationUseCase {
	return &GeoLocationUseCase{Geocoder: geocoder, Logger: logger}
}

// Enrich resolves coordinates for an address-only user and an address for
// a coordinates-only user. Users with both or neither are untouched.
func (g *GeoLocationUseCase) Enrich(ctx context.Context, u *entity.User) {
	if u == nil || g.Geocoder == nil {
		return
	}
	switch {
	case u.HasAddress() && !u.HasCoordinates():
		c, err := g.Geocoder.Forward(ctx, *u.Address)
		if err != nil {
			g.log().WithError(err).WithField("address", *u.Address).Error("forward geocoding failed")
			return
		}
		if c == nil {
			g.log().WithField("address", *u.Address).Warn("no coordinates found for address")
			return
		}
		u.Coordinates = c
	case u.HasCoordinates() && !u.HasAddress():
		addr, err := g.Geocoder.Reverse(ctx, *u.Coordinates)
		if err != nil {
			g.log().WithError(err).WithFields(coordFields(*u.Coordinates)).Error("reverse geocoding failed")
			return
		}
		if addr == "" {
			g.log().WithFields(coordFields(*u.Coordinates)).Warn("no address found for coordinates")
			return
		}
		u.Address = &addr
	}
}

func (g *GeoLocationUseCase) log() logrus.FieldLogger {
	if g.Logger == nil {
		return logrus.StandardLogger()
	}
	return g.Logger
}

func coordFields(c entity.Coordinates) logrus.Fields {
	return logrus.Fields{"latitude": c.Latitude, "longitude": c.Longitude}
}
