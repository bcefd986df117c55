package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

func newServer(t *testing.T, h http.HandlerFunc) *Nominatim {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewNominatim(srv.URL, "geo-region-service-test", 1000, time.Second)
}

func TestForward(t *testing.T) {
	n := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "123 Main St", r.URL.Query().Get("q"))
		assert.Equal(t, "geo-region-service-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"-23.55","lon":"-46.63","display_name":"x"}]`))
	})

	c, err := n.Forward(context.Background(), "123 Main St")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, entity.Coordinates{Latitude: -23.55, Longitude: -46.63}, *c)
}

func TestForward_NoMatch(t *testing.T) {
	n := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	c, err := n.Forward(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestReverse(t *testing.T) {
	n := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "12.34", r.URL.Query().Get("lat"))
		assert.Equal(t, "56.78", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{"display_name":"ABC 123"}`))
	})
	addr, err := n.Reverse(context.Background(), entity.Coordinates{Latitude: 12.34, Longitude: 56.78})
	require.NoError(t, err)
	assert.Equal(t, "ABC 123", addr)
}

func TestReverse_Unable(t *testing.T) {
	n := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	})
	addr, err := n.Reverse(context.Background(), entity.Coordinates{})
	require.NoError(t, err)
	assert.Empty(t, addr)
}

func TestProviderFailure(t *testing.T) {
	n := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := n.Forward(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, errs.KindGeocoding, errs.KindOf(err))

	_, err = n.Reverse(context.Background(), entity.Coordinates{})
	assert.Equal(t, errs.KindGeocoding, errs.KindOf(err))
}
