package mapper

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestToUserResponse_NeverLeaksPassword(t *testing.T) {
	u := &entity.User{
		ID:             "u1",
		Name:           "Ana",
		Email:          "ana@x.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Address:        ptr("123 Main St"),
		Coordinates:    &entity.Coordinates{Latitude: 1, Longitude: 2},
		IsActive:       true,
		CreatedAt:      time.Now(),
	}

	b, err := json.Marshal(ToUserResponse(u))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for k := range m {
		assert.NotContains(t, []string{"hashedPassword", "password", "passwordHash"}, k)
	}
	assert.NotContains(t, string(b), u.HashedPassword)

	region := &entity.Region{ID: "r1", Owner: u}
	b, err = json.Marshal(ToRegionResponse(region))
	require.NoError(t, err)
	assert.NotContains(t, string(b), u.HashedPassword)
	assert.NotContains(t, string(b), "hashedPassword")
}

func TestToUserResponse_DetachesPointers(t *testing.T) {
	u := &entity.User{ID: "u1", Address: ptr("a")}
	out := ToUserResponse(u)
	*u.Address = "b"
	assert.Equal(t, "a", *out.Address)
	assert.Nil(t, ToUserResponse(nil))
}

func TestUserFromCreateRequest(t *testing.T) {
	req := dto.CreateUserRequest{
		Name:        "Ana",
		Email:       "ana@x.com",
		Password:    "Secret1!",
		Coordinates: &dto.CoordinatesDTO{Latitude: ptr(0.0), Longitude: ptr(-46.6)},
	}
	u := UserFromCreateRequest(req)
	assert.Empty(t, u.HashedPassword)
	assert.Nil(t, u.Address)
	require.NotNil(t, u.Coordinates)
	assert.Equal(t, entity.Coordinates{Latitude: 0, Longitude: -46.6}, *u.Coordinates)
}

func TestUserPatchFromRequest(t *testing.T) {
	p := UserPatchFromRequest(dto.UpdateUserRequest{Name: ptr("new"), Password: ptr("Secret1!")})
	assert.True(t, p.Name.IsSet())
	assert.False(t, p.Email.IsSet())
	assert.False(t, p.HashedPassword.IsSet())
	assert.False(t, p.TouchesLocation())
}

func TestRegionResponse_OwnerIDOnly(t *testing.T) {
	r := &entity.Region{ID: "r1", Name: "R", Owner: &entity.User{ID: "u9"}}
	out := ToRegionResponse(r)
	require.NotNil(t, out.Owner)
	assert.Equal(t, "u9", out.Owner.ID)
	assert.Nil(t, out.Owner.CreatedAt)
}
