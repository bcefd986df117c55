package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/geo-region-service/internal/application"
	"github.com/oksasatya/geo-region-service/internal/application/dto"
	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/infrastructure/memory"
	"github.com/oksasatya/geo-region-service/pkg/helpers"
)

type mockGeocoder struct{ mock.Mock }

func (m *mockGeocoder) Forward(ctx context.Context, address string) (*entity.Coordinates, error) {
	args := m.Called(ctx, address)
	c, _ := args.Get(0).(*entity.Coordinates)
	return c, args.Error(1)
}

func (m *mockGeocoder) Reverse(ctx context.Context, c entity.Coordinates) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event, entityID string, payload any) error {
	return m.Called(ctx, event, entityID, payload).Error(0)
}

// plainHasher keeps tests fast; bcrypt is covered in pkg/helpers.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) bool       { return h == "hashed:"+p }

type fixture struct {
	users   *memory.UserRepository
	regions *memory.RegionRepository
	geo     *mockGeocoder
	events  *mockPublisher
	tokens  *helpers.JWTManager
	auth    *application.AuthUseCase
	logger  *logrus.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := helpers.NewLogger("test", "test")
	users := memory.NewUserRepository()
	f := &fixture{
		users:   users,
		regions: memory.NewRegionRepository(users),
		geo:     &mockGeocoder{},
		events:  &mockPublisher{},
		tokens:  helpers.NewJWTManager("test-secret", time.Hour, "test"),
		logger:  logger,
	}
	f.auth = application.NewAuthUseCase(users, plainHasher{}, f.tokens, logger)
	return f
}

func (f *fixture) createUser() *application.CreateUserUseCase {
	return application.NewCreateUserUseCase(f.users, f.auth, application.NewGeoLocationUseCase(f.geo, f.logger), f.logger)
}

func (f *fixture) updateUser() *application.UpdateUserUseCase {
	return application.NewUpdateUserUseCase(f.users, f.auth, application.NewGeoLocationUseCase(f.geo, f.logger), f.logger)
}

func ptr[T any](v T) *T { return &v }

func coordsDTO(lat, lon float64) *dto.CoordinatesDTO {
	return &dto.CoordinatesDTO{Latitude: &lat, Longitude: &lon}
}

func rawCoords(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

// seedUser stores an active address+coordinates user directly.
func (f *fixture) seedUser(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:           "Owner",
		Email:          email,
		HashedPassword: "hashed:Secret_1",
		Address:        ptr("1 Plaza"),
		Coordinates:    &entity.Coordinates{Latitude: 1, Longitude: 1},
		IsActive:       true,
	}
	require.NoError(t, f.users.Save(context.Background(), u))
	return u
}

func TestCreateUser_AddressIsForwardGeocoded(t *testing.T) {
	f := newFixture(t)
	f.geo.On("Forward", mock.Anything, "Av. Paulista, 1000").
		Return(&entity.Coordinates{Latitude: -23.56, Longitude: -46.65}, nil).Once()

	u, err := f.createUser().Execute(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "Secret_1", Address: ptr("Av. Paulista, 1000"),
	})
	require.NoError(t, err)
	require.NotNil(t, u.Coordinates)
	assert.Equal(t, -23.56, u.Coordinates.Latitude)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "Secret_1", u.HashedPassword)
	assert.NotEmpty(t, u.ID)
	f.geo.AssertExpectations(t)
}

func TestCreateUser_CoordinatesAreReverseGeocoded(t *testing.T) {
	f := newFixture(t)
	f.geo.On("Reverse", mock.Anything, entity.Coordinates{Latitude: 0, Longitude: 0}).
		Return("Null Island", nil).Once()

	u, err := f.createUser().Execute(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "Secret_1", Coordinates: coordsDTO(0, 0),
	})
	require.NoError(t, err)
	require.NotNil(t, u.Address)
	assert.Equal(t, "Null Island", *u.Address)
}

func TestCreateUser_UnresolvedLocationIsRejected(t *testing.T) {
	f := newFixture(t)
	f.geo.On("Forward", mock.Anything, "nowhere").Return(nil, errs.Geocoding("forward", errors.New("timeout")))

	_, err := f.createUser().Execute(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "Secret_1", Address: ptr("nowhere"),
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindLocation, errs.KindOf(err))

	all, _ := f.users.FindAll(context.Background())
	assert.Empty(t, all)
}

func TestCreateUser_LocationExclusivity(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateUserRequest
	}{
		{"both", dto.CreateUserRequest{Address: ptr("x"), Coordinates: coordsDTO(1, 1)}},
		{"neither", dto.CreateUserRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.req.Name, tt.req.Email, tt.req.Password = "Ana", "ana@example.com", "Secret_1"
			_, err := f.createUser().Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, errs.KindLocation, errs.KindOf(err))
			f.geo.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
			f.geo.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "taken@example.com")
	f.geo.On("Reverse", mock.Anything, mock.Anything).Return("Somewhere", nil)

	_, err := f.createUser().Execute(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: "TAKEN@example.com", Password: "Secret_1", Coordinates: coordsDTO(1, 2),
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindUser, errs.KindOf(err))
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "ana@example.com")
	f.geo.On("Forward", mock.Anything, "2 Market St").
		Return(&entity.Coordinates{Latitude: 37.79, Longitude: -122.39}, nil).Once()

	got, err := f.updateUser().Execute(context.Background(), u.ID, dto.UpdateUserRequest{
		Address:  ptr("2 Market St"),
		Password: ptr("Other_22"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2 Market St", *got.Address)
	assert.Equal(t, 37.79, got.Coordinates.Latitude)
	assert.Equal(t, "Owner", got.Name)
	assert.True(t, f.auth.ValidatePassword("Other_22", got.HashedPassword))
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestUpdateUser_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.updateUser().Execute(context.Background(), "missing", dto.UpdateUserRequest{Name: ptr("x")})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "User with ID missing not found.", err.Error())
}

func TestDeleteUser_SoftIsPersistedAndIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "ana@example.com")
	f.events.On("Publish", mock.Anything, application.EventUserDeactivated, u.ID, mock.Anything).Return(nil).Twice()

	del := application.NewDeleteUserUseCase(f.users, f.events, f.logger)
	require.NoError(t, del.Execute(ctx, u.ID))
	require.NoError(t, del.Execute(ctx, u.ID))

	stored, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)
	f.events.AssertExpectations(t)
}

func TestDeleteUser_HardKeepsRegions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "ana@example.com")
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	reg, err := application.NewCreateRegionUseCase(f.regions, f.users, f.events, f.logger).Execute(ctx, dto.CreateRegionRequest{
		Name: "R", Owner: u.ID, Coordinates: rawCoords(t, `[[[0,0],[1,0],[1,1],[0,1],[0,0]]]`),
	})
	require.NoError(t, err, "publish failures must not fail the write")

	del := application.NewDeleteUserUseCase(f.users, f.events, f.logger)
	require.NoError(t, del.ExecuteHard(ctx, u.ID))

	gone, _ := f.users.FindByID(ctx, u.ID)
	assert.Nil(t, gone)
	kept, err := f.regions.FindByID(ctx, reg.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, u.ID, kept.OwnerID())

	err = del.ExecuteHard(ctx, u.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestFindUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "ana@example.com")
	find := application.NewFindUserUseCase(f.users)

	got, err := find.ByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = find.ByID(ctx, "nope")
	assert.True(t, errs.IsNotFound(err))
	_, err = find.ByEmail(ctx, "nope@example.com")
	assert.True(t, errs.IsNotFound(err))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "ana@example.com")
	inactive := f.seedUser(t, "gone@example.com")
	_, err := f.users.Update(ctx, inactive.ID, entity.UserPatch{IsActive: entity.Some(false)})
	require.NoError(t, err)

	res, err := f.auth.Login(ctx, "ana@example.com", "Secret_1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.UserID)
	sub, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub)

	failures := map[string][2]string{
		"unknown email":  {"who@example.com", "Secret_1"},
		"wrong password": {"ana@example.com", "Wrong_1"},
		"inactive":       {"gone@example.com", "Secret_1"},
	}
	for name, creds := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth.Login(ctx, creds[0], creds[1])
			require.Error(t, err)
			assert.Equal(t, errs.KindInvalidCredentials, errs.KindOf(err))
			assert.Equal(t, "Invalid credentials", err.Error())
		})
	}
}

func TestCreateRegion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana@example.com")
	f.events.On("Publish", mock.Anything, application.EventRegionCreated, mock.Anything, mock.Anything).Return(nil).Once()
	create := application.NewCreateRegionUseCase(f.regions, f.users, f.events, f.logger)

	reg, err := create.Execute(ctx, dto.CreateRegionRequest{
		Name: "Square", Owner: owner.ID, Coordinates: rawCoords(t, `[[[0,0],[3,0],[3,3],[0,3],[0,0]]]`),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PolygonType, reg.Location.Type)
	assert.Equal(t, owner.ID, reg.OwnerID())
	assert.True(t, reg.IsActive)
	f.events.AssertExpectations(t)

	_, err = create.Execute(ctx, dto.CreateRegionRequest{
		Name: "Orphan", Owner: "missing", Coordinates: rawCoords(t, `[[[0,0],[3,0],[3,3],[0,3],[0,0]]]`),
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindRegion, errs.KindOf(err))
	assert.Equal(t, "Owner not found", err.Error())

	_, err = create.Execute(ctx, dto.CreateRegionRequest{
		Name: "Open", Owner: owner.ID, Coordinates: rawCoords(t, `[[[0,0],[3,0],[3,3],[0,3]]]`),
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestUpdateRegion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana@example.com")
	other := f.seedUser(t, "bob@example.com")
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reg, err := application.NewCreateRegionUseCase(f.regions, f.users, f.events, f.logger).Execute(ctx, dto.CreateRegionRequest{
		Name: "R", Owner: owner.ID, Coordinates: rawCoords(t, `[[[0,0],[1,0],[1,1],[0,1],[0,0]]]`),
	})
	require.NoError(t, err)

	update := application.NewUpdateRegionUseCase(f.regions, f.users)
	got, err := update.Execute(ctx, reg.ID, dto.UpdateRegionRequest{
		Name:        ptr("Bigger"),
		OwnerID:     ptr(other.ID),
		Coordinates: rawCoords(t, `[[[0,0],[10,0],[10,10],[0,10],[0,0]]]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bigger", got.Name)
	assert.Equal(t, other.ID, got.OwnerID())
	assert.Equal(t, "bob@example.com", got.Owner.Email)
	assert.Equal(t, entity.Position{10, 10}, got.Location.OuterRing()[2])

	_, err = update.Execute(ctx, reg.ID, dto.UpdateRegionRequest{OwnerID: ptr("missing")})
	assert.Equal(t, errs.KindRegion, errs.KindOf(err))

	_, err = update.Execute(ctx, "missing", dto.UpdateRegionRequest{Name: ptr("x")})
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteRegion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana@example.com")
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reg, err := application.NewCreateRegionUseCase(f.regions, f.users, f.events, f.logger).Execute(ctx, dto.CreateRegionRequest{
		Name: "R", Owner: owner.ID, Coordinates: rawCoords(t, `[[[0,0],[1,0],[1,1],[0,1],[0,0]]]`),
	})
	require.NoError(t, err)

	del := application.NewDeleteRegionUseCase(f.regions, f.events, f.logger)
	require.NoError(t, del.Execute(ctx, reg.ID))

	stored, err := f.regions.FindByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	hits, err := f.regions.FindContainingPoint(ctx, entity.Coordinates{Latitude: 0.5, Longitude: 0.5})
	require.NoError(t, err)
	assert.Empty(t, hits, "inactive regions are excluded from point queries")

	require.NoError(t, del.ExecuteHard(ctx, reg.ID))
	assert.True(t, errs.IsNotFound(del.ExecuteHard(ctx, reg.ID)))
	f.events.AssertCalled(t, "Publish", mock.Anything, application.EventRegionDeleted, reg.ID, mock.Anything)
}

func TestFindRegion_PointQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.seedUser(t, "ana@example.com")
	bob := f.seedUser(t, "bob@example.com")
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	create := application.NewCreateRegionUseCase(f.regions, f.users, f.events, f.logger)

	near, err := create.Execute(ctx, dto.CreateRegionRequest{
		Name: "R1", Owner: ana.ID, Coordinates: rawCoords(t, `[[[0,0],[3,0],[3,3],[0,3],[0,0]]]`),
	})
	require.NoError(t, err)
	_, err = create.Execute(ctx, dto.CreateRegionRequest{
		Name: "R2", Owner: bob.ID, Coordinates: rawCoords(t, `[[[3.001,0],[4,0],[4,1],[3.001,1],[3.001,0]]]`),
	})
	require.NoError(t, err)

	find := application.NewFindRegionUseCase(f.regions)

	vertex, err := find.ContainingPoint(ctx, entity.Coordinates{Latitude: 3, Longitude: 0})
	require.NoError(t, err)
	require.Len(t, vertex, 1)
	assert.Equal(t, "R1", vertex[0].Name)

	all, err := find.NearPoint(ctx, entity.Coordinates{Latitude: 0.5, Longitude: 3.0005}, dto.DefaultMaxDistance, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := find.NearPoint(ctx, entity.Coordinates{Latitude: 0.5, Longitude: 3.0005}, dto.DefaultMaxDistance, &ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, near.ID, mine[0].ID)

	owned, err := find.All(ctx, &bob.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "R2", owned[0].Name)

	_, err = find.ByID(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}
