package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

func square(x0, y0, size float64) entity.Polygon {
	p, err := entity.NewPolygon([]entity.Ring{{
		{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0},
	}})
	if err != nil {
		panic(err)
	}
	return p
}

func seedUser(t *testing.T, repo *UserRepository, email string) *entity.User {
	t.Helper()
	addr := "somewhere"
	u := &entity.User{Name: "n", Email: email, HashedPassword: "h", Address: &addr, IsActive: true}
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func TestContainsPoint(t *testing.T) {
	poly := square(0, 0, 5)
	tests := []struct {
		name string
		p    entity.Position
		want bool
	}{
		{"interior", entity.Position{2, 2}, true},
		{"vertex", entity.Position{0, 5}, true},
		{"edge", entity.Position{5, 2.5}, true},
		{"outside", entity.Position{6, 2}, false},
		{"outside diagonal", entity.Position{-1, -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPoint(poly, tt.p))
		})
	}
}

func TestContainsPoint_Hole(t *testing.T) {
	poly, err := entity.NewPolygon([]entity.Ring{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	})
	require.NoError(t, err)
	assert.False(t, containsPoint(poly, entity.Position{5, 5}))
	assert.True(t, containsPoint(poly, entity.Position{2, 2}))
}

func TestDistanceMeters(t *testing.T) {
	poly := square(0, 0, 1)
	assert.Zero(t, distanceMeters(poly, entity.Position{0.5, 0.5}))

	// One hundredth of a degree of latitude is roughly 1112 m.
	d := distanceMeters(poly, entity.Position{0.5, 1.01})
	assert.InDelta(t, 1112, d, 5)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := seedUser(t, repo, "Ana@Example.com")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.FindByEmail(ctx, "ana@example.COM")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Save(ctx, &entity.User{Email: "ANA@example.com"})
	assert.Equal(t, errs.KindUser, errs.KindOf(err))

	updated, err := repo.Update(ctx, u.ID, entity.UserPatch{Name: entity.Some("Ana B")})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", updated.Name)
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Ana@Example.com", updated.Email)

	none, err := repo.Update(ctx, "nope", entity.UserPatch{Name: entity.Some("x")})
	require.NoError(t, err)
	assert.Nil(t, none)

	// Returned values are detached from storage.
	got.Name = "mutated"
	again, _ := repo.FindByID(ctx, u.ID)
	assert.Equal(t, "Ana B", again.Name)

	require.NoError(t, repo.Delete(ctx, u.ID))
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository()
	owner := seedUser(t, users, "owner@x.com")
	repo := NewRegionRepository(users)

	reg := &entity.Region{Name: "R1", Location: square(0, 0, 3), Owner: &entity.User{ID: owner.ID}, IsActive: true}
	require.NoError(t, repo.Save(ctx, reg))
	require.NotEmpty(t, reg.ID)

	got, err := repo.FindByID(ctx, reg.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner@x.com", got.Owner.Email, "owner is populated on read")
	assert.Equal(t, reg.Location, got.Location)

	_, err = repo.Update(ctx, "missing", entity.RegionPatch{Name: entity.Some("x")})
	assert.True(t, errs.IsNotFound(err))

	updated, err := repo.Update(ctx, reg.ID, entity.RegionPatch{Location: entity.Some(square(1, 1, 1))})
	require.NoError(t, err)
	assert.Equal(t, square(1, 1, 1), updated.Location)
	assert.Equal(t, "R1", updated.Name)

	other := "someone-else"
	list, err := repo.FindAll(ctx, &other)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = repo.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, reg.ID))
	gone, err := repo.FindByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRegionRepository_PointQueries(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository()
	a := seedUser(t, users, "a@x.com")
	b := seedUser(t, users, "b@x.com")
	repo := NewRegionRepository(users)

	near := &entity.Region{Name: "near", Location: square(0, 0, 0.01), Owner: &entity.User{ID: a.ID}, IsActive: true}
	far := &entity.Region{Name: "far", Location: square(0.03, 0, 0.01), Owner: &entity.User{ID: b.ID}, IsActive: true}
	inactive := &entity.Region{Name: "inactive", Location: square(0, 0, 0.01), Owner: &entity.User{ID: a.ID}, IsActive: false}
	for _, r := range []*entity.Region{far, near, inactive} {
		require.NoError(t, repo.Save(ctx, r))
	}

	point := entity.Coordinates{Latitude: 0.005, Longitude: 0.005}

	containing, err := repo.FindContainingPoint(ctx, point)
	require.NoError(t, err)
	require.Len(t, containing, 1)
	assert.Equal(t, "near", containing[0].Name)

	all, err := repo.FindNearPoint(ctx, point, 5000, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "near", all[0].Name, "closest first")
	assert.Equal(t, "far", all[1].Name)

	onlyB, err := repo.FindNearPoint(ctx, point, 5000, &b.ID)
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, "far", onlyB[0].Name)

	tight, err := repo.FindNearPoint(ctx, point, 100, nil)
	require.NoError(t, err)
	require.Len(t, tight, 1)
	assert.Equal(t, "near", tight[0].Name)
}
