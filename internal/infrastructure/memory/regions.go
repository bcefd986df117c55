package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
)

// storedRegion is the at-rest shape: the owner is kept by id only.
type storedRegion struct {
	ID        string
	Name      string
	Location  entity.Polygon
	OwnerID   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegionRepository struct {
	mu      sync.RWMutex
	regions map[string]storedRegion
	order   []string
	users   *UserRepository
	now     func() time.Time
}

// NewRegionRepository resolves owners through users on every read.
func NewRegionRepository(users *UserRepository) *RegionRepository {
	return &RegionRepository{
		regions: make(map[string]storedRegion),
		users:   users,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *RegionRepository) FindByID(ctx context.Context, id string) (*entity.Region, error) {
	r.mu.RLock()
	s, ok := r.regions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.toDomain(ctx, s), nil
}

func (r *RegionRepository) FindAll(ctx context.Context, ownerID *string) ([]*entity.Region, error) {
	rows := r.snapshot(func(s storedRegion) bool {
		return ownerID == nil || s.OwnerID == *ownerID
	})
	out := make([]*entity.Region, 0, len(rows))
	for _, s := range rows {
		out = append(out, r.toDomain(ctx, s))
	}
	return out, nil
}

func (r *RegionRepository) Save(_ context.Context, reg *entity.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	reg.ID = uuid.NewString()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	r.regions[reg.ID] = storedRegion{
		ID:        reg.ID,
		Name:      reg.Name,
		Location:  clonePolygon(reg.Location),
		OwnerID:   reg.OwnerID(),
		IsActive:  reg.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.order = append(r.order, reg.ID)
	return nil
}

func (r *RegionRepository) Update(ctx context.Context, id string, patch entity.RegionPatch) (*entity.Region, error) {
	r.mu.Lock()
	s, ok := r.regions[id]
	if !ok {
		r.mu.Unlock()
		return nil, errs.RegionNotUpdatable(id)
	}
	if v, set := patch.Name.Get(); set {
		s.Name = v
	}
	if v, set := patch.Location.Get(); set {
		s.Location = clonePolygon(v)
	}
	if v, set := patch.OwnerID.Get(); set {
		s.OwnerID = v
	}
	if v, set := patch.IsActive.Get(); set {
		s.IsActive = v
	}
	s.UpdatedAt = patch.UpdatedAt.OrElse(r.now())
	r.regions[id] = s
	r.mu.Unlock()
	return r.toDomain(ctx, s), nil
}

func (r *RegionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regions[id]; !ok {
		return nil
	}
	delete(r.regions, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *RegionRepository) FindContainingPoint(ctx context.Context, point entity.Coordinates) ([]*entity.Region, error) {
	p := entity.Position{point.Longitude, point.Latitude}
	rows := r.snapshot(func(s storedRegion) bool {
		return s.IsActive && containsPoint(s.Location, p)
	})
	out := make([]*entity.Region, 0, len(rows))
	for _, s := range rows {
		out = append(out, r.toDomain(ctx, s))
	}
	return out, nil
}

func (r *RegionRepository) FindNearPoint(ctx context.Context, point entity.Coordinates, maxMeters float64, ownerID *string) ([]*entity.Region, error) {
	p := entity.Position{point.Longitude, point.Latitude}
	type hit struct {
		s    storedRegion
		dist float64
	}
	var hits []hit
	for _, s := range r.snapshot(func(s storedRegion) bool {
		return s.IsActive && (ownerID == nil || s.OwnerID == *ownerID)
	}) {
		if d := distanceMeters(s.Location, p); d <= maxMeters {
			hits = append(hits, hit{s: s, dist: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]*entity.Region, 0, len(hits))
	for _, h := range hits {
		out = append(out, r.toDomain(ctx, h.s))
	}
	return out, nil
}

// snapshot copies matching rows in insertion order so owner lookups happen
// without holding the region lock.
func (r *RegionRepository) snapshot(keep func(storedRegion) bool) []storedRegion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []storedRegion
	for _, id := range r.order {
		if s := r.regions[id]; keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (r *RegionRepository) toDomain(ctx context.Context, s storedRegion) *entity.Region {
	reg := &entity.Region{
		ID:        s.ID,
		Name:      s.Name,
		Location:  clonePolygon(s.Location),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.OwnerID != "" {
		reg.Owner = &entity.User{ID: s.OwnerID}
		if r.users != nil {
			if u, _ := r.users.FindByID(ctx, s.OwnerID); u != nil {
				reg.Owner = u
			}
		}
	}
	return reg
}

func clonePolygon(p entity.Polygon) entity.Polygon {
	rings := make([]entity.Ring, len(p.Coordinates))
	for i, ring := range p.Coordinates {
		rings[i] = append(entity.Ring(nil), ring...)
	}
	return entity.Polygon{Type: p.Type, Coordinates: rings}
}

var _ repository.RegionRepository = (*RegionRepository)(nil)
