// Package memory keeps users and regions in process. It backs tests and the
// STORAGE_DRIVER=memory mode; point queries are computed here instead of by
// the database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
)

var errEmailTaken = errs.User("Email already registered.")

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
	order []string
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]entity.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id := r.idByEmail(email); id != "" {
		return r.get(id), nil
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.get(id))
	}
	return out, nil
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idByEmail(u.Email) != "" {
		return errEmailTaken
	}
	now := r.now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = cloneUser(*u)
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if email, set := patch.Email.Get(); set {
		if other := r.idByEmail(email); other != "" && other != id {
			return nil, errEmailTaken
		}
	}
	patch.Apply(&u)
	if !patch.UpdatedAt.IsSet() {
		u.UpdatedAt = r.now()
	}
	r.users[id] = cloneUser(u)
	return r.get(id), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return nil
	}
	delete(r.users, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// get returns a detached copy; callers hold the lock.
func (r *UserRepository) get(id string) *entity.User {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	c := cloneUser(u)
	return &c
}

func (r *UserRepository) idByEmail(email string) string {
	for id, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return id
		}
	}
	return ""
}

func cloneUser(u entity.User) entity.User {
	if u.Address != nil {
		a := *u.Address
		u.Address = &a
	}
	if u.Coordinates != nil {
		c := *u.Coordinates
		u.Coordinates = &c
	}
	return u
}

var _ repository.UserRepository = (*UserRepository)(nil)
