package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
)

const uniqueViolation = "23505"

var errEmailTaken = errs.User("Email already registered.")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1::uuid`, id))
	return oneUser(u, err, "UserRepository.FindByID")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`, email))
	return oneUser(u, err, "UserRepository.FindByEmail")
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.created_at, u.id`)
	if err != nil {
		return nil, errs.Storage("UserRepository.FindAll", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errs.Storage("UserRepository.FindAll", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("UserRepository.FindAll", err)
	}
	return out, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	var lat, lon *float64
	if u.Coordinates != nil {
		lat, lon = &u.Coordinates.Latitude, &u.Coordinates.Longitude
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, address, latitude, longitude, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at, updated_at
	`, u.Name, u.Email, u.HashedPassword, u.Address, lat, lon, u.IsActive)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translateWrite("UserRepository.Save", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	set := newSetList()
	if v, ok := patch.Name.Get(); ok {
		set.add("name", v)
	}
	if v, ok := patch.Email.Get(); ok {
		set.add("email", v)
	}
	if v, ok := patch.HashedPassword.Get(); ok {
		set.add("password_hash", v)
	}
	if v, ok := patch.Address.Get(); ok {
		set.add("address", v)
	}
	if v, ok := patch.Coordinates.Get(); ok {
		set.add("latitude", v.Latitude)
		set.add("longitude", v.Longitude)
	}
	if v, ok := patch.IsActive.Get(); ok {
		set.add("is_active", v)
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set.add("updated_at", v)
	} else {
		set.raw("updated_at = now()")
	}

	args := append(set.args, id)
	q := fmt.Sprintf(`UPDATE users u SET %s WHERE u.id = $%d::uuid RETURNING %s`,
		set.String(), len(args), userColumns)

	u, err := scanUser(r.pool.QueryRow(ctx, q, args...))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, translateWrite("UserRepository.Update", err)
	}
	return oneUser(u, err, "UserRepository.Update")
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1::uuid`, id); err != nil {
		return errs.Storage("UserRepository.Delete", err)
	}
	return nil
}

func oneUser(u *entity.User, err error, op string) (*entity.User, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	return u, nil
}

// translateWrite maps a duplicate email to a user error and anything else
// to a storage error.
func translateWrite(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errEmailTaken
	}
	return errs.Storage(op, err)
}

// setList accumulates "col = $n" assignments for partial updates.
type setList struct {
	parts []string
	args  []any
}

func newSetList() *setList { return &setList{} }

func (s *setList) add(col string, v any) {
	s.args = append(s.args, v)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

// addExpr binds v into expr, where %s is replaced by the placeholder.
func (s *setList) addExpr(col, expr string, v any) {
	s.args = append(s.args, v)
	s.parts = append(s.parts, col+" = "+fmt.Sprintf(expr, fmt.Sprintf("$%d", len(s.args))))
}

func (s *setList) raw(part string) { s.parts = append(s.parts, part) }

func (s *setList) String() string { return strings.Join(s.parts, ", ") }

var _ repository.UserRepository = (*UserRepository)(nil)
