package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

type UserRepository struct {
	db db
}

func NewUserRepository(db db) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, name, role, has_profile)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.Role, u.HasProfile)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}

	row := r.db.QueryRow(ctx, `
		SELECT id, email, password, name, role, has_profile, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role,
		&u.HasProfile, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}

	row := r.db.QueryRow(ctx, `
		SELECT id, email, password, name, role, has_profile, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role,
		&u.HasProfile, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) SetHasProfile(ctx context.Context, userID string, hasProfile bool) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET has_profile = $1, updated_at = now()
		WHERE id = $2
	`, hasProfile, userID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
