// Package repository provides database operations for user accounts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"samakicash_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// User is a stored account row.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	UserType     string
	Name         string
	Phone        string
	Organization string
	Location     string
	CreatedAt    time.Time
}

// NewUser is the data needed to create an account.
type NewUser struct {
	Email        string
	PasswordHash string
	UserType     string
	Name         string
	Phone        string
	Organization string
	Location     string
}

// Repository provides account persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates an auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser inserts an account. A duplicate email maps to a conflict.
func (r *Repository) CreateUser(ctx context.Context, u NewUser) (User, error) {
	user := User{
		ID:           uuid.New(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		UserType:     u.UserType,
		Name:         u.Name,
		Phone:        u.Phone,
		Organization: u.Organization,
		Location:     u.Location,
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, user_type, name, phone, organization, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		user.ID, user.Email, user.PasswordHash, user.UserType,
		user.Name, user.Phone, user.Organization, user.Location).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("user with that email already exists")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail looks up an account by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, user_type,
		       COALESCE(name, ''), COALESCE(phone, ''), COALESCE(organization, ''), COALESCE(location, ''),
		       created_at
		FROM users
		WHERE email = $1`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.UserType,
		&u.Name, &u.Phone, &u.Organization, &u.Location, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserByID looks up an account by its identifier.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, user_type,
		       COALESCE(name, ''), COALESCE(phone, ''), COALESCE(organization, ''), COALESCE(location, ''),
		       created_at
		FROM users
		WHERE id = $1`, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.UserType,
		&u.Name, &u.Phone, &u.Organization, &u.Location, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// ListByType returns all accounts of the given user types.
func (r *Repository) ListByType(ctx context.Context, userTypes ...string) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, password_hash, user_type,
		       COALESCE(name, ''), COALESCE(phone, ''), COALESCE(organization, ''), COALESCE(location, ''),
		       created_at
		FROM users
		WHERE user_type = ANY($1)
		ORDER BY created_at`, userTypes)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.UserType,
			&u.Name, &u.Phone, &u.Organization, &u.Location, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
