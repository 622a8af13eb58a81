package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/querybuilder"
)

var userColumns = []string{"username", "first_name", "last_name", "email", "photo_url", "is_admin"}

// UserUpdatable is the allow-list for partial user updates. is_admin is
// deliberately absent.
var UserUpdatable = []string{"password", "first_name", "last_name", "email", "photo_url"}

var userListing = querybuilder.FilterSet{
	Table:   "users",
	Columns: []string{"username", "first_name", "last_name", "email"},
	OrderBy: []string{"username"},
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetWithPassword(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, username string, fields map[string]any) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	SetAdmin(ctx context.Context, username string, isAdmin bool) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	stmt, err := userListing.Build(nil)
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.db, stmt, pgx.RowToStructByNameLax[domain.User])
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT username, first_name, last_name, email, photo_url, is_admin
        FROM users WHERE username=$1`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{username}},
		pgx.RowToStructByNameLax[domain.User])
}

// GetWithPassword includes the stored hash and is only used by login.
func (r *userRepository) GetWithPassword(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT username, password, first_name, last_name, email, photo_url, is_admin
        FROM users WHERE username=$1`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{username}},
		pgx.RowToStructByName[domain.User])
}

// Create stores user. Password must already be hashed.
func (r *userRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (username, password, first_name, last_name, email, photo_url, is_admin)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING username, first_name, last_name, email, photo_url, is_admin`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{
		user.Username,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhotoURL,
		user.IsAdmin,
	}}, pgx.RowToStructByNameLax[domain.User])
}

func (r *userRepository) Update(ctx context.Context, username string, fields map[string]any) (*domain.User, error) {
	stmt, err := querybuilder.BuildUpdate(querybuilder.UpdateSpec{
		Table:     "users",
		KeyColumn: "username",
		KeyValue:  username,
		Fields:    fields,
		Allowed:   UserUpdatable,
		Returning: userColumns,
	})
	if err != nil {
		return nil, err
	}
	return queryOne(ctx, r.db, stmt, pgx.RowToStructByNameLax[domain.User])
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM users WHERE username=$1`
	return execAffectingOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{username}})
}

// SetAdmin flips the admin flag. It is reachable only from the operator CLI.
func (r *userRepository) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	const query = `UPDATE users SET is_admin=$1 WHERE username=$2`
	return execAffectingOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{isAdmin, username}})
}
