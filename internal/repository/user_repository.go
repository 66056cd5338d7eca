package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-notification-service/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update applies patch atomically and returns the stored record after the write.
	Update(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error)
	// Delete removes the record and returns how many were deleted.
	Delete(ctx context.Context, userID string) (int64, error)
}

var userColumns = map[string]string{
	"name":     "name",
	"email":    "email",
	"password": "password",
	"role":     "role",
	"status":   "status",
}

const userSelect = `
        SELECT user_id, name, email, password, role, status, created_at
        FROM users`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (user_id, name, email, password, role, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.Status,
		user.CreatedAt,
	)
	return mapPgError(err)
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+" WHERE user_id=$1", userID))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+" WHERE email=$1", email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, userSelect+" ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	setClause, args, err := buildSetClause(patch.Fields(), userColumns)
	if err != nil {
		return nil, err
	}
	if setClause == "" {
		return r.GetByID(ctx, userID)
	}
	args = append(args, userID)
	query := fmt.Sprintf(`
        UPDATE users SET %s WHERE user_id=$%d
        RETURNING user_id, name, email, password, role, status, created_at`, setClause, len(args))

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id=$1`, userID)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return cmd.RowsAffected(), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// buildSetClause renders "col=$1, col=$2" in a stable column order.
func buildSetClause(fields map[string]any, columns map[string]string) (string, []any, error) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, key := range keys {
		column, ok := columns[key]
		if !ok {
			return "", nil, fmt.Errorf("unknown field %q", key)
		}
		args = append(args, fields[key])
		clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	return strings.Join(clauses, ", "), args, nil
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateKey
	}
	return err
}
