package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/dmitrijs2005/talentauth/internal/dbx"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user. The unique index on lower(email) makes concurrent
// registrations of the same address fail here rather than in the caller.
func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	query :=
		`INSERT INTO users (id, email, password_digest, full_name, phone, role, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordDigest, user.FullName, user.Phone, string(user.Role), user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return common.ErrDuplicateIdentity
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query :=
		`SELECT id, email, password_digest, full_name, COALESCE(phone, ''), role, created_at FROM users
		 WHERE lower(email) = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query :=
		`SELECT id, email, password_digest, full_name, COALESCE(phone, ''), role, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(&user.ID, &user.Email, &user.PasswordDigest, &user.FullName, &user.Phone, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		// A token may carry any string as user id; one that is not a uuid
		// cannot name a user.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Role = Role(role)
	return user, nil
}
