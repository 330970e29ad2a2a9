package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgresStore backs the user collection with Postgres. Id allocation
// is a BIGSERIAL, and the unique indexes on username and
// (provider, provider_user_id) enforce the same invariants the memory
// store enforces under its lock.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, username, role, COALESCE(password_hash, ''), COALESCE(provider, ''), COALESCE(provider_user_id, '')`

func scanUser(row *sql.Row) (User, error) {
	var u User
	var role string
	err := row.Scan(&u.ID, &u.Username, &role, &u.PasswordHash, &u.Provider, &u.ProviderUserID)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.Role, err = ParseRole(role)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username))
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (s *PostgresStore) FindByFederatedID(ctx context.Context, provider, providerUserID string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE provider = $1
		  AND provider_user_id = $2
	`, provider, providerUserID))
}

func (s *PostgresStore) Create(ctx context.Context, u User) (User, error) {
	if err := validate(u); err != nil {
		return User{}, err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, role, password_hash, provider, provider_user_id)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id
	`,
		u.Username,
		string(u.Role),
		u.PasswordHash,
		u.Provider,
		u.ProviderUserID,
	).Scan(&u.ID)

	if err != nil {
		return User{}, mapConstraintError(err)
	}
	return u, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &role, &u.PasswordHash, &u.Provider, &u.ProviderUserID); err != nil {
			return nil, err
		}
		if u.Role, err = ParseRole(role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// mapConstraintError translates Postgres unique violations into the
// store's sentinel errors.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_federated_unique":
			return ErrDuplicateIdentity
		default:
			return ErrUsernameTaken
		}
	}
	return err
}
