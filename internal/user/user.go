package user

import (
	"context"
	"errors"
	"fmt"
)

// Role is the closed set of authorization roles. Construct values
// through ParseRole at trust boundaries so invalid roles never enter
// the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("invalid role: %q", raw)
}

// User is the identity root. An account is local (PasswordHash set) or
// federated (Provider + ProviderUserID set); it never needs both.
type User struct {
	ID       int64
	Username string
	Role     Role

	PasswordHash string

	Provider       string
	ProviderUserID string
}

// Federated reports whether the account is backed by an external
// identity provider rather than a local credential.
func (u User) Federated() bool {
	return u.Provider != "" && u.ProviderUserID != ""
}

var (
	ErrNotFound          = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrDuplicateIdentity = errors.New("federated identity already linked")
)

// Store holds user records. Implementations must validate fields before
// insertion and must never hand out the same id twice, including under
// concurrent Create calls.
type Store interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	FindByFederatedID(ctx context.Context, provider, providerUserID string) (User, error)

	// Create assigns a fresh id and returns the stored record.
	Create(ctx context.Context, u User) (User, error)

	// Delete removes the record; deleting an unknown id is a no-op.
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context) ([]User, error)
}

// validate is shared by store implementations.
func validate(u User) error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	if u.PasswordHash == "" && !u.Federated() {
		return errors.New("user needs a local credential or a federated identity")
	}
	return nil
}
