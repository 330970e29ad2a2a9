package credentials

import (
	"context"
	"errors"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// ErrInvalidCredentials is returned for every verification failure.
// Unknown username, federated-only account, and wrong password are
// indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Verifier struct {
	users user.Store
}

func NewVerifier(users user.Store) *Verifier {
	return &Verifier{users: users}
}

func (v *Verifier) Verify(ctx context.Context, username, password string) (user.User, error) {
	u, err := v.users.FindByUsername(ctx, username)
	if err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	if u.PasswordHash == "" {
		// Federated accounts carry no local secret.
		return user.User{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}
