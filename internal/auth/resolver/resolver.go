package resolver

import (
	"context"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// Resolver determines which local user an external identity belongs
// to. It is the only place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (user.User, error)
}
