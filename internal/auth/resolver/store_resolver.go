package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// StoreResolver maps federated identities onto the user store,
// creating a record with role "user" on first sight.
type StoreResolver struct {
	users user.Store
}

func NewStoreResolver(users user.Store) *StoreResolver {
	return &StoreResolver{users: users}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (user.User, error) {

	if identity == nil {
		return user.User{}, errors.New("identity is nil")
	}

	u, err := r.users.FindByFederatedID(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, err
	}

	created, err := r.users.Create(ctx, user.User{
		Username:       identity.DisplayName,
		Role:           user.RoleUser,
		Provider:       identity.Provider,
		ProviderUserID: identity.ProviderUserID,
	})

	// Display name collides with an existing username; qualify it with
	// the provider-scoped id, which is unique.
	if errors.Is(err, user.ErrUsernameTaken) {
		created, err = r.users.Create(ctx, user.User{
			Username:       fmt.Sprintf("%s-%s", identity.DisplayName, identity.ProviderUserID),
			Role:           user.RoleUser,
			Provider:       identity.Provider,
			ProviderUserID: identity.ProviderUserID,
		})
	}

	// Lost a race against a concurrent callback for the same identity.
	// Either create can trip this: a pre-commit lookup that missed can
	// surface the winner's record as a taken username first. The store's
	// uniqueness guarantee means the record exists now, so map to it.
	if errors.Is(err, user.ErrDuplicateIdentity) {
		return r.users.FindByFederatedID(ctx, identity.Provider, identity.ProviderUserID)
	}

	if err != nil {
		return user.User{}, err
	}
	return created, nil
}
