package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	gateRole      = "role"
	gateOwnership = "ownership"
)

// RequirePrincipal returns the principal of ctx or ErrUnauthorized.
func RequirePrincipal(ctx context.Context) (Principal, error) {
	p, ok := CurrentPrincipal(ctx)
	if !ok {
		return Principal{}, ErrUnauthorized
	}

	return p, nil
}

// Authorize is the role gate. It requires a principal holding at least one of authorities.
// With no authorities given any principal passes.
func Authorize(ctx context.Context, authorities ...string) (Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		authorizationDenials.WithLabelValues(gateRole, "anonymous").Inc()
		return Principal{}, err
	}

	if len(authorities) == 0 || p.Authorities().HasAny(authorities...) {
		return p, nil
	}

	authorizationDenials.WithLabelValues(gateRole, "missing_authority").Inc()
	log.Warn().Uint64("user_id", p.ID).Strs("authorities", authorities).
		Msg("principal lacks required authority")

	return Principal{}, ErrForbidden
}

// AuthorizeRole is Authorize with the ROLE_ tags of roles.
func AuthorizeRole(ctx context.Context, roles ...Role) (Principal, error) {
	authorities := make([]string, 0, len(roles))
	for _, r := range roles {
		authorities = append(authorities, r.Authority())
	}

	return Authorize(ctx, authorities...)
}

// OwnershipGuard is the ownership gate for resources of type T.
type OwnershipGuard[T any] struct {
	// Load fetches the resource. A missing resource is an error wrapping ErrNotFound.
	Load func(ctx context.Context, id uint64) (T, error)
	// OwnerOf returns the id of the user owning the resource.
	OwnerOf func(T) uint64
}

// NewOwnershipGuard creates an OwnershipGuard.
func NewOwnershipGuard[T any](
	load func(ctx context.Context, id uint64) (T, error),
	ownerOf func(T) uint64,
) OwnershipGuard[T] {
	return OwnershipGuard[T]{Load: load, OwnerOf: ownerOf}
}

// Check returns the resource with the given id if the request principal owns it.
// The checks run in order: principal present (ErrUnauthorized), resource exists
// (ErrNotFound), principal is owner (ErrUnauthorized).
func (g OwnershipGuard[T]) Check(ctx context.Context, id uint64) (T, Principal, error) {
	var zero T

	p, err := RequirePrincipal(ctx)
	if err != nil {
		authorizationDenials.WithLabelValues(gateOwnership, "anonymous").Inc()
		return zero, Principal{}, err
	}

	res, err := g.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			authorizationDenials.WithLabelValues(gateOwnership, "not_found").Inc()
		}

		return zero, Principal{}, err
	}

	if owner := g.OwnerOf(res); owner != p.ID {
		authorizationDenials.WithLabelValues(gateOwnership, "not_owner").Inc()
		log.Warn().Uint64("user_id", p.ID).Uint64("owner_id", owner).Uint64("resource_id", id).
			Msg("principal does not own resource")

		return zero, Principal{}, errors.Wrap(ErrUnauthorized, "principal does not own resource")
	}

	return res, p, nil
}
