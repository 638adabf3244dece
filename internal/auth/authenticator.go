package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// BearerPrefix is the literal prefix of an Authorization header carrying a token.
const BearerPrefix = "Bearer "

// Outcome describes how a request was authenticated.
type Outcome string

const (
	// OutcomeAuthenticated means a principal was installed.
	OutcomeAuthenticated Outcome = "authenticated"
	// OutcomeNoBearer means the header was absent or not a bearer header.
	OutcomeNoBearer Outcome = "no_bearer"
	// OutcomeInvalidToken means the token failed signature or format checks.
	OutcomeInvalidToken Outcome = "invalid_token"
	// OutcomeExpired means the token was correctly signed but expired.
	OutcomeExpired Outcome = "expired"
	// OutcomeUnknownUser means the subject does not resolve to a stored user.
	OutcomeUnknownUser Outcome = "unknown_user"
	// OutcomeStoreError means the user lookup failed.
	OutcomeStoreError Outcome = "store_error"
)

// TokenVerifier verifies a raw token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (uint64, error)
}

// Authenticator turns an Authorization header into a request principal.
type Authenticator struct {
	tokens TokenVerifier
	store  CredentialStore
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens TokenVerifier, store CredentialStore) *Authenticator {
	return &Authenticator{tokens: tokens, store: store}
}

// Resolve returns the principal for header. The principal is only set for OutcomeAuthenticated.
func (a *Authenticator) Resolve(ctx context.Context, header string) (Principal, Outcome) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return Principal{}, OutcomeNoBearer
	}

	userID, err := a.tokens.Verify(header[len(BearerPrefix):])
	if err != nil {
		if errors.Is(err, ErrExpired) {
			return Principal{}, OutcomeExpired
		}

		return Principal{}, OutcomeInvalidToken
	}

	user, err := a.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, OutcomeUnknownUser
		}

		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to load user for token subject")

		return Principal{}, OutcomeStoreError
	}

	return user.Principal(), OutcomeAuthenticated
}

// Authenticate returns a child of ctx carrying the principal resolved from header,
// or a child explicitly marked anonymous. It never fails.
func (a *Authenticator) Authenticate(ctx context.Context, header string) context.Context {
	p, outcome := a.Resolve(ctx, header)
	authOutcomes.WithLabelValues(string(outcome)).Inc()

	if outcome != OutcomeAuthenticated {
		log.Debug().Str("outcome", string(outcome)).Msg("request continues anonymous")
		return WithoutPrincipal(ctx)
	}

	log.Debug().Uint64("user_id", p.ID).Str("role", string(p.Role)).Msg("request authenticated")

	return WithPrincipal(ctx, p)
}
