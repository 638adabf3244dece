package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service bundles token issuing, password hashing and the credential store for
// the registration and login flows.
type Service struct {
	tokens        *TokenService
	hasher        PasswordHasher
	store         CredentialStore
	authenticator *Authenticator

	// hash compared against when the email is unknown, so both login failures cost one hash
	decoyOnce sync.Once
	decoyHash string
}

// NewService creates a new auth Service.
func NewService(tokens *TokenService, hasher PasswordHasher, store CredentialStore) *Service {
	return &Service{
		tokens:        tokens,
		hasher:        hasher,
		store:         store,
		authenticator: NewAuthenticator(tokens, store),
	}
}

// Tokens returns the token service.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Hasher returns the password hasher.
func (s *Service) Hasher() PasswordHasher {
	return s.hasher
}

// Authenticator returns the request authenticator.
func (s *Service) Authenticator() *Authenticator {
	return s.authenticator
}

// Register creates a USER account and returns a token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, *User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return "", nil, ErrMalformedCredentials
	}

	hash, err := s.hasher.Encode(password)
	if err != nil {
		return "", nil, err
	}

	user, err := s.store.Save(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	log.Info().Uint64("user_id", user.ID).Msg("user registered")

	return token, user, nil
}

// Login checks email and password and returns a token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return "", ErrMalformedCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.hasher.Matches(password, s.decoy())
			return "", ErrBadCredentials
		}

		return "", err
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		log.Warn().Uint64("user_id", user.ID).Msg("login with wrong password")
		return "", ErrBadCredentials
	}

	return s.tokens.Issue(user.ID)
}

func (s *Service) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Encode("chatop-unknown-account")
		if err != nil {
			log.Error().Err(err).Msg("can't create login decoy hash")
			return
		}

		s.decoyHash = hash
	})

	return s.decoyHash
}

// Me returns the stored user of the request principal.
func (s *Service) Me(ctx context.Context) (*User, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	return s.store.FindByID(ctx, p.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
