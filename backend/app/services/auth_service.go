package services

import (
	"context"
	"errors"

	"territorios/backend/app/models"
	"territorios/backend/app/repo"
	"territorios/backend/app/session"
	"territorios/backend/global"

	"gorm.io/gorm"
)

// BootstrapUsername is assigned to the first token record, created when a
// login hits an empty store.
const BootstrapUsername = "Administrador"

// AuthService is the access guard: it resolves raw tokens to user records by
// plain equality. There is no hashing and no expiry, the token string is the
// whole credential.
type AuthService struct {
	tokens *repo.TokenRepository
	cache  *session.TokenCache
}

func NewAuthService(tokens *repo.TokenRepository, cache *session.TokenCache) *AuthService {
	return &AuthService{tokens: tokens, cache: cache}
}

// Login validates a token, creating the first admin when the store is empty.
// The second return value reports whether this call performed the bootstrap.
func (s *AuthService) Login(ctx context.Context, token string) (*models.Token, bool, error) {
	if token == "" {
		return nil, false, ErrUnauthorized
	}
	t := &models.Token{Token: token, Username: BootstrapUsername, Role: models.RoleAdmin}
	created, err := s.tokens.CreateFirstAdmin(t)
	if err != nil {
		return nil, false, err
	}
	if created {
		global.Logger.Info().Str("username", t.Username).Msg("empty token store, bootstrapped first admin")
		return t, true, nil
	}
	u, err := s.Validate(ctx, token)
	if err != nil {
		return nil, false, err
	}
	return u, false, nil
}

// Validate resolves a token or fails with ErrUnauthorized. Hits are cached.
func (s *AuthService) Validate(ctx context.Context, token string) (*models.Token, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	if cu, ok := s.cache.Get(ctx, token); ok {
		return &models.Token{ID: cu.ID, Token: token, Username: cu.Username, Role: cu.Role}, nil
	}
	t, err := s.tokens.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	s.cache.Put(ctx, token, session.CachedUser{ID: t.ID, Username: t.Username, Role: t.Role})
	return t, nil
}

// ValidateAdmin resolves a token and requires the ADMIN role.
func (s *AuthService) ValidateAdmin(ctx context.Context, token string) (*models.Token, error) {
	t, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !t.IsAdmin() {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *AuthService) ListUsers() ([]models.Token, error) {
	return s.tokens.ListAll()
}

// CreateUser registers a new token record. The token string must be unique.
func (s *AuthService) CreateUser(ctx context.Context, newToken, username, role string) (*models.Token, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, ErrBadRole
	}
	if _, err := s.tokens.FindByToken(newToken); err == nil {
		return nil, ErrTokenConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	t := &models.Token{Token: newToken, Username: username, Role: role}
	if err := s.tokens.Create(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTokenConflict
		}
		return nil, err
	}
	return t, nil
}

// UpdateSelf changes the caller's own username, and role when the caller is
// an admin. Empty fields are left untouched.
func (s *AuthService) UpdateSelf(ctx context.Context, actor *models.Token, username, role string) (*models.Token, error) {
	if role != "" {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		if !models.ValidRole(role) {
			return nil, ErrBadRole
		}
	}
	t, err := s.tokens.FindByToken(actor.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if username != "" {
		t.Username = username
	}
	if role != "" {
		t.Role = role
	}
	if err := s.tokens.Save(t); err != nil {
		return nil, err
	}
	s.cache.Drop(ctx, t.Token)
	return t, nil
}
