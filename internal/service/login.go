// Package service contains application services for the client core.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
	"github.com/seaquill/ferrylink/internal/role"
	"github.com/seaquill/ferrylink/internal/session"
)

// Authenticator is the login surface of the backend client.
type Authenticator interface {
	Login(ctx context.Context, ch model.Channel, email, password string) (model.AuthResult, error)
}

// LoginService defines session lifecycle operations.
type LoginService interface {
	// Login authenticates on the chosen channel and returns where to navigate.
	Login(ctx context.Context, ch model.Channel, email, password string) (model.Target, error)
	// Logout clears the persisted session, both token slots included.
	Logout(ctx context.Context) error
	// Current returns the active session, or errs.ErrNoSession.
	Current(ctx context.Context) (*model.Session, error)
}

type LoginServiceImpl struct {
	api   Authenticator
	store session.Store
}

// NewLoginService constructs LoginService with required dependencies.
func NewLoginService(api Authenticator, store session.Store) *LoginServiceImpl {
	return &LoginServiceImpl{api: api, store: store}
}

// Login validates input, authenticates against the channel's endpoint,
// normalizes the reported role, persists the session into the token slot the
// role dictates, and returns the role's home target. The session is written
// only on full success; any failure leaves stored state untouched.
func (s *LoginServiceImpl) Login(ctx context.Context, ch model.Channel, email, password string) (model.Target, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}
	if !ch.Valid() {
		return "", fmt.Errorf("%w: unknown login channel %q", errs.ErrValidation, ch)
	}

	res, err := s.api.Login(ctx, ch, email, password)
	if err != nil {
		return "", err
	}

	r, err := role.Resolve(res.RawRole, res.RawCategory, ch)
	if err != nil {
		return "", err
	}

	sess := model.Session{
		Role:        r,
		RawRole:     res.RawRole,
		DisplayName: res.DisplayName,
	}
	sess.SetToken(model.ScopeFor(r), res.Token)

	if err := s.store.Set(ctx, &sess); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return role.Home(r), nil
}

// Logout clears the session store.
func (s *LoginServiceImpl) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Current returns a snapshot of the stored session.
func (s *LoginServiceImpl) Current(ctx context.Context) (*model.Session, error) {
	return s.store.Get(ctx)
}
