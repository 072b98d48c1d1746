package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/grocery-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Clearer is state whose lifetime is bound to the session (cart, catalog).
type Clearer interface {
	Clear()
}

// SessionService holds the single active identity.
type SessionService struct {
	auth     api.AuthAPI
	creds    repository.CredentialRepository
	clearers []Clearer
	now      func() time.Time

	mu      sync.RWMutex
	session *models.Session
}

func NewSessionService(auth api.AuthAPI, creds repository.CredentialRepository, clearers ...Clearer) *SessionService {
	return &SessionService{
		auth:     auth,
		creds:    creds,
		clearers: clearers,
		now:      time.Now,
	}
}

// OnLogout registers more state to clear when the session ends.
func (s *SessionService) OnLogout(clearers ...Clearer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearers = append(s.clearers, clearers...)
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {

	req := &models.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Login failed",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	session := &models.Session{
		User:      resp.User,
		Token:     resp.Token,
		CreatedAt: s.now(),
	}

	s.activate(ctx, session)

	return s.Current(), nil
}

// AdminLogin authenticates against the admin endpoint, which only returns a
// token. The username doubles as the display name.
func (s *SessionService) AdminLogin(ctx context.Context, username, password string) (*models.Session, error) {

	req := &models.AdminLoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.auth.AdminLogin(ctx, req)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Admin login failed",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	session := &models.Session{
		User: models.User{
			ID:      models.ID(req.Username),
			Name:    req.Username,
			IsAdmin: true,
		},
		Token:     resp.Token,
		CreatedAt: s.now(),
	}

	s.activate(ctx, session)

	return s.Current(), nil
}

// Register never creates a session; the caller logs in afterwards.
func (s *SessionService) Register(ctx context.Context, name, email, password string, isAdminRequested bool) error {

	req := &models.RegisterRequest{
		Name:     utils.SanitizeText(name),
		Email:    strings.TrimSpace(email),
		Password: password,
		IsAdmin:  isAdminRequested,
	}

	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	if err := s.auth.Register(ctx, req); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Registration failed",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}

func (s *SessionService) activate(ctx context.Context, session *models.Session) {

	s.mu.Lock()
	previous := s.session
	s.session = session
	clearers := s.clearers
	s.mu.Unlock()

	if previous != nil && previous.User.ID != session.User.ID {
		for _, c := range clearers {
			c.Clear()
		}
	}

	if s.creds == nil {
		return
	}

	// the session stays active even if it cannot be remembered
	if err := s.creds.Save(ctx, session); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to persist credentials",
			slog.String("user_id", session.User.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// Restore loads the persisted credential and trusts it without asking the
// backend. A JWT whose exp has already passed is discarded.
func (s *SessionService) Restore(ctx context.Context) (*models.Session, error) {

	if s.creds == nil {
		return nil, nil
	}

	session, err := s.creds.Load(ctx)
	if err != nil {
		return nil, errors.StorageError("Failed to load saved credentials").WithError(err)
	}

	if session == nil || session.Token == "" {
		return nil, nil
	}

	if s.expired(session.Token) {
		middleware.LoggerFromContext(ctx).Info("Saved credentials have expired",
			slog.String("user_id", session.User.ID.String()),
		)

		if err := s.creds.Delete(ctx); err != nil {
			return nil, errors.StorageError("Failed to remove expired credentials").WithError(err)
		}

		return nil, nil
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return s.Current(), nil
}

// expired reports whether token is a JWT past its exp claim. Tokens that are
// not JWTs, or carry no exp, are trusted.
func (s *SessionService) expired(token string) bool {

	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return !exp.After(s.now())
}

// Logout ends the session and clears the cart and catalog. The session is
// gone even when the stored credential could not be deleted.
func (s *SessionService) Logout(ctx context.Context) error {

	s.mu.Lock()
	s.session = nil
	clearers := s.clearers
	s.mu.Unlock()

	for _, c := range clearers {
		c.Clear()
	}

	if s.creds == nil {
		return nil
	}

	if err := s.creds.Delete(ctx); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to delete credentials", slog.String("error", err.Error()))
		return errors.StorageError("Failed to delete saved credentials").WithError(err)
	}

	return nil
}

// Expire is called when the backend rejects the token.
func (s *SessionService) Expire(ctx context.Context) {

	if s.Current() == nil {
		return
	}

	middleware.LoggerFromContext(ctx).Warn("Session rejected by backend, logging out")

	_ = s.Logout(ctx)
}

// Current returns a copy of the active session, or nil.
func (s *SessionService) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}

	session := *s.session
	return &session
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}

	return s.session.Token
}

func (s *SessionService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.IsAdmin()
}
