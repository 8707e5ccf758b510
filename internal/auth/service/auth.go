package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
	"github.com/hotellisting/hotellisting/internal/auth/store"
	"github.com/hotellisting/hotellisting/pkg/cryptox"
	"github.com/hotellisting/hotellisting/pkg/idx"
	"github.com/hotellisting/hotellisting/pkg/jwtx"
	"github.com/hotellisting/hotellisting/pkg/slogx"
)

// DefaultStoreTimeout bounds a single credential operation's store work when
// the service is constructed without an explicit timeout.
const DefaultStoreTimeout = 5 * time.Second

// RegisterRequest carries a new account's details.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService implements registration, login and token refresh over the
// credential store.
type AuthService struct {
	Store        store.Store
	Signer       jwtx.Signer
	Refresh      *RefreshTokenService
	StoreTimeout time.Duration
}

func (s *AuthService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.StoreTimeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Register creates a new account. A non-empty slice of validation errors
// means the request was rejected and nothing was stored; a non-nil error is
// an infrastructure fault.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) ([]domain.ValidationError, error) {
	l := slogx.FromContext(ctx)

	email := strings.TrimSpace(req.Email)
	if errs := validateRegistration(email, req.Password); len(errs) > 0 {
		return errs, nil
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:            idx.New().String(),
		Email:         email,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		PasswordHash:  hash,
		SecurityStamp: idx.New().String(),
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Users().AddUserToRole(ctx, user.ID, domain.RoleUser)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return []domain.ValidationError{{
				Code:        "DuplicateEmail",
				Description: "Email '" + email + "' is already taken.",
			}}, nil
		}
		return nil, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return nil, nil
}

// Login verifies the credentials and, on success, returns a signed access
// token plus a fresh refresh token. A (nil, nil) return means the
// credentials were rejected; the caller must not learn which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	l := slogx.FromContext(ctx)

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login rejected", slog.String("user_id", user.ID))
			return nil, nil
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RefreshTokens exchanges a (possibly expired) access token plus the live
// refresh token for a new pair. The access token's signature is NOT checked;
// it only names the subject. The refresh token record is the real gate, and
// a mismatch anywhere denies with (nil, nil).
func (s *AuthService) RefreshTokens(ctx context.Context, req domain.AuthResponse) (*domain.AuthResponse, error) {
	l := slogx.FromContext(ctx)

	claims, err := jwtx.ParseUnverified(req.AccessToken)
	if err != nil {
		return nil, nil
	}

	email := claims.Subject
	if email == "" {
		email = claims.Email
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	var user domain.User
	if email != "" {
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	// The token subject, the stored account and the caller-claimed user id
	// must all agree before the refresh token is even consulted.
	if email == "" || user.ID == "" || user.ID != req.UserID {
		l.Info("refresh identity mismatch")
		return nil, nil
	}

	opaque, err := s.Refresh.VerifyAndRotate(ctx, user, req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) {
			return nil, nil
		}
		return nil, err
	}

	access, err := s.signAccess(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		AccessToken:  access,
		UserID:       user.ID,
		RefreshToken: opaque,
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user domain.User) (*domain.AuthResponse, error) {
	access, err := s.signAccess(ctx, user)
	if err != nil {
		return nil, err
	}

	opaque, err := s.Refresh.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		AccessToken:  access,
		UserID:       user.ID,
		RefreshToken: opaque,
	}, nil
}

func (s *AuthService) signAccess(ctx context.Context, user domain.User) (string, error) {
	roles, err := s.Store.Users().ListUserRoles(ctx, user.ID)
	if err != nil {
		return "", err
	}

	userClaims, err := s.Store.Users().ListUserClaims(ctx, user.ID)
	if err != nil {
		return "", err
	}

	return s.Signer.Sign(buildClaims(user, roles, userClaims))
}
