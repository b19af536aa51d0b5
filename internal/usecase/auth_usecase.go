package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pos_service/internal/auth"
	"pos_service/internal/domain"
	"pos_service/internal/latency"
	"pos_service/internal/state"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Login failed"
	msgProfileNotSaved    = "profile changes could not be saved"
)

type Session struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt,omitempty"`
}

type AuthUseCase struct {
	mu     sync.Mutex
	st     state.AuthState
	store  domain.Store
	delay  latency.Simulator
	authn  auth.Authenticator
	tokens *auth.TokenIssuer
	now    func() time.Time
	log    *logrus.Logger
}

// NewAuthUseCase builds the auth container. tokens may be nil, in which case
// sessions carry no token.
func NewAuthUseCase(deps Deps, authn auth.Authenticator, tokens *auth.TokenIssuer) *AuthUseCase {
	deps = deps.withDefaults()
	if authn == nil {
		authn = auth.DemoAuthenticator{}
	}
	return &AuthUseCase{
		st:     state.NewAuthState(),
		store:  deps.Store,
		delay:  deps.Delay,
		authn:  authn,
		tokens: tokens,
		now:    deps.Now,
		log:    deps.Log,
	}
}

func (uc *AuthUseCase) dispatch(a state.AuthAction) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.st = state.ReduceAuth(uc.st, a)
}

func (uc *AuthUseCase) wait(ctx context.Context, d time.Duration) error {
	if err := uc.delay.Wait(ctx, d); err != nil {
		uc.dispatch(state.AuthAction{Type: state.AuthSetLoading, Loading: false})
		return err
	}
	return nil
}

// Load restores a previously signed-in user from storage.
func (uc *AuthUseCase) Load(ctx context.Context) error {
	uc.dispatch(state.AuthAction{Type: state.AuthSetLoading, Loading: true})
	if err := uc.wait(ctx, latency.AuthLoad); err != nil {
		return err
	}

	var user domain.User
	if uc.store.Get(ctx, domain.KeyUser, &user) && user.IsAuthenticated {
		uc.dispatch(state.AuthAction{Type: state.AuthLoginSuccess, User: user})
		uc.log.Infof("Use Case: Restored session for user %s", user.ID)
		return nil
	}
	uc.dispatch(state.AuthAction{Type: state.AuthSetLoading, Loading: false})
	return nil
}

func (uc *AuthUseCase) Refresh(ctx context.Context) error {
	return uc.Load(ctx)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (Session, error) {
	uc.log.Infof("Use Case: Attempting login for %s", email)
	uc.dispatch(state.AuthAction{Type: state.AuthSetLoading, Loading: true})
	if err := uc.wait(ctx, latency.Login); err != nil {
		return Session{}, err
	}

	if email == "" || password == "" {
		uc.log.Warn("Use Case: Login failed - empty email or password")
		uc.dispatch(state.AuthAction{Type: state.AuthSetError, Error: msgInvalidCredentials})
		return Session{}, domain.ErrInvalidCredentials
	}

	user, err := uc.authn.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.dispatch(state.AuthAction{Type: state.AuthSetError, Error: msgInvalidCredentials})
			return Session{}, err
		}
		uc.log.Errorf("Use Case: Authentication error for %s: %v", email, err)
		uc.dispatch(state.AuthAction{Type: state.AuthSetError, Error: msgLoginFailed})
		return Session{}, fmt.Errorf("authentication failed: %w", err)
	}

	now := uc.now()
	user.IsAuthenticated = true
	user.LastLogin = &now
	session := Session{User: user}

	if uc.tokens != nil {
		token, expiresAt, err := uc.tokens.Issue(user)
		if err != nil {
			uc.log.Errorf("Use Case: Failed to issue session token for user %s: %v", user.ID, err)
			uc.dispatch(state.AuthAction{Type: state.AuthSetError, Error: msgLoginFailed})
			return Session{}, err
		}
		session.Token = token
		session.ExpiresAt = expiresAt
	}

	uc.mu.Lock()
	if !uc.store.Set(ctx, domain.KeyUser, user) {
		uc.log.Warnf("Use Case: Session for user %s could not be persisted", user.ID)
	}
	uc.st = state.ReduceAuth(uc.st, state.AuthAction{Type: state.AuthLoginSuccess, User: user})
	uc.mu.Unlock()

	uc.log.Infof("Use Case: Login successful for user %s (%s)", user.ID, user.Role)
	return session, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.store.Remove(ctx, domain.KeyUser) {
		uc.log.Warn("Use Case: Stored session could not be removed")
	}
	uc.st = state.ReduceAuth(uc.st, state.AuthAction{Type: state.AuthLogout})
	uc.log.Info("Use Case: User logged out")
}

// UpdateUser merges patch into the signed-in user and persists the result.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, patch domain.UserPatch) (domain.User, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.st.User == nil {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	merged := patch.Apply(*uc.st.User)
	saved := uc.store.Set(ctx, domain.KeyUser, merged)
	uc.st = state.ReduceAuth(uc.st, state.AuthAction{Type: state.AuthUpdateUser, Patch: patch})
	if !saved {
		uc.log.Warnf("Use Case: Profile of user %s updated in memory but could not be persisted", merged.ID)
		uc.st = state.ReduceAuth(uc.st, state.AuthAction{Type: state.AuthSetError, Error: msgProfileNotSaved})
	}

	uc.log.Infof("Use Case: Profile of user %s updated", merged.ID)
	return merged, nil
}

func (uc *AuthUseCase) Snapshot() state.AuthState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.st.Clone()
}

func (uc *AuthUseCase) CurrentUser() (domain.User, bool) {
	s := uc.Snapshot()
	if s.User == nil {
		return domain.User{}, false
	}
	return *s.User, true
}
