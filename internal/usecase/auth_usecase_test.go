package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_service/internal/auth"
	"pos_service/internal/domain"
	"pos_service/internal/latency"
)

type brokenAuthenticator struct{}

func (brokenAuthenticator) Authenticate(context.Context, string, string) (domain.User, error) {
	return domain.User{}, errors.New("directory offline")
}

func TestLoginWithDemoAuthenticator(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore()
	tokens := auth.NewTokenIssuer("secret", time.Hour, clock.Now)
	uc := NewAuthUseCase(newTestDeps(store, clock), auth.DemoAuthenticator{}, tokens)
	require.NoError(t, uc.Load(ctx))

	session, err := uc.Login(ctx, "admin@pos.test", "pw")
	require.NoError(t, err)

	assert.Equal(t, "1", session.User.ID)
	assert.Equal(t, "Admin User", session.User.Name)
	assert.Equal(t, domain.RoleAdmin, session.User.Role)
	assert.True(t, session.User.IsAuthenticated)
	require.NotNil(t, session.User.LastLogin)
	assert.Equal(t, clock.Now(), *session.User.LastLogin)
	assert.Equal(t, clock.Now().Add(time.Hour), session.ExpiresAt)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)

	s := uc.Snapshot()
	assert.True(t, s.IsAuthenticated)
	assert.False(t, s.IsLoading)

	var stored domain.User
	require.True(t, store.Get(ctx, domain.KeyUser, &stored))
	assert.Equal(t, "admin@pos.test", stored.Email)
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthUseCase(newTestDeps(newTestStore(), newFakeClock()), nil, nil)

	_, err := uc.Login(ctx, "", "pw")

	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	s := uc.Snapshot()
	assert.Equal(t, "Invalid credentials", s.Error)
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.IsLoading)
}

func TestLoginAuthenticatorFailure(t *testing.T) {
	uc := NewAuthUseCase(newTestDeps(newTestStore(), newFakeClock()), brokenAuthenticator{}, nil)

	_, err := uc.Login(context.Background(), "a@b.c", "pw")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, "Login failed", uc.Snapshot().Error)
}

func TestLoginUsesLoginLatency(t *testing.T) {
	delay := &recordingDelay{}
	deps := newTestDeps(newTestStore(), newFakeClock())
	deps.Delay = delay
	uc := NewAuthUseCase(deps, nil, nil)

	require.NoError(t, uc.Load(context.Background()))
	_, err := uc.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{latency.AuthLoad, latency.Login}, delay.recorded())
}

func TestAuthLoadRestoresStoredUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	clock := newFakeClock()
	first := NewAuthUseCase(newTestDeps(store, clock), nil, nil)
	_, err := first.Login(ctx, "admin@pos.test", "pw")
	require.NoError(t, err)

	second := NewAuthUseCase(newTestDeps(store, clock), nil, nil)
	require.NoError(t, second.Load(ctx))

	user, ok := second.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "admin@pos.test", user.Email)
	assert.True(t, second.Snapshot().IsAuthenticated)
}

func TestLogoutClearsStoredUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	uc := NewAuthUseCase(newTestDeps(store, newFakeClock()), nil, nil)
	_, err := uc.Login(ctx, "admin@pos.test", "pw")
	require.NoError(t, err)

	uc.Logout(ctx)

	_, ok := uc.CurrentUser()
	assert.False(t, ok)
	var stored domain.User
	assert.False(t, store.Get(ctx, domain.KeyUser, &stored))
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	uc := NewAuthUseCase(newTestDeps(store, newFakeClock()), nil, nil)
	name := "Ama"

	_, err := uc.UpdateUser(ctx, domain.UserPatch{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = uc.Login(ctx, "admin@pos.test", "pw")
	require.NoError(t, err)
	updated, err := uc.UpdateUser(ctx, domain.UserPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ama", updated.Name)
	assert.Equal(t, "admin@pos.test", updated.Email)
	current, _ := uc.CurrentUser()
	assert.Equal(t, "Ama", current.Name)
	var stored domain.User
	require.True(t, store.Get(ctx, domain.KeyUser, &stored))
	assert.Equal(t, "Ama", stored.Name)
}
