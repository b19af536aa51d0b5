package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_service/internal/domain"
)

func TestReduceAuthLoginAndLogout(t *testing.T) {
	s := NewAuthState()
	require.True(t, s.IsLoading)

	s = ReduceAuth(s, AuthAction{Type: AuthLoginSuccess, User: domain.User{ID: "1", Name: "Admin User"}})
	require.NotNil(t, s.User)
	assert.True(t, s.IsAuthenticated)
	assert.False(t, s.IsLoading)

	s = ReduceAuth(s, AuthAction{Type: AuthLogout})
	assert.Nil(t, s.User)
	assert.False(t, s.IsAuthenticated)
}

func TestReduceAuthUpdateUserWithoutUserIsNoop(t *testing.T) {
	name := "X"
	s := ReduceAuth(AuthState{}, AuthAction{Type: AuthUpdateUser, Patch: domain.UserPatch{Name: &name}})
	assert.Nil(t, s.User)
}

func TestReduceAuthUpdateUserDoesNotAliasPrevious(t *testing.T) {
	name := "Ama"
	prev := ReduceAuth(AuthState{}, AuthAction{Type: AuthLoginSuccess, User: domain.User{ID: "1", Name: "Admin User"}})

	next := ReduceAuth(prev, AuthAction{Type: AuthUpdateUser, Patch: domain.UserPatch{Name: &name}})

	assert.Equal(t, "Ama", next.User.Name)
	assert.Equal(t, "Admin User", prev.User.Name)
}

func TestReduceAuthSetErrorClearsLoading(t *testing.T) {
	s := ReduceAuth(NewAuthState(), AuthAction{Type: AuthSetError, Error: "Invalid credentials"})
	assert.Equal(t, "Invalid credentials", s.Error)
	assert.False(t, s.IsLoading)
}
