package state

import "pos_service/internal/domain"

type AuthState struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

func NewAuthState() AuthState {
	return AuthState{IsLoading: true}
}

// Clone returns a copy that does not share the user value with s.
func (s AuthState) Clone() AuthState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

type AuthActionType int

const (
	AuthSetLoading AuthActionType = iota
	AuthSetError
	AuthLoginSuccess
	AuthLogout
	AuthUpdateUser
)

type AuthAction struct {
	Type    AuthActionType
	Loading bool
	Error   string
	User    domain.User
	Patch   domain.UserPatch
}

func ReduceAuth(s AuthState, a AuthAction) AuthState {
	switch a.Type {
	case AuthSetLoading:
		s.IsLoading = a.Loading
	case AuthSetError:
		s.Error = a.Error
		s.IsLoading = false
	case AuthLoginSuccess:
		u := a.User
		return AuthState{User: &u, IsAuthenticated: true}
	case AuthLogout:
		return AuthState{}
	case AuthUpdateUser:
		if s.User == nil {
			return s
		}
		u := a.Patch.Apply(*s.User)
		s.User = &u
	}
	return s
}
