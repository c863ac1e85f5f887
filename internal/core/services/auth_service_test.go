package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

func TestAuthServiceLoginPersistsSession(t *testing.T) {
	storage := newMemoryStorage()
	remote := &fakeRemote{
		loginFn: func(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
			assert.Equal(t, "dra.silva@clinic.com", email)
			return &out.AuthResponseDTO{
				Token:    "tok-123",
				Email:    email,
				ID:       3,
				FullName: "Dra. Silva",
			}, nil
		},
	}

	svc := NewAuthService(storage, nopLogger{})
	svc.BindRemote(remote)

	state, err := svc.Login(context.Background(), in.LoginInput{
		Email:    "dra.silva@clinic.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "3", state.User.ID)
	assert.Equal(t, "tok-123", svc.Token())

	stored, ok := storage.Get(out.StorageKeyToken)
	require.True(t, ok)
	assert.Equal(t, "tok-123", stored)
	_, ok = storage.Get(out.StorageKeyUser)
	assert.True(t, ok)
}

func TestAuthServiceRestoresSessionFromStorage(t *testing.T) {
	storage := newMemoryStorage()
	user := domain.User{ID: "3", Name: "Dra. Silva", Email: "dra.silva@clinic.com", Role: "psychologist"}
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, storage.Set(out.StorageKeyToken, "tok-123"))
	require.NoError(t, storage.Set(out.StorageKeyUser, string(raw)))

	svc := NewAuthService(storage, nopLogger{})

	state := svc.State()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "Dra. Silva", state.User.Name)
	assert.Equal(t, "tok-123", svc.Token())
}

func TestAuthServiceCorruptStoredUserDropsSession(t *testing.T) {
	storage := newMemoryStorage()
	require.NoError(t, storage.Set(out.StorageKeyToken, "tok-123"))
	require.NoError(t, storage.Set(out.StorageKeyUser, "{not json"))

	svc := NewAuthService(storage, nopLogger{})

	assert.False(t, svc.State().IsAuthenticated)
	assert.Empty(t, svc.Token())
	_, ok := storage.Get(out.StorageKeyToken)
	assert.False(t, ok)
}

func TestAuthServiceLoginFailureLeavesNoSession(t *testing.T) {
	storage := newMemoryStorage()
	remote := &fakeRemote{
		loginFn: func(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
			return nil, assert.AnError
		},
	}

	svc := NewAuthService(storage, nopLogger{})
	svc.BindRemote(remote)

	state, err := svc.Login(context.Background(), in.LoginInput{Email: "x@y.z", Password: "nope"})
	require.Error(t, err)
	require.NotNil(t, state)
	assert.False(t, state.IsAuthenticated)
	assert.NotEmpty(t, state.Error)
	assert.Empty(t, svc.Token())
}

func TestAuthServiceFailedReloginDropsOldCredential(t *testing.T) {
	storage := newMemoryStorage()
	ok := true
	remote := &fakeRemote{
		loginFn: func(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
			if !ok {
				return nil, assert.AnError
			}
			return &out.AuthResponseDTO{ID: 3, FullName: "Dra. Silva", Email: email, Token: "tok-1"}, nil
		},
	}

	svc := NewAuthService(storage, nopLogger{})
	svc.BindRemote(remote)

	_, err := svc.Login(context.Background(), in.LoginInput{Email: "x@y.z", Password: "ok"})
	require.NoError(t, err)
	require.Equal(t, "tok-1", svc.Token())

	// A rejected login ends the previous session instead of keeping its
	// credential behind an error state.
	ok = false
	_, err = svc.Login(context.Background(), in.LoginInput{Email: "x@y.z", Password: "nope"})
	require.Error(t, err)
	assert.Empty(t, svc.Token())
	assert.False(t, svc.State().IsAuthenticated)

	_, found := storage.Get(out.StorageKeyToken)
	assert.False(t, found)
}

func TestAuthServiceLogoutClearsEverything(t *testing.T) {
	storage := newMemoryStorage()
	remote := &fakeRemote{
		loginFn: func(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
			return &out.AuthResponseDTO{Token: "tok-123", Email: email, ID: 3, FullName: "Dra. Silva"}, nil
		},
	}

	svc := NewAuthService(storage, nopLogger{})
	svc.BindRemote(remote)

	hookCalled := false
	svc.OnLogout(func() { hookCalled = true })

	_, err := svc.Login(context.Background(), in.LoginInput{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	svc.Logout()

	assert.True(t, hookCalled)
	assert.False(t, svc.State().IsAuthenticated)
	assert.Empty(t, svc.Token())
	_, ok := storage.Get(out.StorageKeyToken)
	assert.False(t, ok)
	_, ok = storage.Get(out.StorageKeyUser)
	assert.False(t, ok)
}

func TestAuthServiceRegisterLogsStraightIn(t *testing.T) {
	storage := newMemoryStorage()
	remote := &fakeRemote{
		registerFn: func(ctx context.Context, body out.Body) (*out.PsychologistDTO, error) {
			assert.Equal(t, "Dra. Silva", body["fullName"])
			return &out.PsychologistDTO{ID: 3, FullName: "Dra. Silva"}, nil
		},
		loginFn: func(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
			return &out.AuthResponseDTO{Token: "tok-new", Email: email, ID: 3, FullName: "Dra. Silva"}, nil
		},
	}

	svc := NewAuthService(storage, nopLogger{})
	svc.BindRemote(remote)

	state, err := svc.Register(context.Background(), in.RegisterInput{
		FullName: "Dra. Silva",
		Email:    "dra.silva@clinic.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "tok-new", svc.Token())
}
