package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// AuthService owns the session: the bearer credential, the current user and
// their durable copies in storage. It also serves as the token source for the
// remote client, which is why the remote port is bound after construction.
type AuthService struct {
	storage out.StoragePort
	logger  out.LoggerPort

	mu     sync.RWMutex
	remote out.RemotePort
	token  string
	state  domain.AuthState

	onLogout func()
}

func NewAuthService(storage out.StoragePort, logger out.LoggerPort) *AuthService {
	s := &AuthService{
		storage: storage,
		logger:  logger.WithModule("AuthService"),
	}
	s.restore()
	return s
}

// BindRemote breaks the construction cycle between the session and the remote
// client: the client needs the session for its bearer token, the session
// needs the client for login calls.
func (s *AuthService) BindRemote(remote out.RemotePort) {
	s.mu.Lock()
	s.remote = remote
	s.mu.Unlock()
}

// OnLogout registers the hook that drops every resource cache when the
// session ends, so nothing from one account leaks into the next.
func (s *AuthService) OnLogout(hook func()) {
	s.mu.Lock()
	s.onLogout = hook
	s.mu.Unlock()
}

// restore rehydrates the session from storage on startup. A credential
// without a readable user record is treated as no session at all.
func (s *AuthService) restore() {
	token, ok := s.storage.Get(out.StorageKeyToken)
	if !ok || token == "" {
		return
	}

	raw, ok := s.storage.Get(out.StorageKeyUser)
	if !ok {
		s.clearStored()
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("auth.restore.corrupt_user", out.LogFields{
			"error": err.Error(),
		})
		s.clearStored()
		return
	}

	s.token = token
	s.state = domain.AuthState{
		User:            &user,
		IsAuthenticated: true,
	}

	s.logger.Info("auth.session.restored", out.LogFields{
		"userId": user.ID,
	})
}

func (s *AuthService) Login(ctx context.Context, input in.LoginInput) (*domain.AuthState, error) {
	s.mu.RLock()
	remote := s.remote
	s.mu.RUnlock()

	resp, err := remote.Login(ctx, input.Email, input.Password)
	if err != nil {
		s.logger.Warn("auth.login.failed", out.LogFields{
			"email": input.Email,
			"error": err.Error(),
		})
		// A rejected login ends any previous session; the gateway must not
		// keep sending a credential the state reports as failed.
		s.mu.Lock()
		s.token = ""
		s.state = domain.AuthState{Error: err.Error()}
		state := s.state
		s.mu.Unlock()
		s.clearStored()
		return &state, err
	}

	user := domain.User{
		ID:    formatID(resp.ID),
		Name:  resp.FullName,
		Email: resp.Email,
		Role:  "psychologist",
	}

	s.mu.Lock()
	s.token = resp.Token
	s.state = domain.AuthState{
		User:            &user,
		IsAuthenticated: true,
	}
	state := s.state
	s.mu.Unlock()

	s.persist(resp.Token, user)

	s.logger.Info("auth.login.succeeded", out.LogFields{
		"userId": user.ID,
	})
	return &state, nil
}

func (s *AuthService) Register(ctx context.Context, input in.RegisterInput) (*domain.AuthState, error) {
	s.mu.RLock()
	remote := s.remote
	s.mu.RUnlock()

	body := out.Body{
		"fullName":    input.FullName,
		"email":       input.Email,
		"password":    input.Password,
		"cpf":         input.CPF,
		"phoneNumber": input.PhoneNumber,
		"crp":         nullable(input.CRP),
	}

	if _, err := remote.Register(ctx, body); err != nil {
		s.logger.Warn("auth.register.failed", out.LogFields{
			"email": input.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("auth.register.succeeded", out.LogFields{
		"email": input.Email,
	})

	// A fresh account goes straight into a session.
	return s.Login(ctx, in.LoginInput{Email: input.Email, Password: input.Password})
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	s.mu.RLock()
	remote := s.remote
	s.mu.RUnlock()

	if err := remote.ForgotPassword(ctx, email); err != nil {
		s.logger.Warn("auth.forgot_password.failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("auth.forgot_password.sent", out.LogFields{
		"email": email,
	})
	return nil
}

func (s *AuthService) Logout() {
	s.mu.Lock()
	s.token = ""
	s.state = domain.AuthState{}
	hook := s.onLogout
	s.mu.Unlock()

	s.clearStored()

	if hook != nil {
		hook()
	}

	s.logger.Info("auth.logout", nil)
}

func (s *AuthService) State() domain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// Token implements the remote client's token source.
func (s *AuthService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// persist failures keep the in-memory session alive; the user just logs in
// again after the next restart.
func (s *AuthService) persist(token string, user domain.User) {
	if err := s.storage.Set(out.StorageKeyToken, token); err != nil {
		s.logger.Warn("auth.persist.token_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("auth.persist.user_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}
	if err := s.storage.Set(out.StorageKeyUser, string(raw)); err != nil {
		s.logger.Warn("auth.persist.user_failed", out.LogFields{
			"error": err.Error(),
		})
	}
}

func (s *AuthService) clearStored() {
	if err := s.storage.Delete(out.StorageKeyToken); err != nil {
		s.logger.Warn("auth.clear.token_failed", out.LogFields{
			"error": err.Error(),
		})
	}
	if err := s.storage.Delete(out.StorageKeyUser); err != nil {
		s.logger.Warn("auth.clear.user_failed", out.LogFields{
			"error": err.Error(),
		})
	}
}
