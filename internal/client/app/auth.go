package app

import (
	"context"
	"strings"

	"github.com/sabrinaansede/apphib/internal/client/api"
	"github.com/sabrinaansede/apphib/internal/client/session"
)

const (
	msgLoginFailed    = "Error al iniciar sesión"
	msgRegisterFailed = "Error al registrar usuario"
)

type Auth struct {
	backend  Backend
	sessions *session.Store
}

func NewAuth(backend Backend, sessions *session.Store) *Auth {
	return &Auth{backend: backend, sessions: sessions}
}

func (a *Auth) Login(ctx context.Context, email, password string) (session.Session, error) {
	res, err := a.backend.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return session.Session{}, message(api.Message(err, msgLoginFailed), err)
	}
	return a.store(res, msgLoginFailed)
}

// Register signs the new user in when the server answers with a token.
func (a *Auth) Register(ctx context.Context, req api.RegisterRequest) (session.Session, error) {
	if req.TipoUsuario == "" {
		req.TipoUsuario = "padre"
	}
	res, err := a.backend.Register(ctx, req)
	if err != nil {
		return session.Session{}, message(api.Message(err, msgRegisterFailed), err)
	}
	return a.store(res, msgRegisterFailed)
}

func (a *Auth) Logout() error {
	return a.sessions.Clear()
}

func (a *Auth) store(res api.AuthResponse, fallback string) (session.Session, error) {
	sess := session.Session{User: res.User, Token: res.Token}
	if !sess.Valid() {
		return session.Session{}, message(fallback, nil)
	}
	if err := a.sessions.Set(sess); err != nil {
		return session.Session{}, message(fallback, err)
	}
	return sess, nil
}
