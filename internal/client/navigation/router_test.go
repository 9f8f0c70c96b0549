package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth bool

func (f *fakeAuth) Authenticated() bool { return bool(*f) }

func setup(signedIn bool) (*Router, *[]string) {
	auth := fakeAuth(signedIn)
	var rendered []string
	r := NewRouter(&auth)
	view := func(name string) View {
		return func(context.Context) error {
			rendered = append(rendered, name)
			return nil
		}
	}
	r.Handle(PathHome, Public, view("home"))
	r.Handle(PathLogin, Public, view("login"))
	r.Handle(PathContact, Protected, view("contacto"))
	r.Handle(PathMyReviews, Protected, view("mis-resenas"))
	return r, &rendered
}

func TestProtectedRouteRedirectsToLogin(t *testing.T) {
	r, rendered := setup(false)

	out, err := r.Navigate(context.Background(), "/mis-resenas/")

	require.NoError(t, err)
	assert.True(t, out.Redirected())
	assert.Equal(t, PathLogin, out.Path)
	assert.Equal(t, PathMyReviews, out.From)
	assert.Equal(t, []string{"login"}, *rendered)
}

func TestProtectedRouteWithSession(t *testing.T) {
	r, rendered := setup(true)

	out, err := r.Navigate(context.Background(), "contacto")

	require.NoError(t, err)
	assert.False(t, out.Redirected())
	assert.Equal(t, []string{"contacto"}, *rendered)
}

func TestPublicRouteNeverRedirects(t *testing.T) {
	r, rendered := setup(false)

	out, err := r.Navigate(context.Background(), "/")

	require.NoError(t, err)
	assert.Equal(t, PathHome, out.Path)
	assert.Equal(t, []string{"home"}, *rendered)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setup(true)

	_, err := r.Navigate(context.Background(), "/admin")

	var unknown *ErrUnknownRoute
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "/admin", unknown.Path)
}
