package session

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinaansede/apphib/internal/client/storage"
	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

func newStore(t *testing.T) (*Store, *storage.Local) {
	t.Helper()
	local := storage.NewLocal(afero.NewMemMapFs(), "/state")
	return NewStore(local), local
}

func TestInitWithoutPersistedSession(t *testing.T) {
	s, _ := newStore(t)
	s.Init()

	assert.False(t, s.Authenticated())
}

func TestSetPersistsAndRestores(t *testing.T) {
	s, local := newStore(t)
	sess := Session{User: entity.User{ID: "u1", Nombre: "Ana"}, Token: "tok"}

	require.NoError(t, s.Set(sess))
	assert.True(t, s.Authenticated())

	restored := NewStore(local)
	restored.Init()
	got, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, "tok", got.Token)
}

type failingTokenStorage struct {
	*storage.Local
}

func (f failingTokenStorage) Set(key string, value interface{}) error {
	if key == KeyToken {
		return errors.New("disk full")
	}
	return f.Local.Set(key, value)
}

func TestSetRollsBackUserWhenTokenWriteFails(t *testing.T) {
	_, local := newStore(t)
	s := NewStore(failingTokenStorage{local})

	err := s.Set(Session{User: entity.User{ID: "u1"}, Token: "tok"})

	require.Error(t, err)
	assert.False(t, s.Authenticated())
	var user entity.User
	assert.False(t, local.Get(KeyUser, &user))

	restored := NewStore(local)
	restored.Init()
	assert.False(t, restored.Authenticated())
}

func TestInitIgnoresHalfSession(t *testing.T) {
	s, local := newStore(t)
	require.NoError(t, local.Set(KeyUser, entity.User{ID: "u1"}))

	s.Init()

	assert.False(t, s.Authenticated())
}

func TestObserversSeeEveryChange(t *testing.T) {
	s, _ := newStore(t)
	var seen []bool
	unsubscribe := s.Subscribe(func(_ Session, ok bool) { seen = append(seen, ok) })

	require.NoError(t, s.Set(Session{User: entity.User{ID: "u1"}, Token: "tok"}))
	require.NoError(t, s.Clear())
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Set(Session{User: entity.User{ID: "u2"}, Token: "t2"}))

	assert.Equal(t, []bool{true, false}, seen)
}

func TestClearRemovesPersistedKeys(t *testing.T) {
	s, local := newStore(t)
	require.NoError(t, s.Set(Session{User: entity.User{ID: "u1"}, Token: "tok"}))

	require.NoError(t, s.Clear())

	var token string
	assert.False(t, local.Get(KeyToken, &token))
	assert.False(t, s.Authenticated())
}
