// Package session holds the signed-in identity shared by every client screen.
package session

import (
	"sync"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const (
	KeyUser  = "usuario"
	KeyToken = "token"
)

type Session struct {
	User  entity.User
	Token string
}

// Valid requires both a user id and a token.
func (s Session) Valid() bool {
	return s.User.ID != "" && s.Token != ""
}

// Storage is the persistence the store writes through to.
type Storage interface {
	Get(key string, dst interface{}) bool
	Set(key string, value interface{}) error
	Delete(keys ...string) error
}

// Observer receives the new session and whether it is authenticated.
type Observer func(Session, bool)

type Store struct {
	mu        sync.RWMutex
	storage   Storage
	current   Session
	ok        bool
	observers map[int]Observer
	nextID    int
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, observers: make(map[int]Observer)}
}

// Init loads a previously persisted session. A partial or unreadable one is
// treated as signed out.
func (s *Store) Init() {
	var (
		user  entity.User
		token string
	)
	okUser := s.storage.Get(KeyUser, &user)
	okToken := s.storage.Get(KeyToken, &token)

	sess := Session{User: user, Token: token}
	if !okUser || !okToken || !sess.Valid() {
		sess = Session{}
	}
	s.update(sess, sess.Valid())
}

func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.ok
}

func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Set persists sess and notifies observers. A user written without its
// token is removed again so no half session is left behind.
func (s *Store) Set(sess Session) error {
	if err := s.storage.Set(KeyUser, sess.User); err != nil {
		return err
	}
	if err := s.storage.Set(KeyToken, sess.Token); err != nil {
		if derr := s.storage.Delete(KeyUser); derr != nil {
			logger.Warn("no se pudo revertir el usuario guardado: %v", derr)
		}
		return err
	}
	s.update(sess, sess.Valid())
	return nil
}

// Clear signs out. Observers are notified even if removing the files fails.
func (s *Store) Clear() error {
	err := s.storage.Delete(KeyUser, KeyToken)
	if err != nil {
		logger.Warn("no se pudo borrar la sesión: %v", err)
	}
	s.update(Session{}, false)
	return err
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) update(sess Session, ok bool) {
	s.mu.Lock()
	s.current = sess
	s.ok = ok
	observers := make([]Observer, 0, len(s.observers))
	for id := 0; id < s.nextID; id++ {
		if fn, found := s.observers[id]; found {
			observers = append(observers, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(sess, ok)
	}
}
