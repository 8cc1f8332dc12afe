// Package session holds the client's bearer credential and signed-in user.
// A single Store is passed by reference to whatever UI owns it; there is no
// process-wide singleton. The token is treated as opaque by the client.
package session

import (
	"sync"

	"github.com/adpilot/admanager/internal/domain/user"
)

type Store struct {
	mu        sync.RWMutex
	token     string
	user      user.User
	signedIn  bool
	onSignOut func()
}

func New() *Store {
	return &Store{}
}

// OnSignOut registers a hook fired on forced sign-out (server said 401).
// The UI uses it to redirect to the sign-in screen.
func (s *Store) OnSignOut(fn func()) {
	s.mu.Lock()
	s.onSignOut = fn
	s.mu.Unlock()
}

func (s *Store) SignIn(token string, u user.User) {
	s.mu.Lock()
	s.token = token
	s.user = u
	s.signedIn = true
	s.mu.Unlock()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.signedIn
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// SetUser refreshes the cached profile after an update.
func (s *Store) SetUser(u user.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Clear drops the credential without firing the sign-out hook (explicit
// user-initiated sign-out).
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = user.User{}
	s.signedIn = false
	s.mu.Unlock()
}

// ForceSignOut clears the session and fires the hook. The API client calls
// it whenever the server rejects the token.
func (s *Store) ForceSignOut() {
	s.mu.Lock()
	s.token = ""
	s.user = user.User{}
	s.signedIn = false
	fn := s.onSignOut
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}
