package client

import "sync"

// Session is the locally stored auth state, the counterpart of the server's
// refresh token column. Safe for concurrent use.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *User
}

func (s *Session) Set(accessToken, refreshToken string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.user = user
}

func (s *Session) SetAccessToken(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
}

func (s *Session) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Clear wipes all stored state and reports whether there was anything to
// wipe, so teardown side effects run exactly once.
func (s *Session) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	hadState := s.accessToken != "" || s.refreshToken != "" || s.user != nil
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil

	return hadState
}
