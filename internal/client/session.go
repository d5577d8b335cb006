package client

import (
	"context"
	"errors"
	"log"
	"sync"

	"go-collab/internal/infrastructure/auth"
)

// ConfirmFunc verifies a credential against the server. Implementations
// should return auth.ErrUnauthorized for a rejected credential and any other
// error for transport trouble.
type ConfirmFunc func(ctx context.Context, credential string) (*auth.Claims, error)

// Session loads identity optimistically then confirms in the background.
// The local, unverified token parse makes the identity usable immediately;
// the confirmation call runs as two independently-failable steps with one
// merge rule: a confirmed Unauthorized tears the session down, every other
// confirmation failure is ignored and the optimistic identity stands.
type Session struct {
	confirm ConfirmFunc

	mu        sync.Mutex
	token     string
	claims    *auth.Claims
	confirmed bool
}

func NewSession(confirm ConfirmFunc) *Session {
	return &Session{confirm: confirm}
}

// Load parses the credential locally and returns the optimistic claims. The
// returned done channel closes once background confirmation settles, which
// tests and shutdown paths can wait on.
func (s *Session) Load(ctx context.Context, credential string) (*auth.Claims, <-chan struct{}, error) {
	claims, err := auth.ParseUnverified(credential)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.token = credential
	s.claims = claims
	s.confirmed = false
	confirm := s.confirm
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.runConfirm(ctx, confirm, credential)
	}()
	return claims, done, nil
}

func (s *Session) runConfirm(ctx context.Context, confirm ConfirmFunc, credential string) {
	confirmed, err := confirm(ctx, credential)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			s.invalidate(credential)
			return
		}
		// Transport trouble: keep the optimistic identity.
		log.Printf("client: session confirm deferred: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != credential {
		return // a newer Load won the race
	}
	s.claims = confirmed
	s.confirmed = true
}

func (s *Session) invalidate(credential string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != credential {
		return
	}
	s.token = ""
	s.claims = nil
	s.confirmed = false
}

// Claims returns the current identity, which may still be optimistic, and
// whether any identity is loaded at all.
func (s *Session) Claims() (*auth.Claims, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims, s.claims != nil
}

// Confirmed reports whether the server has vouched for the current identity.
func (s *Session) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed
}

// Token returns the active credential, empty after teardown.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
