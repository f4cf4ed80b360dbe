// Package session holds the authentication state of a running petly process: the logged in user and their bearer token.
//
// There is exactly one Store per process. It is created at startup, restored from durable storage with Initialize
// and then injected into the CLI commands and the ui-api handlers.
//
// Every user/token change is mirrored to the Storage backend: an authenticated session is saved as
// {"user": {...}, "token": "..."} under the "petly.auth" key, an anonymous session removes the entry.
//
// Login, Register and Logout each take a generation number when they start. The result of a network call is only
// applied if no later call has started in the meantime, which means overlapping login/logout sequences always
// resolve to the state requested by the most recent call.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/petly-community/petly/internal/ui/types"
)

// StorageKey is the namespace of the persisted session entry
const StorageKey = "petly.auth"

var (
	// ErrNoSession is returned by Storage.Load when there is no persisted entry
	ErrNoSession = errors.New("no persisted session")

	// ErrCorruptEntry is returned by Storage.Load when the persisted entry exists but can't be read (e.g it was sealed with another secret)
	ErrCorruptEntry = errors.New("persisted session is corrupt")

	// ErrSuperseded is returned by Login and Register when a later Login, Register or Logout started before the call completed.
	// The result of the superseded call is discarded.
	ErrSuperseded = errors.New("session call superseded by a newer one")

	ErrEmptyAuthResponse = errors.New("authentication response was empty")
)

// StorageError wraps a failure of the durable storage backend
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// User is the identity of the logged in user, as returned by the login and register endpoints
type User struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
}

// Session is the persisted part of the state. An empty Token means "no token".
// A valid session has either both a user and a token or neither.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (s Session) authenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) empty() bool {
	return s.Token == "" && s.User == nil
}

func (s Session) clone() Session {
	if s.User == nil {
		return s
	}
	user := *s.User
	return Session{User: &user, Token: s.Token}
}

// State is a copy of the current session plus the loading flag, which is true while a login or register call is in flight
type State struct {
	Session
	Loading bool `json:"loading"`
}

// Authenticator calls the remote authentication endpoints (implemented by *client.Client)
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*types.AuthResponse, error)
}

// Store is the single owner of the session state. It is safe for concurrent use
type Store struct {
	auth    Authenticator
	storage Storage
	logger  *slog.Logger

	mu         sync.Mutex
	session    Session
	loading    bool
	generation uint64 // incremented by every Login, Register and Logout
	version    uint64 // incremented on every user/token change

	persistMu sync.Mutex
	persisted uint64 // version of the last successful write
}

func NewStore(auth Authenticator, storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		auth:    auth,
		storage: storage,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// Initialize restores the persisted session.
//
// A missing entry, an entry that can't be parsed, or an entry with a user but no token (or the reverse)
// all start an empty session. Unusable entries are removed. A storage failure also starts an empty session and is returned.
func (s *Store) Initialize(ctx context.Context) error {
	raw, err := s.storage.Load(ctx)

	s.mu.Lock()
	s.session = Session{}
	s.loading = false
	s.mu.Unlock()

	switch {
	case errors.Is(err, ErrNoSession):
		return nil
	case errors.Is(err, ErrCorruptEntry):
		s.logger.WarnContext(ctx, "discarding unreadable persisted session", slog.String("error", err.Error()))
		s.discard(ctx)
		return nil
	case err != nil:
		return &StorageError{Op: "load", Err: err}
	}

	var persisted Session
	if err := json.Unmarshal(raw, &persisted); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed persisted session", slog.String("error", err.Error()))
		s.discard(ctx)
		return nil
	}

	if !persisted.authenticated() {
		s.logger.WarnContext(ctx, "discarding incomplete persisted session",
			slog.Bool("has_user", persisted.User != nil),
			slog.Bool("has_token", persisted.Token != ""),
		)
		s.discard(ctx)
		return nil
	}

	s.mu.Lock()
	s.session = persisted
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session restored", slog.Int64("user_id", persisted.User.ID))
	return nil
}

func (s *Store) discard(ctx context.Context) {
	if err := s.storage.Remove(ctx); err != nil {
		s.logger.WarnContext(ctx, "could not remove persisted session", slog.String("error", err.Error()))
	}
}

// Login authenticates against the API and, on success, replaces the session with the returned identity.
// On failure the session is unchanged and the error from the Authenticator is returned as is.
func (s *Store) Login(ctx context.Context, email, password string) error {
	gen := s.begin()
	res, err := s.auth.Login(ctx, email, password)
	return s.finish(ctx, gen, res, err)
}

// Register creates an account. A successful registration logs the new user in
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	gen := s.begin()
	res, err := s.auth.Register(ctx, name, email, password)
	return s.finish(ctx, gen, res, err)
}

// begin starts a login or register call and returns its generation
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.loading = true
	return s.generation
}

func (s *Store) finish(ctx context.Context, gen uint64, res *types.AuthResponse, err error) error {
	if err == nil && res == nil {
		err = ErrEmptyAuthResponse
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		if err != nil {
			return err
		}
		s.logger.DebugContext(ctx, "discarding superseded authentication result", slog.Uint64("generation", gen))
		return ErrSuperseded
	}

	s.loading = false
	if err != nil {
		s.mu.Unlock()
		return err
	}

	next := Session{
		User: &User{
			ID:    res.ID,
			Name:  res.Name,
			Email: res.Email,
			Role:  res.Role,
		},
		Token: res.Token,
	}
	version := s.set(next)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "user authenticated", slog.Int64("user_id", res.ID), slog.String("role", string(res.Role)))
	return s.persist(ctx, next, version)
}

// Logout clears the session locally, there is no remote call. It also supersedes any login or register in flight.
// Logging out an anonymous session does nothing (and no storage I/O takes place).
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	s.loading = false
	if s.session.empty() {
		s.mu.Unlock()
		return nil
	}
	version := s.set(Session{})
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "user logged out")
	return s.persist(ctx, Session{}, version)
}

// set replaces the session and returns the new version. The caller must hold s.mu
func (s *Store) set(next Session) uint64 {
	s.session = next
	s.version++
	return s.version
}

// persist writes a session snapshot to storage. Writes are serialized and a snapshot older than the last
// write is skipped, so the stored entry always reflects the most recent change
func (s *Store) persist(ctx context.Context, snapshot Session, version uint64) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if version <= s.persisted {
		return nil
	}

	if !snapshot.authenticated() {
		if err := s.storage.Remove(ctx); err != nil {
			return &StorageError{Op: "remove", Err: err}
		}
		s.persisted = version
		return nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.storage.Save(ctx, data); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	s.persisted = version
	return nil
}

// HasRole reports whether the session is authenticated with one of roles
func (s *Store) HasRole(roles ...types.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.User == nil {
		return false
	}
	return slices.Contains(roles, s.session.User.Role)
}

// IsAdmin and IsOng are the role groups used by the dashboard
func (s *Store) IsAdmin() bool {
	return s.HasRole(types.RoleAdmin)
}

func (s *Store) IsOng() bool {
	return s.HasRole(types.RoleOng, types.RoleAdmin)
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{Session: s.session.clone(), Loading: s.loading}
}

func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.clone()
}

// User returns a copy of the logged in user, or nil
func (s *Store) User() *User {
	return s.Snapshot().User
}

// Token returns the bearer token, or an empty string
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Token
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.authenticated()
}

// TokenStatus describes the bearer token held by the store
type TokenStatus int

const (
	TokenMissing TokenStatus = iota
	TokenOpaque              // not a JWT, only the server can tell whether it is valid
	TokenExpired
	TokenValid
)

var tokenStatusNames = []string{"TokenMissing", "TokenOpaque", "TokenExpired", "TokenValid"}

func (t TokenStatus) String() string {
	if t < 0 || int(t) >= len(tokenStatusNames) {
		return fmt.Sprintf("TokenStatus(%d)", int(t))
	}
	return tokenStatusNames[t]
}

// TokenStatus inspects the token without verifying its signature: the API is the only party that can do that
func (s *Store) TokenStatus() TokenStatus {
	return tokenStatus(s.Token(), time.Now())
}

func tokenStatus(token string, now time.Time) TokenStatus {
	if token == "" {
		return TokenMissing
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &jwt.RegisteredClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenOpaque
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return TokenExpired
	}

	return TokenValid
}
