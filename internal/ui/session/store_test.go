package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/petly-community/petly/internal/ui/client"
	"github.com/petly-community/petly/internal/ui/types"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeAuth struct {
	login    func(ctx context.Context, email, password string) (*types.AuthResponse, error)
	register func(ctx context.Context, name, email, password string) (*types.AuthResponse, error)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (*types.AuthResponse, error) {
	return f.register(ctx, name, email, password)
}

func loginAs(id int64, role types.Role, token string) *fakeAuth {
	return &fakeAuth{
		login: func(ctx context.Context, email, password string) (*types.AuthResponse, error) {
			return &types.AuthResponse{ID: id, Name: "User", Email: email, Role: role, Token: token}, nil
		},
	}
}

// countingStorage records the number of storage calls
type countingStorage struct {
	MemoryStorage
	mu      sync.Mutex
	calls   int
	saveErr error
}

func (c *countingStorage) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *countingStorage) inc() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingStorage) Load(ctx context.Context) ([]byte, error) {
	c.inc()
	return c.MemoryStorage.Load(ctx)
}

func (c *countingStorage) Save(ctx context.Context, data []byte) error {
	c.inc()
	if c.saveErr != nil {
		return c.saveErr
	}
	return c.MemoryStorage.Save(ctx, data)
}

func (c *countingStorage) Remove(ctx context.Context) error {
	c.inc()
	return c.MemoryStorage.Remove(ctx)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := NewStore(loginAs(3, types.RoleUser, "tok-abc"), storage, discardLogger)

	if err := store.Login(ctx, "a@b.com", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	state := store.State()
	if !store.Authenticated() || state.Token != "tok-abc" || state.User == nil || state.User.ID != 3 {
		t.Fatalf("unexpected state after login: %+v", state)
	}
	if state.Loading {
		t.Errorf("loading should be false after login completes")
	}

	raw, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("expected a persisted entry: %v", err)
	}
	var persisted struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("persisted entry is not JSON: %v", err)
	}
	if persisted.Token != "tok-abc" || persisted.User["email"] != "a@b.com" {
		t.Errorf("unexpected persisted entry %s", raw)
	}

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if store.Authenticated() || store.Token() != "" || store.User() != nil {
		t.Errorf("expected anonymous session after logout, got %+v", store.State())
	}
	if _, err := storage.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected persisted entry to be removed, Load() error = %v", err)
	}
}

func TestLogoutWhenAnonymousIsNoop(t *testing.T) {
	storage := &countingStorage{}
	store := NewStore(loginAs(1, types.RoleUser, "t"), storage, discardLogger)

	before := store.State()
	for range 2 {
		if err := store.Logout(context.Background()); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	}

	if store.State() != before {
		t.Errorf("state changed: %+v -> %+v", before, store.State())
	}
	if storage.count() != 0 {
		t.Errorf("expected no storage calls, got %d", storage.count())
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := NewStore(loginAs(9, types.RoleOng, "tok-restart"), NewFileStorage(dir), discardLogger)
	if err := first.Login(ctx, "ong@petly.app", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	restarted := NewStore(loginAs(0, "", ""), NewFileStorage(dir), discardLogger)
	if err := restarted.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	got, want := restarted.Snapshot(), first.Snapshot()
	if got.Token != want.Token || got.User == nil || *got.User != *want.User {
		t.Errorf("restored session = %+v, want %+v", got, want)
	}
	if restarted.Loading() {
		t.Errorf("loading should start false")
	}
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		entry       string
		wantAuth    bool
		wantRemoved bool
	}{
		{"no entry", "", false, false},
		{"valid entry", `{"user":{"id":1,"name":"Ana","email":"ana@x.com","role":"USER"},"token":"tok"}`, true, false},
		{"malformed entry", `{"user":`, false, true},
		{"user without token", `{"user":{"id":1,"name":"Ana","email":"ana@x.com","role":"USER"},"token":null}`, false, true},
		{"token without user", `{"user":null,"token":"tok"}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storage := NewMemoryStorage()
			if tt.entry != "" {
				_ = storage.Save(ctx, []byte(tt.entry))
			}

			store := NewStore(loginAs(0, "", ""), storage, discardLogger)
			if err := store.Initialize(ctx); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}

			if store.Authenticated() != tt.wantAuth {
				t.Errorf("Authenticated() = %v, want %v", store.Authenticated(), tt.wantAuth)
			}
			_, err := storage.Load(ctx)
			if removed := errors.Is(err, ErrNoSession) && tt.entry != ""; removed != tt.wantRemoved {
				t.Errorf("entry removed = %v, want %v", removed, tt.wantRemoved)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name  string
		role  types.Role
		login bool
		roles []types.Role
		want  bool
	}{
		{"admin against admin", types.RoleAdmin, true, []types.Role{types.RoleAdmin}, true},
		{"admin against admin or ong", types.RoleAdmin, true, []types.Role{types.RoleAdmin, types.RoleOng}, true},
		{"user against admin", types.RoleUser, true, []types.Role{types.RoleAdmin}, false},
		{"user against admin or ong", types.RoleUser, true, []types.Role{types.RoleAdmin, types.RoleOng}, false},
		{"anonymous", "", false, []types.Role{types.RoleUser, types.RoleAdmin}, false},
		{"no roles", types.RoleAdmin, true, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(loginAs(1, tt.role, "tok"), NewMemoryStorage(), discardLogger)
			if tt.login {
				if err := store.Login(context.Background(), "x@y.z", "secret1"); err != nil {
					t.Fatalf("Login() error = %v", err)
				}
			}
			if got := store.HasRole(tt.roles...); got != tt.want {
				t.Errorf("HasRole(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestRoleGroups(t *testing.T) {
	store := NewStore(loginAs(1, types.RoleOng, "tok"), NewMemoryStorage(), discardLogger)
	if err := store.Login(context.Background(), "ong@x.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if store.IsAdmin() {
		t.Errorf("ONG user should not be admin")
	}
	if !store.IsOng() {
		t.Errorf("ONG user should pass the ONG check")
	}
}

func TestLoginInvalidCredentialsAgainstAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
	}))
	defer server.Close()

	storage := &countingStorage{}
	store := NewStore(client.NewClient(server.URL), storage, discardLogger)

	err := store.Login(context.Background(), "a@b.com", "wrong")

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *client.APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Errorf("got %d %q", apiErr.Status, apiErr.Message)
	}
	if store.Authenticated() || store.Loading() {
		t.Errorf("expected anonymous, not loading state, got %+v", store.State())
	}
	if storage.count() != 0 {
		t.Errorf("a failed login must not touch storage, got %d calls", storage.count())
	}
}

func TestRegisterAgainstAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body types.RegisterPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name != "Ana" || body.Password != "secret1" {
			t.Errorf("unexpected register body %+v (%v)", body, err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":7,"name":"Ana","email":"ana@x.com","role":"USER","token":"tok123"}`)
	}))
	defer server.Close()

	store := NewStore(client.NewClient(server.URL), NewMemoryStorage(), discardLogger)

	if err := store.Register(context.Background(), "Ana", "ana@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user := store.User()
	if !store.Authenticated() || user == nil || user.ID != 7 || store.Token() != "tok123" {
		t.Errorf("unexpected state after register: %+v", store.State())
	}
}

// blockingAuth returns a login that waits for release before answering
func blockingAuth(started chan<- struct{}, release <-chan struct{}, res *types.AuthResponse) *fakeAuth {
	return &fakeAuth{
		login: func(ctx context.Context, email, password string) (*types.AuthResponse, error) {
			started <- struct{}{}
			<-release
			return res, nil
		},
	}
}

func TestLogoutSupersedesLoginInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	storage := NewMemoryStorage()
	store := NewStore(blockingAuth(started, release, &types.AuthResponse{ID: 1, Role: types.RoleUser, Token: "late"}), storage, discardLogger)

	done := make(chan error, 1)
	go func() {
		done <- store.Login(context.Background(), "a@b.com", "secret1")
	}()

	<-started
	if !store.Loading() {
		t.Errorf("loading should be true while login is in flight")
	}

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("Login() error = %v, want ErrSuperseded", err)
	}
	if store.Authenticated() || store.Loading() {
		t.Errorf("superseded login must not be applied, state = %+v", store.State())
	}
	if _, err := storage.Load(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("superseded login must not be persisted")
	}
}

func TestLatestLoginWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	auth := &fakeAuth{
		login: func(ctx context.Context, email, password string) (*types.AuthResponse, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				started <- struct{}{}
				<-release
				return &types.AuthResponse{ID: 1, Role: types.RoleUser, Token: "first"}, nil
			}
			return &types.AuthResponse{ID: 2, Role: types.RoleAdmin, Token: "second"}, nil
		},
	}
	store := NewStore(auth, NewMemoryStorage(), discardLogger)

	done := make(chan error, 1)
	go func() {
		done <- store.Login(context.Background(), "first@x.com", "secret1")
	}()
	<-started

	if err := store.Login(context.Background(), "second@x.com", "secret1"); err != nil {
		t.Fatalf("second Login() error = %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Login() error = %v, want ErrSuperseded", err)
	}
	if store.Token() != "second" || !store.IsAdmin() {
		t.Errorf("expected the second login to win, got %+v", store.State())
	}
}

func TestLoginStorageFailure(t *testing.T) {
	storage := &countingStorage{saveErr: errors.New("disk full")}
	store := NewStore(loginAs(1, types.RoleUser, "tok"), storage, discardLogger)

	err := store.Login(context.Background(), "a@b.com", "secret1")

	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "save" {
		t.Fatalf("expected a save *StorageError, got %v", err)
	}
	if !store.Authenticated() {
		t.Errorf("the in-memory session should still be authenticated")
	}
}

func TestEmptyAuthResponse(t *testing.T) {
	auth := &fakeAuth{
		login: func(ctx context.Context, email, password string) (*types.AuthResponse, error) {
			return nil, nil
		},
	}
	store := NewStore(auth, NewMemoryStorage(), discardLogger)

	if err := store.Login(context.Background(), "a@b.com", "secret1"); !errors.Is(err, ErrEmptyAuthResponse) {
		t.Errorf("Login() error = %v, want ErrEmptyAuthResponse", err)
	}
	if store.Authenticated() {
		t.Errorf("expected anonymous session")
	}
}

func TestTokenStatus(t *testing.T) {
	now := time.Now()
	sign := func(exp time.Time) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("test-key"))
		if err != nil {
			t.Fatalf("signing token: %v", err)
		}
		return token
	}

	tests := []struct {
		name  string
		token string
		want  TokenStatus
	}{
		{"missing", "", TokenMissing},
		{"opaque", "tok123", TokenOpaque},
		{"expired", sign(now.Add(-time.Minute)), TokenExpired},
		{"valid", sign(now.Add(time.Hour)), TokenValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenStatus(tt.token, now); got != tt.want {
				t.Errorf("tokenStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
