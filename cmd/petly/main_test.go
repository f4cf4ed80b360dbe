package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petly-community/petly/internal/ui/types"
)

// fakeAPI answers the requests used by the command tests
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	respond := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}

	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var payload types.LoginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Password != "secret1" {
			respond(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
			return
		}
		respond(w, http.StatusOK, `{"id":7,"name":"Ana","email":"ana@x.com","role":"USER","token":"tok123"}`)
	})
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		var payload types.RegisterPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Password == "" {
			respond(w, http.StatusBadRequest, `{"message":"Dados inválidos"}`)
			return
		}
		respond(w, http.StatusCreated, `{"id":8,"name":"`+payload.Name+`","email":"`+payload.Email+`","role":"USER","token":"tok456"}`)
	})
	mux.HandleFunc("GET /pets", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, `[
			{"id":1,"name":"Luna","species":"Gato","status":"AVAILABLE","ownerId":7},
			{"id":2,"name":"Paçoca","species":"Cachorro","status":"ADOPTED","ownerId":9}]`)
	})
	mux.HandleFunc("POST /pets", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			respond(w, http.StatusUnauthorized, `{"message":"Token ausente"}`)
			return
		}
		respond(w, http.StatusCreated, `{"id":3,"name":"Thor","species":"Cachorro","status":"AVAILABLE","ownerId":7}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// setEnv configures the commands to use the fake API and a file backed session in a temp dir
func setEnv(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("API_BASE_URL", apiURL)
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_DIR", t.TempDir())
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("LOCALE", "en")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv(passwordEnv, "")
	t.Setenv(confirmPasswordEnv, "")
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPetsList(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)

	stdout, _, err := execute(t, "pets", "list", "--search", "pacoca")
	if err != nil {
		t.Fatalf("pets list error = %v", err)
	}
	if !strings.Contains(stdout, "Paçoca") || strings.Contains(stdout, "Luna") {
		t.Errorf("unexpected table:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Adopted") || !strings.Contains(stdout, "1 record") {
		t.Errorf("expected the status label and record count:\n%s", stdout)
	}

	if _, stderr, err := execute(t, "pets", "list", "--status", "SOLD"); err == nil || !strings.Contains(stderr, "Invalid status.") {
		t.Errorf("pets list --status SOLD: err = %v, stderr = %q", err, stderr)
	}
}

func TestSessionCommands(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)

	if _, stderr, err := execute(t, "whoami"); err == nil || !strings.Contains(stderr, "Please log in to continue.") {
		t.Fatalf("whoami before login: err = %v, stderr = %q", err, stderr)
	}

	if _, stderr, err := execute(t, "login", "--email", "ana@x.com", "--password", "wrong"); err == nil || !strings.Contains(stderr, "Invalid credentials") {
		t.Fatalf("login with a wrong password: err = %v, stderr = %q", err, stderr)
	}

	if _, stderr, err := execute(t, "login", "--email", "ana@x.com"); err == nil || !strings.Contains(stderr, "Please fill in all fields.") {
		t.Fatalf("login without a password: err = %v, stderr = %q", err, stderr)
	}

	if _, _, err := execute(t, "login", "--email", "ana@x.com", "--password", "secret1"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	// the session is restored by the next command
	stdout, _, err := execute(t, "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(stdout, `"name": "Ana"`) || strings.Contains(stdout, "tok123") {
		t.Errorf("unexpected whoami output:\n%s", stdout)
	}

	stdout, _, err = execute(t, "pets", "list", "--mine")
	if err != nil {
		t.Fatalf("pets list --mine error = %v", err)
	}
	if !strings.Contains(stdout, "Luna") || strings.Contains(stdout, "Paçoca") {
		t.Errorf("--mine should only list the pets of user 7:\n%s", stdout)
	}

	stdout, _, err = execute(t, "pets", "create", "--name", "Thor", "--species", "Cachorro")
	if err != nil {
		t.Fatalf("pets create error = %v", err)
	}
	if !strings.HasPrefix(stdout, "Pet registered!") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	if _, stderr, err := execute(t, "users", "list"); err == nil || !strings.Contains(stderr, "You don't have permission") {
		t.Errorf("users list as USER: err = %v, stderr = %q", err, stderr)
	}

	stdout, _, err = execute(t, "logout")
	if err != nil || !strings.Contains(stdout, "You have been logged out.") {
		t.Fatalf("logout: err = %v, stdout = %q", err, stdout)
	}

	if _, _, err := execute(t, "whoami"); err == nil {
		t.Errorf("whoami after logout should fail")
	}
}

func TestInvalidID(t *testing.T) {
	setEnv(t, fakeAPI(t).URL)

	if _, stderr, err := execute(t, "pets", "get", "abc"); err == nil || !strings.Contains(stderr, "Invalid identifier.") {
		t.Errorf("pets get abc: err = %v, stderr = %q", err, stderr)
	}
}

func TestPasswordSources(t *testing.T) {
	tests := []struct {
		name       string
		stdin      string
		env        map[string]string
		args       []string
		wantErr    string
		wantOutput string
	}{
		{
			name:       "login password from stdin",
			stdin:      "secret1\n",
			args:       []string{"login", "--email", "ana@x.com", "--password-stdin"},
			wantOutput: `"name": "Ana"`,
		},
		{
			name:       "login password from stdin with windows line ending",
			stdin:      "secret1\r\n",
			args:       []string{"login", "--email", "ana@x.com", "--password-stdin"},
			wantOutput: `"name": "Ana"`,
		},
		{
			name:       "login password from the environment",
			env:        map[string]string{passwordEnv: "secret1"},
			args:       []string{"login", "--email", "ana@x.com"},
			wantOutput: `"name": "Ana"`,
		},
		{
			name:    "login flag wins over the environment",
			env:     map[string]string{passwordEnv: "secret1"},
			args:    []string{"login", "--email", "ana@x.com", "--password", "wrong"},
			wantErr: "Invalid credentials",
		},
		{
			name:    "login with empty stdin",
			args:    []string{"login", "--email", "ana@x.com", "--password-stdin"},
			wantErr: "Please fill in all fields.",
		},
		{
			name:       "register passwords from stdin",
			stdin:      "secret1\nsecret1\n",
			args:       []string{"register", "--name", "Bia", "--email", "bia@x.com", "--password-stdin"},
			wantOutput: `"name": "Bia"`,
		},
		{
			name:    "register confirmation mismatch from stdin",
			stdin:   "secret1\nsecret2\n",
			args:    []string{"register", "--name", "Bia", "--email", "bia@x.com", "--password-stdin"},
			wantErr: "Passwords do not match.",
		},
		{
			name:    "register without the confirmation line",
			stdin:   "secret1\n",
			args:    []string{"register", "--name", "Bia", "--email", "bia@x.com", "--password-stdin"},
			wantErr: "Please fill in all fields.",
		},
		{
			name:       "register passwords from the environment",
			env:        map[string]string{passwordEnv: "secret1", confirmPasswordEnv: "secret1"},
			args:       []string{"register", "--name", "Bia", "--email", "bia@x.com"},
			wantOutput: `"name": "Bia"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, fakeAPI(t).URL)
			for name, value := range tt.env {
				t.Setenv(name, value)
			}

			stdout, stderr, err := executeWithInput(t, tt.stdin, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(stderr, tt.wantErr) {
					t.Errorf("err = %v, stderr = %q, want %q", err, stderr, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v (stderr %q)", err, stderr)
			}
			if !strings.Contains(stdout, tt.wantOutput) {
				t.Errorf("unexpected output:\n%s", stdout)
			}
		})
	}
}
