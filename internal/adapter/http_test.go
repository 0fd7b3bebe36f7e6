// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"", "   ", "http://"} {
		_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: addr}, logger.Nop())
		assert.ErrorIs(t, err, ErrInvalidAddress, addr)
	}
}

func TestNewHTTPServerAdapter_AddressWithoutScheme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "1.0.0")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.Listener.Addr().String())
	version, err := a.ServerVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)
}

// ── Register ────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var got models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, req, got)

		writeJSON(t, w, http.StatusCreated, models.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "duplicate", Message: "username already registered"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "username already registered")
}

func TestRegister_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── Login / Me / Logout ─────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		writeJSON(t, w, http.StatusOK, models.TokenResponse{AccessToken: "a.b.c", TokenType: "bearer"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token.AccessToken)
	assert.Equal(t, "a.b.c", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized", Message: "incorrect username or password"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "alice", "wrong")

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "incorrect username or password")
	assert.Empty(t, a.Token())
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer a.b.c", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.User{ID: 3, Username: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("  a.b.c ")
	user, err := a.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
}

func TestMe_WithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized", Message: "not authenticated"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "successfully logged out"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("a.b.c")

	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

// ── Todos ───────────────────────────────────────────────────────────────────

func TestTodos_Requests(t *testing.T) {
	todo := models.Todo{ID: 7, UserID: 1, Task: "buy milk"}

	type seen struct{ method, path, query string }
	var calls []seen

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, seen{r.Method, r.URL.Path, r.URL.RawQuery})
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/todos/":
			writeJSON(t, w, http.StatusOK, []models.Todo{todo})
		case r.Method == http.MethodDelete:
			writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "todo deleted successfully"})
		case r.Method == http.MethodPost:
			writeJSON(t, w, http.StatusCreated, todo)
		default:
			writeJSON(t, w, http.StatusOK, todo)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	created, err := a.CreateTodo(ctx, models.TodoCreate{Task: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, todo, created)

	list, err := a.ListTodos(ctx, models.Page{Skip: 5, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = a.ListTodos(ctx, models.Page{})
	require.NoError(t, err)

	_, err = a.GetTodo(ctx, 7)
	require.NoError(t, err)

	task := "buy oat milk"
	_, err = a.UpdateTodo(ctx, 7, models.TodoUpdate{Task: &task})
	require.NoError(t, err)

	_, err = a.ToggleTodo(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, a.DeleteTodo(ctx, 7))

	assert.Equal(t, []seen{
		{http.MethodPost, "/todos/", ""},
		{http.MethodGet, "/todos/", "limit=10&skip=5"},
		{http.MethodGet, "/todos/", ""},
		{http.MethodGet, "/todos/7", ""},
		{http.MethodPut, "/todos/7", ""},
		{http.MethodPatch, "/todos/7/complete", ""},
		{http.MethodDelete, "/todos/7", ""},
	}, calls)
}

func TestGetTodo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "not_found", Message: "todo not found"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetTodo(context.Background(), 404)

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "todo not found")
}

func TestListTodos_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListTodos(context.Background(), models.Page{})
	assert.Error(t, err)
}

// ── Notes ───────────────────────────────────────────────────────────────────

func TestNotes_Requests(t *testing.T) {
	note := models.Note{ID: 2, UserID: 1, Content: "call the plumber"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /notes/":
			writeJSON(t, w, http.StatusCreated, note)
		case "GET /notes/":
			writeJSON(t, w, http.StatusOK, []models.Note{note, note})
		case "GET /notes/2", "PUT /notes/2":
			writeJSON(t, w, http.StatusOK, note)
		case "DELETE /notes/2":
			writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "note deleted successfully"})
		default:
			writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "not_found", Message: "route not found"})
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	created, err := a.CreateNote(ctx, models.NoteCreate{Content: note.Content})
	require.NoError(t, err)
	assert.Equal(t, note, created)

	list, err := a.ListNotes(ctx, models.Page{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = a.GetNote(ctx, 2)
	require.NoError(t, err)

	content := "done"
	_, err = a.UpdateNote(ctx, 2, models.NoteUpdate{Content: &content})
	require.NoError(t, err)

	require.NoError(t, a.DeleteNote(ctx, 2))
	assert.ErrorIs(t, a.DeleteNote(ctx, 3), ErrNotFound)
}

// ── Errors ──────────────────────────────────────────────────────────────────

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "todo not found", errorMessage([]byte(`{"error":"not_found","message":"todo not found"}`)))
	assert.Equal(t, "plain text", errorMessage([]byte("  plain text\n")))
	assert.Equal(t, `{"error":"x"}`, errorMessage([]byte(`{"error":"x"}`)))
}

func TestMapHTTPError_UnlistedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Me(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
