package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/service"
	"github.com/MKhiriev/ontime/internal/store"
	"github.com/MKhiriev/ontime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteRouter wires the full stack over a migrated in-memory database.
func newSQLiteRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, config.DB{DSN: ":memory:", Driver: config.DriverSQLite}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "e2e-secret",
			TokenIssuer:   "ontime",
			TokenDuration: 30 * time.Minute,
			BcryptCost:    4,
			Version:       "test",
		},
		Server:     config.Server{RequestTimeout: 5 * time.Second},
		Pagination: config.Pagination{MaxLimit: 100},
	}

	services, err := service.NewServices(store.NewStorages(db, logger.Nop()), cfg, logger.Nop())
	require.NoError(t, err)

	return NewHandler(services, db, cfg.Server, logger.Nop()).Init()
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	rec := serve(t, router, request{
		method:      http.MethodPost,
		target:      "/auth/register",
		body:        strings.NewReader(`{"username":"` + username + `","email":"` + username + `@example.com","password":"s3cret"}`),
		contentType: "application/json",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(t, router, request{
		method:      http.MethodPost,
		target:      "/auth/login",
		body:        loginForm(username, "s3cret"),
		contentType: formContentType,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := decodeBody[models.TokenResponse](t, rec)
	require.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestE2E_TodoLifecycle(t *testing.T) {
	router := newSQLiteRouter(t)
	token := registerAndLogin(t, router, "alice")

	rec := serve(t, router, request{method: http.MethodGet, target: "/auth/me", token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decodeBody[models.User](t, rec)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.NotContains(t, rec.Body.String(), "s3cret")

	rec = serve(t, router, request{
		method:      http.MethodPost,
		target:      "/todos/",
		body:        strings.NewReader(`{"task":"buy milk","due_date":"2026-04-01"}`),
		contentType: "application/json",
		token:       token,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.Todo](t, rec)
	assert.Equal(t, me.ID, created.UserID)
	assert.False(t, created.Completed)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-04-01", created.DueDate.String())

	rec = serve(t, router, request{method: http.MethodGet, target: "/todos/", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	todos := decodeBody[[]models.Todo](t, rec)
	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].Task)

	rec = serve(t, router, request{method: http.MethodPatch, target: "/todos/" + itoa(created.ID) + "/complete", token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[models.Todo](t, rec).Completed)

	rec = serve(t, router, request{
		method: http.MethodPut,
		target: "/todos/" + itoa(created.ID),
		body:   strings.NewReader(`{"task":"buy oat milk"}`),
		token:  token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[models.Todo](t, rec)
	assert.Equal(t, "buy oat milk", updated.Task)
	assert.True(t, updated.Completed)
	assert.Equal(t, "2026-04-01", updated.DueDate.String())

	rec = serve(t, router, request{
		method: http.MethodPut,
		target: "/todos/" + itoa(created.ID),
		body:   strings.NewReader(`{"due_date":null}`),
		token:  token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decodeBody[models.Todo](t, rec).DueDate)

	rec = serve(t, router, request{method: http.MethodGet, target: "/todos/" + itoa(created.ID), token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := decodeBody[models.Todo](t, rec)
	assert.Nil(t, cleared.DueDate)
	assert.Equal(t, "buy oat milk", cleared.Task)

	rec = serve(t, router, request{method: http.MethodDelete, target: "/todos/" + itoa(created.ID), token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, router, request{method: http.MethodGet, target: "/todos/" + itoa(created.ID), token: token})
	assertError(t, rec, http.StatusNotFound, codeNotFound)

	rec = serve(t, router, request{method: http.MethodGet, target: "/todos/"})
	assertError(t, rec, http.StatusUnauthorized, codeUnauthorized)
}

func TestE2E_OwnershipIsolation(t *testing.T) {
	router := newSQLiteRouter(t)
	alice := registerAndLogin(t, router, "alice")
	bob := registerAndLogin(t, router, "bob")

	rec := serve(t, router, request{method: http.MethodPost, target: "/notes/", body: strings.NewReader(`{"content":"alice's secret"}`), token: alice})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	note := decodeBody[models.Note](t, rec)

	rec = serve(t, router, request{method: http.MethodGet, target: "/notes/" + itoa(note.ID), token: bob})
	foreign := assertError(t, rec, http.StatusNotFound, codeNotFound)

	rec = serve(t, router, request{method: http.MethodGet, target: "/notes/999999", token: bob})
	missing := assertError(t, rec, http.StatusNotFound, codeNotFound)
	assert.Equal(t, missing, foreign)

	rec = serve(t, router, request{method: http.MethodPut, target: "/notes/" + itoa(note.ID), body: strings.NewReader(`{"content":"hijacked"}`), token: bob})
	assertError(t, rec, http.StatusNotFound, codeNotFound)

	rec = serve(t, router, request{method: http.MethodDelete, target: "/notes/" + itoa(note.ID), token: bob})
	assertError(t, rec, http.StatusNotFound, codeNotFound)

	rec = serve(t, router, request{method: http.MethodGet, target: "/notes/", token: bob})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = serve(t, router, request{method: http.MethodGet, target: "/notes/" + itoa(note.ID), token: alice})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice's secret", decodeBody[models.Note](t, rec).Content)
}

func TestE2E_RegistrationAndLoginRejections(t *testing.T) {
	router := newSQLiteRouter(t)
	registerAndLogin(t, router, "alice")

	rec := serve(t, router, request{
		method: http.MethodPost,
		target: "/auth/register",
		body:   strings.NewReader(`{"username":"alice","email":"other@example.com","password":"x"}`),
	})
	body := assertError(t, rec, http.StatusConflict, codeDuplicate)
	assert.Equal(t, "username already registered", body.Message)

	rec = serve(t, router, request{
		method: http.MethodPost,
		target: "/auth/register",
		body:   strings.NewReader(`{"username":"alice2","email":"alice@example.com","password":"x"}`),
	})
	body = assertError(t, rec, http.StatusConflict, codeDuplicate)
	assert.Equal(t, "email already registered", body.Message)

	wrong := serve(t, router, request{method: http.MethodPost, target: "/auth/login", body: loginForm("alice", "nope"), contentType: formContentType})
	unknown := serve(t, router, request{method: http.MethodPost, target: "/auth/login", body: loginForm("nobody", "nope"), contentType: formContentType})
	assertError(t, wrong, http.StatusUnauthorized, codeUnauthorized)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestE2E_TamperedTokenRejected(t *testing.T) {
	router := newSQLiteRouter(t)
	token := registerAndLogin(t, router, "alice")

	tampered := token[:len(token)-2] + flipFirst(token[len(token)-2:])
	for _, bad := range []string{tampered, "not-a-token", token + "."} {
		rec := serve(t, router, request{method: http.MethodGet, target: "/auth/me", token: bad})
		assertError(t, rec, http.StatusUnauthorized, codeUnauthorized)
	}
}

func flipFirst(s string) string {
	b := []byte(s)
	if b[0] == 'A' {
		b[0] = 'B'
	} else {
		b[0] = 'A'
	}
	return string(b)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
