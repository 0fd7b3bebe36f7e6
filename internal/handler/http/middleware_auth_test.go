package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/ontime/internal/service"
	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "scheme with trailing space", header: "Bearer ", wantErr: ErrInvalidAuthorizationHeader},
		{name: "raw token", header: "abc.def.ghi", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthMiddleware_StoresResolvedUser(t *testing.T) {
	h, m := newMockedHandler(t)
	m.auth.EXPECT().ResolveUser(gomock.Any(), testToken).Return(testUser, nil)

	var got models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = utils.GetUserFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	})

	rec := serve(t, h.auth(next), request{method: http.MethodGet, target: "/auth/me", token: testToken})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testUser, got)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		resolveTo error
		status    int
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "token rejected", header: "Bearer " + testToken, resolveTo: service.ErrAuthenticationFailed, status: http.StatusUnauthorized},
		{name: "storage failure", header: "Bearer " + testToken, resolveTo: errors.New("db is down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			if tt.resolveTo != nil {
				m.auth.EXPECT().ResolveUser(gomock.Any(), testToken).Return(models.User{}, tt.resolveTo)
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be called")
			})

			r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, r)

			if tt.status == http.StatusUnauthorized {
				body := assertError(t, rec, tt.status, codeUnauthorized)
				assert.NotContains(t, body.Message, testToken)
				return
			}
			body := assertError(t, rec, tt.status, codeInternal)
			assert.NotContains(t, body.Message, "db is down")
			assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
		})
	}
}
