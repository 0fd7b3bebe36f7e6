package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/ontime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestStructValidator_RegisterRequest(t *testing.T) {
	v := NewStructValidator()

	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr bool
		msg     string
	}{
		{name: "valid", req: models.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1"}},
		{name: "missing username", req: models.RegisterRequest{Email: "a@x.com", Password: "pw"}, wantErr: true, msg: "username is required"},
		{name: "short username", req: models.RegisterRequest{Username: "al", Email: "a@x.com", Password: "pw"}, wantErr: true, msg: "username must be at least 3"},
		{name: "space in username", req: models.RegisterRequest{Username: "al ice", Email: "a@x.com", Password: "pw"}, wantErr: true, msg: "forbidden characters"},
		{name: "bad email", req: models.RegisterRequest{Username: "alice", Email: "nope", Password: "pw"}, wantErr: true, msg: "email must be a valid email"},
		{name: "missing password", req: models.RegisterRequest{Username: "alice", Email: "a@x.com"}, wantErr: true, msg: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestStructValidator_LoginRequestUsesFieldNames(t *testing.T) {
	err := NewStructValidator().Validate(context.Background(), models.LoginRequest{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), "password is required")
}

func TestStructValidator_TodoUpdate(t *testing.T) {
	v := NewStructValidator()

	assert.NoError(t, v.Validate(context.Background(), models.TodoUpdate{}))
	assert.NoError(t, v.Validate(context.Background(), models.TodoUpdate{Task: ptr("x")}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.TodoUpdate{Task: ptr("")}), ErrValidation)
}

func TestStructValidator_Page(t *testing.T) {
	v := NewStructValidator()

	assert.NoError(t, v.Validate(context.Background(), models.Page{Skip: 0, Limit: 100}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.Page{Limit: 0}), ErrValidation)
	assert.ErrorIs(t, v.Validate(context.Background(), models.Page{Limit: 101}), ErrValidation)
}

func TestStructValidator_PartialFields(t *testing.T) {
	err := NewStructValidator().Validate(context.Background(),
		models.RegisterRequest{Username: "alice"}, "Username")
	assert.NoError(t, err)
}

func TestStructValidator_UnsupportedType(t *testing.T) {
	err := NewStructValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStructValidator_FieldErrors(t *testing.T) {
	err := NewStructValidator().Validate(context.Background(), models.NoteCreate{})

	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"content is required"}, fe.Messages)
	assert.Equal(t, "content is required", fe.Message())
	assert.Equal(t, "validation failed: content is required", fe.Error())
}
