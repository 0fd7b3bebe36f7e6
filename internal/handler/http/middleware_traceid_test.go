package http

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID_GeneratesID(t *testing.T) {
	h, _ := newMockedHandler(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, log.Ctx(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	rec := serve(t, h.withTraceID(next), request{method: http.MethodGet, target: "/"})

	traceID := rec.Header().Get(traceIDHeader)
	require.NotEmpty(t, traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err)
}

func TestWithTraceID_DistinctPerRequest(t *testing.T) {
	h, _ := newMockedHandler(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	first := serve(t, h.withTraceID(next), request{method: http.MethodGet, target: "/"})
	second := serve(t, h.withTraceID(next), request{method: http.MethodGet, target: "/"})

	assert.NotEqual(t, first.Header().Get(traceIDHeader), second.Header().Get(traceIDHeader))
}
