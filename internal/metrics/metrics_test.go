package metrics

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDBStats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterDBStats(reg, db, "ontime"))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_sql_open_connections"])
	assert.True(t, names["go_sql_max_open_connections"])

	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, RegisterDBStats(reg, db, "ontime"), &already)
}

func TestCountersAreRegistered(t *testing.T) {
	ResourceOperationsTotal.WithLabelValues("todo", "create", "ok").Inc()
	AuthFailuresTotal.WithLabelValues(ReasonBadSignature).Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["ontime_resource_operations_total"])
	assert.True(t, names["ontime_auth_failures_total"])
}
