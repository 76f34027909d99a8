package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := New("test")
	c.ObserveRequest("GET", "/api/v1/operators", 200, 10*time.Millisecond)
	c.ObserveRequest("GET", "/api/v1/operators", 200, 20*time.Millisecond)
	c.CommandApplied("insert", nil)
	c.CommandApplied("insert", errors.New("boom"))
	c.StoreOperation("save", nil)
	c.SetActiveSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/operators", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SessionCommands.WithLabelValues("insert", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StoreOperations.WithLabelValues("save", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ActiveSessions))
}

func TestCollectorHandler(t *testing.T) {
	c := New("test")
	c.CommandApplied("remove", nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `test_session_commands_total{op="remove",status="ok"} 1`))
}
