package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop_RecordsNothing(t *testing.T) {
	o := Noop()
	assert.NotPanics(t, func() {
		o.RecordQuery(context.Background(), time.Second, "success", true)
		o.RecordLookup(context.Background(), "timeout")
		o.Shutdown()
	})

	var nilObs *Observability
	assert.NotPanics(t, func() {
		nilObs.RecordQuery(context.Background(), time.Second, "success", false)
		nilObs.Shutdown()
	})
}

func TestNew_ExportsThroughPrometheus(t *testing.T) {
	o := New("college-tracker-test", nil)
	defer o.Shutdown()

	o.RecordQuery(context.Background(), 120*time.Millisecond, "success", false)
	o.RecordLookup(context.Background(), "success")

	srv := httptest.NewServer(o.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "assistant_queries")
	assert.Contains(t, string(body), "college_lookups")
}
