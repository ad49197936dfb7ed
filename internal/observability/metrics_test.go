package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveQuery_LabelsByStatementVerb(t *testing.T) {
	ObserveQuery(`select * from "pieces"`, time.Now())
	ObserveQuery(`INSERT INTO "likes" VALUES ($1, $2)`, time.Now())
	ObserveQuery(`EXPLAIN ANALYZE SELECT 1`, time.Now())

	// SELECT, INSERT, and OTHER each get their own child series.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(DatabaseQueryLatency), 3)
}

func TestInitTracing_DisabledIsNoOp(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "blackbook-api", Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer)
}
