package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStoreTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterStore(reg))
	require.NoError(t, RegisterStore(reg))
}

func TestObserveStore(t *testing.T) {
	before := testutil.ToFloat64(StoreOperations.WithLabelValues("metrics_test", "load"))
	ObserveStore("metrics_test", "load", time.Now())
	after := testutil.ToFloat64(StoreOperations.WithLabelValues("metrics_test", "load"))
	assert.Equal(t, before+1, after)
}
