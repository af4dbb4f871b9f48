package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs, err := New("archibald-test")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		obs.RecordPipelineRun(context.Background(), 120*time.Millisecond, "ok", "fr")
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability

	assert.NotPanics(t, func() {
		obs.RecordPipelineRun(context.Background(), time.Second, "ok", "en")
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
	assert.NoError(t, (&Observability{}).Shutdown(context.Background()))
}
