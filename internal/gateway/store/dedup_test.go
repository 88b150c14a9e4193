package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/store"
)

func TestNoopDeduper_NeverReportsDuplicates(t *testing.T) {
	d := store.NoopDeduper{}

	for i := 0; i < 3; i++ {
		seen, err := d.Seen(context.Background(), "c-1", "call-ended")
		require.NoError(t, err)
		assert.False(t, seen)
	}
	assert.NoError(t, d.Close())
}
