package plan

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specrun/specrun/packages/core/config"
)

func TestMarkerResolver_DefaultIsEpochSeconds(t *testing.T) {
	resolver := NewMarkerResolver()
	marker := resolver.Resolve(config.DefaultMarker())

	seconds, err := strconv.ParseInt(marker, 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), seconds, 2)
}

func TestMarkerResolver_ExplicitPassesThroughVerbatim(t *testing.T) {
	resolver := NewMarkerResolver()
	marker := resolver.Resolve(config.ExplicitMarker("nightly build #17 (rc-2)"))
	assert.Equal(t, "nightly build #17 (rc-2)", marker)
}

func TestMarkerResolver_ResolvesExactlyOnce(t *testing.T) {
	resolver := NewMarkerResolver()
	first := resolver.Resolve(config.DefaultMarker())
	time.Sleep(10 * time.Millisecond)
	second := resolver.Resolve(config.DefaultMarker())
	assert.Equal(t, first, second)
}
