package streamer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDelay(t *testing.T) {
	base := time.Second
	max := 30 * time.Second

	require.Equal(t, 1*time.Second, backoffDelay(0, base, max))
	require.Equal(t, 2*time.Second, backoffDelay(1, base, max))
	require.Equal(t, 4*time.Second, backoffDelay(2, base, max))
	require.Equal(t, 8*time.Second, backoffDelay(3, base, max))
	require.Equal(t, 16*time.Second, backoffDelay(4, base, max))
	require.Equal(t, 30*time.Second, backoffDelay(5, base, max))
	require.Equal(t, 30*time.Second, backoffDelay(40, base, max))
}
