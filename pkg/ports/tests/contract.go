package tests

import (
	"context"
	"testing"

	"github.com/aretw0/rotator/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DeckSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.DeckSource.
// wantIDs lists the expected item IDs in display order.
func DeckSourceContractTest(t *testing.T, src ports.DeckSource, wantIDs []string) {
	t.Helper()

	t.Run("Load_Order", func(t *testing.T) {
		d, err := src.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, len(wantIDs), d.Len())

		got := make([]string, 0, d.Len())
		for _, it := range d.Items {
			got = append(got, it.ID)
		}
		assert.Equal(t, wantIDs, got)
	})

	t.Run("Load_Valid", func(t *testing.T) {
		d, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.NoError(t, d.Validate())
	})

	t.Run("Load_Repeatable", func(t *testing.T) {
		a, err := src.Load(context.Background())
		require.NoError(t, err)
		b, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
