package runtime

import (
	"math/rand"
	"testing"

	"github.com/aretw0/rotator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_NextPrevWrap(t *testing.T) {
	s := domain.NewState(3, 0, true)

	s, err := Apply(s, domain.Prev())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, domain.Backward, s.Direction)
	assert.Equal(t, uint64(1), s.Epoch)

	s, err = Apply(s, domain.Next())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, domain.Forward, s.Direction)
	assert.Equal(t, uint64(2), s.Epoch)
}

func TestApply_NetDisplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 1; n <= 9; n++ {
		s := domain.NewState(n, 0, true)
		net := 0
		for step := 0; step < 500; step++ {
			var err error
			if rng.Intn(2) == 0 {
				s, err = Apply(s, domain.Next())
				net++
			} else {
				s, err = Apply(s, domain.Prev())
				net--
			}
			require.NoError(t, err)
			require.GreaterOrEqual(t, s.Index, 0)
			require.Less(t, s.Index, n)
			require.Equal(t, domain.Wrap(net, n), s.Index, "n=%d step=%d", n, step)
		}
	}
}

func TestApply_Goto(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		from    int
		to      int
		wantDir domain.Direction
	}{
		{"Adjacent Forward", 5, 0, 1, domain.Forward},
		{"Wrap Backward Is Shorter", 5, 0, 4, domain.Backward},
		{"Wrap Forward Is Shorter", 5, 4, 0, domain.Forward},
		{"Two Back", 5, 3, 1, domain.Backward},
		{"Tie Goes Forward", 4, 0, 2, domain.Forward},
		{"Tie Goes Forward From Odd Index", 6, 5, 2, domain.Forward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewState(tt.count, tt.from, true)
			got, err := Apply(s, domain.GotoIndex(tt.to))
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Index)
			assert.Equal(t, tt.wantDir, got.Direction)
			assert.Equal(t, s.Epoch+1, got.Epoch)
		})
	}
}

func TestApply_GotoCurrentIsNoop(t *testing.T) {
	s := domain.NewState(5, 2, true)
	s.Direction = domain.Backward
	s.Epoch = 9

	got, err := Apply(s, domain.GotoIndex(2))
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestApply_GotoInvalid(t *testing.T) {
	s := domain.NewState(5, 3, true)
	for _, i := range []int{-1, 5, 100} {
		got, err := Apply(s, domain.GotoIndex(i))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidIndex)

		var idxErr *domain.IndexError
		require.ErrorAs(t, err, &idxErr)
		assert.Equal(t, i, idxErr.Index)
		assert.Equal(t, 5, idxErr.Count)
		assert.Equal(t, s, got, "state must be unchanged")
	}
}

func TestApply_SetAutoplayOnlyTogglesFlag(t *testing.T) {
	s := domain.NewState(5, 3, true)
	s.Direction = domain.Forward
	s.Epoch = 4

	got, err := Apply(s, domain.SetAutoplay(false))
	require.NoError(t, err)
	assert.False(t, got.Autoplay)
	assert.Equal(t, s.Index, got.Index)
	assert.Equal(t, s.Direction, got.Direction)
	assert.Equal(t, s.Epoch, got.Epoch)
}

func TestApply_SingleItem(t *testing.T) {
	s := domain.NewState(1, 0, true)
	s, err := Apply(s, domain.Next())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, domain.Forward, s.Direction)
	assert.Equal(t, uint64(1), s.Epoch)
}

func TestApply_EmptyCollection(t *testing.T) {
	_, err := Apply(domain.State{}, domain.Next())
	assert.ErrorIs(t, err, domain.ErrEmptyCollection)
}

func TestApply_ReferenceScenario(t *testing.T) {
	s := domain.NewState(5, 0, true)

	s, _ = Apply(s, domain.Next())
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, domain.Forward, s.Direction)

	s, _ = Apply(s, domain.Prev())
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, domain.Backward, s.Direction)

	s, _ = Apply(s, domain.GotoIndex(4))
	assert.Equal(t, 4, s.Index)
	assert.Equal(t, domain.Backward, s.Direction)
}
