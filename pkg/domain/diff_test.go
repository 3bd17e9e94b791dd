package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		old       *State
		new       *State
		wantNil   bool
		wantIndex *int
		wantDir   *Direction
		wantAuto  *bool
	}{
		{
			name:      "Initial Load (Old is Nil)",
			old:       nil,
			new:       &State{Count: 5, Index: 2, Direction: Forward, Autoplay: true, Epoch: 3},
			wantIndex: ptr(2),
			wantDir:   ptr(Forward),
			wantAuto:  ptr(true),
		},
		{
			name:    "No Changes",
			old:     &State{Count: 5, Index: 1, Direction: Forward, Autoplay: true, Epoch: 1},
			new:     &State{Count: 5, Index: 1, Direction: Forward, Autoplay: true, Epoch: 1},
			wantNil: true,
		},
		{
			name:      "Index Advance",
			old:       &State{Count: 5, Index: 1, Direction: Forward, Autoplay: true, Epoch: 1},
			new:       &State{Count: 5, Index: 2, Direction: Forward, Autoplay: true, Epoch: 2},
			wantIndex: ptr(2),
			wantDir:   ptr(Forward),
		},
		{
			name:     "Autoplay Toggle Only",
			old:      &State{Count: 5, Index: 1, Direction: Forward, Autoplay: true, Epoch: 1},
			new:      &State{Count: 5, Index: 1, Direction: Forward, Autoplay: false, Epoch: 1},
			wantAuto: ptr(false),
		},
		{
			name:    "Single Item Wraps Onto Itself",
			old:     &State{Count: 1, Index: 0, Direction: Forward, Autoplay: true, Epoch: 1},
			new:     &State{Count: 1, Index: 0, Direction: Forward, Autoplay: true, Epoch: 2},
			wantDir: ptr(Forward),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.new.Epoch, got.Epoch)
			assert.Equal(t, tt.wantIndex, got.Index)
			assert.Equal(t, tt.wantDir, got.Direction)
			assert.Equal(t, tt.wantAuto, got.Autoplay)

			if tt.old != nil {
				assert.Equal(t, *tt.new, got.Apply(*tt.old))
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Unchanged Fields Omitted", func(t *testing.T) {
		s1 := &State{Count: 3, Index: 0, Autoplay: true}
		s2 := &State{Count: 3, Index: 0, Autoplay: false}
		diff := Diff(s1, s2)
		require.NotNil(t, diff)

		bytes, err := json.Marshal(diff)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(bytes), `"index"`), "got: %s", bytes)
		assert.Contains(t, string(bytes), `"autoplay":false`)
	})

	t.Run("Direction As Text", func(t *testing.T) {
		diff := Diff(nil, &State{Count: 3, Index: 2, Direction: Backward, Epoch: 7})
		bytes, err := json.Marshal(diff)
		require.NoError(t, err)
		assert.Contains(t, string(bytes), `"direction":"backward"`)

		var back StateDiff
		require.NoError(t, json.Unmarshal(bytes, &back))
		require.NotNil(t, back.Direction)
		assert.Equal(t, Backward, *back.Direction)
	})
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 4, Wrap(-1, 5))
	assert.Equal(t, 0, Wrap(5, 5))
	assert.Equal(t, 3, Wrap(-7, 5))
	assert.Equal(t, 0, Wrap(12, 1))
}

func TestIndexError(t *testing.T) {
	var err error = &IndexError{Index: 7, Count: 5}
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, "invalid index: 7 not in [0, 5)", err.Error())
}

func ptr[T any](v T) *T {
	return &v
}
