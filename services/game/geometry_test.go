package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLineKey(t *testing.T) {
	// Both dot orders must produce the identical canonical key.
	assert.Equal(t, "0,0-0,1", NormalizeLineKey(0, 0, 0, 1))
	assert.Equal(t, "0,0-0,1", NormalizeLineKey(0, 1, 0, 0))
	assert.Equal(t, "2,3-3,3", NormalizeLineKey(3, 3, 2, 3))
	assert.Equal(t, "2,3-3,3", NormalizeLineKey(2, 3, 3, 3))
}

func TestValidateLineKey(t *testing.T) {
	cases := []struct {
		key string
		ok  bool
	}{
		{"0,0-0,1", true},
		{"3,4-4,4", true},
		{"0,1-0,0", false}, // non-canonical order
		{"0,0-0,2", false}, // not adjacent
		{"0,0-1,1", false}, // diagonal
		{"0,4-0,5", false}, // out of bounds for 5
		{"-1,0-0,0", false},
		{"garbage", false},
		{"1,1", false},
	}
	for _, c := range cases {
		err := ValidateLineKey(c.key, 5)
		if c.ok {
			assert.NoError(t, err, c.key)
		} else {
			assert.Error(t, err, c.key)
		}
	}
}

func TestParseLineKey(t *testing.T) {
	r1, c1, r2, c2, err := ParseLineKey("1,2-1,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1, 3}, []int{r1, c1, r2, c2})

	_, _, _, _, err = ParseLineKey("1,2")
	assert.Error(t, err)
	_, _, _, _, err = ParseLineKey("a,b-c,d")
	assert.Error(t, err)
}

func TestSquareLineKeys(t *testing.T) {
	keys := SquareLineKeys(1, 2)
	assert.Equal(t, [4]string{"1,2-1,3", "2,2-2,3", "1,2-2,2", "1,3-2,3"}, keys)
}

func TestPotentialSquares(t *testing.T) {
	// Interior horizontal line touches two squares.
	assert.ElementsMatch(t, [][2]int{{0, 1}, {1, 1}}, PotentialSquares("1,1-1,2", 5))
	// Top edge touches only the square below it.
	assert.Equal(t, [][2]int{{0, 0}}, PotentialSquares("0,0-0,1", 5))
	// Bottom edge touches only the square above it.
	assert.Equal(t, [][2]int{{3, 0}}, PotentialSquares("4,0-4,1", 5))
	// Left edge vertical touches only the square to its right.
	assert.Equal(t, [][2]int{{2, 0}}, PotentialSquares("2,0-3,0", 5))
}

func TestIsSquareComplete(t *testing.T) {
	lines := map[string]Line{}
	squareKeys := SquareLineKeys(0, 0)
	for _, k := range squareKeys[:3] {
		lines[k] = Line{LineKey: k}
	}
	assert.False(t, IsSquareComplete(lines, 0, 0))

	last := squareKeys[3]
	lines[last] = Line{LineKey: last}
	assert.True(t, IsSquareComplete(lines, 0, 0))
}

func TestAllLineKeys(t *testing.T) {
	keys := AllLineKeys(5)
	// 2 * n * (n-1) edges on an n x n dot grid.
	assert.Len(t, keys, 40)
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		require.NoError(t, ValidateLineKey(k, 5))
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestWouldCompleteSquareAndSafeLines(t *testing.T) {
	st := &RoomState{GridSize: 5, Lines: map[string]Line{}}
	for _, k := range []string{"0,0-0,1", "1,0-1,1", "0,0-1,0"} {
		st.Lines[k] = Line{LineKey: k}
	}

	assert.True(t, WouldCompleteSquare(st.Lines, "0,1-1,1", 5))
	assert.False(t, WouldCompleteSquare(st.Lines, "2,2-2,3", 5))
	// Already drawn lines are never candidates.
	assert.False(t, WouldCompleteSquare(st.Lines, "0,0-0,1", 5))

	safe := SafeLines(st)
	assert.NotContains(t, safe, "0,1-1,1")
	assert.Contains(t, safe, "2,2-2,3")
	for _, k := range safe {
		assert.False(t, st.HasLine(k))
	}
	// 40 edges, 3 drawn, 1 unsafe.
	assert.Len(t, safe, 36)
}
