package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid geometry. Dots are addressed (row, col) with 0 <= row, col < gridSize.
// A line connects two dots that differ by exactly 1 in exactly one axis.
// A square is addressed by its top-left dot.

// NormalizeLineKey encodes the edge between two adjacent dots with the
// row-major smaller dot first, so any two callers computing the key for the
// same edge get an identical string.
func NormalizeLineKey(r1, c1, r2, c2 int) string {
	if r1 < r2 || (r1 == r2 && c1 < c2) {
		return fmt.Sprintf("%d,%d-%d,%d", r1, c1, r2, c2)
	}
	return fmt.Sprintf("%d,%d-%d,%d", r2, c2, r1, c1)
}

// SquareKey encodes a unit cell by its top-left dot.
func SquareKey(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}

// ParseSquareKey is the inverse of SquareKey.
func ParseSquareKey(key string) (row, col int, err error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed square key %q", key)
	}
	row, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed square key %q", key)
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed square key %q", key)
	}
	return row, col, nil
}

// ParseLineKey decodes a wire line key back into its two dots. It does not
// check adjacency or bounds; see ValidateLineKey.
func ParseLineKey(key string) (r1, c1, r2, c2 int, err error) {
	dots := strings.Split(key, "-")
	if len(dots) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("malformed line key %q", key)
	}
	r1, c1, err = ParseSquareKey(dots[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("malformed line key %q", key)
	}
	r2, c2, err = ParseSquareKey(dots[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("malformed line key %q", key)
	}
	return r1, c1, r2, c2, nil
}

// ValidateLineKey checks that key is the canonical encoding of a real grid
// edge: in bounds, adjacent dots, smaller dot first.
func ValidateLineKey(key string, gridSize int) error {
	r1, c1, r2, c2, err := ParseLineKey(key)
	if err != nil {
		return err
	}
	for _, v := range []int{r1, c1, r2, c2} {
		if v < 0 || v >= gridSize {
			return fmt.Errorf("line key %q out of bounds for grid size %d", key, gridSize)
		}
	}
	dr, dc := r2-r1, c2-c1
	horizontal := dr == 0 && dc == 1
	vertical := dc == 0 && dr == 1
	if !horizontal && !vertical {
		return fmt.Errorf("line key %q does not connect adjacent dots", key)
	}
	return nil
}

// SquareLineKeys returns the 4 bounding line keys (top, bottom, left, right)
// for the square at (row, col).
func SquareLineKeys(row, col int) [4]string {
	return [4]string{
		NormalizeLineKey(row, col, row, col+1),     // top
		NormalizeLineKey(row+1, col, row+1, col+1), // bottom
		NormalizeLineKey(row, col, row+1, col),     // left
		NormalizeLineKey(row, col+1, row+1, col+1), // right
	}
}

// IsSquareComplete reports whether all 4 bounding lines of the square at
// (row, col) are present. Pure query.
func IsSquareComplete(lines map[string]Line, row, col int) bool {
	for _, k := range SquareLineKeys(row, col) {
		if _, ok := lines[k]; !ok {
			return false
		}
	}
	return true
}

// PotentialSquares returns the 1 or 2 square coordinates a newly drawn line
// could complete, clipped to grid bounds. This bounds completion checking to
// O(1) instead of scanning the board.
func PotentialSquares(lineKey string, gridSize int) [][2]int {
	r1, c1, r2, c2, err := ParseLineKey(lineKey)
	if err != nil {
		return nil
	}
	var out [][2]int
	if r1 == r2 {
		// Horizontal line: squares above and below.
		col := min(c1, c2)
		if r1 > 0 {
			out = append(out, [2]int{r1 - 1, col})
		}
		if r1 < gridSize-1 {
			out = append(out, [2]int{r1, col})
		}
	} else {
		// Vertical line: squares left and right.
		row := min(r1, r2)
		if c1 > 0 {
			out = append(out, [2]int{row, c1 - 1})
		}
		if c1 < gridSize-1 {
			out = append(out, [2]int{row, c1})
		}
	}
	return out
}

// AllLineKeys enumerates every edge of the grid in canonical form.
func AllLineKeys(gridSize int) []string {
	keys := make([]string, 0, 2*gridSize*(gridSize-1))
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			if c < gridSize-1 {
				keys = append(keys, NormalizeLineKey(r, c, r, c+1))
			}
			if r < gridSize-1 {
				keys = append(keys, NormalizeLineKey(r, c, r+1, c))
			}
		}
	}
	return keys
}

// WouldCompleteSquare reports whether hypothetically adding lineKey would
// finish any square, given the lines already drawn.
func WouldCompleteSquare(lines map[string]Line, lineKey string, gridSize int) bool {
	if _, ok := lines[lineKey]; ok {
		return false
	}
	for _, sq := range PotentialSquares(lineKey, gridSize) {
		missing := 0
		for _, k := range SquareLineKeys(sq[0], sq[1]) {
			if k == lineKey {
				continue
			}
			if _, ok := lines[k]; !ok {
				missing++
			}
		}
		if missing == 0 {
			return true
		}
	}
	return false
}

// SafeLines returns every undrawn edge that would complete no square. This is
// the shared populate-selection computation: clients pick from it, and local
// mode reuses it directly.
func SafeLines(st *RoomState) []string {
	var safe []string
	for _, key := range AllLineKeys(st.GridSize) {
		if st.HasLine(key) {
			continue
		}
		if !WouldCompleteSquare(st.Lines, key, st.GridSize) {
			safe = append(safe, key)
		}
	}
	return safe
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
