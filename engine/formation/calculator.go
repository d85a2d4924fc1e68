// Package formation computes row-major unit formations and keeps the
// ephemeral preview markers shown while a formation is being dragged out.
package formation

import (
	"math"

	"github.com/1siamBot/rts-command/engine/geom"
)

// DefaultSpacing is used when the caller passes a spacing <= 0
const DefaultSpacing = 1.5

// Layout returns one world position per unit, arranged in rows of at most
// unitsPerRow units centered on center. Positions are in row-major fill order.
func Layout(center geom.Vec2, totalUnits, unitsPerRow int, spacing float64) []geom.Vec2 {
	offsets := Offsets(totalUnits, unitsPerRow, spacing)
	for i := range offsets {
		offsets[i] = center.Add(offsets[i])
	}
	return offsets
}

// Offsets is Layout relative to the formation center. The result can be
// reused against any later center.
func Offsets(totalUnits, unitsPerRow int, spacing float64) []geom.Vec2 {
	if totalUnits <= 0 || unitsPerRow <= 0 {
		return nil
	}
	if spacing <= 0 {
		spacing = DefaultSpacing
	}

	rows := (totalUnits + unitsPerRow - 1) / unitsPerRow
	rowsHeight := float64(rows-1) * spacing
	out := make([]geom.Vec2, 0, totalUnits)

	placed := 0
	for row := 0; row < rows; row++ {
		inRow := min(unitsPerRow, totalUnits-placed)
		rowWidth := float64(inRow-1) * spacing
		y := float64(row)*spacing - rowsHeight/2
		for col := 0; col < inRow; col++ {
			out = append(out, geom.Vec2{X: float64(col)*spacing - rowWidth/2, Y: y})
			placed++
		}
	}
	return out
}

// UnitsPerRow splits count units into the given number of lines
func UnitsPerRow(count, lines int) int {
	if count <= 0 || lines <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(lines)))
}
