package render

import (
	"math"
	"strings"
)

// Empty marks a raster slot not covered by any cell.
const Empty = -1

// Raster projects the board onto a grid of character slots, cellW×cellH per
// cell. Each slot holds the value of the topmost cell covering it, or Empty.
func Raster(b *Board, cellW, cellH int) [][]int {
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	w, h := b.size*cellW, b.size*cellH
	out := make([][]int, h)
	for y := range out {
		out[y] = make([]int, w)
		for x := range out[y] {
			out[y][x] = Empty
		}
	}

	pitch := b.pitch
	if pitch <= 0 {
		pitch = 1
	}
	for _, cell := range b.Cells() {
		ox := int(math.Round(cell.Pos.X / pitch * float64(cellW)))
		oy := int(math.Round(cell.Pos.Y / pitch * float64(cellH)))
		for dy := 0; dy < cellH; dy++ {
			for dx := 0; dx < cellW; dx++ {
				x, y := ox+dx, oy+dy
				if x >= 0 && x < w && y >= 0 && y < h {
					out[y][x] = int(cell.Value)
				}
			}
		}
	}
	return out
}

// ASCII draws the board with '#' for ones, '.' for zeros and ' ' for gaps.
func ASCII(b *Board, cellW, cellH int) string {
	var sb strings.Builder
	for _, row := range Raster(b, cellW, cellH) {
		for _, v := range row {
			switch v {
			case 1:
				sb.WriteByte('#')
			case 0:
				sb.WriteByte('.')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
