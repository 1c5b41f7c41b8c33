// Package export writes board frames as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gridperm/internal/render"
)

// Style sets the SVG colours.
type Style struct {
	Background string
	One        string
	Zero       string
	Stroke     string
}

var DefaultStyle = Style{
	Background: "#0a0a0a",
	One:        "#00ff88",
	Zero:       "#1a1a1a",
	Stroke:     "#444466",
}

// BoardToSVG draws cells at their current positions. size and pitch give
// the board extent; cellSize is the drawn square, so pitch-cellSize is the
// gap between cells. Zeros are drawn first so moving ones stay on top.
func BoardToSVG(cells []render.Cell, size int, pitch, cellSize float64, style Style) string {
	if size <= 0 || pitch <= 0 {
		return ""
	}
	if cellSize <= 0 || cellSize > pitch {
		cellSize = pitch
	}
	extent := float64(size) * pitch

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="%s" stroke-width="1">
`, extent, extent, extent, extent, style.Background, style.Stroke)

	for _, c := range cells {
		fill := style.Zero
		if c.Value == 1 {
			fill = style.One
		}
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" data-cell="%d,%d"/>
`, c.Pos.X, c.Pos.Y, cellSize, cellSize, fill, c.Row, c.Col)
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
