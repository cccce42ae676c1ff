package export

import (
	"fmt"
	"strings"

	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/geometry"
	"github.com/mkarren/nbodies/internal/viz"
)

// braille dot-to-bit mapping, matching the canvas layout
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG renders a braille canvas as an SVG dot field, scale
// pixels per subpixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#e0e0e0">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
							cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ClusterToSVG renders a cluster snapshot: each body as a filled circle
// in its own color, its recorded trajectory as a polyline behind it.
// World coordinates map through the left-up transform onto a width by
// height image.
func ClusterToSVG(cluster *dynamics.Cluster, width, height int, scale float64) string {
	middle := geometry.Vector2{X: float64(width) / 2, Y: float64(height) / 2}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := 0; i < cluster.Count(); i++ {
		body := cluster.Body(i)
		color := svgColor(body.Shape.Color)

		sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-opacity=\"0.4\" stroke-width=\"1\" d=\"", color))
		for k := 0; k < dynamics.TrajectorySize; k++ {
			p := body.Shape.Center.PositionAt(k).LeftUp(middle, scale)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")

		c := body.Shape.Center.Position.LeftUp(middle, scale)
		r := body.Shape.Radius * scale
		if r < 1 {
			r = 1
		}
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n",
			c.X, c.Y, r, color))
	}

	if !cluster.IsEmpty() {
		b := cluster.Barycenter().Shape.Center.Position.LeftUp(middle, scale)
		sb.WriteString(fmt.Sprintf("<path stroke=\"#888888\" stroke-width=\"1\" d=\"M%.1f,%.1f h8 M%.1f,%.1f v8\"/>\n",
			b.X-4, b.Y, b.X, b.Y-4))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func svgColor(c dynamics.Color) string {
	clamp := func(v float32) int {
		n := int(v * 255)
		if n < 0 {
			return 0
		}
		if n > 255 {
			return 255
		}
		return n
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}
