package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/rocketsim/internal/dynamics"
)

// FlightProfileSVG renders the ascent profile (downrange distance against
// altitude) as a standalone SVG document.
func FlightProfileSVG(trajectory []dynamics.State, width, height int) string {
	points := make([][2]float64, 0, len(trajectory))
	for _, s := range trajectory {
		points = append(points, [2]float64{math.Hypot(s.Pos.X, s.Pos.Y), s.Altitude()})
	}
	return polylineSVG(points, width, height, "#00ff88")
}

// AltitudeSVG renders altitude against time as a standalone SVG document.
func AltitudeSVG(trajectory []dynamics.State, width, height int) string {
	points := make([][2]float64, 0, len(trajectory))
	for _, s := range trajectory {
		points = append(points, [2]float64{s.Time, s.Altitude()})
	}
	return polylineSVG(points, width, height, "#00ccff")
}

// WriteProfileSVGFile writes the ascent-profile SVG to path.
func WriteProfileSVGFile(path string, trajectory []dynamics.State, width, height int) error {
	return os.WriteFile(path, []byte(FlightProfileSVG(trajectory, width, height)), 0644)
}

func polylineSVG(points [][2]float64, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
