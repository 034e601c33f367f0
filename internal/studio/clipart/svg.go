package clipart

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"garment-studio/internal/studio/scene"
)

// ============================================================
// XML Structures
// ============================================================

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Paths   []svgPath `xml:"path"`
	Groups  []svgG    `xml:"g"`
}

type svgG struct {
	Paths []svgPath `xml:"path"`
}

type svgPath struct {
	D string `xml:"d,attr"`
}

// Icon — разобранная иконка: контуры в координатах viewBox.
type Icon struct {
	Width  float64
	Height float64
	Paths  [][]scene.Point
}

// ============================================================
// Parser
// ============================================================

// ParseIcon разбирает SVG-разметку иконки в набор контуров.
func ParseIcon(markup string) (*Icon, error) {
	var doc svgDoc
	if err := xml.NewDecoder(strings.NewReader(markup)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	icon := &Icon{Width: 24, Height: 24}

	if doc.ViewBox != "" {
		parts := strings.Fields(strings.ReplaceAll(doc.ViewBox, ",", " "))
		if len(parts) == 4 {
			if w, err := strconv.ParseFloat(parts[2], 64); err == nil && w > 0 {
				icon.Width = w
			}
			if h, err := strconv.ParseFloat(parts[3], 64); err == nil && h > 0 {
				icon.Height = h
			}
		}
	}

	paths := doc.Paths
	for _, g := range doc.Groups {
		paths = append(paths, g.Paths...)
	}

	for _, p := range paths {
		points, err := ParsePath(p.D)
		if err != nil {
			continue
		}
		if len(points) >= 3 {
			icon.Paths = append(icon.Paths, points)
		}
	}

	if len(icon.Paths) == 0 {
		return nil, fmt.Errorf("no drawable paths in icon")
	}
	return icon, nil
}

// ============================================================
// Path Parser
// ============================================================

// сколько отрезков берём на одну кривую Безье
const curveSteps = 12

// ParsePath разворачивает SVG path в список точек. Команды
// M/L/H/V/Z берутся как есть, кривые C/Q спрямляются сегментами.
func ParsePath(d string) ([]scene.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var points []scene.Point
	var cur scene.Point
	var start scene.Point

	emit := func(p scene.Point) {
		cur = p
		points = append(points, p)
	}

	for _, seg := range splitCommands(d) {
		cmd := seg.cmd
		coords := parseCoords(seg.args)

		switch cmd {
		case 'M', 'm':
			for i := 0; i+1 < len(coords); i += 2 {
				p := scene.Point{X: coords[i], Y: coords[i+1]}
				if cmd == 'm' {
					p.X += cur.X
					p.Y += cur.Y
				}
				emit(p)
				if i == 0 {
					start = p
				}
			}

		case 'L', 'l':
			for i := 0; i+1 < len(coords); i += 2 {
				p := scene.Point{X: coords[i], Y: coords[i+1]}
				if cmd == 'l' {
					p.X += cur.X
					p.Y += cur.Y
				}
				emit(p)
			}

		case 'H', 'h':
			for _, v := range coords {
				p := scene.Point{X: v, Y: cur.Y}
				if cmd == 'h' {
					p.X = cur.X + v
				}
				emit(p)
			}

		case 'V', 'v':
			for _, v := range coords {
				p := scene.Point{X: cur.X, Y: v}
				if cmd == 'v' {
					p.Y = cur.Y + v
				}
				emit(p)
			}

		case 'C', 'c':
			for i := 0; i+5 < len(coords); i += 6 {
				c1 := scene.Point{X: coords[i], Y: coords[i+1]}
				c2 := scene.Point{X: coords[i+2], Y: coords[i+3]}
				to := scene.Point{X: coords[i+4], Y: coords[i+5]}
				if cmd == 'c' {
					c1.X += cur.X
					c1.Y += cur.Y
					c2.X += cur.X
					c2.Y += cur.Y
					to.X += cur.X
					to.Y += cur.Y
				}
				for _, p := range flattenCubic(cur, c1, c2, to) {
					emit(p)
				}
			}

		case 'Q', 'q':
			for i := 0; i+3 < len(coords); i += 4 {
				c1 := scene.Point{X: coords[i], Y: coords[i+1]}
				to := scene.Point{X: coords[i+2], Y: coords[i+3]}
				if cmd == 'q' {
					c1.X += cur.X
					c1.Y += cur.Y
					to.X += cur.X
					to.Y += cur.Y
				}
				for _, p := range flattenQuad(cur, c1, to) {
					emit(p)
				}
			}

		case 'Z', 'z':
			if len(points) > 0 {
				emit(start)
			}
		}
	}

	return points, nil
}

type command struct {
	cmd  byte
	args string
}

func splitCommands(d string) []command {
	var out []command
	var cmd byte
	argStart := -1

	flush := func(end int) {
		if cmd != 0 {
			out = append(out, command{cmd: cmd, args: d[argStart:end]})
		}
	}

	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') && c != 'e' && c != 'E' {
			flush(i)
			cmd = c
			argStart = i + 1
		}
	}
	flush(len(d))
	return out
}

func parseCoords(s string) []float64 {
	s = strings.ReplaceAll(s, ",", " ")
	// minus как разделитель: "10-5" это две координаты
	s = strings.ReplaceAll(s, "-", " -")
	s = strings.ReplaceAll(s, "e -", "e-")

	var coords []float64
	for _, part := range strings.Fields(s) {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}

func flattenCubic(p0, c1, c2, p1 scene.Point) []scene.Point {
	out := make([]scene.Point, 0, curveSteps)
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		out = append(out, scene.Point{
			X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X,
			Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y,
		})
	}
	return out
}

func flattenQuad(p0, c1, p1 scene.Point) []scene.Point {
	out := make([]scene.Point, 0, curveSteps)
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		out = append(out, scene.Point{
			X: u*u*p0.X + 2*u*t*c1.X + t*t*p1.X,
			Y: u*u*p0.Y + 2*u*t*c1.Y + t*t*p1.Y,
		})
	}
	return out
}
