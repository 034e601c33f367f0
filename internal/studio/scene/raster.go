package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"garment-studio/internal/studio/ingest"
)

// ============================================================
// Rasterizer
// ============================================================

var (
	fontOnce sync.Once
	fontReg  *sfnt.Font
	fontErr  error
)

func regularFont() (*sfnt.Font, error) {
	fontOnce.Do(func() {
		fontReg, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontReg, fontErr
}

// CoverScale считает масштаб фона по принципу cover: берём больший
// из коэффициентов по осям, фон всегда накрывает холст целиком.
func CoverScale(canvasW, canvasH, imageW, imageH float64) float64 {
	if imageW <= 0 || imageH <= 0 {
		return 1
	}
	return math.Max(canvasW/imageW, canvasH/imageH)
}

// Rasterize отрисовывает фон (если он есть) и объекты сцены по порядку,
// возвращает JPEG с заданным качеством. Сцена при этом не меняется:
// фон не становится объектом и убирать его после экспорта не нужно.
func (s *Scene) Rasterize(width, height int, bg image.Image, quality int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	if bg != nil {
		drawCover(canvas, bg)
	}

	for _, obj := range s.objects {
		if err := drawObject(canvas, obj); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCover(canvas *image.RGBA, bg image.Image) {
	cw := float64(canvas.Bounds().Dx())
	ch := float64(canvas.Bounds().Dy())
	iw := float64(bg.Bounds().Dx())
	ih := float64(bg.Bounds().Dy())

	scale := CoverScale(cw, ch, iw, ih)
	tw := iw * scale
	th := ih * scale
	x0 := (cw - tw) / 2
	y0 := (ch - th) / 2

	dr := image.Rect(int(x0), int(y0), int(x0+tw), int(y0+th))
	xdraw.CatmullRom.Scale(canvas, dr, bg, bg.Bounds(), xdraw.Over, nil)
}

// ============================================================
// Object renderers
// ============================================================

func drawObject(canvas *image.RGBA, obj Object) error {
	switch obj.Type {
	case TypeRect:
		drawPolygons(canvas, obj, [][]Point{{
			{X: 0, Y: 0},
			{X: obj.Width, Y: 0},
			{X: obj.Width, Y: obj.Height},
			{X: 0, Y: obj.Height},
		}})
	case TypeEllipse:
		drawEllipse(canvas, obj)
	case TypeGroup:
		drawPolygons(canvas, obj, obj.Paths)
	case TypeText:
		return drawText(canvas, obj)
	case TypeImage:
		return drawImage(canvas, obj)
	default:
		return fmt.Errorf("unknown object type %q", obj.Type)
	}
	return nil
}

// transform переводит локальную точку объекта в координаты холста:
// масштаб, поворот вокруг центра, смещение.
func transform(obj Object, p Point) (float32, float32) {
	x := p.X * obj.ScaleX
	y := p.Y * obj.ScaleY

	if obj.Rotation != 0 {
		cx := obj.Width * obj.ScaleX / 2
		cy := obj.Height * obj.ScaleY / 2
		rad := obj.Rotation * math.Pi / 180
		sin, cos := math.Sincos(rad)
		dx := x - cx
		dy := y - cy
		x = cx + dx*cos - dy*sin
		y = cy + dx*sin + dy*cos
	}

	return float32(x + obj.X), float32(y + obj.Y)
}

func drawPolygons(canvas *image.RGBA, obj Object, paths [][]Point) {
	if len(paths) == 0 {
		return
	}

	r := vector.NewRasterizer(canvas.Bounds().Dx(), canvas.Bounds().Dy())
	r.DrawOp = stddraw.Over

	for _, path := range paths {
		if len(path) < 3 {
			continue
		}
		x, y := transform(obj, path[0])
		r.MoveTo(x, y)
		for _, p := range path[1:] {
			x, y = transform(obj, p)
			r.LineTo(x, y)
		}
		r.ClosePath()
	}

	r.Draw(canvas, canvas.Bounds(), image.NewUniform(parseFill(obj.Fill)), image.Point{})
}

func drawEllipse(canvas *image.RGBA, obj Object) {
	// Эллипс из четырёх кубических Безье.
	const kappa = 0.5522847498
	rx := obj.Width / 2
	ry := obj.Height / 2
	cx := rx
	cy := ry

	r := vector.NewRasterizer(canvas.Bounds().Dx(), canvas.Bounds().Dy())
	r.DrawOp = stddraw.Over

	moveTo := func(p Point) {
		x, y := transform(obj, p)
		r.MoveTo(x, y)
	}
	cubeTo := func(c1, c2, to Point) {
		x1, y1 := transform(obj, c1)
		x2, y2 := transform(obj, c2)
		x, y := transform(obj, to)
		r.CubeTo(x1, y1, x2, y2, x, y)
	}

	moveTo(Point{X: cx + rx, Y: cy})
	cubeTo(Point{X: cx + rx, Y: cy + ry*kappa}, Point{X: cx + rx*kappa, Y: cy + ry}, Point{X: cx, Y: cy + ry})
	cubeTo(Point{X: cx - rx*kappa, Y: cy + ry}, Point{X: cx - rx, Y: cy + ry*kappa}, Point{X: cx - rx, Y: cy})
	cubeTo(Point{X: cx - rx, Y: cy - ry*kappa}, Point{X: cx - rx*kappa, Y: cy - ry}, Point{X: cx, Y: cy - ry})
	cubeTo(Point{X: cx + rx*kappa, Y: cy - ry}, Point{X: cx + rx, Y: cy - ry*kappa}, Point{X: cx + rx, Y: cy})
	r.ClosePath()

	r.Draw(canvas, canvas.Bounds(), image.NewUniform(parseFill(obj.Fill)), image.Point{})
}

func drawText(canvas *image.RGBA, obj Object) error {
	if obj.Text == "" {
		return nil
	}

	f, err := regularFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	size := obj.FontSize
	if size <= 0 {
		size = 24
	}
	size *= obj.ScaleY

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	defer face.Close()

	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(parseFill(obj.Fill)),
		Face: face,
		Dot:  fixed.P(int(obj.X), int(obj.Y+size)),
	}
	d.DrawString(obj.Text)
	return nil
}

func drawImage(canvas *image.RGBA, obj Object) error {
	_, data, err := ingest.DecodeDataURL(obj.ImageData)
	if err != nil {
		return fmt.Errorf("object %s: %w", obj.ID, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("object %s: decode: %w", obj.ID, err)
	}

	tw := float64(img.Bounds().Dx()) * obj.ScaleX
	th := float64(img.Bounds().Dy()) * obj.ScaleY
	dr := image.Rect(int(obj.X), int(obj.Y), int(obj.X+tw), int(obj.Y+th))
	xdraw.ApproxBiLinear.Scale(canvas, dr, img, img.Bounds(), xdraw.Over, nil)
	return nil
}

// ============================================================
// Color helpers
// ============================================================

func parseFill(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{A: 0xff}
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
