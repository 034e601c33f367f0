package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Upload Policy
// ============================================================

// Policy — настройки приёма картинок. Порог замены оригинала сжатой
// копией — продуктовое решение, поэтому вынесен в конфигурацию.
type Policy struct {
	MaxUploadBytes    int64 // жёсткий потолок размера файла
	MaxDimension      int   // большая сторона после даунскейла
	Quality           int   // качество JPEG для сжатой копии
	KeepOriginalUnder int64 // оригинал меньше порога отдаём как есть
	InitialScale      float64
}

func DefaultPolicy() Policy {
	return Policy{
		MaxUploadBytes:    2 << 20,
		MaxDimension:      1024,
		Quality:           70,
		KeepOriginalUnder: 500 * 1024,
		InitialScale:      0.7,
	}
}

// ============================================================
// Ingest
// ============================================================

// Original — загруженный файл в том виде, в каком он уйдёт при submit.
type Original struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
	Size    int    `json:"size"`
}

type Result struct {
	DisplayDataURL string
	Original       Original
	Width          int
	Height         int
	Resized        bool
	InitialScale   float64
}

// Process проверяет лимит размера до декодирования, ужимает картинку
// до MaxDimension по большей стороне и решает по Policy, какие байты
// пойдут на сцену и в список оригиналов.
func Process(name string, data []byte, p Policy) (*Result, error) {
	if int64(len(data)) > p.MaxUploadBytes {
		return nil, studioerr.ErrFileTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", studioerr.ErrDecode, err)
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	resized := false
	if w > p.MaxDimension || h > p.MaxDimension {
		w, h = fitDimensions(w, h, p.MaxDimension)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
		resized = true
	}

	display := data
	mime := "image/" + format

	if resized || int64(len(data)) > p.KeepOriginalUnder {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
			return nil, fmt.Errorf("recompress: %w", err)
		}
		display = buf.Bytes()
		mime = "image/jpeg"
	}

	url := EncodeDataURL(mime, display)

	return &Result{
		DisplayDataURL: url,
		Original: Original{
			Name:    name,
			DataURL: url,
			Size:    len(display),
		},
		Width:        w,
		Height:       h,
		Resized:      resized,
		InitialScale: p.InitialScale,
	}, nil
}

// fitDimensions пропорционально ужимает размеры так, чтобы большая
// сторона стала ровно max.
func fitDimensions(w, h, max int) (int, int) {
	if w >= h {
		return max, int(float64(h) * float64(max) / float64(w))
	}
	return int(float64(w) * float64(max) / float64(h)), max
}

// ============================================================
// Data URLs
// ============================================================

func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL разбирает data URL на mime-тип и байты.
func DecodeDataURL(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return "", nil, fmt.Errorf("not a data url")
	}
	rest := s[len("data:"):]

	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("unsupported data url encoding")
	}

	mime := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mime, data, nil
}
