package ingest

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garment-studio/internal/studio/studioerr"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessDownscalesLargeImage(t *testing.T) {
	data := encodePNG(t, 3000, 1500)

	res, err := Process("big.png", data, DefaultPolicy())
	require.NoError(t, err)

	assert.True(t, res.Resized)
	assert.Equal(t, 1024, res.Width)
	assert.Equal(t, 512, res.Height)
	assert.True(t, strings.HasPrefix(res.DisplayDataURL, "data:image/jpeg;base64,"))

	// сжатая копия реально декодируется и имеет новый размер
	_, raw, err := DecodeDataURL(res.DisplayDataURL)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy())
}

func TestProcessKeepsSmallImageVerbatim(t *testing.T) {
	data := encodePNG(t, 100, 100)
	require.Less(t, int64(len(data)), DefaultPolicy().KeepOriginalUnder)

	res, err := Process("small.png", data, DefaultPolicy())
	require.NoError(t, err)

	assert.False(t, res.Resized)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 100, res.Height)

	mime, raw, err := DecodeDataURL(res.Original.DataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, data, raw, "small originals pass through untouched")
}

func TestProcessRecompressesHeavyOriginal(t *testing.T) {
	policy := DefaultPolicy()
	policy.KeepOriginalUnder = 10 // любой файл считается тяжёлым

	data := encodePNG(t, 200, 200)
	res, err := Process("heavy.png", data, policy)
	require.NoError(t, err)

	assert.False(t, res.Resized)
	assert.True(t, strings.HasPrefix(res.DisplayDataURL, "data:image/jpeg;base64,"))
}

func TestProcessRejectsOversizeBeforeDecode(t *testing.T) {
	// 3MB мусора: декодирование упало бы, но до него не доходит
	data := make([]byte, 3<<20)

	_, err := Process("huge.bin", data, DefaultPolicy())
	assert.ErrorIs(t, err, studioerr.ErrFileTooLarge)
}

func TestProcessDecodeFailure(t *testing.T) {
	_, err := Process("junk.png", []byte("definitely not an image"), DefaultPolicy())
	assert.ErrorIs(t, err, studioerr.ErrDecode)
}

func TestFitDimensions(t *testing.T) {
	w, h := fitDimensions(3000, 1500, 1024)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)

	w, h = fitDimensions(1500, 3000, 1024)
	assert.Equal(t, 512, w)
	assert.Equal(t, 1024, h)
}

func TestDataURLRoundTrip(t *testing.T) {
	url := EncodeDataURL("image/png", []byte{1, 2, 3})
	mime, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, _, err = DecodeDataURL("http://example.com/a.png")
	assert.Error(t, err)
}
