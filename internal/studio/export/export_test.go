package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garment-studio/internal/studio/models"
	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/session"
)

type stubLoader struct {
	calls []string
	fail  bool
}

func (l *stubLoader) Load(ctx context.Context, url string) (image.Image, error) {
	l.calls = append(l.calls, url)
	if l.fail {
		return nil, fmt.Errorf("boom")
	}
	return image.NewRGBA(image.Rect(0, 0, 40, 30)), nil
}

func testSession() *session.Session {
	return session.New("tok", models.Product{
		ID: "tee",
		Colors: []models.Color{{
			ID: "white", Hex: "#ffffff",
			FrontImageURL: "/m/front.png",
			BackImageURL:  "/m/back.png",
		}},
	})
}

func newExporter(loader Loader) *Exporter {
	e := New(loader)
	e.Width = 80
	e.Height = 60
	return e
}

func TestExportViewWithoutSnapshot(t *testing.T) {
	e := newExporter(&stubLoader{})
	sess := testSession()

	data, err := e.ExportView(context.Background(), sess, session.ViewBack)
	require.NoError(t, err)
	assert.Nil(t, data, "a view without a snapshot yields no image")
}

func TestExportAllOnlyPopulatedViews(t *testing.T) {
	loader := &stubLoader{}
	e := newExporter(loader)
	sess := testSession()

	sess.Scene().Add(scene.Object{Type: scene.TypeText, Text: "Your Text", FontSize: 20, Fill: "#000000"})

	out, err := e.ExportAll(context.Background(), sess)
	require.NoError(t, err)

	require.Len(t, out, 1)
	front, ok := out[session.ViewFront]
	require.True(t, ok)

	img, err := jpeg.Decode(bytes.NewReader(front))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())

	assert.Equal(t, []string{"/m/front.png"}, loader.calls)
}

func TestExportAllRestoresActiveView(t *testing.T) {
	e := newExporter(&stubLoader{})
	sess := testSession()

	sess.Scene().Add(scene.Object{Type: scene.TypeText, Text: "front", FontSize: 20})
	require.NoError(t, sess.SwitchView(session.ViewBack))
	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#ff0000"})

	_, err := e.ExportAll(context.Background(), sess)
	require.NoError(t, err)

	// редактирование продолжается там же, где остановилось
	assert.Equal(t, session.ViewBack, sess.View())
	objs := sess.Scene().Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, scene.TypeRect, objs[0].Type)
}

func TestExportFallsBackWhenBackgroundFails(t *testing.T) {
	e := newExporter(&stubLoader{fail: true})
	sess := testSession()

	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#00ff00"})

	out, err := e.ExportAll(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, out, 1, "scene alone is still exported when the background fails")
}
