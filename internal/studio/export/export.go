package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/session"
)

// ============================================================
// Background Loader
// ============================================================

// Loader достаёт фоновую картинку мокапа по её URL.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

type HTTPLoader struct {
	http *http.Client
}

func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{http: &http.Client{Timeout: 15 * time.Second}}
}

func (l *HTTPLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		_, data, err := ingest.DecodeDataURL(src)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("background status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// ============================================================
// Composite Exporter
// ============================================================

// Exporter собирает композиты: снимок вида поверх фона мокапа.
type Exporter struct {
	loader  Loader
	Width   int
	Height  int
	Quality int
}

func New(loader Loader) *Exporter {
	return &Exporter{
		loader:  loader,
		Width:   800,
		Height:  600,
		Quality: 80,
	}
}

// ExportView собирает композит одного вида. Вид без снимка даёт
// nil без ошибки — submit идёт дальше с теми видами, где есть дизайн.
// Вызывающий держит лок сессии.
func (e *Exporter) ExportView(ctx context.Context, sess *session.Session, v session.View) ([]byte, error) {
	st, ok := sess.SnapshotFor(v)
	if !ok {
		return nil, nil
	}

	sess.Scene().Restore(st)

	var bg image.Image
	if url := sess.Background(v); url != "" {
		img, err := e.loader.Load(ctx, url)
		if err != nil {
			// без фона композит всё равно полезен, рисуем сцену саму по себе
			log.Printf("[EXPORT] background %s for %s failed: %v", url, v, err)
		} else {
			bg = img
		}
	}

	return sess.Scene().Rasterize(e.Width, e.Height, bg, e.Quality)
}

// ExportAll прогоняет все виды по порядку и возвращает композиты
// только для видов со снимком. Активный вид после экспорта
// восстанавливается, чтобы редактирование продолжалось как было.
func (e *Exporter) ExportAll(ctx context.Context, sess *session.Session) (map[session.View][]byte, error) {
	sess.CommitActiveView()
	defer sess.RestoreActive()

	out := make(map[session.View][]byte)
	for _, v := range session.AllViews {
		data, err := e.ExportView(ctx, sess, v)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", v, err)
		}
		if data != nil {
			out[v] = data
		}
	}
	return out, nil
}
