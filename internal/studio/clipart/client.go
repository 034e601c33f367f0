package clipart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Icon Service Client
// ============================================================

// не просим у сервиса больше, чем показываем
const searchLimit = 50

const (
	defaultIconScale = 3 // иконки маленькие, ставим сразу крупнее
	defaultIconX     = 200
	defaultIconY     = 150
	defaultIconFill  = "#333333"
)

// Client ходит в внешний сервис поиска иконок.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Icons []string `json:"icons"`
}

// Search ищет иконки по запросу, не больше searchLimit результатов.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	u := fmt.Sprintf("%s/search?query=%s&limit=%d", c.baseURL, url.QueryEscape(query), searchLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search status %d", studioerr.ErrRemoteFetch, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}

	if len(body.Icons) == 0 {
		return nil, fmt.Errorf("%w: no icons for %q", studioerr.ErrRemoteFetch, query)
	}
	if len(body.Icons) > searchLimit {
		body.Icons = body.Icons[:searchLimit]
	}
	return body.Icons, nil
}

// Fetch забирает SVG-разметку иконки по идентификатору.
func (c *Client) Fetch(ctx context.Context, iconID string) (string, error) {
	u := fmt.Sprintf("%s/icon/%s.svg", c.baseURL, url.PathEscape(iconID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: icon status %d", studioerr.ErrRemoteFetch, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}
	return string(data), nil
}

// PlaceObject готовит объект сцены из иконки: все контуры одной
// группой, тройной масштаб, позиция по умолчанию. Ошибки загрузки
// наружу, сцена при них не меняется — объект просто не создаётся.
func (c *Client) PlaceObject(ctx context.Context, iconID string) (scene.Object, error) {
	markup, err := c.Fetch(ctx, iconID)
	if err != nil {
		return scene.Object{}, err
	}

	icon, err := ParseIcon(markup)
	if err != nil {
		return scene.Object{}, fmt.Errorf("%w: %v", studioerr.ErrRemoteFetch, err)
	}

	return scene.Object{
		Type:   scene.TypeGroup,
		X:      defaultIconX,
		Y:      defaultIconY,
		Width:  icon.Width,
		Height: icon.Height,
		ScaleX: defaultIconScale,
		ScaleY: defaultIconScale,
		Fill:   defaultIconFill,
		Paths:  icon.Paths,
	}, nil
}
