package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"garment-studio/internal/studio/models"
)

// ============================================================
// Catalogue Client
// ============================================================

// справочник меняется редко, держим его немного в кэше
const cacheTTL = time.Minute

// Client достаёт кастомизируемые продукты из каталога.
type Client struct {
	baseURL string
	http    *http.Client

	mu       sync.Mutex
	cached   []models.Product
	cachedAt time.Time
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CustomizableProducts возвращает продукты с цветами и тканями.
func (c *Client) CustomizableProducts(ctx context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.cachedAt) < cacheTTL {
		return c.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/customizable", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}

	c.cached = products
	c.cachedAt = time.Now()
	return products, nil
}

// Product ищет продукт по id среди кастомизируемых.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	products, err := c.CustomizableProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %q not found", id)
}
