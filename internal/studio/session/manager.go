package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"garment-studio/internal/studio/models"
)

// ============================================================
// Session Manager
// ============================================================

// Manager хранит активные сессии по токену. Сеанс живёт только в
// памяти: брошенная сессия истекает по TTL, ничего не сохраняется.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	seen     map[string]time.Time
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		seen:     make(map[string]time.Time),
		ttl:      ttl,
	}
}

// Create заводит сессию с новым токеном для выбранного продукта.
func (m *Manager) Create(product models.Product) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purge()

	token := uuid.NewString()
	s := New(token, product)
	m.sessions[token] = s
	m.seen[token] = time.Now()
	return s
}

// Get возвращает живую сессию и продлевает её.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purge()

	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	m.seen[token] = time.Now()
	return s, true
}

func (m *Manager) purge() {
	if m.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.ttl)
	for token, at := range m.seen {
		if at.Before(cutoff) {
			delete(m.sessions, token)
			delete(m.seen, token)
		}
	}
}
