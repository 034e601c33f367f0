package session

import (
	"fmt"
	"sync"

	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/models"
	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Views
// ============================================================

type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
	ViewSide  View = "side"
)

// AllViews — порядок, в котором виды экспортируются при submit.
var AllViews = []View{ViewFront, ViewBack, ViewSide}

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewFront, ViewBack, ViewSide:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// ============================================================
// Session
// ============================================================

// Session — состояние одного сеанса конструктора: живая сцена,
// снимки по видам, выбранный продукт/цвет и список оригиналов.
//
// Session не лочится сам: обработчик берёт Lock на всю логическую
// операцию, чтобы перекрывающиеся действия пользователя выполнялись
// последовательно.
type Session struct {
	sync.Mutex

	Token string

	product   models.Product
	color     models.Color
	view      View
	scene     *scene.Scene
	snapshots map[View]scene.State
	originals []ingest.Original
}

func New(token string, product models.Product) *Session {
	s := &Session{
		Token:     token,
		scene:     scene.New(),
		snapshots: make(map[View]scene.State),
		view:      ViewFront,
	}
	s.setProduct(product)
	return s
}

func (s *Session) Scene() *scene.Scene     { return s.scene }
func (s *Session) View() View              { return s.view }
func (s *Session) Product() models.Product { return s.product }
func (s *Session) Color() models.Color     { return s.color }

// Background возвращает URL фоновой картинки вида для текущего цвета,
// пустая строка — вид недоступен.
func (s *Session) Background(v View) string {
	switch v {
	case ViewFront:
		return s.color.FrontImageURL
	case ViewBack:
		return s.color.BackImageURL
	case ViewSide:
		return s.color.SideImageURL
	}
	return ""
}

// SnapshotFor отдаёт сохранённый снимок вида, если он есть и непустой.
func (s *Session) SnapshotFor(v View) (scene.State, bool) {
	st, ok := s.snapshots[v]
	if !ok || st.Empty() {
		return scene.State{}, false
	}
	return st, true
}

// ============================================================
// Transitions
// ============================================================

// CommitActiveView сохраняет снимок активного вида. Единый шаг перед
// любым переходом: сменой вида, цвета и перед submit. Пустая сцена
// убирает снимок — на вид без объектов композит не делается.
func (s *Session) CommitActiveView() {
	if s.scene.Len() == 0 {
		delete(s.snapshots, s.view)
		return
	}
	s.snapshots[s.view] = s.scene.Snapshot()
}

// SwitchView переключает активный вид. Переход запрещён, если у
// текущего цвета нет фона для целевого вида; состояние при отказе
// не меняется.
func (s *Session) SwitchView(v View) error {
	if v == s.view {
		return nil
	}
	if s.Background(v) == "" {
		return studioerr.ErrViewUnavailable
	}

	s.CommitActiveView()
	s.view = v

	if st, ok := s.snapshots[v]; ok {
		s.scene.Restore(st)
	} else {
		s.scene.Clear()
	}
	return nil
}

// SwitchColor меняет цвет, сохранив снимок активного вида. Снимки
// других видов и живая сцена не трогаются: те же объекты, другой фон.
func (s *Session) SwitchColor(colorID string) error {
	for _, c := range s.product.Colors {
		if c.ID == colorID {
			s.CommitActiveView()
			s.color = c
			return nil
		}
	}
	return fmt.Errorf("color %q not in product %q", colorID, s.product.ID)
}

// SwitchProduct сбрасывает все снимки и сцену: дизайн делался под
// конкретную модель, на другую он не переносится.
func (s *Session) SwitchProduct(product models.Product) {
	s.setProduct(product)
}

func (s *Session) setProduct(product models.Product) {
	s.product = product
	s.snapshots = make(map[View]scene.State)
	s.scene.Clear()
	s.view = ViewFront
	if len(product.Colors) > 0 {
		s.color = product.Colors[0]
	} else {
		s.color = models.Color{}
	}
}

// RestoreActive возвращает в живую сцену снимок активного вида
// (или чистую сцену). Используется после экспорта композитов.
func (s *Session) RestoreActive() {
	if st, ok := s.snapshots[s.view]; ok {
		s.scene.Restore(st)
		return
	}
	s.scene.Clear()
}

// ============================================================
// Original assets
// ============================================================

// AddOriginal добавляет оригинал в конец списка; автоматически
// оригиналы не удаляются.
func (s *Session) AddOriginal(o ingest.Original) {
	s.originals = append(s.originals, o)
}

func (s *Session) Originals() []ingest.Original {
	return append([]ingest.Original(nil), s.originals...)
}
