package scene

import (
	"github.com/google/uuid"

	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Scene
// ============================================================

// Scene — живой упорядоченный список объектов активного вида.
// Сцена не потокобезопасна: ею владеет сессия, которая и сериализует доступ.
type Scene struct {
	objects []Object
}

func New() *Scene {
	return &Scene{}
}

// Add добавляет объект в конец списка и возвращает его id.
func (s *Scene) Add(obj Object) string {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	if obj.ScaleX == 0 {
		obj.ScaleX = 1
	}
	if obj.ScaleY == 0 {
		obj.ScaleY = 1
	}
	s.objects = append(s.objects, cloneObject(obj))
	return obj.ID
}

// Remove удаляет объект по id.
func (s *Scene) Remove(id string) error {
	for i, o := range s.objects {
		if o.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return nil
		}
	}
	return studioerr.ErrObjectNotFound
}

// Update применяет частичное обновление. Перекраска групп
// из нескольких контуров запрещена.
func (s *Scene) Update(id string, p Patch) error {
	for i := range s.objects {
		o := &s.objects[i]
		if o.ID != id {
			continue
		}
		if p.Fill != nil && o.Type == TypeGroup && len(o.Paths) > 1 {
			return studioerr.ErrMultiPathFill
		}
		if p.X != nil {
			o.X = *p.X
		}
		if p.Y != nil {
			o.Y = *p.Y
		}
		if p.ScaleX != nil {
			o.ScaleX = *p.ScaleX
		}
		if p.ScaleY != nil {
			o.ScaleY = *p.ScaleY
		}
		if p.Rotation != nil {
			o.Rotation = *p.Rotation
		}
		if p.Fill != nil {
			o.Fill = *p.Fill
		}
		if p.Text != nil {
			o.Text = *p.Text
		}
		if p.FontSize != nil {
			o.FontSize = *p.FontSize
		}
		return nil
	}
	return studioerr.ErrObjectNotFound
}

// Object возвращает копию объекта по id.
func (s *Scene) Object(id string) (Object, error) {
	for _, o := range s.objects {
		if o.ID == id {
			return cloneObject(o), nil
		}
	}
	return Object{}, studioerr.ErrObjectNotFound
}

// Objects возвращает копию списка объектов в порядке отрисовки.
func (s *Scene) Objects() []Object {
	return cloneObjects(s.objects)
}

// Len — число объектов на сцене.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Snapshot снимает полную копию сцены для хранения по ключу вида.
func (s *Scene) Snapshot() State {
	return State{Objects: cloneObjects(s.objects)}
}

// Restore целиком заменяет сцену содержимым снимка.
// Пустой снимок очищает сцену, это не ошибка.
func (s *Scene) Restore(st State) {
	s.objects = cloneObjects(st.Objects)
}

// Clear убирает все объекты.
func (s *Scene) Clear() {
	s.objects = nil
}
