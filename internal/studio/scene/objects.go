package scene

// ============================================================
// Drawable Objects
// ============================================================

type ObjectType string

const (
	TypeText    ObjectType = "text"
	TypeRect    ObjectType = "rect"
	TypeEllipse ObjectType = "ellipse"
	TypeImage   ObjectType = "image"
	TypeGroup   ObjectType = "group"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object — один редактируемый элемент сцены.
type Object struct {
	ID       string     `json:"id"`
	Type     ObjectType `json:"type"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width,omitempty"`
	Height   float64    `json:"height,omitempty"`
	ScaleX   float64    `json:"scaleX"`
	ScaleY   float64    `json:"scaleY"`
	Rotation float64    `json:"rotation,omitempty"` // degrees
	Fill     string     `json:"fill,omitempty"`     // #rrggbb

	// text
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	// image: data URL с байтами для отрисовки
	ImageData string `json:"imageData,omitempty"`

	// group: контуры векторной иконки, уже развёрнутые в точки
	Paths [][]Point `json:"paths,omitempty"`
}

// Patch — частичное обновление объекта; nil-поля не трогаются.
type Patch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	ScaleX   *float64 `json:"scaleX,omitempty"`
	ScaleY   *float64 `json:"scaleY,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Fill     *string  `json:"fill,omitempty"`
	Text     *string  `json:"text,omitempty"`
	FontSize *float64 `json:"fontSize,omitempty"`
}

// State — сериализуемый снимок сцены одного вида.
type State struct {
	Objects []Object `json:"objects"`
}

// Empty сообщает, есть ли в снимке хоть один объект.
func (s State) Empty() bool {
	return len(s.Objects) == 0
}

func cloneObject(o Object) Object {
	c := o
	if o.Paths != nil {
		c.Paths = make([][]Point, len(o.Paths))
		for i, p := range o.Paths {
			c.Paths[i] = append([]Point(nil), p...)
		}
	}
	return c
}

func cloneObjects(objs []Object) []Object {
	if objs == nil {
		return nil
	}
	out := make([]Object, len(objs))
	for i, o := range objs {
		out[i] = cloneObject(o)
	}
	return out
}
