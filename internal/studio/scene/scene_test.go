package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garment-studio/internal/studio/studioerr"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := New()
	s.Add(Object{Type: TypeText, Text: "Your Text", FontSize: 24, X: 10, Y: 20, Fill: "#112233"})
	s.Add(Object{Type: TypeRect, Width: 100, Height: 50, X: 5, Y: 5, Fill: "#ff0000", Rotation: 15})
	s.Add(Object{Type: TypeGroup, Paths: [][]Point{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}}, Fill: "#00ff00"})

	snap := s.Snapshot()

	other := New()
	other.Restore(snap)

	require.Equal(t, s.Objects(), other.Objects(), "restore must reproduce objects in order")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := New()
	id := s.Add(Object{Type: TypeGroup, Paths: [][]Point{{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 0}}}})

	snap := s.Snapshot()
	snap.Objects[0].Paths[0][0].X = 999

	objs := s.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, id, objs[0].ID)
	assert.Equal(t, 1.0, objs[0].Paths[0][0].X, "mutating a snapshot must not touch the live scene")
}

func TestRestoreEmptyClears(t *testing.T) {
	s := New()
	s.Add(Object{Type: TypeRect, Width: 10, Height: 10})
	require.Equal(t, 1, s.Len())

	s.Restore(State{})
	assert.Equal(t, 0, s.Len())
}

func TestUpdateAndRemove(t *testing.T) {
	s := New()
	id := s.Add(Object{Type: TypeText, Text: "hi", FontSize: 12})

	newText := "hello"
	x := 42.0
	require.NoError(t, s.Update(id, Patch{Text: &newText, X: &x}))

	objs := s.Objects()
	assert.Equal(t, "hello", objs[0].Text)
	assert.Equal(t, 42.0, objs[0].X)

	got, err := s.Object(id)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)

	require.NoError(t, s.Remove(id))
	assert.Equal(t, 0, s.Len())

	assert.ErrorIs(t, s.Remove(id), studioerr.ErrObjectNotFound)
	assert.ErrorIs(t, s.Update(id, Patch{}), studioerr.ErrObjectNotFound)
	_, err = s.Object(id)
	assert.ErrorIs(t, err, studioerr.ErrObjectNotFound)
}

func TestMultiPathFillRefused(t *testing.T) {
	s := New()
	tri := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}

	multi := s.Add(Object{Type: TypeGroup, Paths: [][]Point{tri, tri}})
	single := s.Add(Object{Type: TypeGroup, Paths: [][]Point{tri}})

	fill := "#ff0000"
	assert.ErrorIs(t, s.Update(multi, Patch{Fill: &fill}), studioerr.ErrMultiPathFill)
	assert.NoError(t, s.Update(single, Patch{Fill: &fill}))
}

func TestAddDefaultsScale(t *testing.T) {
	s := New()
	s.Add(Object{Type: TypeRect, Width: 10, Height: 10})

	obj := s.Objects()[0]
	assert.Equal(t, 1.0, obj.ScaleX)
	assert.Equal(t, 1.0, obj.ScaleY)
	assert.NotEmpty(t, obj.ID)
}
