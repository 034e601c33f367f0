package clipart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <path d="M2 2 L22 2 L22 22 L2 22 Z"/>
  <path d="M6 6 L18 6 L12 18 Z"/>
</svg>`

func TestParseIcon(t *testing.T) {
	icon, err := ParseIcon(sampleIcon)
	require.NoError(t, err)

	assert.Equal(t, 24.0, icon.Width)
	assert.Equal(t, 24.0, icon.Height)
	require.Len(t, icon.Paths, 2)

	// первый контур замкнут обратно в стартовую точку
	first := icon.Paths[0]
	assert.Equal(t, first[0], first[len(first)-1])
}

func TestParseIconGroupedPaths(t *testing.T) {
	markup := `<svg viewBox="0 0 16 16"><g><path d="M0 0 L16 0 L8 16 Z"/></g></svg>`
	icon, err := ParseIcon(markup)
	require.NoError(t, err)
	assert.Len(t, icon.Paths, 1)
	assert.Equal(t, 16.0, icon.Width)
}

func TestParseIconNoPaths(t *testing.T) {
	_, err := ParseIcon(`<svg viewBox="0 0 24 24"></svg>`)
	assert.Error(t, err)
}

func TestParseIconBadXML(t *testing.T) {
	_, err := ParseIcon(`{"not": "svg"}`)
	assert.Error(t, err)
}

func TestParsePathCommands(t *testing.T) {
	points, err := ParsePath("M0 0 L10 0 H10 V10 l-10 0 Z")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(points), 5)
	assert.Equal(t, 0.0, points[0].X)
	assert.Equal(t, 10.0, points[1].X)
	// Z возвращает в начало
	assert.Equal(t, points[0], points[len(points)-1])
}

func TestParsePathNegativeSeparators(t *testing.T) {
	// минус без пробела — обычное дело в сжатых иконках
	points, err := ParsePath("M10-5L-3-4Z")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(points), 2)
	assert.Equal(t, 10.0, points[0].X)
	assert.Equal(t, -5.0, points[0].Y)
	assert.Equal(t, -3.0, points[1].X)
	assert.Equal(t, -4.0, points[1].Y)
}

func TestParsePathFlattensCurves(t *testing.T) {
	points, err := ParsePath("M0 0 C0 10 10 10 10 0")
	require.NoError(t, err)

	// кривая спрямляется сегментами, конец точный
	assert.Equal(t, curveSteps+1, len(points))
	last := points[len(points)-1]
	assert.InDelta(t, 10.0, last.X, 1e-9)
	assert.InDelta(t, 0.0, last.Y, 1e-9)
}

func TestParsePathEmpty(t *testing.T) {
	_, err := ParsePath("   ")
	assert.Error(t, err)
}
