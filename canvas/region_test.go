package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegion_Rect(t *testing.T) {
	r, err := NewRegion(2, 3, 5, 7, "rect")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Width())
	assert.Equal(t, 5, r.Height())
	assert.True(t, r.Masked(0, 0))
	assert.True(t, r.Masked(3, 4))
	assert.False(t, r.Masked(4, 0))
	assert.False(t, r.Masked(-1, 0))
}

func TestNewRegion_ReordersCorners(t *testing.T) {
	r, err := NewRegion(9, 9, 0, 0, "rect")
	require.NoError(t, err)
	assert.Equal(t, 0, r.X1)
	assert.Equal(t, 0, r.Y1)
	assert.Equal(t, 9, r.X2)
	assert.Equal(t, 9, r.Y2)
}

func TestNewRegion_UnknownShapeFallsBackToRect(t *testing.T) {
	r, err := NewRegion(0, 0, 4, 4, "blob")
	require.NoError(t, err)
	assert.Equal(t, "rect", r.Shape)
	assert.True(t, r.Masked(0, 0))
}

func TestNewRegion_EmptyShapeDefaultsToRect(t *testing.T) {
	r, err := NewRegion(0, 0, 4, 4, "")
	require.NoError(t, err)
	assert.Equal(t, "rect", r.Shape)
}

func TestNewRegion_Ellipse(t *testing.T) {
	r, err := NewRegion(0, 0, 20, 20, "ellipse")
	require.NoError(t, err)
	// center inside, corners outside
	assert.True(t, r.Masked(10, 10))
	assert.False(t, r.Masked(0, 0))
	assert.False(t, r.Masked(20, 20))
}

func TestNewRegion_Triangle(t *testing.T) {
	r, err := NewRegion(0, 0, 20, 20, "triangle")
	require.NoError(t, err)
	assert.True(t, r.Masked(10, 15))
	assert.False(t, r.Masked(0, 0))
	assert.False(t, r.Masked(20, 0))
}

func TestNewRegion_DiamondAndCross(t *testing.T) {
	d, err := NewRegion(0, 0, 20, 20, "diamond")
	require.NoError(t, err)
	assert.True(t, d.Masked(10, 10))
	assert.False(t, d.Masked(0, 0))

	c, err := NewRegion(0, 0, 20, 20, "cross")
	require.NoError(t, err)
	assert.True(t, c.Masked(10, 0))
	assert.True(t, c.Masked(0, 10))
	assert.False(t, c.Masked(0, 0))
}

func TestNewRegion_PolygonShapesCoverCenter(t *testing.T) {
	for _, shape := range []string{"pentagon", "hexagon", "star", "arrow"} {
		r, err := NewRegion(0, 0, 30, 30, shape)
		require.NoError(t, err)
		assert.Equal(t, shape, r.Shape)
		assert.True(t, r.Masked(14, 15), "center of %s", shape)
	}
}

func TestNewRegion_CustomPolygon(t *testing.T) {
	r, err := NewRegion(0, 0, 10, 10, "0|0-10|0-5|10")
	require.NoError(t, err)
	assert.Equal(t, "custom", r.Shape)
	assert.Len(t, r.Points, 3)
	assert.True(t, r.Masked(5, 2))
	assert.False(t, r.Masked(0, 10))
}

func TestNewRegion_CustomPolygonRelativeCoords(t *testing.T) {
	r, err := NewRegion(0, 0, 100, 100, "0.0|0.0-1.0|0.0-0.5|1.0")
	require.NoError(t, err)
	require.Len(t, r.Points, 3)
	assert.Equal(t, [2]int{101, 0}, r.Points[1])
	assert.Equal(t, [2]int{50, 101}, r.Points[2])
}

func TestNewRegion_CustomPolygonTooFewPoints(t *testing.T) {
	_, err := NewRegion(0, 0, 10, 10, "0|0-5|5")
	assert.Error(t, err)
}

func TestParseCustomPoints_SkipsBadPairs(t *testing.T) {
	pts, err := ParseCustomPoints("0|0-bad|pair-4|4-9|9", 10, 10)
	require.NoError(t, err)
	assert.Len(t, pts, 3)
}

func TestParseCustomPoints_AllBad(t *testing.T) {
	_, err := ParseCustomPoints("a|b-c|d", 10, 10)
	assert.Error(t, err)
}

func TestRegion_NegativeCoordinates(t *testing.T) {
	r, err := NewRegion(-5, -5, 4, 4, "rect")
	require.NoError(t, err)
	assert.Equal(t, 10, r.Width())
	assert.Equal(t, 10, r.Height())
	assert.True(t, r.Masked(0, 0))
}
