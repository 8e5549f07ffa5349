package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	minneapolis = Point{Lat: 44.9778, Lng: -93.2650}
	saintPaul   = Point{Lat: 44.9537, Lng: -93.0900}
	duluth      = Point{Lat: 46.7867, Lng: -92.1005}
)

func TestHaversineMiles(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineMiles(minneapolis, minneapolis))
	})

	t.Run("twin cities are under ten miles apart", func(t *testing.T) {
		d := HaversineMiles(minneapolis, saintPaul)
		assert.InDelta(t, 8.6, d, 0.3)
	})

	t.Run("duluth is far outside a metro radius", func(t *testing.T) {
		d := HaversineMiles(minneapolis, duluth)
		assert.InDelta(t, 135, d, 5)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		assert.InDelta(t, HaversineMiles(minneapolis, duluth), HaversineMiles(duluth, minneapolis), 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := HaversineMiles(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})
		assert.InDelta(t, EarthRadiusMiles*math.Pi/180, d, 1e-9)
	})
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.False(t, ValidCoordinates(90.0001, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
}
