// Package geometry converts the annotation surface's bounding boxes into the
// stored coordinate representation.
package geometry

import (
	"math"

	"floormapper-backend/internal/models"
)

// Bounds is the raw bounding box emitted by the annotation surface, in
// source-image pixel space.
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// BoundsToCoordinates rounds each bound to 2 decimal places. Coordinates are
// captured once at draw time; everything downstream works with the rounded
// values so repeated exports stay byte-stable.
func BoundsToCoordinates(b Bounds) models.Coordinates {
	return models.Coordinates{
		MinX: round2(b.MinX),
		MinY: round2(b.MinY),
		MaxX: round2(b.MaxX),
		MaxY: round2(b.MaxY),
	}
}

// CoordinatesEqual reports field-wise equality. The reconciler uses it to
// detect whether an in-flight geometry edit actually changed anything.
func CoordinatesEqual(a, b models.Coordinates) bool {
	return a.MinX == b.MinX &&
		a.MinY == b.MinY &&
		a.MaxX == b.MaxX &&
		a.MaxY == b.MaxY
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
