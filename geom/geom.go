// Package geom provides the 3D point, axis-aligned bounding box, and
// L-infinity distance primitives shared by the spatial-sort tree engines.
package geom

import "math"

// Point is a point in 3-space.
type Point struct {
	X, Y, Z float64
}

// BoundingBox is an axis-aligned box described by its min and max corners.
// Callers must maintain Max.X > Min.X (and likewise for Y, Z) whenever the
// box is used as a hash domain; see spatialerr.Check call sites in
// spatialhash for the enforced precondition.
type BoundingBox struct {
	Min, Max Point
}

// distanceFromInterval returns how far x lies outside [a, b], or 0 if x is
// inside the interval.
func distanceFromInterval(a, b, x float64) float64 {
	dist := 0.0
	dist = math.Max(dist, math.Max(0, a-x))
	dist = math.Max(dist, math.Max(0, x-b))
	return dist
}

// distanceFromEdgesOfInterval returns the distance from x to the nearer of
// the interval's two endpoints, regardless of whether x lies inside or
// outside the interval.
func distanceFromEdgesOfInterval(a, b, x float64) float64 {
	return math.Min(math.Abs(a-x), math.Abs(b-x))
}

// LInfinity returns the Chebyshev distance of point from the surface of
// bbox: 0 if point lies inside (or on) bbox, otherwise the largest
// per-axis overshoot.
func LInfinity(bbox BoundingBox, point Point) float64 {
	dist := 0.0
	dist = math.Max(dist, distanceFromInterval(bbox.Min.X, bbox.Max.X, point.X))
	dist = math.Max(dist, distanceFromInterval(bbox.Min.Y, bbox.Max.Y, point.Y))
	dist = math.Max(dist, distanceFromInterval(bbox.Min.Z, bbox.Max.Z, point.Z))
	return dist
}

// LInfinityPoints returns the Chebyshev distance between two points.
func LInfinityPoints(p0, p1 Point) float64 {
	dist := 0.0
	dist = math.Max(dist, math.Abs(p0.X-p1.X))
	dist = math.Max(dist, math.Abs(p0.Y-p1.Y))
	dist = math.Max(dist, math.Abs(p0.Z-p1.Z))
	return dist
}

// DistanceFromBoundary returns the distance from point to the nearest face
// of bbox, taking the minimum over all six faces. Used by the tree query
// fast path to decide whether a point is "comfortably interior" to a child
// box by more than eps.
func DistanceFromBoundary(bbox BoundingBox, point Point) float64 {
	dist := math.MaxFloat64
	dist = math.Min(dist, distanceFromEdgesOfInterval(bbox.Min.X, bbox.Max.X, point.X))
	dist = math.Min(dist, distanceFromEdgesOfInterval(bbox.Min.Y, bbox.Max.Y, point.Y))
	dist = math.Min(dist, distanceFromEdgesOfInterval(bbox.Min.Z, bbox.Max.Z, point.Z))
	return dist
}

// ChildBox splits bbox at each axis midpoint and returns the half selected
// by octant's low 3 bits (bit 0 -> x, bit 1 -> y, bit 2 -> z).
func ChildBox(bbox BoundingBox, octant int) BoundingBox {
	lx := 0.5 * (bbox.Max.X - bbox.Min.X)
	ly := 0.5 * (bbox.Max.Y - bbox.Min.Y)
	lz := 0.5 * (bbox.Max.Z - bbox.Min.Z)

	i := 0.0
	if octant&(1<<0) != 0 {
		i = 1
	}
	j := 0.0
	if octant&(1<<1) != 0 {
		j = 1
	}
	k := 0.0
	if octant&(1<<2) != 0 {
		k = 1
	}

	return BoundingBox{
		Min: Point{bbox.Min.X + i*lx, bbox.Min.Y + j*ly, bbox.Min.Z + k*lz},
		Max: Point{bbox.Min.X + (i+1)*lx, bbox.Min.Y + (j+1)*ly, bbox.Min.Z + (k+1)*lz},
	}
}

// WideChildBox splits bbox into an (8, 8, 4) grid along (x, y, z) and
// returns the cell addressed by (a, b, c).
func WideChildBox(bbox BoundingBox, a, b, c int) BoundingBox {
	dx := (bbox.Max.X - bbox.Min.X) / 8
	dy := (bbox.Max.Y - bbox.Min.Y) / 8
	dz := (bbox.Max.Z - bbox.Min.Z) / 4
	return BoundingBox{
		Min: Point{
			bbox.Min.X + float64(a)*dx,
			bbox.Min.Y + float64(b)*dy,
			bbox.Min.Z + float64(c)*dz,
		},
		Max: Point{
			bbox.Min.X + float64(a+1)*dx,
			bbox.Min.Y + float64(b+1)*dy,
			bbox.Min.Z + float64(c+1)*dz,
		},
	}
}
