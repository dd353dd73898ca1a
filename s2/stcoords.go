package s2

import (
	"math"

	"github.com/gosphere/geo/r3"
)

// This file implements the mappings between the (s,t) cell-space
// coordinates of a face, the (u,v) cube-space coordinates obtained after
// projection, and the (x,y,z) Cartesian coordinates of the corresponding
// point on the unit sphere. The cube has six faces, numbered so that the
// Hilbert curves on consecutive faces join into a single continuous curve
// over the entire cube surface.

// projection selects the nonlinear transform between the (s,t) coordinates
// of a cell and the (u,v) coordinates of its projection onto a cube face.
// The transforms trade uniformity of cell size on the sphere against
// conversion cost.
type projection int

const (
	// linearProjection gives the fastest conversion but the least uniform
	// cell sizes; the largest leaf cells are about 5.2x larger than the
	// smallest.
	linearProjection projection = iota

	// tanProjection gives the most uniform cell sizes (ratio about 1.4)
	// but conversion is about 3x slower than quadraticProjection.
	tanProjection

	// quadraticProjection is a good compromise: nearly as fast as
	// linearProjection with a worst-case leaf cell ratio of about 2.1.
	// It is the transform used by stToUV and uvToST.
	quadraticProjection
)

// stToUV converts an s or t value in [0,1] to the corresponding u or v
// value in [-1,1] using the quadratic transform. All metric constants in
// metric.go assume this transform.
func stToUV(s float64) float64 {
	if s >= 0.5 {
		return (1 / 3.) * (4*s*s - 1)
	}
	return (1 / 3.) * (1 - 4*(1-s)*(1-s))
}

// uvToST is the inverse of stToUV.
func uvToST(u float64) float64 {
	if u >= 0 {
		return 0.5 * math.Sqrt(1+3*u)
	}
	return 1 - 0.5*math.Sqrt(1-3*u)
}

func stToUVLinear(s float64) float64 { return 2*s - 1 }
func uvToSTLinear(u float64) float64 { return 0.5 * (u + 1) }

func stToUVTan(s float64) float64 {
	// Unfortunately, tan(M_PI_4) is slightly less than 1.0. This is not
	// due to a flaw in the implementation of tan(), it is because the
	// derivative of tan(x) at x=pi/4 is 2, and it happens that the two
	// adjacent floating point numbers on either side of the
	// infinite-precision value of pi/4 have tangents that are slightly
	// below and slightly above 1.0 when rounded to the nearest double.
	// The result is that the interval [-1,1] is not exactly covered, so
	// we expand the result slightly (by one part in 2^53) to compensate.
	u := math.Tan(M_PI_2*s - M_PI_4)
	return u + (1.0/(1<<53))*u
}

func uvToSTTan(u float64) float64 {
	return (2 * M_1_PI) * (math.Atan(u) + M_PI_4)
}

// stToUVByProjection converts with an explicitly chosen transform. The
// three transforms are interchangeable as long as encode and decode agree
// on the choice.
func stToUVByProjection(p projection, s float64) float64 {
	switch p {
	case linearProjection:
		return stToUVLinear(s)
	case tanProjection:
		return stToUVTan(s)
	default:
		return stToUV(s)
	}
}

// uvToSTByProjection is the inverse of stToUVByProjection.
func uvToSTByProjection(p projection, u float64) float64 {
	switch p {
	case linearProjection:
		return uvToSTLinear(u)
	case tanProjection:
		return uvToSTTan(u)
	default:
		return uvToST(u)
	}
}

const (
	// maxSiTi is the maximum value of an si- or ti-coordinate. The (si,ti)
	// grid is twice as fine as the (i,j) leaf grid so that cell centers at
	// every level have exact integer coordinates.
	maxSiTi = maxSize << 1
)

// siTiToST converts an si- or ti-value to the corresponding s- or t-value.
// Values above the valid range are capped at 1.0.
func siTiToST(si uint32) float64 {
	if si > maxSiTi {
		return 1.0
	}
	return float64(si) / float64(maxSiTi)
}

// stToSiTi converts an s- or t-value to the nearest si- or ti-coordinate.
// The result may be outside the range of valid (si,ti) values. Note that
// the float64 just below 0.5, math.Nextafter(0.5, 0), rounds up here even
// though it is nearer to the si value below; this rounding is relied on by
// every implementation of the encoding scheme and must not be corrected.
// Negative inputs wrap through two's-complement conversion; inputs above 1
// clamp to maxSiTi.
func stToSiTi(s float64) uint32 {
	if s < 0 {
		return uint32(int64(s*maxSiTi - 0.5))
	}
	return uint32(math.Min(s*maxSiTi+0.5, maxSiTi))
}

// face returns the face containing the given direction vector; for points
// on face boundaries the result is arbitrary but deterministic, following
// the largest-magnitude component with negative directions offset by 3.
func face(r r3.Vector) int {
	f := r.LargestComponent()
	switch {
	case f == r3.XAxis && r.X < 0:
		f += 3
	case f == r3.YAxis && r.Y < 0:
		f += 3
	case f == r3.ZAxis && r.Z < 0:
		f += 3
	}
	return int(f)
}

// faceUVToXYZ turns face and UV coordinates into an unnormalized point.
// The formulas per face are chosen so that each face frame is right-handed
// and the curve exit corner of face f coincides with the entry corner of
// face (f+1)%6; the stcoords tests check both against the faceUVWAxes
// table.
func faceUVToXYZ(face int, u, v float64) r3.Vector {
	switch face {
	case 0:
		return r3.Vector{X: 1, Y: u, Z: v}
	case 1:
		return r3.Vector{X: -u, Y: 1, Z: v}
	case 2:
		return r3.Vector{X: -u, Y: -v, Z: 1}
	case 3:
		return r3.Vector{X: -1, Y: -v, Z: -u}
	case 4:
		return r3.Vector{X: v, Y: -1, Z: -u}
	default:
		return r3.Vector{X: v, Y: u, Z: -1}
	}
}

// validFaceXYZToUV given a valid face for the given point r (meaning that
// dot product of r with the face normal is positive), returns the
// corresponding u and v values, which may lie outside the range [-1,1].
func validFaceXYZToUV(face int, r r3.Vector) (float64, float64) {
	switch face {
	case 0:
		return r.Y / r.X, r.Z / r.X
	case 1:
		return -r.X / r.Y, r.Z / r.Y
	case 2:
		return -r.X / r.Z, -r.Y / r.Z
	case 3:
		return r.Z / r.X, r.Y / r.X
	case 4:
		return r.Z / r.Y, -r.X / r.Y
	}
	return -r.Y / r.Z, -r.X / r.Z
}

// xyzToFaceUV converts a direction vector (not necessarily unit length) to
// (face, u, v) coordinates.
func xyzToFaceUV(r r3.Vector) (f int, u, v float64) {
	f = face(r)
	u, v = validFaceXYZToUV(f, r)
	return f, u, v
}

// faceXYZToUV returns true and sets (u,v) given a direction vector r if r
// lies in the half-space of the given face (i.e. in the positive direction
// of its normal); otherwise it returns false and leaves (u,v) untouched.
func faceXYZToUV(face int, p Point, u, v *float64) bool {
	switch face {
	case 0:
		if p.X <= 0 {
			return false
		}
	case 1:
		if p.Y <= 0 {
			return false
		}
	case 2:
		if p.Z <= 0 {
			return false
		}
	case 3:
		if p.X >= 0 {
			return false
		}
	case 4:
		if p.Y >= 0 {
			return false
		}
	default:
		if p.Z >= 0 {
			return false
		}
	}
	*u, *v = validFaceXYZToUV(face, p.Vector)
	return true
}

// faceXYZtoUVW transforms the given point P to the (u,v,w) coordinate
// frame of the given face, where the w-axis represents the face normal.
func faceXYZtoUVW(face int, p Point) Point {
	// The result coordinates are simply the dot products of P with the
	// (u,v,w) axes for the given face.
	switch face {
	case 0:
		return Point{r3.Vector{X: p.Y, Y: p.Z, Z: p.X}}
	case 1:
		return Point{r3.Vector{X: -p.X, Y: p.Z, Z: p.Y}}
	case 2:
		return Point{r3.Vector{X: -p.X, Y: -p.Y, Z: p.Z}}
	case 3:
		return Point{r3.Vector{X: -p.Z, Y: -p.Y, Z: -p.X}}
	case 4:
		return Point{r3.Vector{X: -p.Z, Y: p.X, Z: -p.Y}}
	default:
		return Point{r3.Vector{X: p.Y, Y: p.X, Z: -p.Z}}
	}
}

// faceSiTiToXYZ transforms the (si, ti) coordinates to a (not necessarily
// unit length) point on the given face.
func faceSiTiToXYZ(face int, si, ti uint32) Point {
	return Point{faceUVToXYZ(face, stToUV(siTiToST(si)), stToUV(siTiToST(ti)))}
}

// xyzToFaceSiTi transforms the unit-length point p to (face, si, ti)
// coordinates and, if p is exactly the center of a cell, the level of that
// cell; otherwise the returned level is -1.
func xyzToFaceSiTi(p Point) (face int, si, ti uint32, level int) {
	face, u, v := xyzToFaceUV(p.Vector)
	si = stToSiTi(uvToST(u))
	ti = stToSiTi(uvToST(v))

	// If the levels corresponding to si,ti are not equal, then p is not a
	// cell center. The si,ti values of 0 and maxSiTi need to be handled
	// specially because they do not correspond to cell centers at any
	// valid level; ORing in maxSiTi makes the lowest-set-bit scan map them
	// to level -1 below.
	level = maxLevel - findLSBSetNonZero64(uint64(si|maxSiTi))
	if level < 0 || level != maxLevel-findLSBSetNonZero64(uint64(ti|maxSiTi)) {
		return face, si, ti, -1
	}

	// In infinite precision, this test could be changed to ST == SiTi.
	// However, due to rounding errors, uvToST(xyzToFaceUV(faceUVToXYZ(
	// stToUV(...)))) is not idempotent. On the other hand, the center is
	// computed exactly the same way p was originally computed (if it is
	// indeed the center of a cell): the comparison can be exact.
	if p.Vector == faceSiTiToXYZ(face, si, ti).Normalize() {
		return face, si, ti, level
	}

	return face, si, ti, -1
}

// faceUVWAxes are the u, v, and w (normal) axes for each face. Every
// operation that needs a face basis reads this one table so the frames
// cannot drift apart.
var faceUVWAxes = [6][3]r3.Vector{
	{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}},
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 0}, {X: 0, Y: 0, Z: 1}},
	{{X: 0, Y: 0, Z: -1}, {X: 0, Y: -1, Z: 0}, {X: -1, Y: 0, Z: 0}},
	{{X: 0, Y: 0, Z: -1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 0}},
	{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}},
}

// faceUVWFaces are the precomputed neighbors of each face along the
// negative and positive direction of each of its u, v, and w axes.
var faceUVWFaces = [6][3][2]int{
	{{4, 1}, {5, 2}, {3, 0}},
	{{0, 3}, {5, 2}, {4, 1}},
	{{0, 3}, {1, 4}, {5, 2}},
	{{2, 5}, {1, 4}, {0, 3}},
	{{2, 5}, {3, 0}, {1, 4}},
	{{4, 1}, {3, 0}, {2, 5}},
}

// uvwAxis returns the given axis of the given face.
func uvwAxis(face, axis int) r3.Vector { return faceUVWAxes[face][axis] }

// uvwFace returns the face in the (u,v,w) coordinate system on the given
// axis in the given direction.
func uvwFace(face, axis, direction int) int { return faceUVWFaces[face][axis][direction] }

// uAxis returns the u-axis for the given face.
func uAxis(face int) r3.Vector { return uvwAxis(face, 0) }

// vAxis returns the v-axis for the given face.
func vAxis(face int) r3.Vector { return uvwAxis(face, 1) }

// faceNorm returns the unit normal for the given face.
func faceNorm(face int) r3.Vector { return uvwAxis(face, 2) }

// uNorm returns the right-handed normal (not necessarily unit length) for
// an edge in the direction of the positive v-axis at the given u-value on
// the given face. (This vector is perpendicular to the plane through the
// sphere origin that contains the given edge.)
func uNorm(face int, u float64) r3.Vector {
	switch face {
	case 0:
		return r3.Vector{X: u, Y: -1, Z: 0}
	case 1:
		return r3.Vector{X: 1, Y: u, Z: 0}
	case 2:
		return r3.Vector{X: 1, Y: 0, Z: u}
	case 3:
		return r3.Vector{X: -u, Y: 0, Z: 1}
	case 4:
		return r3.Vector{X: 0, Y: -u, Z: 1}
	default:
		return r3.Vector{X: 0, Y: -1, Z: -u}
	}
}

// vNorm returns the right-handed normal (not necessarily unit length) for
// an edge in the direction of the positive u-axis at the given v-value on
// the given face.
func vNorm(face int, v float64) r3.Vector {
	switch face {
	case 0:
		return r3.Vector{X: -v, Y: 0, Z: 1}
	case 1:
		return r3.Vector{X: 0, Y: -v, Z: 1}
	case 2:
		return r3.Vector{X: 0, Y: -1, Z: -v}
	case 3:
		return r3.Vector{X: v, Y: -1, Z: 0}
	case 4:
		return r3.Vector{X: 1, Y: v, Z: 0}
	default:
		return r3.Vector{X: 1, Y: 0, Z: v}
	}
}
