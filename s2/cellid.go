package s2

import (
	"bytes"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/gosphere/geo/r1"
	"github.com/gosphere/geo/r2"
	"github.com/gosphere/geo/r3"
	"github.com/gosphere/geo/s1"
)

// CellID uniquely identifies a cell in the cell decomposition of the unit
// sphere. The decomposition divides the sphere into 6 top-level face
// cells, obtained by projecting onto the six faces of a circumscribing
// cube, and recursively subdivides each face in a quadtree fashion up to
// maxLevel. Cells at the same level are numbered along a Hilbert
// space-filling curve, one curve per face, with consecutive faces joined
// into a single continuous curve over the whole cube surface.
//
// The id packs into a uint64 as follows:
//
//	id = [face][face_pos]
//
// face is a 3-bit number in [0,5], and face_pos is a 61-bit number
// encoding the position along the Hilbert curve. A valid cell has exactly
// one trailing "1" bit at an even offset within face_pos; the position of
// that sentinel bit determines the cell's level, and the bits above it
// select one Hilbert sub-quadrant per level. The zero value is the
// reserved invalid id.
//
// Sequentially increasing ids follow a continuous space-filling curve over
// the entire sphere, and the closed interval [RangeMin, RangeMax] of a
// cell covers exactly the leaf cells descended from it, which makes
// containment and intersection tests plain integer comparisons.
type CellID uint64

const (
	faceBits = 3
	numFaces = 6

	// maxLevel is the finest subdivision level, about 1cm resolution on
	// the Earth's surface.
	maxLevel = 30

	// posBits is one more than 2*maxLevel: the extra bit holds the
	// sentinel marking leaf cells.
	posBits = 2*maxLevel + 1

	// maxSize is the width of the leaf-cell (i,j) grid along each face
	// edge.
	maxSize = 1 << maxLevel

	// wrapOffset is one past the last valid leaf id; advancing with
	// wraparound is arithmetic modulo this value.
	wrapOffset = uint64(numFaces) << posBits
)

// CellIDFromFacePosLevel returns a cell given its face in the range [0,5],
// the 61-bit Hilbert curve position pos within that face, and the level in
// the range [0,maxLevel]. The position in the cell id will be truncated to
// correspond to the Hilbert curve position at the center of the returned
// cell.
func CellIDFromFacePosLevel(face int, pos uint64, level int) CellID {
	return CellID(uint64(face)<<posBits + pos | 1).Parent(level)
}

// CellIDFromFace returns the cell corresponding to a given cube face.
func CellIDFromFace(face int) CellID {
	return CellID(uint64(face)<<posBits + lsbForLevel(0))
}

// CellIDFromPoint returns the leaf cell containing p.
func CellIDFromPoint(p Point) CellID { return cellIDFromPoint(p) }

// CellIDFromLatLng returns the leaf cell containing ll.
func CellIDFromLatLng(ll LatLng) CellID {
	return cellIDFromPoint(PointFromLatLng(ll))
}

// CellIDFromToken returns a cell given a hex-encoded string of its uint64
// id. Malformed tokens (non-hex characters, more than 16 digits) yield the
// invalid id rather than an error.
func CellIDFromToken(s string) CellID {
	if len(s) > 16 {
		return CellID(0)
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return CellID(0)
	}
	// Equivalent to right-padding the token with zeros to 16 characters.
	return CellID(n << (4 * uint(16-len(s))))
}

// ToToken returns a hex-encoded string of the uint64 cell id, with leading
// zeros included but trailing zeros stripped. The invalid id encodes as
// the reserved token "X".
func (ci CellID) ToToken() string {
	s := strings.TrimRight(fmt.Sprintf("%016x", uint64(ci)), "0")
	if len(s) == 0 {
		return "X"
	}
	return s
}

// IsValid reports whether ci represents a valid cell.
func (ci CellID) IsValid() bool {
	return ci.Face() < numFaces && ci.lsb()&0x1555555555555555 != 0
}

// Face returns the cube face for this cell id, in the range [0,5].
func (ci CellID) Face() int { return int(uint64(ci) >> posBits) }

// Pos returns the position along the Hilbert curve of this cell id, in the
// range [0,2^posBits-1].
func (ci CellID) Pos() uint64 { return uint64(ci) & (^uint64(0) >> faceBits) }

// Level returns the subdivision level of this cell id, in the range
// [0, maxLevel].
func (ci CellID) Level() int {
	// A special case is needed for leaf cells: the general formula below
	// would shift by the full word width, which is undefined for the
	// level derivation.
	if ci.IsLeaf() {
		return maxLevel
	}
	return maxLevel - findLSBSetNonZero64(uint64(ci))>>1
}

// IsLeaf reports whether this cell id is at the deepest level, that is,
// the level at which the cells are the smallest.
func (ci CellID) IsLeaf() bool { return uint64(ci)&1 != 0 }

// isFace reports whether this is a top-level (face) cell.
func (ci CellID) isFace() bool { return uint64(ci)&(lsbForLevel(0)-1) == 0 }

// lsb returns the least significant bit of ci. It marks the level of the
// cell and separates its quadrant path from the unused low bits.
func (ci CellID) lsb() uint64 { return uint64(ci) & -uint64(ci) }

// ChildPosition returns the child position (0..3) of this cell's ancestor
// at the given level relative to its parent. ci must be valid and at a
// level no smaller than the argument.
func (ci CellID) ChildPosition(level int) int {
	return int(uint64(ci)>>uint64(2*(maxLevel-level)+1)) & 3
}

// lsbForLevel returns the lowest-numbered bit that is on for cells at the
// given level.
func lsbForLevel(level int) uint64 { return 1 << uint64(2*(maxLevel-level)) }

// Parent returns the cell at the given level, which must be no greater
// than the current level.
func (ci CellID) Parent(level int) CellID {
	lsb := lsbForLevel(level)
	return CellID((uint64(ci) & -lsb) | lsb)
}

// immediateParent is cheaper than Parent, but assumes !ci.isFace().
func (ci CellID) immediateParent() CellID {
	nlsb := CellID(ci.lsb() << 2)
	return (ci & -nlsb) | nlsb
}

// ChildBegin returns the first child in a traversal of the children of
// this cell, in Hilbert curve order.
//
//	for ci := c.ChildBegin(); ci != c.ChildEnd(); ci = ci.Next() {
//	    ...
//	}
func (ci CellID) ChildBegin() CellID {
	ol := ci.lsb()
	return CellID(uint64(ci) - ol + ol>>2)
}

// ChildBeginAtLevel returns the first cell in a traversal of children a
// given level deeper than this cell, in Hilbert curve order. The given
// level must be no smaller than the cell's level.
func (ci CellID) ChildBeginAtLevel(level int) CellID {
	return CellID(uint64(ci) - ci.lsb() + lsbForLevel(level))
}

// ChildEnd returns the first cell after a traversal of the children of
// this cell in Hilbert curve order. The returned cell may be invalid.
func (ci CellID) ChildEnd() CellID {
	ol := ci.lsb()
	return CellID(uint64(ci) + ol + ol>>2)
}

// ChildEndAtLevel returns the first cell after the last child in a
// traversal of children a given level deeper than this cell, in Hilbert
// curve order. The returned cell may be invalid.
func (ci CellID) ChildEndAtLevel(level int) CellID {
	return CellID(uint64(ci) + ci.lsb() + lsbForLevel(level))
}

// Children returns the four immediate children of this cell. If ci is a
// leaf cell, it returns four identical cells that are not the children.
func (ci CellID) Children() [4]CellID {
	var ch [4]CellID
	lsb := CellID(ci.lsb())
	ch[0] = ci - lsb + lsb>>2
	lsb >>= 1
	ch[1] = ch[0] + lsb
	ch[2] = ch[1] + lsb
	ch[3] = ch[2] + lsb
	return ch
}

// Next returns the next cell along the Hilbert curve at the same level.
// Works correctly when advancing from one face to the next, but the
// returned cell after the last one on the last face is invalid.
func (ci CellID) Next() CellID {
	return CellID(uint64(ci) + ci.lsb()<<1)
}

// Prev returns the previous cell along the Hilbert curve at the same
// level. The cell before the first one on the first face is invalid.
func (ci CellID) Prev() CellID {
	return CellID(uint64(ci) - ci.lsb()<<1)
}

// NextWrap returns the next cell along the Hilbert curve at the same
// level, wrapping from the last face back to the first.
func (ci CellID) NextWrap() CellID {
	n := ci.Next()
	if uint64(n) < wrapOffset {
		return n
	}
	return CellID(uint64(n) - wrapOffset)
}

// PrevWrap returns the previous cell along the Hilbert curve at the same
// level, wrapping around from the first face to the last.
func (ci CellID) PrevWrap() CellID {
	p := ci.Prev()
	if uint64(p) < wrapOffset {
		return p
	}
	return CellID(uint64(p) + wrapOffset)
}

// Advance advances or retreats the indicated number of steps along the
// Hilbert curve at the current level, and returns the new position. The
// position is never advanced past End() or before Begin().
func (ci CellID) Advance(steps int64) CellID {
	if steps == 0 {
		return ci
	}

	// We clamp the number of steps if necessary to ensure that we do not
	// advance past the End() or before the Begin() of this level. Note
	// that minSteps and maxSteps always fit in a signed 64-bit integer.
	stepShift := uint(2*(maxLevel-ci.Level()) + 1)
	if steps < 0 {
		if minSteps := -int64(uint64(ci) >> stepShift); steps < minSteps {
			steps = minSteps
		}
	} else {
		if maxSteps := int64((wrapOffset + ci.lsb() - uint64(ci)) >> stepShift); steps > maxSteps {
			steps = maxSteps
		}
	}
	return ci + CellID(steps)<<stepShift
}

// AdvanceWrap advances or retreats the indicated number of steps along the
// Hilbert curve at the current level and returns the new position. The
// position wraps between the first and last faces as necessary.
func (ci CellID) AdvanceWrap(steps int64) CellID {
	if steps == 0 {
		return ci
	}

	// We clamp the number of steps if necessary to ensure that we do not
	// advance past the End() or before the Begin() of this level.
	shift := uint(2*(maxLevel-ci.Level()) + 1)
	if steps < 0 {
		if min := -int64(uint64(ci) >> shift); steps < min {
			wrap := int64(wrapOffset >> shift)
			steps %= wrap
			if steps < min {
				steps += wrap
			}
		}
	} else {
		// Unlike Advance, we don't want to return End(level).
		if max := int64((wrapOffset - uint64(ci)) >> shift); steps > max {
			wrap := int64(wrapOffset >> shift)
			steps %= wrap
			if steps > max {
				steps -= wrap
			}
		}
	}

	// If steps is negative, shifting it left as a signed value would be
	// undefined. Convert to uint64 for a two's complement answer.
	return CellID(uint64(ci) + (uint64(steps) << shift))
}

// distanceFromBegin returns the number of steps along the Hilbert curve,
// at the level of ci, from the first cell on the first face to ci. The
// return value is always non-negative.
func (ci CellID) distanceFromBegin() int64 {
	return int64(uint64(ci) >> uint(2*(maxLevel-ci.Level())+1))
}

// RangeMin returns the minimum CellID that is contained within this cell.
func (ci CellID) RangeMin() CellID { return CellID(uint64(ci) - (ci.lsb() - 1)) }

// RangeMax returns the maximum CellID that is contained within this cell.
func (ci CellID) RangeMax() CellID { return CellID(uint64(ci) + (ci.lsb() - 1)) }

// Contains returns true iff the CellID contains oci. Both cells must be
// valid.
func (ci CellID) Contains(oci CellID) bool {
	return uint64(ci.RangeMin()) <= uint64(oci) && uint64(oci) <= uint64(ci.RangeMax())
}

// Intersects returns true iff the CellID intersects oci. Both cells must
// be valid.
func (ci CellID) Intersects(oci CellID) bool {
	return uint64(oci.RangeMin()) <= uint64(ci.RangeMax()) && uint64(oci.RangeMax()) >= uint64(ci.RangeMin())
}

// CommonAncestorLevel returns the level of the common ancestor of the two
// cells, if any. If the two cells are on different faces they have no
// common ancestor and ok is false.
func (ci CellID) CommonAncestorLevel(other CellID) (level int, ok bool) {
	// OR each cell's own lsb into the XOR of the two values so that the
	// most significant differing bit is never inside a cell's sentinel
	// suffix.
	bits := uint64(ci ^ other)
	if bits < ci.lsb() {
		bits = ci.lsb()
	}
	if bits < other.lsb() {
		bits = other.lsb()
	}

	msbPos := findMSBSetNonZero64(bits)
	if msbPos > 60 {
		return 0, false
	}
	return (60 - msbPos) >> 1, true
}

// MaxTile returns the largest cell with the same RangeMin such that
// RangeMax < limit.RangeMin. It returns limit if no such cell exists.
// This method can be used to generate a small set of cells that covers a
// given range (a tiling): starting at a leaf, output MaxTile(limit) and
// continue from its Next until limit is reached.
func (ci CellID) MaxTile(limit CellID) CellID {
	start := ci.RangeMin()
	if start >= limit.RangeMin() {
		return limit
	}

	if ci.RangeMax() >= limit {
		// The cell is too large, shrink it. Note that when generating
		// coverings of CellID ranges, this loop usually executes only
		// once. Also because ci.RangeMin() < limit.RangeMin(), we will
		// always exit the loop by the time we reach a leaf cell.
		for {
			ci = ci.Children()[0]
			if ci.RangeMax() < limit {
				break
			}
		}
		return ci
	}

	// The cell may be too small. Grow it if necessary. Note that generally
	// this loop only runs once.
	for !ci.isFace() {
		parent := ci.immediateParent()
		if parent.RangeMin() != start || parent.RangeMax() >= limit {
			break
		}
		ci = parent
	}
	return ci
}

// CellIDBegin returns the first cell at the given level in a traversal of
// the Hilbert curve over all six faces.
func CellIDBegin(level int) CellID {
	return CellIDFromFace(0).ChildBeginAtLevel(level)
}

// CellIDEnd returns the sentinel one past the last cell at the given
// level. It is not a valid cell id; use it only as a loop bound.
func CellIDEnd(level int) CellID {
	return CellIDFromFace(5).ChildEndAtLevel(level)
}

// String returns the cell as "<face>/<quadrant path>", e.g. "3/021" for
// the level-3 cell reached from face 3 through child positions 0, 2, 1.
func (ci CellID) String() string {
	if !ci.IsValid() {
		return "Invalid: " + strconv.FormatInt(int64(ci), 16)
	}
	var b bytes.Buffer
	b.WriteByte("012345"[ci.Face()])
	b.WriteByte('/')
	for level := 1; level <= ci.Level(); level++ {
		b.WriteByte(byte(ci.ChildPosition(level)) + '0')
	}
	return b.String()
}

// Point returns the center of the cell on the sphere as a unit-length
// vector.
func (ci CellID) Point() Point { return Point{ci.rawPoint().Normalize()} }

// LatLng returns the center of the cell in latitude and longitude.
func (ci CellID) LatLng() LatLng { return LatLngFromPoint(Point{ci.rawPoint()}) }

// rawPoint returns the center of the cell as an unnormalized vector.
func (ci CellID) rawPoint() r3.Vector {
	f, si, ti := ci.faceSiTi()
	return faceUVToXYZ(f, stToUV(siTiToST(si)), stToUV(siTiToST(ti)))
}

// faceSiTi returns the (face, si, ti) coordinates of the center of the
// cell.
func (ci CellID) faceSiTi() (face int, si, ti uint32) {
	face, i, j, _ := ci.faceIJOrientation()
	delta := 0
	if ci.IsLeaf() {
		delta = 1
	} else {
		// The center of a non-leaf cell is the corner shared by the two
		// middle children; which corner depends on the parity of the
		// quadrant path.
		if (int64(i)^(int64(uint64(ci))>>2))&1 != 0 {
			delta = 2
		}
	}
	return face, uint32(2*i + delta), uint32(2*j + delta)
}

// cellIDFromPoint returns the leaf cell containing point p.
func cellIDFromPoint(p Point) CellID {
	f, u, v := xyzToFaceUV(p.Vector)
	i := stToIJ(uvToST(u))
	j := stToIJ(uvToST(v))
	return cellIDFromFaceIJ(f, i, j)
}

// cellIDFromFaceIJ returns a leaf cell given its cube face (in the range
// [0,5]) and IJ coordinates.
func cellIDFromFaceIJ(f, i, j int) CellID {
	// Note that this value gets shifted one bit to the left at the end
	// of the function.
	n := uint64(f) << (posBits - 1)
	// Alternating faces have opposite Hilbert curve orientations; this
	// is necessary in order for all faces to have a right-handed
	// coordinate system.
	bits := f & swapMask
	// Each iteration maps 4 bits of "i" and "j" into 8 bits of the
	// Hilbert curve position. The lookup table transforms a 10-bit key
	// of the form "iiiijjjjoo" to a 10-bit value of the form
	// "ppppppppoo", where the letters [ijpo] denote bits of "i", "j",
	// the Hilbert curve position, and the Hilbert curve orientation
	// respectively.
	for k := 7; k >= 0; k-- {
		mask := (1 << lookupBits) - 1
		bits += ((i >> uint(k*lookupBits)) & mask) << (lookupBits + 2)
		bits += ((j >> uint(k*lookupBits)) & mask) << 2
		bits = lookupPos[bits]
		n |= uint64(bits>>2) << (uint(k) * 2 * lookupBits)
		bits &= swapMask | invertMask
	}
	return CellID(n*2 + 1)
}

// faceIJOrientation uses the lookup tables to unfiddle the bits of ci,
// returning the cube face, the IJ coordinates of its lower-left leaf
// corner, and the orientation of the Hilbert curve within the cell. It is
// the exact inverse of cellIDFromFaceIJ for leaf cells.
func (ci CellID) faceIJOrientation() (f, i, j, orientation int) {
	f = ci.Face()
	orientation = f & swapMask
	nbits := maxLevel - 7*lookupBits // first iteration

	for k := 7; k >= 0; k-- {
		orientation += (int(uint64(ci)>>uint64(k*2*lookupBits+1)) & ((1 << uint(2*nbits)) - 1)) << 2
		orientation = lookupIJ[orientation]
		i += (orientation >> (lookupBits + 2)) << uint(k*lookupBits)
		j += ((orientation >> 2) & ((1 << lookupBits) - 1)) << uint(k*lookupBits)
		orientation &= swapMask | invertMask
		nbits = lookupBits // following iterations
	}

	// The position of a non-leaf cell at level "n" consists of a prefix
	// of 2*n bits that identifies the cell, followed by a suffix of
	// 2*(maxLevel-n)+1 bits of the form 10*. If n==maxLevel, the suffix
	// is just "1" and has no effect. Otherwise, it consists of "10",
	// followed by (maxLevel-n-1) repetitions of "01", followed by "0".
	// The "10" has no effect, while each occurrence of "01" has the
	// effect of reversing the swapMask bit.
	if ci.lsb()&0x1111111111111110 != 0 {
		orientation ^= swapMask
	}

	return f, i, j, orientation
}

// cellIDFromFaceIJWrap returns the leaf cell given its cube face and IJ
// coordinates, handling the case where i or j is outside [0, maxSize) by
// wrapping onto the appropriate adjacent face.
func cellIDFromFaceIJWrap(f, i, j int) CellID {
	// Convert i and j to the coordinates of a leaf cell just beyond the
	// boundary of this face. This prevents 32-bit overflow in the case
	// of finding the neighbors of a face cell.
	i = clampInt(i, -1, maxSize)
	j = clampInt(j, -1, maxSize)

	// We want to wrap these coordinates onto the appropriate adjacent
	// face. The easiest way to do this is to convert the (i,j)
	// coordinates to (x,y,z) (which yields a point outside the normal
	// face boundary), and then call xyzToFaceUV to project back onto the
	// correct face.
	//
	// The code below converts (i,j) to (si,ti), and then (si,ti) to
	// (u,v) using the linear projection (u=2*s-1 and v=2*t-1). (The code
	// further below converts back using the inverse projection,
	// s=0.5*(u+1) and t=0.5*(v+1). Any projection would work here, so we
	// use the simplest.) We also clamp the (u,v) coordinates so that the
	// point is barely outside the [-1,1]x[-1,1] face rectangle, since
	// otherwise the reprojection step (which divides by the new z
	// coordinate) might change the other coordinates enough so that we
	// end up in the wrong leaf cell.
	const scale = 1.0 / maxSize
	limit := math.Nextafter(1, 2)
	u := math.Max(-limit, math.Min(limit, scale*float64((i<<1)+1-maxSize)))
	v := math.Max(-limit, math.Min(limit, scale*float64((j<<1)+1-maxSize)))

	// Find the leaf cell coordinates on the adjacent face, and convert
	// them to a cell id at the appropriate level.
	f, u, v = xyzToFaceUV(faceUVToXYZ(f, u, v))
	return cellIDFromFaceIJ(f, stToIJ(0.5*(u+1)), stToIJ(0.5*(v+1)))
}

// cellIDFromFaceIJSame returns the cell given its cube face and IJ
// coordinates similar to cellIDFromFaceIJ, except that the wrapping
// version is used when sameFace is false.
func cellIDFromFaceIJSame(f, i, j int, sameFace bool) CellID {
	if sameFace {
		return cellIDFromFaceIJ(f, i, j)
	}
	return cellIDFromFaceIJWrap(f, i, j)
}

// EdgeNeighbors returns the four cells that are adjacent across this
// cell's four edges. Edges 0, 1, 2, 3 are in the down, right, up, left
// directions in the face space. All neighbors are guaranteed to be
// distinct.
func (ci CellID) EdgeNeighbors() [4]CellID {
	level := ci.Level()
	size := sizeIJ(level)
	f, i, j, _ := ci.faceIJOrientation()
	return [4]CellID{
		cellIDFromFaceIJWrap(f, i, j-size).Parent(level),
		cellIDFromFaceIJWrap(f, i+size, j).Parent(level),
		cellIDFromFaceIJWrap(f, i, j+size).Parent(level),
		cellIDFromFaceIJWrap(f, i-size, j).Parent(level),
	}
}

// AppendVertexNeighbors appends to output the neighboring cells at the
// given level (which must be no greater than the cell's level) that share
// the vertex of this cell closest to its center. Normally there are four
// neighbors (including the ancestor of the cell itself), but at the eight
// cube corners only three faces meet and three cells are produced.
func (ci CellID) AppendVertexNeighbors(level int, output *[]CellID) {
	halfSize := sizeIJ(level + 1)
	size := halfSize << 1
	f, i, j, _ := ci.faceIJOrientation()

	// Determine the i- and j-offsets to the closest neighboring cell in
	// each direction. This involves looking at the next bit of i and j
	// to determine which quadrant of this->parent(level) this cell lies
	// in.
	var isame, jsame bool
	var ioffset, joffset int
	if i&halfSize != 0 {
		ioffset = size
		isame = (i + size) < maxSize
	} else {
		ioffset = -size
		isame = (i - size) >= 0
	}
	if j&halfSize != 0 {
		joffset = size
		jsame = (j + size) < maxSize
	} else {
		joffset = -size
		jsame = (j - size) >= 0
	}

	*output = append(*output, ci.Parent(level))
	*output = append(*output, cellIDFromFaceIJSame(f, i+ioffset, j, isame).Parent(level))
	*output = append(*output, cellIDFromFaceIJSame(f, i, j+joffset, jsame).Parent(level))
	// If i- and j- edge neighbors are *both* on a different face, then
	// this vertex only has three neighbors (it is one of the 8 cube
	// vertices).
	if isame || jsame {
		*output = append(*output, cellIDFromFaceIJSame(f, i+ioffset, j+joffset, isame && jsame).Parent(level))
	}
}

// VertexNeighbors returns the neighboring cells at the given level sharing
// this cell's nearest vertex. See AppendVertexNeighbors.
func (ci CellID) VertexNeighbors(level int) []CellID {
	neighbors := make([]CellID, 0, 4)
	ci.AppendVertexNeighbors(level, &neighbors)
	return neighbors
}

// AppendAllNeighbors appends to output all the neighbors of this cell at
// the given level. Two cells X and Y are neighbors if their boundaries
// intersect but their interiors do not. In particular, two cells that
// intersect at a single point are neighbors. Note that for cells adjacent
// to a face vertex, the same neighbor may be appended more than once.
// Requires nbrLevel >= ci.Level().
func (ci CellID) AppendAllNeighbors(nbrLevel int, output *[]CellID) {
	f, i, j, _ := ci.faceIJOrientation()

	// Find the coordinates of the lower left corner of the cell, and
	// walk the perimeter at the neighbor level.
	size := sizeIJ(ci.Level())
	i &= -size
	j &= -size

	nbrSize := sizeIJ(nbrLevel)

	// Compute the top-bottom, left-right, and diagonal neighbors in one
	// pass. The loop test is at the end of the loop to avoid 32-bit
	// overflow.
	for k := -nbrSize; ; k += nbrSize {
		var sameFace bool
		switch {
		case k < 0:
			sameFace = j+k >= 0
		case k >= size:
			sameFace = j+k < maxSize
		default:
			sameFace = true
			// Top and bottom neighbors.
			*output = append(*output,
				cellIDFromFaceIJSame(f, i+k, j-nbrSize, j-size >= 0).Parent(nbrLevel),
				cellIDFromFaceIJSame(f, i+k, j+size, j+size < maxSize).Parent(nbrLevel))
		}

		// Left, right, and diagonal neighbors.
		*output = append(*output,
			cellIDFromFaceIJSame(f, i-nbrSize, j+k, sameFace && i-size >= 0).Parent(nbrLevel),
			cellIDFromFaceIJSame(f, i+size, j+k, sameFace && i+size < maxSize).Parent(nbrLevel))

		if k >= size {
			break
		}
	}
}

// AllNeighbors returns all neighbors of this cell at the given level. See
// AppendAllNeighbors.
func (ci CellID) AllNeighbors(level int) []CellID {
	var neighbors []CellID
	ci.AppendAllNeighbors(level, &neighbors)
	return neighbors
}

// sizeIJ returns the edge length in (i,j)-space of cells at the given
// level.
func sizeIJ(level int) int {
	return 1 << uint(maxLevel-level)
}

// ijToSTMin converts the i- or j-index of a leaf cell to the minimum
// corresponding s- or t-value contained by that cell. The argument must be
// in the range [0..2^30], i.e. up to one position beyond the normal range
// of valid leaf cell indices.
func ijToSTMin(i int) float64 {
	return float64(i) / float64(maxSize)
}

// stToIJ converts value in ST coordinates to a value in IJ coordinates.
func stToIJ(s float64) int {
	return clampInt(int(math.Floor(maxSize*s)), 0, maxSize-1)
}

// ijLevelToBoundUV returns the bound in (u,v)-space for the cell at the
// given level containing the leaf cell with the given (i,j) coordinates.
func ijLevelToBoundUV(i, j, level int) r2.Rect {
	cellSize := sizeIJ(level)
	xLo := i & -cellSize
	yLo := j & -cellSize

	return r2.Rect{
		X: r1.Interval{
			Lo: stToUV(ijToSTMin(xLo)),
			Hi: stToUV(ijToSTMin(xLo + cellSize)),
		},
		Y: r1.Interval{
			Lo: stToUV(ijToSTMin(yLo)),
			Hi: stToUV(ijToSTMin(yLo + cellSize)),
		},
	}
}

// boundUV returns the bound of this cell in (u,v)-space.
func (ci CellID) boundUV() r2.Rect {
	_, i, j, _ := ci.faceIJOrientation()
	return ijLevelToBoundUV(i, j, ci.Level())
}

// expandedByDistanceUV returns a rect expanded in (u,v)-space so that it
// contains all points within the given distance of the boundary, and
// return the smallest such rectangle. If the distance is negative, then
// instead shrink this rectangle so that it excludes all points within the
// given absolute distance of the boundary.
//
// Distances are measured *on the sphere*, not in (u,v)-space. For example,
// you can use this method to expand the (u,v)-bound of a CellID so that it
// contains all points within 5km of the original cell.
func expandedByDistanceUV(uv r2.Rect, distance s1.Angle) r2.Rect {
	// Expand each of the four sides of the rectangle just enough to
	// include all points within the given distance of that side. (The
	// rectangle may be expanded by a different amount in (u,v)-space on
	// each side.)
	maxU := math.Max(math.Abs(uv.X.Lo), math.Abs(uv.X.Hi))
	maxV := math.Max(math.Abs(uv.Y.Lo), math.Abs(uv.Y.Hi))
	sinDist := math.Sin(float64(distance))
	return r2.Rect{
		X: r1.Interval{
			Lo: expandEndpoint(uv.X.Lo, maxV, -sinDist),
			Hi: expandEndpoint(uv.X.Hi, maxV, sinDist),
		},
		Y: r1.Interval{
			Lo: expandEndpoint(uv.Y.Lo, maxU, -sinDist),
			Hi: expandEndpoint(uv.Y.Hi, maxU, sinDist),
		},
	}
}

// expandEndpoint returns a new u-coordinate u' such that the distance from
// the line u=u' to the given line u=u is exactly the given distance (which
// is specified as the sine of the angle corresponding to the distance).
func expandEndpoint(u, maxV, sinDist float64) float64 {
	// This is based on solving a spherical right triangle.
	sinUShift := sinDist * math.Sqrt((1+u*u+maxV*maxV)/(1+u*u))
	cosUShift := math.Sqrt(1 - sinUShift*sinUShift)
	// The following is an expansion of tan(atan(u) + asin(sinUShift)).
	return (cosUShift*u + sinUShift) / (cosUShift - sinUShift*u)
}

// findMSBSetNonZero64 returns the index (between 0 and 63) of the most
// significant set bit. Returns 0 for an argument of zero.
func findMSBSetNonZero64(x uint64) int {
	if x == 0 {
		return 0
	}
	return 63 - bits.LeadingZeros64(x)
}

// findLSBSetNonZero64 returns the index (between 0 and 63) of the least
// significant set bit. Returns 0 for an argument of zero.
func findLSBSetNonZero64(x uint64) int {
	if x == 0 {
		return 0
	}
	return bits.TrailingZeros64(x)
}
