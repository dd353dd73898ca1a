package s2

// The Hilbert curve visits the four children of a cell in an order that
// depends on the orientation accumulated on the way down from the face
// cell. The orientation is a 2-bit state: one bit for "axes swapped" and
// one for "bits inverted". Rather than walking the quadtree one level at a
// time, cell encoding and decoding translate lookupBits levels per step
// through two tables built once at startup.

const (
	lookupBits = 4

	// swapMask and invertMask are the two bits of an orientation state.
	swapMask   = 0x01
	invertMask = 0x02
)

// The following tables encode the traversal order of the four children of
// a cell for each of the four orientation states.
var (
	// ijToPos maps an orientation and the 2-bit (i,j) sub-cell index to
	// the traversal position of that sub-cell.
	ijToPos = [4][4]int{
		{0, 1, 3, 2}, // canonical order
		{0, 3, 1, 2}, // axes swapped
		{2, 3, 1, 0}, // bits inverted
		{2, 1, 3, 0}, // swapped & inverted
	}

	// posToIJ maps an orientation and a traversal position to the 2-bit
	// (i,j) sub-cell index; it is the inverse of ijToPos.
	posToIJ = [4][4]int{
		{0, 1, 3, 2}, // canonical order:    (0,0), (0,1), (1,1), (1,0)
		{0, 2, 3, 1}, // axes swapped:       (0,0), (1,0), (1,1), (0,1)
		{3, 2, 0, 1}, // bits inverted:      (1,1), (1,0), (0,0), (0,1)
		{3, 1, 0, 2}, // swapped & inverted: (1,1), (0,1), (0,0), (1,0)
	}

	// posToOrientation maps a traversal position to the orientation
	// adjustment XORed into the state passed down to that sub-cell.
	posToOrientation = [4]int{swapMask, 0, 0, invertMask | swapMask}
)

// lookupPos maps a 10-bit key "iiiijjjjoo" (lookupBits bits each of i and
// j plus a starting orientation) to a value "ppppppppoo" (2*lookupBits
// bits of Hilbert curve position plus the ending orientation). lookupIJ is
// its inverse. They are built once by the init below and read-only
// afterwards, so concurrent readers need no synchronization.
var (
	lookupPos [1 << (2*lookupBits + 2)]int
	lookupIJ  [1 << (2*lookupBits + 2)]int
)

func init() {
	initLookupCell(0, 0, 0, 0, 0, 0)
	initLookupCell(0, 0, 0, swapMask, 0, swapMask)
	initLookupCell(0, 0, 0, invertMask, 0, invertMask)
	initLookupCell(0, 0, 0, swapMask|invertMask, 0, swapMask|invertMask)
}

// initLookupCell recursively subdivides the lookupBits-level grid,
// carrying the orientation accumulated so far, and records the leaf
// entries in both tables. The recursion depth is bounded by lookupBits.
func initLookupCell(level, i, j, origOrientation, pos, orientation int) {
	if level == lookupBits {
		ij := (i << lookupBits) + j
		lookupPos[(ij<<2)+origOrientation] = (pos << 2) + orientation
		lookupIJ[(pos<<2)+origOrientation] = (ij << 2) + orientation
		return
	}

	level++
	i <<= 1
	j <<= 1
	pos <<= 2
	r := posToIJ[orientation]
	initLookupCell(level, i+(r[0]>>1), j+(r[0]&1), origOrientation, pos, orientation^posToOrientation[0])
	initLookupCell(level, i+(r[1]>>1), j+(r[1]&1), origOrientation, pos+1, orientation^posToOrientation[1])
	initLookupCell(level, i+(r[2]>>1), j+(r[2]&1), origOrientation, pos+2, orientation^posToOrientation[2])
	initLookupCell(level, i+(r[3]>>1), j+(r[3]&1), origOrientation, pos+3, orientation^posToOrientation[3])
}
