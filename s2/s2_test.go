package s2

import (
	"math"
	"math/rand"
)

const epsilon = 1e-14

// float64Eq reports whether the two values are within the default epsilon.
func float64Eq(x, y float64) bool { return math.Abs(x-y) < epsilon }

func randomCellIDForLevel(level int) CellID {
	face := rand.Intn(numFaces)
	pos := rand.Int63() & ((1 << (2 * maxLevel)) - 1)
	return CellIDFromFacePosLevel(face, uint64(pos), level)
}

func randomCellID() CellID {
	return randomCellIDForLevel(rand.Intn(maxLevel + 1))
}

// randomPoint returns a random unit-length vector.
func randomPoint() Point {
	return PointFromCoords(
		2*rand.Float64()-1,
		2*rand.Float64()-1,
		2*rand.Float64()-1)
}

// randomUniformFloat64 returns a uniformly distributed value in [lo, hi).
func randomUniformFloat64(lo, hi float64) float64 {
	return lo + (hi-lo)*rand.Float64()
}
