package pedersen

import (
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/params"
)

// Commitment is an opaque Pedersen commitment to a value under a blinding
// scalar. It carries no information about the opening on its own.
type Commitment struct {
	point group.Point
}

// Commit computes Commit(value, blinding) = value*sp.B + blinding*sp.A.
func Commit(sp *params.SystemParameters, value, blinding group.Scalar) Commitment {
	return Commitment{point: sp.B.ScalarMul(value).Add(sp.A.ScalarMul(blinding))}
}

// Point returns the commitment's underlying group element.
func (c Commitment) Point() group.Point {
	return c.point
}

// Open reports whether (value, blinding) is a valid opening of c under sp.
func Open(sp *params.SystemParameters, c Commitment, value, blinding group.Scalar) bool {
	return Commit(sp, value, blinding).point.Equal(c.point)
}

// Add returns the commitment to the sum of the two committed values under
// the sum of their blinding factors, exploiting additive homomorphism.
func (c Commitment) Add(other Commitment) Commitment {
	return Commitment{point: c.point.Add(other.point)}
}

// FromPoint wraps an already-computed group element as a Commitment, for
// callers (such as the NIZK engine) that build the commitment point
// directly as part of a larger proof relation.
func FromPoint(p group.Point) Commitment {
	return Commitment{point: p}
}
