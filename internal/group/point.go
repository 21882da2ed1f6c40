package group

import (
	"crypto/subtle"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/anupsv/aeonflux-credentials/internal/common"
)

// Point is an element of the BLS12-381 G1 subgroup, the concrete
// realisation of the scheme's abstract prime-order group G. Compressed
// encode/decode (Marshal/Unmarshal) already perform subgroup-membership
// and canonical-form checks, which is why this group was chosen over a
// hand-rolled curve.
type Point struct {
	p bls12381.G1Affine
}

// BasePoint returns the standard BLS12-381 G1 generator.
func BasePoint() Point {
	_, _, g1Aff, _ := bls12381.Generators()
	return Point{p: g1Aff}
}

// Identity returns the group identity (point at infinity).
func Identity() Point {
	var p Point
	p.p.X.SetZero()
	p.p.Y.SetZero()
	return p
}

// HashToPoint derives a point deterministically from a label and seed using
// the curve's RFC 9380 hash-to-curve map. This is how SystemParameters
// derives its second generator from a domain-separated seed: the discrete
// log of the result with respect to any other basis is unknown to anyone,
// including the party that picked the seed.
func HashToPoint(dst, msg []byte) (Point, error) {
	aff, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return Point{}, err
	}
	return Point{p: aff}, nil
}

// PointFromCanonicalBytes decodes a compressed G1 point, rejecting
// encodings that are not on the curve or not in the prime-order subgroup.
func PointFromCanonicalBytes(b []byte) (Point, error) {
	if len(b) != common.PointSize {
		return Point{}, common.ErrMessageLength
	}
	var aff bls12381.G1Affine
	if err := aff.Unmarshal(b); err != nil {
		return Point{}, common.ErrPointDecode
	}
	return Point{p: aff}, nil
}

// Bytes returns the canonical compressed encoding.
func (pt Point) Bytes() [common.PointSize]byte {
	return pt.p.Bytes()
}

func (pt Point) Add(other Point) Point {
	var r Point
	r.p.Add(&pt.p, &other.p)
	return r
}

func (pt Point) Neg() Point {
	var r Point
	r.p.Neg(&pt.p)
	return r
}

func (pt Point) Sub(other Point) Point {
	neg := other.Neg()
	return pt.Add(neg)
}

// ScalarMul computes s*pt.
func (pt Point) ScalarMul(s Scalar) Point {
	var jac bls12381.G1Jac
	jac.FromAffine(&pt.p)
	jac.ScalarMultiplication(&jac, s.BigInt())
	var r Point
	r.p.FromJacobian(&jac)
	return r
}

// IsIdentity reports whether pt is the point at infinity.
func (pt Point) IsIdentity() bool {
	return pt.p.IsInfinity()
}

// Equal performs a constant-time comparison of the canonical encodings.
func (pt Point) Equal(other Point) bool {
	a := pt.p.Bytes()
	b := other.p.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// MultiScalarMul computes sum(scalars[i] * points[i]). It processes points
// sequentially rather than with a windowed MSM algorithm: credential
// operations work with small, fixed-size attribute vectors (tens of
// points, not millions), so a batched-window MSM would add complexity
// without a measurable win.
func MultiScalarMul(points []Point, scalars []Scalar) (Point, error) {
	if len(points) != len(scalars) {
		return Point{}, common.ErrMessageLength
	}
	var acc bls12381.G1Jac
	acc.X.SetOne()
	acc.Y.SetOne()
	acc.Z.SetZero()

	for i := range points {
		if scalars[i].IsZero() || points[i].IsIdentity() {
			continue
		}
		var tmp bls12381.G1Jac
		tmp.FromAffine(&points[i].p)
		tmp.ScalarMultiplication(&tmp, scalars[i].BigInt())
		acc.AddAssign(&tmp)
	}

	var r Point
	r.p.FromJacobian(&acc)
	return r, nil
}
