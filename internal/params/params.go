package params

import (
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
)

const hashToPointDST = "AEONFLUX_BLS12381G1_XMD:SHA-256_SSWU_RO_SYSPARAMS_"

// SystemParameters is the pair of independent generators (B, A) that every
// Pedersen commitment, ElGamal ciphertext, and algebraic MAC in a
// deployment is built from. B is the group's standard base point; A must
// have no known discrete log with respect to B, or the hiding and binding
// properties the scheme relies on collapse.
type SystemParameters struct {
	B group.Point
	A group.Point
}

// NewFromSeed derives A deterministically from seed via hash-to-curve,
// and pins B to the group's standard generator. This is the "nothing up my
// sleeve" construction: anyone can recompute A from seed and confirm no
// party learned its discrete log during generation.
//
// The caveat is that whoever picks seed controls which of the (effectively
// infinite) hash preimages gets used, so a seed chosen adversarially late
// relative to other protocol parameters is a footgun. Deployments that need
// a stronger public-randomness guarantee should derive seed from a beacon
// they don't control, or skip this constructor entirely and use
// NewFromPoint with an A produced by an out-of-band ceremony.
func NewFromSeed(seed []byte) (*SystemParameters, error) {
	a, err := group.HashToPoint([]byte(hashToPointDST), seed)
	if err != nil {
		return nil, err
	}
	return &SystemParameters{
		B: group.BasePoint(),
		A: a,
	}, nil
}

// NewFromPoint builds SystemParameters from an already-established second
// generator, bypassing the seeded derivation entirely.
func NewFromPoint(a group.Point) *SystemParameters {
	return &SystemParameters{
		B: group.BasePoint(),
		A: a,
	}
}

// MarshalBinary encodes B || A as 96 bytes of compressed points.
func (p *SystemParameters) MarshalBinary() ([]byte, error) {
	bBytes := p.B.Bytes()
	aBytes := p.A.Bytes()
	out := make([]byte, 0, common.PointSize*2)
	out = append(out, bBytes[:]...)
	out = append(out, aBytes[:]...)
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary, rejecting any
// component that is not a valid canonically-encoded subgroup element.
func (p *SystemParameters) UnmarshalBinary(data []byte) error {
	if len(data) != common.PointSize*2 {
		return common.ErrMessageLength
	}
	b, err := group.PointFromCanonicalBytes(data[:common.PointSize])
	if err != nil {
		return err
	}
	a, err := group.PointFromCanonicalBytes(data[common.PointSize:])
	if err != nil {
		return err
	}
	p.B = b
	p.A = a
	return nil
}
