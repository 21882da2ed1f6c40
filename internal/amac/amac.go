package amac

import (
	"encoding/binary"
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/params"
)

// SecretKey is the issuer's MAC key: a constant term x0 and one scalar per
// supported attribute index.
type SecretKey struct {
	X0 group.Scalar
	Xs []group.Scalar
}

// PublicKey is the published commitment to SecretKey.Xs, X_i = A*x_i. The
// constant term x0 is never published directly; issuance proofs bind it
// through a fresh Pedersen commitment instead (see the issuer package),
// which is what lets the issuer reuse one key across many credentials
// without a verifier learning anything about x0 beyond its consistency.
type PublicKey struct {
	Xs []group.Point
}

// GenerateSecretKey draws a fresh MAC key supporting numAttributes
// attributes.
func GenerateSecretKey(numAttributes int, rng io.Reader) (*SecretKey, error) {
	x0, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	xs := make([]group.Scalar, numAttributes)
	for i := range xs {
		s, err := group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		xs[i] = s
	}
	return &SecretKey{X0: x0, Xs: xs}, nil
}

// Public derives the PublicKey for sk under the given system parameters.
func (sk *SecretKey) Public(sp *params.SystemParameters) *PublicKey {
	xs := make([]group.Point, len(sk.Xs))
	for i, x := range sk.Xs {
		xs[i] = sp.A.ScalarMul(x)
	}
	return &PublicKey{Xs: xs}
}

// Zeroize clears the key material.
func (sk *SecretKey) Zeroize() {
	sk.X0.Zeroize()
	for i := range sk.Xs {
		sk.Xs[i].Zeroize()
	}
}

// Tag is a MAC tag (U, V) over an attribute vector.
type Tag struct {
	U group.Point
	V group.Point
}

// Create computes a fresh tag over attrs under sk. U is drawn as
// sp.B scaled by a random non-zero scalar u rather than via arbitrary
// hashing, so it is uniformly distributed over the non-identity elements
// of the subgroup B generates; u is not returned.
func (sk *SecretKey) Create(sp *params.SystemParameters, attrs []group.Scalar, rng io.Reader) (Tag, error) {
	if len(attrs) != len(sk.Xs) {
		return Tag{}, common.ErrWrongNumberOfAttributes
	}
	u, err := randomNonZeroScalar(rng)
	if err != nil {
		return Tag{}, err
	}
	return sk.createWithU(sp, attrs, u), nil
}

func (sk *SecretKey) createWithU(sp *params.SystemParameters, attrs []group.Scalar, u group.Scalar) Tag {
	exponent := sk.X0
	for i, m := range attrs {
		exponent = exponent.Add(sk.Xs[i].Mul(m))
	}
	uPoint := sp.B.ScalarMul(u)
	vPoint := uPoint.ScalarMul(exponent)
	return Tag{U: uPoint, V: vPoint}
}

// Verify checks that tag is a valid MAC over attrs under sk. This is the
// "revealed attributes" verification path: the verifier must already know
// attrs in the clear, which is only possible for an entity holding sk
// (the issuer) since Verify recomputes V directly.
func (sk *SecretKey) Verify(attrs []group.Scalar, tag Tag) error {
	if len(attrs) != len(sk.Xs) {
		return common.ErrWrongNumberOfAttributes
	}
	if tag.U.IsIdentity() {
		return common.ErrMacVerification
	}
	exponent := sk.X0
	for i, m := range attrs {
		exponent = exponent.Add(sk.Xs[i].Mul(m))
	}
	expected := tag.U.ScalarMul(exponent)
	if !expected.Equal(tag.V) {
		return common.ErrMacVerification
	}
	return nil
}

// Rerandomize returns a fresh tag (U', V') = (r*U, r*V) for a random
// nonzero r, along with r itself (needed by the presenter's NIZK proof,
// since V' = U'*x0 + sum(x_i*m_i*U') must hold for the *same* attributes
// under the new U').
func Rerandomize(tag Tag, rng io.Reader) (Tag, group.Scalar, error) {
	r, err := randomNonZeroScalar(rng)
	if err != nil {
		return Tag{}, group.Scalar{}, err
	}
	return Tag{U: tag.U.ScalarMul(r), V: tag.V.ScalarMul(r)}, r, nil
}

func randomNonZeroScalar(rng io.Reader) (group.Scalar, error) {
	for {
		s, err := group.RandomScalar(rng)
		if err != nil {
			return group.Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// MarshalBinary encodes a SecretKey as x0 || x1 || ... || xn, each a
// 32-byte canonical scalar.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, common.ScalarSize*(1+len(sk.Xs)))
	x0 := sk.X0.Bytes()
	out = append(out, x0[:]...)
	for _, x := range sk.Xs {
		b := x.Bytes()
		out = append(out, b[:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary. The attribute count
// is inferred from the input length, since a SecretKey carries no explicit
// count field of its own.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	if len(data) < common.ScalarSize || len(data)%common.ScalarSize != 0 {
		return common.ErrMessageLength
	}
	x0, err := group.ScalarFromCanonicalBytes(data[:common.ScalarSize])
	if err != nil {
		return err
	}
	n := len(data)/common.ScalarSize - 1
	xs := make([]group.Scalar, n)
	for i := range xs {
		offset := common.ScalarSize * (i + 1)
		s, err := group.ScalarFromCanonicalBytes(data[offset : offset+common.ScalarSize])
		if err != nil {
			return err
		}
		xs[i] = s
	}
	sk.X0 = x0
	sk.Xs = xs
	return nil
}

// MarshalBinary encodes a PublicKey as attribute count (4 bytes) followed
// by X1 || ... || Xn, each a 48-byte compressed point.
func (pub *PublicKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 4+common.PointSize*len(pub.Xs))
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(pub.Xs)))
	out = append(out, countBuf[:]...)
	for _, x := range pub.Xs {
		b := x.Bytes()
		out = append(out, b[:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (pub *PublicKey) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return common.ErrMessageLength
	}
	count := binary.BigEndian.Uint32(data[:4])
	want := 4 + int(count)*common.PointSize
	if want != len(data) {
		return common.ErrMessageLength
	}
	xs := make([]group.Point, count)
	offset := 4
	for i := range xs {
		pt, err := group.PointFromCanonicalBytes(data[offset : offset+common.PointSize])
		if err != nil {
			return err
		}
		xs[i] = pt
		offset += common.PointSize
	}
	pub.Xs = xs
	return nil
}

// MarshalBinary encodes a Tag as U || V, 96 bytes.
func (t Tag) MarshalBinary() ([]byte, error) {
	u := t.U.Bytes()
	v := t.V.Bytes()
	out := make([]byte, 0, common.PointSize*2)
	out = append(out, u[:]...)
	out = append(out, v[:]...)
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (t *Tag) UnmarshalBinary(data []byte) error {
	if len(data) != common.PointSize*2 {
		return common.ErrMessageLength
	}
	u, err := group.PointFromCanonicalBytes(data[:common.PointSize])
	if err != nil {
		return err
	}
	v, err := group.PointFromCanonicalBytes(data[common.PointSize:])
	if err != nil {
		return err
	}
	t.U, t.V = u, v
	return nil
}
