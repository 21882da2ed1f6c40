package group

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/anupsv/aeonflux-credentials/internal/common"
)

// Scalar is an element of the BLS12-381 G1 scalar field, reduced modulo
// common.Order. The zero value is the scalar 0.
type Scalar struct {
	e fr.Element
}

// ScalarFromUint64 builds a small scalar, useful for loop counters and test
// fixtures.
func ScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.e.SetUint64(v)
	return s
}

// ScalarFromBigInt reduces n modulo the group order.
func ScalarFromBigInt(n *big.Int) Scalar {
	var s Scalar
	reduced := new(big.Int).Mod(n, common.Order)
	s.e.SetBigInt(reduced)
	return s
}

// RandomScalar draws a uniformly random scalar using rng, which must be a
// cryptographically secure source (crypto/rand.Reader in production, a
// deterministic reader only in tests). A nil rng means crypto/rand.Reader.
func RandomScalar(rng io.Reader) (Scalar, error) {
	if rng == nil {
		rng = secureRandomReader
	}
	n, err := randomBigIntBelow(rng, common.Order)
	if err != nil {
		return Scalar{}, err
	}
	return ScalarFromBigInt(n), nil
}

// randomBigIntBelow performs rejection sampling to draw a uniform value in
// [0, max). Each draw has exactly max.BitLen() random bits (the top byte is
// masked down), and any draw not below max is rejected and redrawn.
func randomBigIntBelow(rng io.Reader, max *big.Int) (*big.Int, error) {
	byteLen := (max.BitLen() + 7) / 8
	bits := max.BitLen() % 8
	mask := byte(0xFF)
	if bits > 0 {
		mask = byte((1 << bits) - 1)
	}

	buf := make([]byte, byteLen)
	result := new(big.Int)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("group: failed to read randomness: %w", err)
		}
		buf[0] &= mask
		result.SetBytes(buf)
		if result.Cmp(max) < 0 {
			return result, nil
		}
	}
}

// ScalarFromCanonicalBytes decodes a 32-byte big-endian scalar, rejecting
// any encoding that is not already reduced modulo the group order.
func ScalarFromCanonicalBytes(b []byte) (Scalar, error) {
	if len(b) != common.ScalarSize {
		return Scalar{}, common.ErrMessageLength
	}
	n := new(big.Int).SetBytes(b)
	if n.Cmp(common.Order) >= 0 {
		return Scalar{}, common.ErrScalarFormat
	}
	var s Scalar
	s.e.SetBigInt(n)
	return s, nil
}

// Bytes returns the canonical 32-byte big-endian encoding.
func (s Scalar) Bytes() [common.ScalarSize]byte {
	return s.e.Bytes()
}

// BigInt returns the scalar as a big.Int in [0, Order).
func (s Scalar) BigInt() *big.Int {
	var n big.Int
	s.e.BigInt(&n)
	return &n
}

func (s Scalar) Add(other Scalar) Scalar {
	var r Scalar
	r.e.Add(&s.e, &other.e)
	return r
}

func (s Scalar) Sub(other Scalar) Scalar {
	var r Scalar
	r.e.Sub(&s.e, &other.e)
	return r
}

func (s Scalar) Mul(other Scalar) Scalar {
	var r Scalar
	r.e.Mul(&s.e, &other.e)
	return r
}

func (s Scalar) Neg() Scalar {
	var r Scalar
	r.e.Neg(&s.e)
	return r
}

// Inverse returns the multiplicative inverse of s. Panics if s is zero;
// callers must check IsZero first, mirroring the scheme's requirement that
// blinding scalars are sampled non-zero.
func (s Scalar) Inverse() Scalar {
	if s.IsZero() {
		panic("group: inverse of zero scalar")
	}
	var r Scalar
	r.e.Inverse(&s.e)
	return r
}

func (s Scalar) IsZero() bool {
	return s.e.IsZero()
}

// Equal performs a constant-time comparison.
func (s Scalar) Equal(other Scalar) bool {
	a := s.e.Bytes()
	b := other.e.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// Zeroize overwrites the scalar's internal limbs with zero. Call via
// defer immediately after a secret scalar's last use.
func (s *Scalar) Zeroize() {
	s.e.SetZero()
}

// ScalarOne and ScalarZero are convenience constants.
func ScalarOne() Scalar {
	var s Scalar
	s.e.SetOne()
	return s
}

func ScalarZero() Scalar {
	return Scalar{}
}

// secureRandomReader is crypto/rand.Reader, broken out so callers can see
// at a glance which entry points default to it.
var secureRandomReader io.Reader = rand.Reader
