package elgamal

import (
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/params"
)

// PublicKey is an ElGamal public key D = d*B for some secret scalar d.
type PublicKey struct {
	D group.Point
}

// SecretKey is an ElGamal secret scalar. Call Zeroize as soon as it is no
// longer needed; nothing in this package holds a second copy.
type SecretKey struct {
	d group.Scalar
}

// Keypair bundles a secret key with its corresponding public key.
type Keypair struct {
	Secret SecretKey
	Public PublicKey
}

// GenerateKeypair draws a fresh ElGamal keypair under sp.
func GenerateKeypair(sp *params.SystemParameters, rng io.Reader) (*Keypair, error) {
	d, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return &Keypair{
		Secret: SecretKey{d: d},
		Public: PublicKey{D: sp.B.ScalarMul(d)},
	}, nil
}

// Zeroize clears the secret scalar's internal state.
func (sk *SecretKey) Zeroize() {
	sk.d.Zeroize()
}

// Scalar returns the underlying secret scalar, for callers (such as the
// blinded-issuance attributes_blinded proof) that need it as a NIZK
// witness rather than only for Decrypt.
func (sk *SecretKey) Scalar() group.Scalar {
	return sk.d
}

// Message is a plaintext: any group element, typically an attribute value
// multiplied onto the attribute generator before encryption.
type Message struct {
	Point group.Point
}

// Ciphertext is an ElGamal encryption (E0, E1) = (e*B, M + e*D).
type Ciphertext struct {
	E0 group.Point
	E1 group.Point
}

// Encrypt encrypts msg under pk using ephemeral scalar e drawn from rng. It
// also returns e itself: blinded-issuance proofs need to demonstrate
// knowledge of e as part of their statement, so the caller (not this
// package) owns its lifetime and zeroization.
func Encrypt(sp *params.SystemParameters, pk PublicKey, msg Message, rng io.Reader) (Ciphertext, group.Scalar, error) {
	e, err := group.RandomScalar(rng)
	if err != nil {
		return Ciphertext{}, group.Scalar{}, err
	}
	return EncryptWithNonce(sp, pk, msg, e), e, nil
}

// EncryptWithNonce encrypts msg under pk using the caller-supplied
// ephemeral scalar e, for callers (such as the blinded-issuance prover)
// that need the nonce fixed ahead of encryption so it can be bound into a
// proof transcript.
func EncryptWithNonce(sp *params.SystemParameters, pk PublicKey, msg Message, e group.Scalar) Ciphertext {
	return Ciphertext{
		E0: sp.B.ScalarMul(e),
		E1: msg.Point.Add(pk.D.ScalarMul(e)),
	}
}

// Decrypt recovers the plaintext group element M = E1 - d*E0.
func (sk *SecretKey) Decrypt(c Ciphertext) Message {
	return Message{Point: c.E1.Sub(c.E0.ScalarMul(sk.d))}
}

// Add exploits the scheme's additive homomorphism: Add(c1, c2) decrypts to
// the sum of c1 and c2's plaintexts under the same key.
func (c Ciphertext) Add(other Ciphertext) Ciphertext {
	return Ciphertext{E0: c.E0.Add(other.E0), E1: c.E1.Add(other.E1)}
}

// MarshalBinary encodes E0 || E1 as 96 bytes.
func (c Ciphertext) MarshalBinary() ([]byte, error) {
	e0 := c.E0.Bytes()
	e1 := c.E1.Bytes()
	out := make([]byte, 0, common.PointSize*2)
	out = append(out, e0[:]...)
	out = append(out, e1[:]...)
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (c *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) != common.PointSize*2 {
		return common.ErrMessageLength
	}
	e0, err := group.PointFromCanonicalBytes(data[:common.PointSize])
	if err != nil {
		return err
	}
	e1, err := group.PointFromCanonicalBytes(data[common.PointSize:])
	if err != nil {
		return err
	}
	c.E0, c.E1 = e0, e1
	return nil
}
