package transcript

import (
	"encoding/binary"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/anupsv/aeonflux-credentials/internal/group"
)

// Transcript is a running Fiat-Shamir transcript. The zero value is not
// usable; construct with New.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a transcript under the given domain-separation label, e.g.
// "AEONFLUX ISSUANCE" or "AEONFLUX SHOW".
func New(domain string) *Transcript {
	return &Transcript{state: sha3.NewCShake256(nil, []byte(domain))}
}

// AppendMessage absorbs a labelled byte string into the transcript.
func (t *Transcript) AppendMessage(label string, message []byte) {
	writeFramed(t.state, []byte(label))
	writeFramed(t.state, message)
}

// AppendPoint absorbs a labelled group element's canonical encoding.
func (t *Transcript) AppendPoint(label string, p group.Point) {
	b := p.Bytes()
	t.AppendMessage(label, b[:])
}

// AppendScalar absorbs a labelled scalar's canonical encoding.
func (t *Transcript) AppendScalar(label string, s group.Scalar) {
	b := s.Bytes()
	t.AppendMessage(label, b[:])
}

// ChallengeScalar squeezes a labelled challenge scalar out of the
// transcript. The label is absorbed first so that two challenges drawn
// under different labels from the same prefix never collide. Squeezing is
// done from a clone of the running state, so the transcript can continue to
// absorb further messages (and produce further challenges) afterward.
func (t *Transcript) ChallengeScalar(label string) group.Scalar {
	writeFramed(t.state, []byte(label))

	clone := t.state.Clone()
	// Oversample by 64 bits beyond the scalar field's bit length so the
	// bias of the modular reduction in group.ScalarFromBigInt is negligible.
	buf := make([]byte, 40)
	if _, err := clone.Read(buf); err != nil {
		panic("transcript: squeeze failed: " + err.Error())
	}
	n := new(big.Int).SetBytes(buf)
	return group.ScalarFromBigInt(n)
}

// ChallengeBytes squeezes n labelled bytes out of the transcript, for
// callers that need raw randomness rather than a field element (e.g.
// deriving a commitment nonce).
func (t *Transcript) ChallengeBytes(label string, n int) []byte {
	writeFramed(t.state, []byte(label))
	clone := t.state.Clone()
	out := make([]byte, n)
	if _, err := clone.Read(out); err != nil {
		panic("transcript: squeeze failed: " + err.Error())
	}
	return out
}

// ForkRNG derives a deterministic-but-hedged randomness stream for
// generating proof blinding factors. It absorbs the transcript's current
// state, a labelled secret witness, and fresh entropy from rng, then
// returns a reader that squeezes pseudorandom bytes from the result. This
// means a proof's blinding factors depend on the statement being proved,
// the prover's secret witness, and the system RNG: a broken or
// adversarially-controlled RNG alone cannot force blinding-factor reuse
// across two different statements.
func (t *Transcript) ForkRNG(rng io.Reader, witnessLabel string, witness []byte) (io.Reader, error) {
	fork := t.state.Clone()
	writeFramed(fork, []byte(witnessLabel))
	writeFramed(fork, witness)

	var seed [32]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, err
	}
	writeFramed(fork, seed[:])

	return fork, nil
}

func writeFramed(w io.Writer, data []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		panic("transcript: absorb failed: " + err.Error())
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			panic("transcript: absorb failed: " + err.Error())
		}
	}
}
