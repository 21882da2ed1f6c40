package nizk

import (
	"fmt"
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

// Proof is a non-interactive proof that the prover knows witnesses
// satisfying a Statement. Commitments holds one blinding commitment per
// equation, in Statement.Equations order; Responses holds one response
// scalar per distinct witness name.
type Proof struct {
	Commitments []group.Point
	Responses   map[string]group.Scalar
}

// Prove constructs a Proof that the prover knows witnesses satisfying
// stmt. witnesses must contain every name stmt.witnessNames() references.
// tr should already have the protocol's domain label and any statement
// context (e.g. public keys) absorbed; Prove absorbs the statement's own
// public values and appends the proof's commitments before deriving the
// challenge, so the same tr must not be reused for a second, independent
// proof without forking or re-deriving it.
func Prove(tr *transcript.Transcript, stmt Statement, witnesses map[string]group.Scalar, rng io.Reader) (*Proof, error) {
	names := stmt.witnessNames()
	blinds := make(map[string]group.Scalar, len(names))
	for _, name := range names {
		if _, ok := witnesses[name]; !ok {
			return nil, fmt.Errorf("nizk: missing witness %q", name)
		}
		b, err := group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		blinds[name] = b
	}

	commitments := make([]group.Point, len(stmt.Equations))
	for i, eq := range stmt.Equations {
		bases := make([]group.Point, len(eq.Terms))
		scalars := make([]group.Scalar, len(eq.Terms))
		for j, t := range eq.Terms {
			bases[j] = t.Base
			scalars[j] = blinds[t.Witness]
		}
		t, err := group.MultiScalarMul(bases, scalars)
		if err != nil {
			return nil, err
		}
		commitments[i] = t
	}

	absorbStatement(tr, stmt, commitments)
	challenge := tr.ChallengeScalar("nizk-challenge")

	responses := make(map[string]group.Scalar, len(names))
	for _, name := range names {
		w := witnesses[name]
		responses[name] = blinds[name].Add(challenge.Mul(w))
	}

	return &Proof{Commitments: commitments, Responses: responses}, nil
}

// Verify checks proof against stmt using the same protocol transcript
// state the prover started from (i.e. tr must have absorbed exactly the
// same prefix of domain label and statement context before this call).
func Verify(tr *transcript.Transcript, stmt Statement, proof *Proof) error {
	if len(proof.Commitments) != len(stmt.Equations) {
		return common.ErrProofVerification
	}
	for _, name := range stmt.witnessNames() {
		if _, ok := proof.Responses[name]; !ok {
			return common.ErrProofVerification
		}
	}
	for _, eq := range stmt.Equations {
		if eq.LHS.IsIdentity() {
			return common.ErrProofVerification
		}
		for _, t := range eq.Terms {
			if t.Base.IsIdentity() {
				return common.ErrProofVerification
			}
		}
	}

	absorbStatement(tr, stmt, proof.Commitments)
	challenge := tr.ChallengeScalar("nizk-challenge")

	for i, eq := range stmt.Equations {
		bases := make([]group.Point, len(eq.Terms))
		scalars := make([]group.Scalar, len(eq.Terms))
		for j, t := range eq.Terms {
			bases[j] = t.Base
			scalars[j] = proof.Responses[t.Witness]
		}
		lhs, err := group.MultiScalarMul(bases, scalars)
		if err != nil {
			return common.ErrProofVerification
		}
		rhs := proof.Commitments[i].Add(eq.LHS.ScalarMul(challenge))
		if !lhs.Equal(rhs) {
			return common.ErrProofVerification
		}
	}
	return nil
}

// absorbStatement feeds an equation's public values and the prover's
// per-equation blinding commitments into the transcript, in a fixed order
// both Prove and Verify follow identically.
func absorbStatement(tr *transcript.Transcript, stmt Statement, commitments []group.Point) {
	for i, eq := range stmt.Equations {
		tr.AppendMessage("eq-label", []byte(eq.Label))
		tr.AppendPoint("eq-lhs", eq.LHS)
		for _, term := range eq.Terms {
			tr.AppendPoint("eq-base", term.Base)
		}
		tr.AppendPoint("eq-commitment", commitments[i])
	}
}
