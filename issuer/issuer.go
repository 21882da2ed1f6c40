package issuer

import (
	"fmt"
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/obslog"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

// Issuer holds the algebraic MAC secret key and the system parameters it
// was generated under.
type Issuer struct {
	SystemParams *params.SystemParameters
	Key          *amac.SecretKey
}

// New generates a fresh issuer key supporting numAttributes attributes.
func New(sp *params.SystemParameters, numAttributes int, rng io.Reader) (*Issuer, error) {
	key, err := amac.GenerateSecretKey(numAttributes, rng)
	if err != nil {
		return nil, err
	}
	return &Issuer{SystemParams: sp, Key: key}, nil
}

// PublicKey returns the issuer's published MAC public key.
func (iss *Issuer) PublicKey() *amac.PublicKey {
	return iss.Key.Public(iss.SystemParams)
}

// IssuanceRevealed is what an issuer sends back in response to a request
// for credentials over attributes it was told in the clear.
type IssuanceRevealed struct {
	Tag   amac.Tag
	Cx0   group.Point
	Proof *nizk.Proof
}

// IssueRevealed creates a tag over attrs and a proof that it was formed
// correctly under the issuer's committed key, without revealing x0..xn
// themselves. attrs are known to both parties; hiding them from the
// issuer is what user.BlindAttributes/CompleteBlindedIssuance is for.
func (iss *Issuer) IssueRevealed(attrs []group.Scalar, rng io.Reader) (*IssuanceRevealed, error) {
	if len(attrs) != len(iss.Key.Xs) {
		return nil, common.ErrWrongNumberOfAttributes
	}

	tag, err := iss.Key.Create(iss.SystemParams, attrs, rng)
	if err != nil {
		return nil, err
	}

	x0Tilde, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	cx0 := iss.SystemParams.B.ScalarMul(iss.Key.X0).Add(iss.SystemParams.A.ScalarMul(x0Tilde))

	stmt := revealedIssuanceStatement(iss.SystemParams, iss.PublicKey(), tag, attrs, cx0)
	witnesses := map[string]group.Scalar{"x0": iss.Key.X0, "x0_tilde": x0Tilde}
	for i, xi := range iss.Key.Xs {
		witnesses[attrWitnessName(i)] = xi
	}

	tr := transcript.New(common.DomainIssuance)
	proof, err := nizk.Prove(tr, stmt, witnesses, rng)
	if err != nil {
		return nil, err
	}

	obslog.Infow("issued revealed credential", "num_attributes", len(attrs))

	return &IssuanceRevealed{Tag: tag, Cx0: cx0, Proof: proof}, nil
}

func attrWitnessName(i int) string {
	return fmt.Sprintf("x%d", i+1)
}

// VerifyIssuance checks resp against a public key pub (typically the
// issuer's own, fetched independently by the user rather than trusted from
// resp itself). attrs must be the same attributes the user requested.
func VerifyIssuance(sp *params.SystemParameters, pub *amac.PublicKey, attrs []group.Scalar, resp *IssuanceRevealed) error {
	if len(attrs) != len(pub.Xs) {
		return common.ErrWrongNumberOfAttributes
	}
	stmt := revealedIssuanceStatement(sp, pub, resp.Tag, attrs, resp.Cx0)
	tr := transcript.New(common.DomainIssuance)
	if err := nizk.Verify(tr, stmt, resp.Proof); err != nil {
		return common.ErrProofVerification
	}
	return nil
}

// revealedIssuanceStatement builds the Statement both IssueRevealed (as
// prover) and VerifyIssuance (as verifier) check: knowledge of x0, x0_tilde
// and x1..xn such that the tag opens to attrs under the issuer's public
// key, and x0 is consistently bound into the accompanying Cx0 commitment.
func revealedIssuanceStatement(
	sp *params.SystemParameters, pub *amac.PublicKey, tag amac.Tag, attrs []group.Scalar, cx0 group.Point,
) nizk.Statement {
	terms := []nizk.Term{{Base: tag.U, Witness: "x0"}}
	for i, m := range attrs {
		terms = append(terms, nizk.Term{Base: tag.U.ScalarMul(m), Witness: attrWitnessName(i)})
	}
	equations := []nizk.Equation{
		{Label: "V", LHS: tag.V, Terms: terms},
		{Label: "Cx0", LHS: cx0, Terms: []nizk.Term{
			{Base: sp.B, Witness: "x0"},
			{Base: sp.A, Witness: "x0_tilde"},
		}},
	}
	for i, xi := range pub.Xs {
		equations = append(equations, nizk.Equation{
			Label: fmt.Sprintf("X_%d", i),
			LHS:   xi,
			Terms: []nizk.Term{{Base: sp.A, Witness: attrWitnessName(i)}},
		})
	}
	return nizk.Statement{Equations: equations}
}
