package issuer

import (
	"fmt"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/elgamal"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

// BlindAttrWitness names the per-attribute witnesses ("m0", "e0", ...)
// shared between AttributesBlindedStatement and the prover that builds a
// BlindedAttributeRequest (see user.BlindAttributes).
func BlindAttrWitness(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i)
}

// AttributesBlindedStatement builds the Statement a user proves (and the
// issuer verifies) when submitting ElGamal-encrypted attributes for
// blinded issuance: knowledge of d such that UserPublicKey = d*B, and for
// each attribute (m_i, e_i) such that Ciphertexts[i] encrypts m_i*B under
// that key with nonce e_i.
func AttributesBlindedStatement(sp *params.SystemParameters, userPub elgamal.PublicKey, ciphertexts []elgamal.Ciphertext) nizk.Statement {
	equations := []nizk.Equation{
		{Label: "D", LHS: userPub.D, Terms: []nizk.Term{{Base: sp.B, Witness: "d"}}},
	}
	for i, c := range ciphertexts {
		mName := BlindAttrWitness("m", i)
		eName := BlindAttrWitness("e", i)
		equations = append(equations,
			nizk.Equation{
				Label: fmt.Sprintf("C1_%d", i),
				LHS:   c.E0,
				Terms: []nizk.Term{{Base: sp.B, Witness: eName}},
			},
			nizk.Equation{
				Label: fmt.Sprintf("C2_%d", i),
				LHS:   c.E1,
				Terms: []nizk.Term{{Base: sp.B, Witness: mName}, {Base: userPub.D, Witness: eName}},
			},
		)
	}
	return nizk.Statement{Equations: equations}
}

func verifyAttributesBlindedProof(sp *params.SystemParameters, req *BlindedAttributeRequest) error {
	stmt := AttributesBlindedStatement(sp, req.UserPublicKey, req.Ciphertexts)
	tr := transcript.New(common.DomainIssuance)
	if err := nizk.Verify(tr, stmt, req.Proof); err != nil {
		return common.ErrProofVerification
	}
	return nil
}

// issuanceBlindedStatement builds the Statement the issuer proves (and the
// user verifies) binding together: the Cx0 commitment to x0, the issuer's
// own encryption T0 of x0*B, the per-attribute homomorphic scaling of the
// user's ciphertexts by the same x_i committed to in the public key, and
// the final rescale of the combined ciphertext EncW (decrypting to
// (x0+sum x_i*m_i)*B) by u onto the tag base U = u*B, producing EncV
// (decrypting to (x0+sum x_i*m_i)*U). Every step after the per-attribute
// scaling is linear in a single fresh secret (u), which is what keeps the
// whole thing expressible as one Schnorr conjunction: u is never
// multiplied against another secret inside the proved relations, only
// against the already-public ciphertext components of EncW.
func issuanceBlindedStatement(
	sp *params.SystemParameters,
	pub *amac.PublicKey,
	userPub elgamal.PublicKey,
	ciphertexts []elgamal.Ciphertext,
	scaled []elgamal.Ciphertext,
	t0 elgamal.Ciphertext,
	cx0 group.Point,
	encW elgamal.Ciphertext,
	tagU group.Point,
	encV elgamal.Ciphertext,
) nizk.Statement {
	equations := []nizk.Equation{
		{Label: "Cx0", LHS: cx0, Terms: []nizk.Term{
			{Base: sp.B, Witness: "x0"},
			{Base: sp.A, Witness: "x0_tilde"},
		}},
		{Label: "T0_E0", LHS: t0.E0, Terms: []nizk.Term{{Base: sp.B, Witness: "t0"}}},
		{Label: "T0_E1", LHS: t0.E1, Terms: []nizk.Term{
			{Base: sp.B, Witness: "x0"},
			{Base: userPub.D, Witness: "t0"},
		}},
		{Label: "U", LHS: tagU, Terms: []nizk.Term{{Base: sp.B, Witness: "u"}}},
		{Label: "EncV_E0", LHS: encV.E0, Terms: []nizk.Term{{Base: encW.E0, Witness: "u"}}},
		{Label: "EncV_E1", LHS: encV.E1, Terms: []nizk.Term{{Base: encW.E1, Witness: "u"}}},
	}
	for i, xi := range pub.Xs {
		name := attrWitnessName(i)
		equations = append(equations,
			nizk.Equation{Label: fmt.Sprintf("X_%d", i), LHS: xi, Terms: []nizk.Term{{Base: sp.A, Witness: name}}},
			nizk.Equation{Label: fmt.Sprintf("scaledE0_%d", i), LHS: scaled[i].E0, Terms: []nizk.Term{{Base: ciphertexts[i].E0, Witness: name}}},
			nizk.Equation{Label: fmt.Sprintf("scaledE1_%d", i), LHS: scaled[i].E1, Terms: []nizk.Term{{Base: ciphertexts[i].E1, Witness: name}}},
		)
	}
	return nizk.Statement{Equations: equations}
}
