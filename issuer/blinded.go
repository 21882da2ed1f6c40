package issuer

import (
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/elgamal"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/obslog"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

// BlindedAttributeRequest is what a user sends to request a credential over
// attributes it wants to keep hidden from the issuer: ElGamal ciphertexts
// on each attribute under its own key, and a proof that every ciphertext
// is well formed.
type BlindedAttributeRequest struct {
	UserPublicKey elgamal.PublicKey
	Ciphertexts   []elgamal.Ciphertext // encrypts m_i*B under UserPublicKey
	Proof         *nizk.Proof
}

// BlindedIssuanceResponse is the issuer's reply: an ElGamal-encrypted tag
// value the user decrypts with its own secret key, plus a proof that the
// encrypted value was correctly assembled from the issuer's committed MAC
// key and the user's ciphertexts. Scaled, T0 and EncW are the
// intermediate values the proof's equations reference; EncV is their
// final rescale onto the tag base U, kept separately so the user does not
// have to re-derive it.
type BlindedIssuanceResponse struct {
	TagU   group.Point
	EncV   elgamal.Ciphertext
	Scaled []elgamal.Ciphertext
	T0     elgamal.Ciphertext
	EncW   elgamal.Ciphertext
	Cx0    group.Point
	Proof  *nizk.Proof
}

// CompleteBlindedIssuance verifies req, then homomorphically assembles an
// encryption of V = U*(x0 + sum(x_i*m_i)) without ever learning any m_i.
// For each attribute it scales the user's ciphertext Enc(m_i*B) by the
// issuer's secret x_i (ciphertext scalar multiplication is homomorphic:
// x_i*(E0,E1) decrypts to x_i*m_i*B), adds its own encryption of x0*B to
// get EncW (decrypting to W = (x0+sum x_i*m_i)*B), then rescales the whole
// ciphertext by a fresh u to get EncV = u*EncW (decrypting to u*W, which
// equals (x0+sum x_i*m_i)*U for U = u*B). A proof binds every x_i used to
// the one committed in the issuer's public key and u to the published U.
func (iss *Issuer) CompleteBlindedIssuance(req *BlindedAttributeRequest, rng io.Reader) (*BlindedIssuanceResponse, error) {
	n := len(iss.Key.Xs)
	if len(req.Ciphertexts) != n {
		return nil, common.ErrWrongNumberOfAttributes
	}

	if err := verifyAttributesBlindedProof(iss.SystemParams, req); err != nil {
		return nil, err
	}

	x0Tilde, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	cx0 := iss.SystemParams.B.ScalarMul(iss.Key.X0).Add(iss.SystemParams.A.ScalarMul(x0Tilde))

	t0, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	t0Ciphertext := elgamal.EncryptWithNonce(iss.SystemParams, req.UserPublicKey, elgamal.Message{Point: iss.SystemParams.B.ScalarMul(iss.Key.X0)}, t0)

	scaled := make([]elgamal.Ciphertext, n)
	encW := t0Ciphertext
	for i, xi := range iss.Key.Xs {
		scaled[i] = elgamal.Ciphertext{
			E0: req.Ciphertexts[i].E0.ScalarMul(xi),
			E1: req.Ciphertexts[i].E1.ScalarMul(xi),
		}
		encW = encW.Add(scaled[i])
	}

	u, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	tagU := iss.SystemParams.B.ScalarMul(u)
	encV := elgamal.Ciphertext{E0: encW.E0.ScalarMul(u), E1: encW.E1.ScalarMul(u)}

	stmt := issuanceBlindedStatement(iss.SystemParams, iss.PublicKey(), req.UserPublicKey, req.Ciphertexts, scaled, t0Ciphertext, cx0, encW, tagU, encV)
	witnesses := map[string]group.Scalar{"x0": iss.Key.X0, "x0_tilde": x0Tilde, "t0": t0, "u": u}
	for i, xi := range iss.Key.Xs {
		witnesses[attrWitnessName(i)] = xi
	}

	tr := transcript.New(common.DomainIssuance)
	proof, err := nizk.Prove(tr, stmt, witnesses, rng)
	if err != nil {
		return nil, err
	}

	obslog.Infow("completed blinded credential issuance", "num_attributes", n)

	return &BlindedIssuanceResponse{
		TagU:   tagU,
		EncV:   encV,
		Scaled: scaled,
		T0:     t0Ciphertext,
		EncW:   encW,
		Cx0:    cx0,
		Proof:  proof,
	}, nil
}

// VerifyBlindedIssuance checks resp against pub and req. On success the
// caller can decrypt resp.EncV with its own ElGamal secret key to recover
// V, completing the tag (resp.TagU, V).
func VerifyBlindedIssuance(sp *params.SystemParameters, pub *amac.PublicKey, req *BlindedAttributeRequest, resp *BlindedIssuanceResponse) error {
	n := len(pub.Xs)
	if len(req.Ciphertexts) != n || len(resp.Scaled) != n {
		return common.ErrWrongNumberOfAttributes
	}

	sumCheck := resp.T0
	for _, s := range resp.Scaled {
		sumCheck = sumCheck.Add(s)
	}
	if !sumCheck.E0.Equal(resp.EncW.E0) || !sumCheck.E1.Equal(resp.EncW.E1) {
		return common.ErrProofVerification
	}

	stmt := issuanceBlindedStatement(sp, pub, req.UserPublicKey, req.Ciphertexts, resp.Scaled, resp.T0, resp.Cx0, resp.EncW, resp.TagU, resp.EncV)
	tr := transcript.New(common.DomainIssuance)
	if err := nizk.Verify(tr, stmt, resp.Proof); err != nil {
		return common.ErrProofVerification
	}
	return nil
}
