package user

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
	"github.com/anupsv/aeonflux-credentials/issuer"
)

// State tracks where a User is in the issuance lifecycle. There is no
// terminal state: Holding loops back to itself across repeated Show
// calls, and a failed ObtainFinish returns to Fresh.
type State int

const (
	Fresh State = iota
	Requested
	Holding
)

// Credential is a held aMAC tag together with the attribute vector it
// authenticates.
type Credential struct {
	Tag        amac.Tag
	Attributes []group.Scalar
}

// User is a credential holder: it tracks one in-flight issuance request
// and, once complete, one held Credential.
type User struct {
	SystemParams    *params.SystemParameters
	IssuerPublicKey *amac.PublicKey

	state State

	pendingAttrs []group.Scalar
	blindKeypair *elgamal.Keypair

	Credential *Credential
}

// New creates a holder bound to an issuer's published parameters and key.
func New(sp *params.SystemParameters, issuerPub *amac.PublicKey) *User {
	return &User{SystemParams: sp, IssuerPublicKey: issuerPub, state: Fresh}
}

// NewWithCredential creates a holder already in the Holding state, for
// callers (such as cmd/credgen) that load a previously-issued Credential
// from storage rather than running Obtain/ObtainFinish in-process.
func NewWithCredential(sp *params.SystemParameters, issuerPub *amac.PublicKey, cred *Credential) *User {
	return &User{SystemParams: sp, IssuerPublicKey: issuerPub, state: Holding, Credential: cred}
}

// State reports the holder's current lifecycle state.
func (u *User) State() State {
	return u.state
}

// Obtain starts a revealed-attribute issuance request: attrs is sent to
// the issuer as-is (IssueRevealed), and u moves to Requested until
// ObtainFinish completes or fails.
func (u *User) Obtain(attrs []group.Scalar) []group.Scalar {
	u.pendingAttrs = attrs
	u.state = Requested
	return attrs
}

// ObtainFinish verifies the issuer's response to a prior Obtain and, on
// success, stores the resulting credential.
func (u *User) ObtainFinish(resp *issuer.IssuanceRevealed) error {
	if u.state != Requested || u.pendingAttrs == nil {
		return common.ErrMissingData
	}
	if err := issuer.VerifyIssuance(u.SystemParams, u.IssuerPublicKey, u.pendingAttrs, resp); err != nil {
		u.state = Fresh
		u.pendingAttrs = nil
		return err
	}
	u.Credential = &Credential{Tag: resp.Tag, Attributes: u.pendingAttrs}
	u.pendingAttrs = nil
	u.state = Holding
	obslog.Infow("obtained revealed credential", "num_attributes", len(u.Credential.Attributes))
	return nil
}

// BlindAttributes starts a blinded-attribute issuance request: it
// generates a fresh ElGamal keypair, encrypts each attribute under it, and
// proves the ciphertexts are well formed. u moves to Requested until
// FinishBlindedIssuance completes or fails.
func (u *User) BlindAttributes(attrs []group.Scalar, rng io.Reader) (*issuer.BlindedAttributeRequest, error) {
	kp, err := elgamal.GenerateKeypair(u.SystemParams, rng)
	if err != nil {
		return nil, err
	}

	ciphertexts := make([]elgamal.Ciphertext, len(attrs))
	witnesses := map[string]group.Scalar{"d": kp.Secret.Scalar()}
	for i, m := range attrs {
		c, e, err := elgamal.Encrypt(u.SystemParams, kp.Public, elgamal.Message{Point: u.SystemParams.B.ScalarMul(m)}, rng)
		if err != nil {
			return nil, err
		}
		ciphertexts[i] = c
		witnesses[issuer.BlindAttrWitness("m", i)] = m
		witnesses[issuer.BlindAttrWitness("e", i)] = e
	}

	stmt := issuer.AttributesBlindedStatement(u.SystemParams, kp.Public, ciphertexts)
	tr := transcript.New(common.DomainIssuance)
	proof, err := nizk.Prove(tr, stmt, witnesses, rng)
	if err != nil {
		return nil, err
	}

	u.pendingAttrs = attrs
	u.blindKeypair = kp
	u.state = Requested

	obslog.Infow("requested blinded credential", "num_attributes", len(attrs))

	return &issuer.BlindedAttributeRequest{
		UserPublicKey: kp.Public,
		Ciphertexts:   ciphertexts,
		Proof:         proof,
	}, nil
}

// FinishBlindedIssuance verifies the issuer's response to a prior
// BlindAttributes, decrypts the resulting tag with the holder's ElGamal
// secret key, and stores the resulting credential.
func (u *User) FinishBlindedIssuance(req *issuer.BlindedAttributeRequest, resp *issuer.BlindedIssuanceResponse) error {
	if u.state != Requested || u.blindKeypair == nil {
		return common.ErrMissingData
	}
	if err := issuer.VerifyBlindedIssuance(u.SystemParams, u.IssuerPublicKey, req, resp); err != nil {
		u.state = Fresh
		u.pendingAttrs, u.blindKeypair = nil, nil
		return err
	}

	v := u.blindKeypair.Secret.Decrypt(resp.EncV)
	u.Credential = &Credential{Tag: amac.Tag{U: resp.TagU, V: v.Point}, Attributes: u.pendingAttrs}
	u.blindKeypair.Secret.Zeroize()
	u.pendingAttrs, u.blindKeypair = nil, nil
	u.state = Holding

	obslog.Infow("obtained blinded credential", "num_attributes", len(u.Credential.Attributes))
	return nil
}
