package credential

import (
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/issuer"
)

// Builder assembles a revealed-attribute Credential in one call: add
// attributes, then Issue against an Issuer. It is a convenience over
// Issuer.IssueRevealed + issuer.VerifyIssuance for callers that do not need
// the unhidden attribute request / response split those give a holder.
type Builder struct {
	attrs []group.Scalar
}

// NewBuilder starts an empty attribute vector.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddAttribute appends the next attribute value.
func (b *Builder) AddAttribute(value group.Scalar) *Builder {
	b.attrs = append(b.attrs, value)
	return b
}

// Issue requests a credential over the accumulated attributes from iss and
// verifies the issuer's proof before returning it.
func (b *Builder) Issue(sp *params.SystemParameters, pub *amac.PublicKey, iss *issuer.Issuer, rng io.Reader) (*Credential, error) {
	if len(b.attrs) != len(pub.Xs) {
		return nil, common.ErrWrongNumberOfAttributes
	}
	resp, err := iss.IssueRevealed(b.attrs, rng)
	if err != nil {
		return nil, err
	}
	if err := issuer.VerifyIssuance(sp, pub, b.attrs, resp); err != nil {
		return nil, err
	}
	return &Credential{Tag: resp.Tag, Attributes: b.attrs}, nil
}
