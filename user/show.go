package user

import (
	"io"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
	"github.com/anupsv/aeonflux-credentials/issuer"
)

// Show produces a single-use Presentation of the held credential,
// revealing the attribute indices in reveal and hiding the rest behind
// commitments. Each call rerandomizes the underlying tag, so repeated
// presentations of the same credential are unlinkable from one another.
func (u *User) Show(reveal []int, rng io.Reader) (*issuer.Presentation, error) {
	if u.state != Holding || u.Credential == nil {
		return nil, common.ErrMissingData
	}
	attrs := u.Credential.Attributes
	revealedSet := make(map[int]bool, len(reveal))
	for _, i := range reveal {
		if i < 0 || i >= len(attrs) {
			return nil, common.ErrBadAttribute
		}
		revealedSet[i] = true
	}

	rerand, _, err := amac.Rerandomize(u.Credential.Tag, rng)
	if err != nil {
		return nil, err
	}

	zq, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	cq := rerand.V.Add(u.SystemParams.A.ScalarMul(zq))

	revealed := make(map[int]group.Scalar)
	commitments := make(map[int]group.Point)
	witnesses := map[string]group.Scalar{"neg_zq": zq.Neg()}
	priv := u.SystemParams.A.ScalarMul(zq.Neg())

	for i, m := range attrs {
		if revealedSet[i] {
			revealed[i] = m
			continue
		}
		zi, err := group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		cm := rerand.U.ScalarMul(m).Add(u.SystemParams.A.ScalarMul(zi))
		commitments[i] = cm
		witnesses[issuer.HiddenAttrWitness("m", i)] = m
		witnesses[issuer.HiddenAttrWitness("z", i)] = zi
		priv = priv.Add(u.IssuerPublicKey.Xs[i].ScalarMul(zi))
	}

	p := &issuer.Presentation{
		Tag:         amac.Tag{U: rerand.U},
		CQ:          cq,
		Revealed:    revealed,
		Commitments: commitments,
	}

	stmt := issuer.PresentationStatement(u.SystemParams, u.IssuerPublicKey, p, priv)
	tr := transcript.New(common.DomainShow)
	proof, err := nizk.Prove(tr, stmt, witnesses, rng)
	if err != nil {
		return nil, err
	}
	p.Proof = proof

	return p, nil
}
