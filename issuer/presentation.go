package issuer

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

// Presentation is what a holder sends to re-prove possession of a valid
// credential without revealing its hidden attributes. Tag.U is P from a
// freshly rerandomized MAC (P, Q'); Tag.V is left as the identity, and Q'
// is sent only blinded inside CQ = Q' + z_q*A, so the verifier cannot read
// it off directly; every attribute index is either revealed in the clear
// (Revealed) or hidden behind a commitment against P (Commitments).
type Presentation struct {
	Tag         amac.Tag
	CQ          group.Point
	Revealed    map[int]group.Scalar
	Commitments map[int]group.Point // Cm_i = m_i*Tag.U + z_i*A, hidden indices only
	Proof       *nizk.Proof
}

// HiddenAttrWitness names the per-hidden-attribute witnesses ("m0", "z0",
// ...) shared between PresentationStatement and the prover that builds a
// Presentation (see user.Show).
func HiddenAttrWitness(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i)
}

// PresentationStatement builds the Statement shared by the prover
// (user.Show) and the verifier (Issuer.Verify): for each hidden attribute
// index, Cm_i opens to (m_i, z_i) against P, and those same z_i (together
// with negZQ = -z_q) reconstruct priv, the "error term" the issuer
// independently recomputes from its secret key. See Issuer.Verify for why
// the two sides agree when the presentation is valid.
func PresentationStatement(sp *params.SystemParameters, pub *amac.PublicKey, p *Presentation, priv group.Point) nizk.Statement {
	indices := make([]int, 0, len(p.Commitments))
	for i := range p.Commitments {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var equations []nizk.Equation
	privTerms := make([]nizk.Term, 0, len(indices)+1)
	for _, i := range indices {
		mName := HiddenAttrWitness("m", i)
		zName := HiddenAttrWitness("z", i)
		equations = append(equations, nizk.Equation{
			Label: fmt.Sprintf("Cm_%d", i),
			LHS:   p.Commitments[i],
			Terms: []nizk.Term{{Base: p.Tag.U, Witness: mName}, {Base: sp.A, Witness: zName}},
		})
		privTerms = append(privTerms, nizk.Term{Base: pub.Xs[i], Witness: zName})
	}
	privTerms = append(privTerms, nizk.Term{Base: sp.A, Witness: "neg_zq"})
	equations = append(equations, nizk.Equation{Label: "priv", LHS: priv, Terms: privTerms})
	return nizk.Statement{Equations: equations}
}

// Verify checks a presented credential against the issuer's own secret
// key: that its rerandomized tag is well-formed, and that the hidden
// attributes' commitments together with the revealed attributes
// reconstruct the tag's MAC value.
//
// The verifier recomputes
//
//	V'' = x0*P + sum_revealed(x_i*m_i)*P + sum_hidden(x_i*Cm_i) - CQ
//
// and checks the valid_credential NIZK against that as the "priv" public
// value. Expanding sum_hidden(x_i*Cm_i) = sum_hidden(x_i*m_i*P + x_i*z_i*A)
// folds the MAC reconstruction x0*P + sum_all(x_i*m_i)*P into Q', which
// cancels against CQ = Q' + z_q*A, leaving V'' = sum_hidden(z_i*X_i) -
// z_q*A: exactly the value the prover computed directly from its own
// z_i, z_q and the issuer's public X_i (see user.Show), without ever
// needing the issuer's secret key.
func (iss *Issuer) Verify(p *Presentation) error {
	if p.Tag.U.IsIdentity() {
		return common.ErrMacVerification
	}
	n := len(iss.Key.Xs)
	for i := range p.Revealed {
		if i < 0 || i >= n {
			return common.ErrBadAttribute
		}
	}
	for i := range p.Commitments {
		if i < 0 || i >= n {
			return common.ErrBadAttribute
		}
	}
	if len(p.Revealed)+len(p.Commitments) != n {
		return common.ErrWrongNumberOfAttributes
	}

	vpp := p.Tag.U.ScalarMul(iss.Key.X0)
	for i, m := range p.Revealed {
		vpp = vpp.Add(p.Tag.U.ScalarMul(m).ScalarMul(iss.Key.Xs[i]))
	}
	for i, cm := range p.Commitments {
		vpp = vpp.Add(cm.ScalarMul(iss.Key.Xs[i]))
	}
	vpp = vpp.Sub(p.CQ)

	stmt := PresentationStatement(iss.SystemParams, iss.PublicKey(), p, vpp)
	tr := transcript.New(common.DomainShow)
	if err := nizk.Verify(tr, stmt, p.Proof); err != nil {
		return common.ErrMacVerification
	}
	return nil
}

// MarshalBinary encodes p as Tag || CQ || revealed entries || commitment
// entries || proof, each variable-length section prefixed with its entry
// count so UnmarshalBinary can recover index-to-value association exactly
// (map iteration order is not itself meaningful).
func (p *Presentation) MarshalBinary() ([]byte, error) {
	tagBytes, err := p.Tag.MarshalBinary()
	if err != nil {
		return nil, err
	}
	proofBytes, err := p.Proof.MarshalBinary()
	if err != nil {
		return nil, err
	}

	var out []byte
	out = append(out, tagBytes...)
	cq := p.CQ.Bytes()
	out = append(out, cq[:]...)

	revealedIdx := sortedKeys(p.Revealed)
	out = appendUint32(out, uint32(len(revealedIdx)))
	for _, i := range revealedIdx {
		out = appendUint32(out, uint32(i))
		b := p.Revealed[i].Bytes()
		out = append(out, b[:]...)
	}

	commitIdx := sortedKeysPoint(p.Commitments)
	out = appendUint32(out, uint32(len(commitIdx)))
	for _, i := range commitIdx {
		out = appendUint32(out, uint32(i))
		b := p.Commitments[i].Bytes()
		out = append(out, b[:]...)
	}

	out = appendUint32(out, uint32(len(proofBytes)))
	out = append(out, proofBytes...)
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (p *Presentation) UnmarshalBinary(data []byte) error {
	if len(data) < common.PointSize*3 {
		return common.ErrMessageLength
	}
	offset := 0

	var tag amac.Tag
	if err := tag.UnmarshalBinary(data[offset : offset+common.PointSize*2]); err != nil {
		return err
	}
	offset += common.PointSize * 2

	cq, err := group.PointFromCanonicalBytes(data[offset : offset+common.PointSize])
	if err != nil {
		return err
	}
	offset += common.PointSize

	revealed := make(map[int]group.Scalar)
	n, offset2, err := readUint32(data, offset)
	if err != nil {
		return err
	}
	offset = offset2
	for i := uint32(0); i < n; i++ {
		idx, o, err := readUint32(data, offset)
		if err != nil {
			return err
		}
		offset = o
		if offset+common.ScalarSize > len(data) {
			return common.ErrMessageLength
		}
		s, err := group.ScalarFromCanonicalBytes(data[offset : offset+common.ScalarSize])
		if err != nil {
			return err
		}
		offset += common.ScalarSize
		revealed[int(idx)] = s
	}

	commitments := make(map[int]group.Point)
	n, offset, err = readUint32(data, offset)
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		idx, o, err := readUint32(data, offset)
		if err != nil {
			return err
		}
		offset = o
		if offset+common.PointSize > len(data) {
			return common.ErrMessageLength
		}
		pt, err := group.PointFromCanonicalBytes(data[offset : offset+common.PointSize])
		if err != nil {
			return err
		}
		offset += common.PointSize
		commitments[int(idx)] = pt
	}

	proofLen, offset3, err := readUint32(data, offset)
	if err != nil {
		return err
	}
	offset = offset3
	if offset+int(proofLen) != len(data) {
		return common.ErrMessageLength
	}
	var proof nizk.Proof
	if err := proof.UnmarshalBinary(data[offset:]); err != nil {
		return err
	}

	p.Tag = tag
	p.CQ = cq
	p.Revealed = revealed
	p.Commitments = commitments
	p.Proof = &proof
	return nil
}

func sortedKeys(m map[int]group.Scalar) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedKeysPoint(m map[int]group.Point) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func appendUint32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func readUint32(data []byte, offset int) (uint32, int, error) {
	if offset+4 > len(data) {
		return 0, 0, common.ErrMessageLength
	}
	return binary.BigEndian.Uint32(data[offset:]), offset + 4, nil
}
