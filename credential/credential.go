package credential

import (
	"encoding/binary"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
)

// Credential is a held aMAC tag together with the attribute vector it
// authenticates: the holder's complete proof of issuance, serialised as
// count || Tag || m1 || ... || mn (see MarshalBinary).
type Credential struct {
	Tag        amac.Tag
	Attributes []group.Scalar
}

// New wraps a tag and attribute vector as a Credential.
func New(tag amac.Tag, attrs []group.Scalar) *Credential {
	return &Credential{Tag: tag, Attributes: attrs}
}

// MarshalBinary encodes c as attribute count (4 bytes) || Tag (96 bytes) ||
// each attribute (32 bytes).
func (c *Credential) MarshalBinary() ([]byte, error) {
	tagBytes, err := c.Tag.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 4+len(tagBytes)+common.ScalarSize*len(c.Attributes))

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(c.Attributes)))
	out = append(out, countBuf[:]...)
	out = append(out, tagBytes...)
	for _, m := range c.Attributes {
		b := m.Bytes()
		out = append(out, b[:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (c *Credential) UnmarshalBinary(data []byte) error {
	if len(data) < 4+common.PointSize*2 {
		return common.ErrMessageLength
	}
	count := binary.BigEndian.Uint32(data[:4])
	offset := 4

	var tag amac.Tag
	if err := tag.UnmarshalBinary(data[offset : offset+common.PointSize*2]); err != nil {
		return err
	}
	offset += common.PointSize * 2

	want := offset + int(count)*common.ScalarSize
	if want != len(data) {
		return common.ErrMessageLength
	}

	attrs := make([]group.Scalar, count)
	for i := range attrs {
		s, err := group.ScalarFromCanonicalBytes(data[offset : offset+common.ScalarSize])
		if err != nil {
			return err
		}
		attrs[i] = s
		offset += common.ScalarSize
	}

	c.Tag = tag
	c.Attributes = attrs
	return nil
}
