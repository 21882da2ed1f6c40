package nizk

import (
	"encoding/binary"
	"sort"

	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
)

// MarshalBinary encodes a Proof as: commitment count (4 bytes) || each
// commitment (48 bytes) || response count (4 bytes) || each response as
// name length (2 bytes) || name || 32-byte scalar, with responses sorted
// by name for a deterministic encoding.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var out []byte

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(p.Commitments)))
	out = append(out, countBuf[:]...)
	for _, c := range p.Commitments {
		b := c.Bytes()
		out = append(out, b[:]...)
	}

	names := make([]string, 0, len(p.Responses))
	for name := range p.Responses {
		names = append(names, name)
	}
	sort.Strings(names)

	binary.BigEndian.PutUint32(countBuf[:], uint32(len(names)))
	out = append(out, countBuf[:]...)
	for _, name := range names {
		var nameLenBuf [2]byte
		binary.BigEndian.PutUint16(nameLenBuf[:], uint16(len(name)))
		out = append(out, nameLenBuf[:]...)
		out = append(out, []byte(name)...)
		b := p.Responses[name].Bytes()
		out = append(out, b[:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (p *Proof) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return common.ErrMessageLength
	}
	offset := 0
	commitCount := binary.BigEndian.Uint32(data[offset:])
	offset += 4

	commitments := make([]group.Point, 0, commitCount)
	for i := uint32(0); i < commitCount; i++ {
		if offset+common.PointSize > len(data) {
			return common.ErrMessageLength
		}
		pt, err := group.PointFromCanonicalBytes(data[offset : offset+common.PointSize])
		if err != nil {
			return err
		}
		commitments = append(commitments, pt)
		offset += common.PointSize
	}

	if offset+4 > len(data) {
		return common.ErrMessageLength
	}
	respCount := binary.BigEndian.Uint32(data[offset:])
	offset += 4

	responses := make(map[string]group.Scalar, respCount)
	for i := uint32(0); i < respCount; i++ {
		if offset+2 > len(data) {
			return common.ErrMessageLength
		}
		nameLen := int(binary.BigEndian.Uint16(data[offset:]))
		offset += 2
		if offset+nameLen+common.ScalarSize > len(data) {
			return common.ErrMessageLength
		}
		name := string(data[offset : offset+nameLen])
		offset += nameLen
		s, err := group.ScalarFromCanonicalBytes(data[offset : offset+common.ScalarSize])
		if err != nil {
			return err
		}
		offset += common.ScalarSize
		responses[name] = s
	}

	if offset != len(data) {
		return common.ErrMessageLength
	}

	p.Commitments = commitments
	p.Responses = responses
	return nil
}
