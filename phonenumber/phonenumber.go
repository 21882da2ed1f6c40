// Package phonenumber implements the fixed-width scalar attribute encoding
// for phone-number credential attributes: a digit string canonicalised into
// a single group.Scalar so that the same phone number always commits to the
// same attribute value, and strings differing only in leading zeroes commit
// to distinct values. Digits are packed little-endian, so trailing zero
// digits only add zero high nibbles: "123" and "1230" encode to the same
// scalar.
package phonenumber

import (
	"math/big"

	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
)

// maxDigits is the largest digit count Encode accepts: 30 digit nibbles
// plus the two sentinel nibbles exactly fill the low 16 bytes of the
// 32-byte scalar.
const maxDigits = 30

// Encode canonicalises digits into the fixed-width scalar attribute
// encoding: two sentinel nibbles (0xF, 0xF) disambiguate phone numbers with
// significant leading zeroes, followed by one nibble per input rune holding
// its literal decimal value; any non-digit rune is replaced by a 0xF
// nibble. Remaining nibbles are zero. Inputs longer than maxDigits are
// rejected with ErrPhoneNumberLength.
func Encode(digits string) (group.Scalar, error) {
	runes := []rune(digits)
	if len(runes) > maxDigits {
		return group.Scalar{}, common.ErrPhoneNumberLength
	}

	nibbles := make([]byte, 0, len(runes)+2)
	nibbles = append(nibbles, 0xF, 0xF)
	for _, r := range runes {
		if r >= '0' && r <= '9' {
			nibbles = append(nibbles, byte(r-'0'))
		} else {
			nibbles = append(nibbles, 0xF)
		}
	}

	var little [32]byte
	for i, n := range nibbles {
		byteIdx := i / 2
		if i%2 == 0 {
			little[byteIdx] |= n
		} else {
			little[byteIdx] |= n << 4
		}
	}

	var big32 [32]byte
	for i, b := range little {
		big32[len(big32)-1-i] = b
	}
	return group.ScalarFromBigInt(new(big.Int).SetBytes(big32[:])), nil
}
