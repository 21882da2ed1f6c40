package common

import "math/big"

// Order is the order of the BLS12-381 G1 scalar field (the scalar group
// order r). Every Scalar in internal/group is reduced modulo this value.
var Order, _ = new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// Domain separation labels fed into the transcript at the start of each
// protocol run. Both issuance flavours (revealed and blinded) and both
// blinded sub-proofs (attributes_blinded, issuance_blinded) share
// DomainIssuance; each proof's own equation labels provide the
// sub-statement separation within it.
const (
	DomainIssuance = "AEONFLUX ISSUANCE"
	DomainShow     = "AEONFLUX SHOW"
)

// ScalarSize and PointSize are the canonical wire widths used throughout
// the credential stack's binary encodings. A G1 point compresses to 48
// bytes; a scalar reduces to 32 bytes big-endian.
const (
	ScalarSize = 32
	PointSize  = 48
)
