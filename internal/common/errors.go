package common

import "errors"

// Sentinel errors surfaced by the credential stack. Each maps directly to
// one of the MacError / CredentialError variants of the scheme this module
// implements; callers are expected to use errors.Is against these values
// rather than parse error strings.
var (
	// ErrPointDecode is returned when a byte string does not decode to a
	// valid, canonically-encoded group element.
	ErrPointDecode = errors.New("aeonflux: invalid group element encoding")

	// ErrScalarFormat is returned when a byte string is not the canonical
	// 32-byte big-endian encoding of a scalar reduced modulo the group order.
	ErrScalarFormat = errors.New("aeonflux: invalid scalar encoding")

	// ErrMessageLength is returned when a byte slice has the wrong length
	// for the value being decoded.
	ErrMessageLength = errors.New("aeonflux: wrong-length input")

	// ErrMacCreation reports a failure to construct a MAC. A wrong-length
	// attribute vector is reported as ErrWrongNumberOfAttributes instead.
	ErrMacCreation = errors.New("aeonflux: mac creation failed")

	// ErrMacVerification is returned when an algebraic MAC tag fails to
	// verify against the presented attributes.
	ErrMacVerification = errors.New("aeonflux: mac verification failed")

	// ErrProofVerification is returned when a zero-knowledge proof fails
	// to verify.
	ErrProofVerification = errors.New("aeonflux: proof verification failed")

	// ErrMissingData is returned when an operation is attempted before its
	// prerequisite state has been populated.
	ErrMissingData = errors.New("aeonflux: missing required data")

	// ErrNoIssuerKey is returned when an issuer operation is attempted
	// without a secret key loaded.
	ErrNoIssuerKey = errors.New("aeonflux: no issuer secret key")

	// ErrNoIssuerParameters is returned when an operation needs the
	// issuer's public parameters and none are set.
	ErrNoIssuerParameters = errors.New("aeonflux: no issuer parameters")

	// ErrNoSystemParameters is returned when an operation needs the shared
	// system parameters and none are set.
	ErrNoSystemParameters = errors.New("aeonflux: no system parameters")

	// ErrWrongNumberOfAttributes is returned when an attribute vector's
	// length does not match what the issuer key or credential expects.
	ErrWrongNumberOfAttributes = errors.New("aeonflux: wrong number of attributes")

	// ErrBadAttribute is returned when an attribute index is out of range
	// for the credential (in user.Show and Issuer.Verify).
	ErrBadAttribute = errors.New("aeonflux: bad attribute value")

	// ErrPhoneNumberLength is returned by phonenumber.Encode when the
	// input digit string cannot fit in the fixed-width scalar encoding.
	ErrPhoneNumberLength = errors.New("aeonflux: phone number too long to encode")

	// ErrVerificationFailure is a catch-all for presentation verification
	// failures that are not more specifically one of the above.
	ErrVerificationFailure = errors.New("aeonflux: credential verification failed")
)
