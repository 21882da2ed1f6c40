// Package group provides the Scalar and Point arithmetic layer every other
// package in this module builds on. It wraps the BLS12-381 G1 subgroup from
// gnark-crypto, giving canonical encode/decode with subgroup-membership
// rejection for points and canonical reduced-form rejection for scalars.
//
// Nothing above this package should reach into gnark-crypto directly; Scalar
// and Point are the only currency the rest of the module trades in.
package group
