// Package nizk is a small declarative engine for non-interactive
// zero-knowledge proofs of knowledge of a conjunction of linear relations
// (a generalized Schnorr/Okamoto representation proof), made
// non-interactive via Fiat-Shamir over an internal/transcript.Transcript.
//
// A Statement is a set of equations of the form
//
//	LHS = sum_k( Base_k * witness_k )
//
// where LHS and Base_k are public group elements and witness_k is a named
// secret scalar. Multiple equations can share witness names, which is how
// this engine expresses "the same attribute opens both this Pedersen
// commitment and this MAC checkpoint equation" without a bespoke proof
// type per protocol step. Every protocol-specific statement (issuance,
// blinded issuance, presentation) is built directly out of Equation/Term
// values by its owning package rather than by adding cases here.
package nizk
