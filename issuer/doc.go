// Package issuer implements the credential issuer role: holding the
// algebraic MAC secret key, issuing credentials over attributes supplied
// either in the clear (IssueRevealed) or ElGamal-encrypted so the issuer
// never learns them (CompleteBlindedIssuance, answering a request built by
// user.BlindAttributes), and
// verifying presented credentials (Verify, VerifyBatch).
package issuer
