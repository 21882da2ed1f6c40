// Package user implements the credential holder role: requesting
// credentials over attributes either in the clear (Obtain/ObtainFinish) or
// ElGamal-encrypted so the issuer never learns them
// (BlindAttributes/FinishBlindedIssuance), and presenting a held credential
// with a chosen subset of attributes revealed (Show).
package user
