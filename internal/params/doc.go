// Package params holds the SystemParameters shared by every issuer and
// user in a deployment: the two independent generators B and A that every
// Pedersen commitment, ElGamal ciphertext, and MAC tag is built from.
package params
