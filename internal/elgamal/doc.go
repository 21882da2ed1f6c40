// Package elgamal implements additively-homomorphic ElGamal encryption over
// the credential scheme's group: a message is a group element, a
// ciphertext is a pair of group elements, and the secret key is cleared
// only when its Zeroize method is called.
package elgamal
