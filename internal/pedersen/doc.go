// Package pedersen implements the two-generator Pedersen commitment used
// throughout the credential scheme: Commit(v, z) = v*B + z*A, where B and A
// come from a shared params.SystemParameters. It is unconditionally hiding
// (z alone determines the distribution) and computationally binding under
// the discrete-log assumption on the group.
package pedersen
