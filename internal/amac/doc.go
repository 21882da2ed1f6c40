// Package amac implements the CMZ'13 algebraic MAC (MAC_GGM): a keyed,
// rerandomizable message authentication code over vectors of group scalars,
// whose algebraic structure is what lets the presentation protocol prove
// tag validity in zero knowledge without revealing the attributes or the
// tag itself in a linkable form.
//
// A tag for attributes (m_1..m_n) under secret key (x0, x1..xn) is
// (U, V) = (U, U*(x0 + sum_i(x_i*m_i))) for a random non-identity U. The
// corresponding public key component is X_i = A*x_i for each attribute
// index, published so a holder without the secret key can still be
// convinced (via the NIZK engine) that an issued tag was formed correctly.
// Presentations are verified by the issuer, which uses the secret key.
package amac
