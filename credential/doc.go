// Package credential provides the wire format for an issued credential
// (attribute count || Tag || attributes) and a
// Builder for the common case of assembling and issuing one in a single
// call, modelled on the teacher's fluent credential-Builder idiom.
package credential
