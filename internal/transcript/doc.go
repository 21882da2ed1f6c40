// Package transcript implements a Merlin-style Fiat-Shamir transcript: a
// domain-separated duplex construction built on cSHAKE256. Every NIZK proof
// in this module binds its challenge to everything appended to a
// Transcript before ChallengeScalar is called, so statements cannot be
// replayed across unrelated protocol runs or have their order rearranged
// without changing the challenge.
package transcript
