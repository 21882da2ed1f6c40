package issuer

import (
	"crypto/rand"
	"testing"

	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/elgamal"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

func testParams(t *testing.T) *params.SystemParameters {
	t.Helper()
	sp, err := params.NewFromSeed([]byte("issuer package test system parameters seed!!!!"))
	if err != nil {
		t.Fatalf("NewFromSeed: %v", err)
	}
	return sp
}

func randomAttrs(t *testing.T, n int) []group.Scalar {
	t.Helper()
	attrs := make([]group.Scalar, n)
	for i := range attrs {
		s, err := group.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		attrs[i] = s
	}
	return attrs
}

func TestIssueRevealedAndVerify(t *testing.T) {
	sp := testParams(t)
	iss, err := New(sp, 3, rand.Reader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	attrs := randomAttrs(t, 3)

	resp, err := iss.IssueRevealed(attrs, rand.Reader)
	if err != nil {
		t.Fatalf("IssueRevealed: %v", err)
	}

	if err := VerifyIssuance(sp, iss.PublicKey(), attrs, resp); err != nil {
		t.Fatalf("VerifyIssuance: %v", err)
	}
}

func TestIssueRevealedWrongAttributeCount(t *testing.T) {
	sp := testParams(t)
	iss, err := New(sp, 3, rand.Reader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := iss.IssueRevealed(randomAttrs(t, 2), rand.Reader); err == nil {
		t.Fatalf("expected error for mismatched attribute count")
	}
}

func TestVerifyIssuanceRejectsWrongAttributes(t *testing.T) {
	sp := testParams(t)
	iss, err := New(sp, 2, rand.Reader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	attrs := randomAttrs(t, 2)
	resp, err := iss.IssueRevealed(attrs, rand.Reader)
	if err != nil {
		t.Fatalf("IssueRevealed: %v", err)
	}

	wrongAttrs := randomAttrs(t, 2)
	if err := VerifyIssuance(sp, iss.PublicKey(), wrongAttrs, resp); err == nil {
		t.Fatalf("expected verification to fail against different attributes")
	}
}

// blindRequest builds a BlindedAttributeRequest the way user.BlindAttributes
// does, inlined here to keep this package's tests free of a dependency on
// user (which itself depends on issuer).
func blindRequest(t *testing.T, sp *params.SystemParameters, attrs []group.Scalar) (*BlindedAttributeRequest, *elgamal.Keypair) {
	t.Helper()
	kp, err := elgamal.GenerateKeypair(sp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	ciphertexts := make([]elgamal.Ciphertext, len(attrs))
	witnesses := map[string]group.Scalar{"d": kp.Secret.Scalar()}
	for i, m := range attrs {
		c, e, err := elgamal.Encrypt(sp, kp.Public, elgamal.Message{Point: sp.B.ScalarMul(m)}, rand.Reader)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		ciphertexts[i] = c
		witnesses[BlindAttrWitness("m", i)] = m
		witnesses[BlindAttrWitness("e", i)] = e
	}
	stmt := AttributesBlindedStatement(sp, kp.Public, ciphertexts)
	tr := transcript.New(common.DomainIssuance)
	proof, err := nizk.Prove(tr, stmt, witnesses, rand.Reader)
	if err != nil {
		t.Fatalf("nizk.Prove: %v", err)
	}
	return &BlindedAttributeRequest{UserPublicKey: kp.Public, Ciphertexts: ciphertexts, Proof: proof}, kp
}

func TestBlindedIssuanceRoundTrip(t *testing.T) {
	sp := testParams(t)
	iss, err := New(sp, 2, rand.Reader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	attrs := randomAttrs(t, 2)

	req, kp := blindRequest(t, sp, attrs)
	resp, err := iss.CompleteBlindedIssuance(req, rand.Reader)
	if err != nil {
		t.Fatalf("CompleteBlindedIssuance: %v", err)
	}
	if err := VerifyBlindedIssuance(sp, iss.PublicKey(), req, resp); err != nil {
		t.Fatalf("VerifyBlindedIssuance: %v", err)
	}

	v := kp.Secret.Decrypt(resp.EncV)
	want := resp.TagU.ScalarMul(iss.Key.X0)
	for i, xi := range iss.Key.Xs {
		want = want.Add(resp.TagU.ScalarMul(attrs[i]).ScalarMul(xi))
	}
	if !v.Point.Equal(want) {
		t.Fatalf("decrypted tag value did not match the MAC over the blinded attributes")
	}
}

func TestBlindedIssuanceRejectsTamperedCiphertext(t *testing.T) {
	sp := testParams(t)
	iss, err := New(sp, 1, rand.Reader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, _ := blindRequest(t, sp, randomAttrs(t, 1))
	req.Ciphertexts[0] = elgamal.Ciphertext{E0: sp.B, E1: sp.A}
	if _, err := iss.CompleteBlindedIssuance(req, rand.Reader); err == nil {
		t.Fatalf("expected tampered ciphertext to fail attributes_blinded verification")
	}
}
