package credential

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/issuer"
)

func testParams(t *testing.T) *params.SystemParameters {
	t.Helper()
	sp, err := params.NewFromSeed([]byte("credential package test system parameters seed"))
	if err != nil {
		t.Fatalf("NewFromSeed: %v", err)
	}
	return sp
}

func TestBuilderIssueRoundTrip(t *testing.T) {
	sp := testParams(t)
	iss, err := issuer.New(sp, 2, rand.Reader)
	if err != nil {
		t.Fatalf("issuer.New: %v", err)
	}

	a, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	b, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	cred, err := NewBuilder().AddAttribute(a).AddAttribute(b).Issue(sp, iss.PublicKey(), iss, rand.Reader)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(cred.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(cred.Attributes))
	}
}

func TestBuilderIssueRejectsWrongAttributeCount(t *testing.T) {
	sp := testParams(t)
	iss, err := issuer.New(sp, 2, rand.Reader)
	if err != nil {
		t.Fatalf("issuer.New: %v", err)
	}
	a, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	if _, err := NewBuilder().AddAttribute(a).Issue(sp, iss.PublicKey(), iss, rand.Reader); err == nil {
		t.Fatalf("expected error for mismatched attribute count")
	}
}

func TestCredentialMarshalRoundTrip(t *testing.T) {
	sp := testParams(t)
	iss, err := issuer.New(sp, 3, rand.Reader)
	if err != nil {
		t.Fatalf("issuer.New: %v", err)
	}
	attrs := make([]group.Scalar, 3)
	builder := NewBuilder()
	for i := range attrs {
		s, err := group.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		attrs[i] = s
		builder.AddAttribute(s)
	}
	cred, err := builder.Issue(sp, iss.PublicKey(), iss, rand.Reader)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	encoded, err := cred.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var decoded Credential
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !decoded.Tag.U.Equal(cred.Tag.U) || !decoded.Tag.V.Equal(cred.Tag.V) {
		t.Fatalf("decoded tag did not match original")
	}
	if len(decoded.Attributes) != len(cred.Attributes) {
		t.Fatalf("decoded attribute count mismatch")
	}
	for i := range cred.Attributes {
		if !decoded.Attributes[i].Equal(cred.Attributes[i]) {
			t.Fatalf("decoded attribute %d mismatch", i)
		}
	}

	truncated := encoded[:len(encoded)-1]
	var bad Credential
	if err := bad.UnmarshalBinary(truncated); err == nil {
		t.Fatalf("expected truncated input to fail to unmarshal")
	}
}

func TestCredentialMarshalRejectsBitFlip(t *testing.T) {
	sp := testParams(t)
	iss, err := issuer.New(sp, 1, rand.Reader)
	if err != nil {
		t.Fatalf("issuer.New: %v", err)
	}
	a, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	cred, err := NewBuilder().AddAttribute(a).Issue(sp, iss.PublicKey(), iss, rand.Reader)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	encoded, err := cred.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	flipped := bytes.Clone(encoded)
	flipped[4] ^= 0xFF // flip a byte inside the tag's U point
	var decoded Credential
	if err := decoded.UnmarshalBinary(flipped); err == nil {
		t.Fatalf("expected bit-flipped input to be rejected")
	}
}
