package elgamal

import (
	"crypto/rand"
	"testing"

	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/params"
)

func testParams(t *testing.T) *params.SystemParameters {
	t.Helper()
	sp, err := params.NewFromSeed([]byte("elgamal test params"))
	if err != nil {
		t.Fatalf("NewFromSeed: %v", err)
	}
	return sp
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sp := testParams(t)
	kp, err := GenerateKeypair(sp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	s, _ := group.RandomScalar(rand.Reader)
	msg := Message{Point: sp.A.ScalarMul(s)}

	ct, _, err := Encrypt(sp, kp.Public, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := kp.Secret.Decrypt(ct)
	if !got.Point.Equal(msg.Point) {
		t.Fatalf("decrypted plaintext does not match original message")
	}
}

func TestCiphertextHomomorphicAdd(t *testing.T) {
	sp := testParams(t)
	kp, err := GenerateKeypair(sp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	s1, _ := group.RandomScalar(rand.Reader)
	s2, _ := group.RandomScalar(rand.Reader)
	m1 := Message{Point: sp.A.ScalarMul(s1)}
	m2 := Message{Point: sp.A.ScalarMul(s2)}

	c1, _, _ := Encrypt(sp, kp.Public, m1, rand.Reader)
	c2, _, _ := Encrypt(sp, kp.Public, m2, rand.Reader)
	sum := c1.Add(c2)

	got := kp.Secret.Decrypt(sum)
	want := Message{Point: sp.A.ScalarMul(s1.Add(s2))}
	if !got.Point.Equal(want.Point) {
		t.Fatalf("homomorphic addition did not decrypt to the summed plaintext")
	}
}

func TestCiphertextMarshalRoundTrip(t *testing.T) {
	sp := testParams(t)
	kp, err := GenerateKeypair(sp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	s, _ := group.RandomScalar(rand.Reader)
	msg := Message{Point: sp.A.ScalarMul(s)}
	ct, _, err := Encrypt(sp, kp.Public, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	enc, err := ct.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var back Ciphertext
	if err := back.UnmarshalBinary(enc); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !back.E0.Equal(ct.E0) || !back.E1.Equal(ct.E1) {
		t.Fatalf("round trip mismatch")
	}
}

func TestUnmarshalRejectsWrongLength(t *testing.T) {
	var ct Ciphertext
	if err := ct.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error on short input")
	}
}
