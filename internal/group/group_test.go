package group

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/anupsv/aeonflux-credentials/internal/common"
)

func TestScalarRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		s, err := RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		b := s.Bytes()
		back, err := ScalarFromCanonicalBytes(b[:])
		if err != nil {
			t.Fatalf("ScalarFromCanonicalBytes: %v", err)
		}
		if !s.Equal(back) {
			t.Fatalf("round trip mismatch")
		}
	}
}

func TestScalarRejectsNonCanonical(t *testing.T) {
	// Order itself must be rejected: residues run [0, Order).
	orderBytes := make([]byte, 32)
	common.Order.FillBytes(orderBytes)
	if _, err := ScalarFromCanonicalBytes(orderBytes); err == nil {
		t.Fatalf("expected rejection of non-canonical scalar encoding")
	}
}

func TestScalarArithmetic(t *testing.T) {
	a := ScalarFromUint64(7)
	b := ScalarFromUint64(5)
	if !a.Add(b).Equal(ScalarFromUint64(12)) {
		t.Fatalf("7 + 5 != 12")
	}
	if !a.Mul(b).Equal(ScalarFromUint64(35)) {
		t.Fatalf("7 * 5 != 35")
	}
	inv := b.Inverse()
	if !b.Mul(inv).Equal(ScalarOne()) {
		t.Fatalf("b * b^-1 != 1")
	}
}

func TestPointRoundTrip(t *testing.T) {
	base := BasePoint()
	s, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	p := base.ScalarMul(s)
	enc := p.Bytes()
	back, err := PointFromCanonicalBytes(enc[:])
	if err != nil {
		t.Fatalf("PointFromCanonicalBytes: %v", err)
	}
	if !p.Equal(back) {
		t.Fatalf("point round trip mismatch")
	}
}

func TestPointRejectsGarbage(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xFF}, 48)
	if _, err := PointFromCanonicalBytes(garbage); err == nil {
		t.Fatalf("expected rejection of garbage point encoding")
	}
}

func TestHashToPointDeterministic(t *testing.T) {
	p1, err := HashToPoint([]byte("aeonflux test dst"), []byte("seed"))
	if err != nil {
		t.Fatalf("HashToPoint: %v", err)
	}
	p2, err := HashToPoint([]byte("aeonflux test dst"), []byte("seed"))
	if err != nil {
		t.Fatalf("HashToPoint: %v", err)
	}
	if !p1.Equal(p2) {
		t.Fatalf("HashToPoint not deterministic")
	}
	p3, err := HashToPoint([]byte("aeonflux test dst"), []byte("other seed"))
	if err != nil {
		t.Fatalf("HashToPoint: %v", err)
	}
	if p1.Equal(p3) {
		t.Fatalf("HashToPoint collided across distinct seeds")
	}
}

func TestMultiScalarMul(t *testing.T) {
	base := BasePoint()
	p1 := base.ScalarMul(ScalarFromUint64(3))
	p2 := base.ScalarMul(ScalarFromUint64(4))
	got, err := MultiScalarMul([]Point{p1, p2}, []Scalar{ScalarFromUint64(2), ScalarFromUint64(5)})
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	want := base.ScalarMul(ScalarFromUint64(3*2 + 4*5))
	if !got.Equal(want) {
		t.Fatalf("MultiScalarMul result mismatch")
	}
}
