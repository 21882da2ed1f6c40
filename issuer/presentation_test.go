package issuer

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/anupsv/aeonflux-credentials/internal/amac"
	"github.com/anupsv/aeonflux-credentials/internal/common"
	"github.com/anupsv/aeonflux-credentials/internal/group"
	"github.com/anupsv/aeonflux-credentials/internal/nizk"
	"github.com/anupsv/aeonflux-credentials/internal/params"
	"github.com/anupsv/aeonflux-credentials/internal/transcript"
)

// present builds a Presentation the way user.Show does, inlined here to
// avoid a test-only dependency on the user package.
func present(t *testing.T, sp *params.SystemParameters, iss *Issuer, attrs []group.Scalar, tag amac.Tag, reveal []int) *Presentation {
	t.Helper()
	revealedSet := make(map[int]bool, len(reveal))
	for _, i := range reveal {
		revealedSet[i] = true
	}

	rerand, _, err := amac.Rerandomize(tag, rand.Reader)
	if err != nil {
		t.Fatalf("Rerandomize: %v", err)
	}
	zq, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	cq := rerand.V.Add(sp.A.ScalarMul(zq))

	revealed := make(map[int]group.Scalar)
	commitments := make(map[int]group.Point)
	witnesses := map[string]group.Scalar{"neg_zq": zq.Neg()}
	priv := sp.A.ScalarMul(zq.Neg())

	for i, m := range attrs {
		if revealedSet[i] {
			revealed[i] = m
			continue
		}
		zi, err := group.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		cm := rerand.U.ScalarMul(m).Add(sp.A.ScalarMul(zi))
		commitments[i] = cm
		witnesses[HiddenAttrWitness("m", i)] = m
		witnesses[HiddenAttrWitness("z", i)] = zi
		priv = priv.Add(iss.PublicKey().Xs[i].ScalarMul(zi))
	}

	p := &Presentation{Tag: amac.Tag{U: rerand.U}, CQ: cq, Revealed: revealed, Commitments: commitments}
	stmt := PresentationStatement(sp, iss.PublicKey(), p, priv)
	tr := transcript.New(common.DomainShow)
	proof, err := nizk.Prove(tr, stmt, witnesses, rand.Reader)
	if err != nil {
		t.Fatalf("nizk.Prove: %v", err)
	}
	p.Proof = proof
	return p
}

func TestPresentationFullyHiddenVerifies(t *testing.T) {
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

	p := present(t, sp, iss, attrs, resp.Tag, nil)
	if err := iss.Verify(p); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestPresentationPartiallyRevealedVerifies(t *testing.T) {
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

	p := present(t, sp, iss, attrs, resp.Tag, []int{1})
	if err := iss.Verify(p); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestPresentationRejectsWrongRevealedValue(t *testing.T) {
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

	p := present(t, sp, iss, attrs, resp.Tag, []int{0})
	other, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	p.Revealed[0] = other
	err = iss.Verify(p)
	if err == nil {
		t.Fatalf("expected verification to fail against a tampered revealed attribute")
	}
	if !errors.Is(err, common.ErrMacVerification) {
		t.Fatalf("expected ErrMacVerification, got %v", err)
	}
}

func TestPresentationRejectsTamperedCQ(t *testing.T) {
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

	p := present(t, sp, iss, attrs, resp.Tag, []int{0})
	p.CQ = p.CQ.Add(sp.A)

	err = iss.Verify(p)
	if err == nil {
		t.Fatalf("expected verification to fail against a tampered CQ")
	}
	if !errors.Is(err, common.ErrMacVerification) {
		t.Fatalf("expected ErrMacVerification, got %v", err)
	}
}

func TestVerifyBatch(t *testing.T) {
	sp := testParams(t)
	iss, err := New(sp, 2, rand.Reader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var presentations []*Presentation
	for i := 0; i < 5; i++ {
		attrs := randomAttrs(t, 2)
		resp, err := iss.IssueRevealed(attrs, rand.Reader)
		if err != nil {
			t.Fatalf("IssueRevealed: %v", err)
		}
		presentations = append(presentations, present(t, sp, iss, attrs, resp.Tag, nil))
	}

	results, err := iss.VerifyBatch(presentations)
	if err != nil {
		t.Fatalf("VerifyBatch: %v", err)
	}
	for i, ok := range results {
		if !ok {
			t.Fatalf("presentation %d reported as invalid", i)
		}
	}
}

func TestVerifyBatchReportsFailure(t *testing.T) {
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
	good := present(t, sp, iss, attrs, resp.Tag, nil)

	bad := present(t, sp, iss, attrs, resp.Tag, []int{0})
	other, err := group.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	bad.Revealed[0] = other

	results, err := iss.VerifyBatch([]*Presentation{good, bad})
	if err == nil {
		t.Fatalf("expected VerifyBatch to report an error for the tampered presentation")
	}
	if !results[0] || results[1] {
		t.Fatalf("unexpected per-presentation results: %v", results)
	}
}
