package nizk

import "github.com/anupsv/aeonflux-credentials/internal/group"

// Term is one summand Base*witness in an Equation's right-hand side.
type Term struct {
	Base    group.Point
	Witness string
}

// Equation asserts LHS = sum(Terms[i].Base * witness(Terms[i].Witness)).
// Label distinguishes this equation from others with the same shape when
// absorbed into the transcript (e.g. "Cm_0", "Cm_1", "checkpoint").
type Equation struct {
	Label string
	LHS   group.Point
	Terms []Term
}

// Statement is a conjunction of equations proved under one shared
// challenge. Witnesses referenced by the same name across equations are
// asserted to be the same secret scalar.
type Statement struct {
	Equations []Equation
}

// witnessNames returns the distinct witness names referenced by stmt, in
// order of first appearance. Prover and verifier must build the identical
// Statement value (same equations, same term order) for this order to
// line up, which every statement-building helper in issuer/ and user/
// guarantees by construction.
func (s Statement) witnessNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, eq := range s.Equations {
		for _, t := range eq.Terms {
			if !seen[t.Witness] {
				seen[t.Witness] = true
				names = append(names, t.Witness)
			}
		}
	}
	return names
}
