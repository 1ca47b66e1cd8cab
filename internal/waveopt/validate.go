package waveopt

import "fmt"

// Violation describes one failed check against a (Instance, Solution) pair,
// as produced by ValidateSolution.
type Violation struct {
	Code    string
	Detail  string
	ItemID  ItemID
	OrderID OrderID
	AisleID AisleID
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Code, v.Detail)
}

// ValidateSolution is a solver-independent adversarial checker: it
// re-derives every constraint from scratch against (in, sol) without
// reusing any of the solver's own bookkeeping, grounded in the original
// source's val/validador_completo.cpp (a standalone validator binary run
// against a solver's output). It exists for tests (P1-P3) and for the CLI's
// `validate` subcommand, never on the solve() hot path.
func ValidateSolution(in *Instance, sol *Solution) []Violation {
	var violations []Violation

	seenOrders := make(map[OrderID]struct{})
	for _, o := range sol.Orders() {
		if int(o) < 0 || int(o) >= in.numOrders {
			violations = append(violations, Violation{Code: "unknown_order", OrderID: o, Detail: "order id out of range"})
			continue
		}
		if _, dup := seenOrders[o]; dup {
			violations = append(violations, Violation{Code: "duplicate_order", OrderID: o, Detail: "order selected twice"})
		}
		seenOrders[o] = struct{}{}
	}

	seenAisles := make(map[AisleID]struct{})
	for _, a := range sol.Aisles() {
		if int(a) < 0 || int(a) >= in.numAisles {
			violations = append(violations, Violation{Code: "unknown_aisle", AisleID: a, Detail: "aisle id out of range"})
			continue
		}
		if _, dup := seenAisles[a]; dup {
			violations = append(violations, Violation{Code: "duplicate_aisle", AisleID: a, Detail: "aisle visited twice"})
		}
		seenAisles[a] = struct{}{}
	}

	totalUnits := 0
	demand := make(map[ItemID]int)
	for o := range seenOrders {
		for item, qty := range in.Order(o) {
			demand[item] += qty
			totalUnits += qty
		}
	}
	if totalUnits != sol.TotalUnits() {
		violations = append(violations, Violation{Code: "total_units_mismatch", Detail: fmt.Sprintf("recomputed %d, cached %d", totalUnits, sol.TotalUnits())})
	}
	if totalUnits < in.lb {
		violations = append(violations, Violation{Code: "below_lower_bound", Detail: fmt.Sprintf("%d < LB %d", totalUnits, in.lb)})
	}
	if totalUnits > in.ub {
		violations = append(violations, Violation{Code: "above_upper_bound", Detail: fmt.Sprintf("%d > UB %d", totalUnits, in.ub)})
	}

	supply := make(map[ItemID]int)
	for a := range seenAisles {
		for item, qty := range in.Aisle(a) {
			supply[item] += qty
		}
	}
	for item, need := range demand {
		if supply[item] < need {
			violations = append(violations, Violation{Code: "stock_insufficient", ItemID: item, Detail: fmt.Sprintf("need %d, have %d", need, supply[item])})
		}
	}

	return violations
}
