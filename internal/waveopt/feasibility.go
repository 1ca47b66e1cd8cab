package waveopt

// CheckFeasibility implements the Feasibility Oracle. It has no
// side effects and is cheap enough to call inside local search's inner loops.
//
// Checks run in this order: ID validity, LB <= totalUnits <= UB, then
// per-item demand <= per-item supply across visited aisles. validateStock
// gates the third check.
func CheckFeasibility(in *Instance, s *Solution, validateStock bool) FeasibilityResult {
	for o := range s.selectedOrders {
		if int(o) < 0 || int(o) >= in.numOrders {
			return FeasibilityResult{Status: UnknownOrder, ID: int(o)}
		}
	}
	for a := range s.visitedAisles {
		if int(a) < 0 || int(a) >= in.numAisles {
			return FeasibilityResult{Status: UnknownAisle, ID: int(a)}
		}
	}

	if s.totalUnits < in.lb {
		return FeasibilityResult{Status: BelowLowerBound}
	}
	if s.totalUnits > in.ub {
		return FeasibilityResult{Status: AboveUpperBound}
	}

	if !validateStock {
		return FeasibilityResult{Status: Feasible}
	}

	demand := s.DemandVector(in)
	supply := make(map[ItemID]int, len(demand))
	for a := range s.visitedAisles {
		for item, qty := range in.Aisle(a) {
			supply[item] += qty
		}
	}
	for item, need := range demand {
		if supply[item] < need {
			return FeasibilityResult{Status: StockInsufficient, Item: item}
		}
	}

	return FeasibilityResult{Status: Feasible}
}
