package waveopt

// LocalSearch implements the Local Search refinement:
// best-improvement passes over add / remove / swap neighborhoods on the
// parametric objective Σ_{o in S} v(o), evaluated in that order every pass,
// iterating OrderIds ascending within a neighborhood for determinism. A pass
// that produces no improving, feasible move in any neighborhood is a local
// optimum and ends the search. Every accepted move is followed by a cover
// recompute and a feasibility check; an infeasible move is rolled
// back.
func LocalSearch(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64) (*Solution, error) {
	for {
		improved, err := localSearchPass(in, idx, cfg, sol, lambda)
		if err != nil {
			return sol, err
		}
		if !improved {
			return sol, nil
		}
	}
}

func localSearchPass(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64) (bool, error) {
	if tryAdd(in, idx, cfg, sol, lambda) {
		return true, nil
	}
	if tryRemove(in, idx, cfg, sol, lambda) {
		return true, nil
	}
	if tryAndApplySwap(in, idx, cfg, sol, lambda) {
		return true, nil
	}
	return false, nil
}

// tryAdd evaluates the Add neighborhood: for each order not in
// S with a positive marginal value against sol's current aisle cover that
// fits within UB, pick the one maximizing that value. An order needing no
// aisle sol doesn't already visit is priced at its raw totalUnits, never
// screened out by lambda — see MarginalParametricValue.
func tryAdd(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64) bool {
	best := OrderID(-1)
	bestVal := 0.0
	for o := 0; o < in.numOrders; o++ {
		oid := OrderID(o)
		if sol.HasOrder(oid) {
			continue
		}
		v := MarginalParametricValue(idx, sol, oid, lambda)
		if v <= 0 {
			continue
		}
		if sol.TotalUnits()+idx.TotalUnits[o] > in.ub {
			continue
		}
		if best < 0 || v > bestVal {
			best = oid
			bestVal = v
		}
	}
	if best < 0 {
		return false
	}
	return applyAndVerify(in, idx, cfg, sol, func() {
		sol.AddOrder(best)
	})
}

// tryRemove evaluates the Remove neighborhood: for each order
// in S, removing it must not drop totalUnits below LB; accept the removal
// maximizing the resulting objective, i.e. minimizing the removed order's
// value. An order's value here is priced against the aisles it alone holds
// open in sol (uniqueAislesForOrder): removing it only pays off in aisle
// terms for aisles no other selected order still needs.
func tryRemove(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64) bool {
	best := OrderID(-1)
	bestVal := 0.0
	haveCandidate := false
	for _, oid := range sol.Orders() {
		if sol.TotalUnits()-idx.TotalUnits[oid] < in.lb {
			continue
		}
		v := float64(idx.TotalUnits[oid]) - lambda*float64(uniqueAislesForOrder(idx, sol, oid))
		if v >= 0 {
			continue // removing a non-negative-value order can't improve the objective
		}
		if !haveCandidate || v < bestVal {
			haveCandidate = true
			best = oid
			bestVal = v
		}
	}
	if !haveCandidate {
		return false
	}
	return applyAndVerify(in, idx, cfg, sol, func() {
		sol.RemoveOrder(best)
	})
}

// tryAndApplySwap evaluates the Swap neighborhood: for each
// pair (remove o_r in S, add o_a not in S), accept the best improving swap.
func tryAndApplySwap(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64) bool {
	bestRemove, bestAdd := OrderID(-1), OrderID(-1)
	bestDelta := 0.0

	removable := sol.Orders()
	for o := 0; o < in.numOrders; o++ {
		addCand := OrderID(o)
		if sol.HasOrder(addCand) {
			continue
		}
		addVal := MarginalParametricValue(idx, sol, addCand, lambda)
		for _, remCand := range removable {
			newTotal := sol.TotalUnits() - idx.TotalUnits[remCand] + idx.TotalUnits[addCand]
			if newTotal > in.ub || newTotal < in.lb {
				continue
			}
			remVal := float64(idx.TotalUnits[remCand]) - lambda*float64(uniqueAislesForOrder(idx, sol, remCand))
			delta := addVal - remVal
			if delta <= 0 {
				continue
			}
			if bestRemove < 0 || delta > bestDelta {
				bestDelta = delta
				bestRemove = remCand
				bestAdd = addCand
			}
		}
	}

	if bestRemove < 0 {
		return false
	}
	return applyAndVerify(in, idx, cfg, sol, func() {
		sol.RemoveOrder(bestRemove)
		sol.AddOrder(bestAdd)
	})
}

// applyAndVerify snapshots sol's order set, applies mutate, recomputes the
// aisle cover and checks feasibility; on any failure it restores
// the pre-mutation order set and cover.
func applyAndVerify(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, mutate func()) bool {
	snapshot := sol.Clone()

	mutate()

	demand := sol.DemandVector(in)
	cover, err := BuildCover(in, idx, demand)
	if err != nil {
		restore(sol, snapshot)
		return false
	}
	sol.ReplaceCover(cover)

	fr := CheckFeasibility(in, sol, cfg.ValidateStock)
	if !fr.OK() {
		restore(sol, snapshot)
		return false
	}
	return true
}

func restore(sol *Solution, snapshot *Solution) {
	sol.selectedOrders = snapshot.selectedOrders
	sol.visitedAisles = snapshot.visitedAisles
	sol.totalUnits = snapshot.totalUnits
}
