package waveopt

import "sort"

// ConstructResult bundles the Constructive Builder's output: the
// solution it produced plus whether LB was actually reached.
type ConstructResult struct {
	Solution     *Solution
	ReachedLB    bool
	FeasibleMark FeasibilityResult
}

// Construct implements the three-stage fallback: efficiency-first,
// then volume-first, then a last-resort linear scan with superset covers.
// Every stage shares the same acceptance rule (fits within UB, residual
// stock non-negative for every item) and stops as soon as totalUnits >= LB.
// If LB is unreachable even with every order selected, it returns
// InfeasibleBoundsError immediately rather than running any stage; the
// caller (Solve) maps that to NoFeasibleSolution, not InvalidInstance —
// an instance whose bounds can never be met is a legitimate, well-formed
// instance with no feasible wave, not a structural violation. Otherwise,
// if LB is never reached by any stage, the best partial solution is
// returned with ReachedLB=false rather than an error; the caller decides
// whether that is NoFeasibleSolution too.
func Construct(in *Instance, idx *IndexBundle, cfg *Config) (*ConstructResult, error) {
	if bestPossibleUnits(idx) < in.lb {
		return nil, InfeasibleBoundsError{Reason: "total demand across all orders cannot reach LB"}
	}

	byEfficiency := rankOrders(in.numOrders, func(o, p int) bool {
		if idx.OrderEfficiency[o] != idx.OrderEfficiency[p] {
			return idx.OrderEfficiency[o] > idx.OrderEfficiency[p]
		}
		return o < p
	})
	if sol, ok := greedyFill(in, idx, byEfficiency); ok {
		return finishConstruct(in, idx, sol, true, cfg)
	}

	byVolume := rankOrders(in.numOrders, func(o, p int) bool {
		if idx.TotalUnits[o] != idx.TotalUnits[p] {
			return idx.TotalUnits[o] > idx.TotalUnits[p]
		}
		return o < p
	})
	if sol, ok := greedyFill(in, idx, byVolume); ok {
		return finishConstruct(in, idx, sol, true, cfg)
	}

	// Stage 3: linear OrderId scan, superset aisle covers.
	sol := NewSolution(idx)
	residual := make(map[ItemID]int, in.numItems)
	for item := 0; item < in.numItems; item++ {
		residual[ItemID(item)] = idx.TotalItemSupply[item]
	}
	supersetAisles := make(map[AisleID]struct{})

	for o := 0; o < in.numOrders; o++ {
		order := in.Order(OrderID(o))
		if sol.TotalUnits()+idx.TotalUnits[o] > in.ub {
			continue
		}
		if !fitsResidual(order, residual) {
			continue
		}
		sol.AddOrder(OrderID(o))
		applyResidual(order, residual)
		for item := range order {
			for _, a := range idx.ItemAisles[item] {
				supersetAisles[a] = struct{}{}
			}
		}
		if sol.TotalUnits() >= in.lb {
			break
		}
	}
	sol.ReplaceCover(supersetAisles)

	return finishConstruct(in, idx, sol, sol.TotalUnits() >= in.lb, cfg)
}

// finishConstruct tightens the cover and labels feasibility as a final step.
func finishConstruct(in *Instance, idx *IndexBundle, sol *Solution, reachedLB bool, cfg *Config) (*ConstructResult, error) {
	demand := sol.DemandVector(in)
	cover, err := BuildCover(in, idx, demand)
	if err != nil {
		return &ConstructResult{Solution: sol, ReachedLB: reachedLB}, err
	}
	sol.ReplaceCover(cover)
	fr := CheckFeasibility(in, sol, cfg.ValidateStock)
	return &ConstructResult{Solution: sol, ReachedLB: reachedLB, FeasibleMark: fr}, nil
}

// rankOrders returns OrderIds 0..n-1 sorted by less, a stable deterministic
// ranking (ties broken by OrderId ascending inside less itself).
func rankOrders(n int, less func(o, p int) bool) []OrderID {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	sort.Slice(ids, func(i, j int) bool { return less(ids[i], ids[j]) })
	out := make([]OrderID, n)
	for i, id := range ids {
		out[i] = OrderID(id)
	}
	return out
}

// greedyFill walks ranking, adding an order iff it fits within UB and
// residual item stock stays non-negative for every item, stopping once
// totalUnits >= LB. Returns ok=true only if LB was reached.
func greedyFill(in *Instance, idx *IndexBundle, ranking []OrderID) (*Solution, bool) {
	sol := NewSolution(idx)
	residual := make(map[ItemID]int, in.numItems)
	for item := 0; item < in.numItems; item++ {
		residual[ItemID(item)] = idx.TotalItemSupply[item]
	}

	for _, o := range ranking {
		order := in.Order(o)
		if sol.TotalUnits()+idx.TotalUnits[o] > in.ub {
			continue
		}
		if !fitsResidual(order, residual) {
			continue
		}
		sol.AddOrder(o)
		applyResidual(order, residual)
		if sol.TotalUnits() >= in.lb {
			return sol, true
		}
	}
	return sol, sol.TotalUnits() >= in.lb
}

// bestPossibleUnits returns the total units achievable if every order were
// selected, ignoring UB and stock — a cheap necessary condition for LB
// reachability checked before any of the three fallback stages run.
func bestPossibleUnits(idx *IndexBundle) int {
	sum := 0
	for _, u := range idx.TotalUnits {
		sum += u
	}
	return sum
}

func fitsResidual(order map[ItemID]int, residual map[ItemID]int) bool {
	for item, qty := range order {
		if residual[item] < qty {
			return false
		}
	}
	return true
}

func applyResidual(order map[ItemID]int, residual map[ItemID]int) {
	for item, qty := range order {
		residual[item] -= qty
	}
}
