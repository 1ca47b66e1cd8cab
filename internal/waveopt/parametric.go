package waveopt

// ParametricValue computes v(o) = totalUnits[o] - lambda*|orderRequiredAisles[o]|
// for a single order, the surrogate linear objective driving Dinkelbach's
// iteration. This is a from-scratch, solution-independent cost: it prices
// every aisle o requires, not just the ones a partial solution doesn't
// already visit. Subsolve ranks all orders with no existing solution to
// compare against, so that's the correct cost there; LocalSearch's
// neighborhoods evaluate a move against a concrete partial solution and must
// use MarginalParametricValue/uniqueAislesForOrder instead, or they misprice
// an order that shares all its aisles with the current cover.
func ParametricValue(idx *IndexBundle, o OrderID, lambda float64) float64 {
	return float64(idx.TotalUnits[o]) - lambda*float64(idx.OrderRequiredAisles[o].Len())
}

// MarginalParametricValue is ParametricValue priced against sol's current
// aisle cover rather than from scratch: it counts only the aisles o needs
// that sol does not already visit. An order needing zero new aisles is
// always worth adding regardless of lambda, since it raises totalUnits at no
// marginal aisle cost — mirrors the "novos_corredores" free-marginal-cost
// treatment an add move gets against an existing partial cover.
func MarginalParametricValue(idx *IndexBundle, sol *Solution, o OrderID, lambda float64) float64 {
	newAisles := 0
	for _, a := range idx.OrderRequiredAisles[o].Slice() {
		if !sol.HasAisle(a) {
			newAisles++
		}
	}
	if newAisles == 0 {
		return float64(idx.TotalUnits[o])
	}
	return float64(idx.TotalUnits[o]) - lambda*float64(newAisles)
}

// uniqueAislesForOrder counts the aisles o requires that no other order
// currently selected in sol requires — the aisles removing o from sol would
// actually free. Symmetric counterpart to MarginalParametricValue's
// new-aisle count, used to price the Remove and Swap neighborhoods against
// the same partial-cover-aware notion of aisle cost.
func uniqueAislesForOrder(idx *IndexBundle, sol *Solution, o OrderID) int {
	unique := 0
	for _, a := range idx.OrderRequiredAisles[o].Slice() {
		sharedWithOther := false
		for _, p := range sol.Orders() {
			if p == o {
				continue
			}
			if idx.OrderRequiredAisles[p].Contains(a) {
				sharedWithOther = true
				break
			}
		}
		if !sharedWithOther {
			unique++
		}
	}
	return unique
}

// Subsolve implements the Parametric Subsolver: greedily picks
// orders maximizing Σ v(o) subject to UB and stock, falling back to a
// volume-first walk (mirroring the constructive builder's second stage) if
// LB is never reached. It computes v(o) for every order in parallel chunks
// before the (sequential, deterministic) sort.
func Subsolve(in *Instance, idx *IndexBundle, lambda float64, workerCount int) (*Solution, error) {
	return subsolve(in, idx, lambda, workerCount, nil)
}

func subsolve(in *Instance, idx *IndexBundle, lambda float64, workerCount int, cf *cancelFlag) (*Solution, error) {
	values := make([]float64, in.numOrders)
	chunks := chunkRange(in.numOrders, workerCount)
	runChunked(chunks, cf, func(_ int, lo, hi int) {
		for o := lo; o < hi; o++ {
			values[o] = ParametricValue(idx, OrderID(o), lambda)
		}
	})

	var positive []OrderID
	for o := 0; o < in.numOrders; o++ {
		if values[o] > 0 {
			positive = append(positive, OrderID(o))
		}
	}
	ranking := rankOrders(len(positive), func(i, j int) bool {
		oi, oj := positive[i], positive[j]
		if values[oi] != values[oj] {
			return values[oi] > values[oj]
		}
		return oi < oj
	})
	orderedPositive := make([]OrderID, len(ranking))
	for i, idx2 := range ranking {
		orderedPositive[i] = positive[idx2]
	}

	sol := NewSolution(idx)
	residual := make(map[ItemID]int, in.numItems)
	for item := 0; item < in.numItems; item++ {
		residual[ItemID(item)] = idx.TotalItemSupply[item]
	}
	for _, o := range orderedPositive {
		order := in.Order(o)
		if sol.TotalUnits()+idx.TotalUnits[o] > in.ub || !fitsResidual(order, residual) {
			continue
		}
		sol.AddOrder(o)
		applyResidual(order, residual)
	}
	if sol.TotalUnits() < in.lb {
		byVolume := rankOrders(in.numOrders, func(o, p int) bool {
			if idx.TotalUnits[o] != idx.TotalUnits[p] {
				return idx.TotalUnits[o] > idx.TotalUnits[p]
			}
			return o < p
		})
		sol, _ = greedyFill(in, idx, byVolume)
	}

	demand := sol.DemandVector(in)
	cover, err := BuildCover(in, idx, demand)
	if err != nil {
		return sol, err
	}
	sol.ReplaceCover(cover)
	return sol, nil
}
