package waveopt

import "math/rand"

// vnsFanout is the number of shaken-and-refined copies attempted per VNS
// round, fixed regardless of workerCount: workerCount only changes how many
// of these vnsFanout candidates are computed concurrently, never which or
// how many candidates exist. This is what keeps RunVNS's outcome a function
// of (seed, Instance) alone.
const vnsFanout = 8

// RunVNS implements the VNS Driver: shakes sol at escalating
// neighborhood sizes k=1..cfg.MaxNeighborhoods, running LocalSearch
// after each shake. A strict improvement resets k to 1 and the
// no-improvement counter to 0; otherwise k advances, wrapping back to 1
// and incrementing the no-improvement counter once MaxNeighborhoods is
// exceeded. The outer loop stops after cfg.MaxNoImprove consecutive full
// passes through k=1..MaxNeighborhoods without an improvement.
//
// At each round, exactly vnsFanout independent shaken copies are produced
// from the current solution and refined with LocalSearch, parallelized
// across workerCount workers; the best feasible result among them is
// compared against the current solution. Each copy's RNG is derived from
// (seed, round, fanoutIndex), never from workerCount, so the outcome for a
// fixed seed is independent of workerCount — only how fast it's computed
// varies.
func RunVNS(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64, seed uint64, workerCount int) (*Solution, error) {
	return runVNS(in, idx, cfg, sol, lambda, seed, workerCount, nil)
}

func runVNS(in *Instance, idx *IndexBundle, cfg *Config, sol *Solution, lambda float64, seed uint64, workerCount int, cf *cancelFlag) (*Solution, error) {
	current := sol.Clone()
	k := 1
	noImprove := 0
	round := 0

	for noImprove < cfg.MaxNoImprove {
		candidate, err := bestOfShakenCopies(in, idx, cfg, current, lambda, k, seed, round, workerCount, cf)
		if err != nil {
			return current, err
		}
		round++
		if candidate != nil && candidate.Ratio() > current.Ratio() {
			current = candidate
			k = 1
			noImprove = 0
			continue
		}

		k++
		if k > cfg.MaxNeighborhoods {
			k = 1
			noImprove++
		}
	}

	return current, nil
}

// bestOfShakenCopies runs exactly vnsFanout shaken-and-refined copies of
// base at shake level k, returning the best feasible one (by Ratio), or nil
// if every attempt is infeasible. round disambiguates the RNG stream across
// successive calls within one RunVNS run so repeated visits to the same k
// don't replay identical shakes.
func bestOfShakenCopies(in *Instance, idx *IndexBundle, cfg *Config, base *Solution, lambda float64, k int, seed uint64, round int, workerCount int, cf *cancelFlag) (*Solution, error) {
	results := make([]*Solution, vnsFanout)
	chunks := chunkRange(vnsFanout, workerCount)
	runChunked(chunks, cf, func(_ int, lo, hi int) {
		for i := lo; i < hi; i++ {
			rngIndex := round*vnsFanout + i
			results[i] = shakeAndRefine(in, idx, cfg, base, lambda, k, workerRNG(seed, rngIndex))
		}
	})

	var best *Solution
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || r.Ratio() > best.Ratio() {
			best = r
		}
	}
	return best, nil
}

// shakeAndRefine applies the shake at level k to a clone of base, recovers a
// tight cover, and, if that leaves a feasible solution, runs LocalSearch.
// Returns nil if the shaken state is infeasible (cover or bound violation).
func shakeAndRefine(in *Instance, idx *IndexBundle, cfg *Config, base *Solution, lambda float64, k int, rng *rand.Rand) *Solution {
	shaken := base.Clone()
	shake(in, idx, shaken, k, rng)

	demand := shaken.DemandVector(in)
	cover, err := BuildCover(in, idx, demand)
	if err != nil {
		return nil
	}
	shaken.ReplaceCover(cover)

	fr := CheckFeasibility(in, shaken, cfg.ValidateStock)
	if !fr.OK() {
		return nil
	}

	refined, err := LocalSearch(in, idx, cfg, shaken, lambda)
	if err != nil {
		return nil
	}
	return refined
}

// shake perturbs sol in place according to the escalating neighborhood schedule:
//
//	k=1: swap one random order
//	k=2: swap up to floor(|S|/2) orders, capped at 3
//	k=3: remove up to 5 orders then add up to 5 fresh orders
func shake(in *Instance, idx *IndexBundle, sol *Solution, k int, rng *rand.Rand) {
	switch {
	case k <= 1:
		shakeSwap(in, idx, sol, rng, 1)
	case k == 2:
		count := len(sol.Orders()) / 2
		if count > 3 {
			count = 3
		}
		if count < 1 {
			count = 1
		}
		shakeSwap(in, idx, sol, rng, count)
	default:
		shakeRemoveAdd(in, idx, sol, rng, 5, 5)
	}
}

func shakeSwap(in *Instance, idx *IndexBundle, sol *Solution, rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		selected := sol.Orders()
		if len(selected) == 0 {
			return
		}
		remCand := selected[rng.Intn(len(selected))]

		var candidates []OrderID
		for o := 0; o < in.numOrders; o++ {
			if !sol.HasOrder(OrderID(o)) {
				candidates = append(candidates, OrderID(o))
			}
		}
		if len(candidates) == 0 {
			sol.RemoveOrder(remCand)
			continue
		}
		addCand := candidates[rng.Intn(len(candidates))]

		newTotal := sol.TotalUnits() - idx.TotalUnits[remCand] + idx.TotalUnits[addCand]
		if newTotal > in.ub {
			continue
		}
		sol.RemoveOrder(remCand)
		sol.AddOrder(addCand)
	}
}

func shakeRemoveAdd(in *Instance, idx *IndexBundle, sol *Solution, rng *rand.Rand, maxRemove, maxAdd int) {
	selected := sol.Orders()
	removeCount := maxRemove
	if removeCount > len(selected) {
		removeCount = len(selected)
	}
	rng.Shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	for i := 0; i < removeCount; i++ {
		sol.RemoveOrder(selected[i])
	}

	var candidates []OrderID
	for o := 0; o < in.numOrders; o++ {
		if !sol.HasOrder(OrderID(o)) {
			candidates = append(candidates, OrderID(o))
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	added := 0
	for _, o := range candidates {
		if added >= maxAdd {
			break
		}
		if sol.TotalUnits()+idx.TotalUnits[o] > in.ub {
			continue
		}
		sol.AddOrder(o)
		added++
	}
}
