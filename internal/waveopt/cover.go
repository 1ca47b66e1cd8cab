package waveopt

import "sort"

// BuildCover implements the Aisle Cover: given a demand vector
// derived from a candidate order set, it selects a near-minimal set of
// aisles whose aggregate stock meets every item's demand.
//
// The heuristic is a weighted greedy: repeatedly pick the not-yet-selected
// aisle maximizing
//
//	score(a) = 1000*(items still under-covered that a stocks) + (additional
//	           unit coverage a provides, capped at remaining need)
//
// breaking ties by ascending AisleId, until every item's remaining need is
// zero. Before the greedy loop, every item with positive demand is checked
// to have at least one stocking aisle; if not,
// the cover is infeasible and CoverInfeasibleError is returned immediately.
func BuildCover(in *Instance, idx *IndexBundle, demand map[ItemID]int) (map[AisleID]struct{}, error) {
	remaining := make(map[ItemID]int, len(demand))
	var offending []ItemID
	for item, need := range demand {
		if need <= 0 {
			continue
		}
		if idx.TotalItemSupply[item] < need {
			offending = append(offending, item)
			continue
		}
		if len(idx.ItemAisles[item]) == 0 {
			offending = append(offending, item)
			continue
		}
		remaining[item] = need
	}
	if len(offending) > 0 {
		sort.Slice(offending, func(i, j int) bool { return offending[i] < offending[j] })
		return nil, CoverInfeasibleError{Items: offending}
	}
	if len(remaining) == 0 {
		return map[AisleID]struct{}{}, nil
	}

	selected := make(map[AisleID]struct{})
	for len(remaining) > 0 {
		bestAisle := AisleID(-1)
		bestScore := -1
		// Candidate aisles: union of ItemAisles for every item still needed.
		candidates := make(map[AisleID]struct{})
		for item := range remaining {
			for _, a := range idx.ItemAisles[item] {
				if _, ok := selected[a]; ok {
					continue
				}
				candidates[a] = struct{}{}
			}
		}
		orderedCandidates := make([]AisleID, 0, len(candidates))
		for a := range candidates {
			orderedCandidates = append(orderedCandidates, a)
		}
		sort.Slice(orderedCandidates, func(i, j int) bool { return orderedCandidates[i] < orderedCandidates[j] })

		for _, a := range orderedCandidates {
			stock := in.Aisle(a)
			itemsCovered := 0
			coverage := 0
			for item, need := range remaining {
				qty, ok := stock[item]
				if !ok || qty <= 0 {
					continue
				}
				itemsCovered++
				if qty > need {
					coverage += need
				} else {
					coverage += qty
				}
			}
			if itemsCovered == 0 {
				continue
			}
			score := 1000*itemsCovered + coverage
			if score > bestScore || (score == bestScore && (bestAisle < 0 || a < bestAisle)) {
				bestScore = score
				bestAisle = a
			}
		}

		if bestAisle < 0 {
			// Should be unreachable given the pre-flight supply check, but
			// guards against an inconsistent idx/demand pairing.
			var stuck []ItemID
			for item := range remaining {
				stuck = append(stuck, item)
			}
			sort.Slice(stuck, func(i, j int) bool { return stuck[i] < stuck[j] })
			return nil, CoverInfeasibleError{Items: stuck}
		}

		selected[bestAisle] = struct{}{}
		stock := in.Aisle(bestAisle)
		for item, qty := range stock {
			need, ok := remaining[item]
			if !ok {
				continue
			}
			if qty >= need {
				delete(remaining, item)
			} else {
				remaining[item] = need - qty
			}
		}
	}

	return selected, nil
}

// TrivialCover returns the superset cover "every aisle stocking any demanded
// item", a reference bound: BuildCover must never use more aisles than this.
// The constructive builder's Stage 3 assembles the same kind of superset
// cover inline rather than calling this function.
func TrivialCover(idx *IndexBundle, demand map[ItemID]int) map[AisleID]struct{} {
	out := make(map[AisleID]struct{})
	for item, qty := range demand {
		if qty <= 0 {
			continue
		}
		for _, a := range idx.ItemAisles[item] {
			out[a] = struct{}{}
		}
	}
	return out
}
