package waveopt

import "sort"

// IndexBundle holds the dense, read-only precomputation over an Instance.
// It is owned by the solver and derived once from an Instance; nothing
// mutates it after BuildIndex returns.
type IndexBundle struct {
	TotalUnits          []int       // TotalUnits[o]: Σ quantity in order o
	ItemAisles          [][]AisleID // ItemAisles[i]: ascending AisleIds stocking item i
	OrderRequiredAisles []AisleSet  // OrderRequiredAisles[o]: aisles stocking ≥1 item of order o
	OrderEfficiency     []float64   // OrderEfficiency[o]: TotalUnits[o] / |OrderRequiredAisles[o]|
	TotalItemSupply     []int       // TotalItemSupply[i]: Σ stock of item i across all aisles
}

// AisleSet is a sorted, duplicate-free set of AisleIds, used for
// OrderRequiredAisles so that iteration order is reproducible.
type AisleSet struct {
	ids []AisleID
}

// NewAisleSet builds an AisleSet from a (possibly unsorted, possibly
// duplicated) slice of AisleIds.
func NewAisleSet(ids []AisleID) AisleSet {
	seen := make(map[AisleID]struct{}, len(ids))
	out := make([]AisleID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return AisleSet{ids: out}
}

// Len, Slice give read-only access to the sorted ids.
func (s AisleSet) Len() int          { return len(s.ids) }
func (s AisleSet) Slice() []AisleID  { return s.ids }
func (s AisleSet) Contains(a AisleID) bool {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= a })
	return i < len(s.ids) && s.ids[i] == a
}

// BuildIndex runs the single-pass precomputation: one sweep over
// aisles to populate ItemAisles, one sweep over orders to accumulate
// TotalUnits and, via ItemAisles lookups, OrderRequiredAisles. Efficiency is
// computed after both sweeps complete.
//
// BuildIndex dispatches to a sequential or parallel implementation depending
// on workerCount: with workerCount > 1 the OrderId and
// AisleId ranges are partitioned into contiguous chunks, each populating a
// local contribution with no shared mutable state, merged deterministically
// here in the caller.
//
// BuildIndex never takes a cancelFlag: a partial IndexBundle (some chunks
// skipped) would leave TotalUnits/OrderRequiredAisles silently wrong for the
// skipped orders/aisles rather than just incomplete, corrupting every bound
// check downstream. It always runs its chunks to completion.
func BuildIndex(in *Instance, workerCount int) (*IndexBundle, error) {
	if in == nil {
		return nil, InvalidInstanceError{Reason: "nil instance"}
	}

	itemAisles := make([][]AisleID, in.numItems)
	totalItemSupply := make([]int, in.numItems)

	aisleChunks := chunkRange(in.numAisles, workerCount)
	perChunkItemAisles := make([][][]AisleID, len(aisleChunks))
	perChunkSupply := make([][]int, len(aisleChunks))

	runChunked(aisleChunks, nil, func(ci int, lo, hi int) {
		localItemAisles := make([][]AisleID, in.numItems)
		localSupply := make([]int, in.numItems)
		for a := lo; a < hi; a++ {
			for item, qty := range in.Aisle(AisleID(a)) {
				localItemAisles[item] = append(localItemAisles[item], AisleID(a))
				localSupply[item] += qty
			}
		}
		perChunkItemAisles[ci] = localItemAisles
		perChunkSupply[ci] = localSupply
	})

	for ci := range aisleChunks {
		for item := 0; item < in.numItems; item++ {
			itemAisles[item] = append(itemAisles[item], perChunkItemAisles[ci][item]...)
			totalItemSupply[item] += perChunkSupply[ci][item]
		}
	}
	for item := range itemAisles {
		sort.Slice(itemAisles[item], func(i, j int) bool { return itemAisles[item][i] < itemAisles[item][j] })
	}

	totalUnits := make([]int, in.numOrders)
	orderRequiredAisles := make([]AisleSet, in.numOrders)

	orderChunks := chunkRange(in.numOrders, workerCount)
	runChunked(orderChunks, nil, func(_ int, lo, hi int) {
		for o := lo; o < hi; o++ {
			order := in.Order(OrderID(o))
			sum := 0
			var required []AisleID
			for item, qty := range order {
				sum += qty
				required = append(required, itemAisles[item]...)
			}
			totalUnits[o] = sum
			orderRequiredAisles[o] = NewAisleSet(required)
		}
	})

	orderEfficiency := make([]float64, in.numOrders)
	for o := 0; o < in.numOrders; o++ {
		n := orderRequiredAisles[o].Len()
		if n == 0 {
			orderEfficiency[o] = 0
			continue
		}
		orderEfficiency[o] = float64(totalUnits[o]) / float64(n)
	}

	return &IndexBundle{
		TotalUnits:          totalUnits,
		ItemAisles:          itemAisles,
		OrderRequiredAisles: orderRequiredAisles,
		OrderEfficiency:     orderEfficiency,
		TotalItemSupply:     totalItemSupply,
	}, nil
}
