package waveopt

import "sort"

// ItemID is a dense non-negative index in [0, numItems).
type ItemID int

// OrderID is a dense index in [0, numOrders).
type OrderID int

// AisleID is a dense index in [0, numAisles).
type AisleID int

// Demand pairs an item with the quantity requested or stocked.
type Demand struct {
	Item ItemID
	Qty  int
}

// Instance is the immutable problem description. Build it with
// NewInstance, which validates and normalizes raw input; once constructed
// an Instance is never mutated.
type Instance struct {
	numItems  int
	numOrders int
	numAisles int
	lb, ub    int

	orders []map[ItemID]int
	aisles []map[ItemID]int
}

// NumItems, NumOrders, NumAisles, LB, UB expose the instance's dimensions.
func (in *Instance) NumItems() int  { return in.numItems }
func (in *Instance) NumOrders() int { return in.numOrders }
func (in *Instance) NumAisles() int { return in.numAisles }
func (in *Instance) LB() int        { return in.lb }
func (in *Instance) UB() int        { return in.ub }

// Order returns the item->quantity demand map for an order. The caller must
// not mutate the returned map.
func (in *Instance) Order(o OrderID) map[ItemID]int { return in.orders[o] }

// Aisle returns the item->quantity stock map for an aisle. The caller must
// not mutate the returned map.
func (in *Instance) Aisle(a AisleID) map[ItemID]int { return in.aisles[a] }

// NewInstance validates raw order/aisle demand lists and LB/UB, summing
// duplicate items within an order or aisle and dropping zero-quantity pairs,
// then returns an immutable Instance.
//
// orders[o] and aisles[a] may contain duplicate ItemIDs; quantities are
// summed. Non-positive quantities after summation are dropped.
func NewInstance(numItems, numOrders, numAisles, lb, ub int, orders, aisles [][]Demand) (*Instance, error) {
	if numItems <= 0 {
		return nil, InvalidInstanceError{Reason: "numItems must be positive"}
	}
	if numOrders <= 0 {
		return nil, InvalidInstanceError{Reason: "numOrders must be positive"}
	}
	if numAisles <= 0 {
		return nil, InvalidInstanceError{Reason: "numAisles must be positive"}
	}
	if lb < 0 || ub < lb {
		return nil, InvalidInstanceError{Reason: "require 0 <= LB <= UB"}
	}
	if len(orders) != numOrders {
		return nil, InvalidInstanceError{Reason: "orders length does not match numOrders"}
	}
	if len(aisles) != numAisles {
		return nil, InvalidInstanceError{Reason: "aisles length does not match numAisles"}
	}

	normalize := func(raw [][]Demand) ([]map[ItemID]int, error) {
		out := make([]map[ItemID]int, len(raw))
		for i, list := range raw {
			m := make(map[ItemID]int, len(list))
			for _, d := range list {
				if d.Item < 0 || int(d.Item) >= numItems {
					return nil, InvalidInstanceError{Reason: "item id out of range"}
				}
				if d.Qty < 0 {
					return nil, InvalidInstanceError{Reason: "quantity must be non-negative"}
				}
				m[d.Item] += d.Qty
			}
			for item, qty := range m {
				if qty <= 0 {
					delete(m, item)
				}
			}
			out[i] = m
		}
		return out, nil
	}

	normOrders, err := normalize(orders)
	if err != nil {
		return nil, err
	}
	normAisles, err := normalize(aisles)
	if err != nil {
		return nil, err
	}

	return &Instance{
		numItems:  numItems,
		numOrders: numOrders,
		numAisles: numAisles,
		lb:        lb,
		ub:        ub,
		orders:    normOrders,
		aisles:    normAisles,
	}, nil
}

// Solution is the mutable working object built by the solver. It is constructed
// empty and mutated exclusively through AddOrder/RemoveOrder/ReplaceCover;
// its cached fields (TotalUnits, Ratio) stay consistent with the sets across
// every public mutation.
type Solution struct {
	selectedOrders map[OrderID]struct{}
	visitedAisles  map[AisleID]struct{}
	totalUnits     int
	idx            *IndexBundle
}

// NewSolution returns an empty Solution bound to the given index, from which
// it reads per-order totals.
func NewSolution(idx *IndexBundle) *Solution {
	return &Solution{
		selectedOrders: make(map[OrderID]struct{}),
		visitedAisles:  make(map[AisleID]struct{}),
		idx:            idx,
	}
}

// Clone returns a deep, independently-mutable copy of s.
func (s *Solution) Clone() *Solution {
	out := &Solution{
		selectedOrders: make(map[OrderID]struct{}, len(s.selectedOrders)),
		visitedAisles:  make(map[AisleID]struct{}, len(s.visitedAisles)),
		totalUnits:     s.totalUnits,
		idx:            s.idx,
	}
	for o := range s.selectedOrders {
		out.selectedOrders[o] = struct{}{}
	}
	for a := range s.visitedAisles {
		out.visitedAisles[a] = struct{}{}
	}
	return out
}

// HasOrder reports whether o is selected.
func (s *Solution) HasOrder(o OrderID) bool {
	_, ok := s.selectedOrders[o]
	return ok
}

// HasAisle reports whether a is currently visited.
func (s *Solution) HasAisle(a AisleID) bool {
	_, ok := s.visitedAisles[a]
	return ok
}

// AddOrder adds o to the selection if not already present, updating the
// cached unit total. It does not touch visitedAisles; callers recompute the
// cover afterward.
func (s *Solution) AddOrder(o OrderID) {
	if s.HasOrder(o) {
		return
	}
	s.selectedOrders[o] = struct{}{}
	s.totalUnits += s.idx.TotalUnits[o]
}

// RemoveOrder removes o from the selection if present, updating the cached
// unit total. It does not touch visitedAisles; callers recompute the cover
// afterward.
func (s *Solution) RemoveOrder(o OrderID) {
	if !s.HasOrder(o) {
		return
	}
	delete(s.selectedOrders, o)
	s.totalUnits -= s.idx.TotalUnits[o]
}

// ReplaceCover swaps the visited-aisle set wholesale. Used after a fresh
// cover is computed for the current selectedOrders.
func (s *Solution) ReplaceCover(aisles map[AisleID]struct{}) {
	s.visitedAisles = aisles
}

// Orders returns the selected OrderIDs in ascending order.
func (s *Solution) Orders() []OrderID {
	out := make([]OrderID, 0, len(s.selectedOrders))
	for o := range s.selectedOrders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Aisles returns the visited AisleIDs in ascending order.
func (s *Solution) Aisles() []AisleID {
	out := make([]AisleID, 0, len(s.visitedAisles))
	for a := range s.visitedAisles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TotalUnits returns the cached Σ totalUnits[o] over selected orders.
func (s *Solution) TotalUnits() int { return s.totalUnits }

// NumAisles returns the number of visited aisles.
func (s *Solution) NumAisles() int { return len(s.visitedAisles) }

// Ratio returns totalUnits/|visitedAisles|, or 0 if no aisles are visited.
func (s *Solution) Ratio() float64 {
	if len(s.visitedAisles) == 0 {
		return 0
	}
	return float64(s.totalUnits) / float64(len(s.visitedAisles))
}

// DemandVector sums per-item demand across the selected orders, using the
// IndexBundle's owning Instance.
func (s *Solution) DemandVector(in *Instance) map[ItemID]int {
	d := make(map[ItemID]int)
	for o := range s.selectedOrders {
		for item, qty := range in.Order(o) {
			d[item] += qty
		}
	}
	return d
}
