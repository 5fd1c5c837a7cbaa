// Package planner holds best-first path search over caller-defined graphs.
//
// The planners are written once against frontier.Frontier; the variant the
// caller passes in decides whether the expansion order is exact (BinaryHeap,
// Windowed) or approximate (RingBuckets).
package planner

import (
	"github.com/sayotte/frontierdemo/frontier"
)

// NodeCoster returns the cost of the edge src->dst. Costs are expected to be
// non-negative; a negative cycle keeps the search from terminating.
type NodeCoster[N comparable] func(src, dst N) float64
type NodeIsGoaler[N comparable] func(n N) bool
type NodeEstimator[N comparable] func(dst N) float64
type NeighborGenerator[N comparable] func(n N) []N

// A Neighbor is what the planners keep on the frontier: a node and its cost
// from the start at the time it was pushed.
type Neighbor[N comparable] struct {
	value N
	cost  float64
}

func (n Neighbor[N]) Value() N { return n.value }

func (n Neighbor[N]) Cost() float64 { return n.cost }

// Result is the outcome of a search. CameFrom and CostSoFar cover every
// node that was reached, not only the ones on the returned path.
type Result[N comparable] struct {
	CameFrom  map[N]N
	CostSoFar map[N]float64
	Start     N
	Final     N
	Found     bool

	Expansions    int
	Pushes        int
	StaleDiscards int
}

// Cost is the cost of the path to Final, or 0 when nothing was found.
func (r Result[N]) Cost() float64 {
	if !r.Found {
		return 0
	}
	return r.CostSoFar[r.Final]
}

// Path rebuilds the route from the start to Final, start first.
func (r Result[N]) Path() []N {
	if !r.Found {
		return nil
	}
	path := []N{r.Final}
	current := r.Final
	for current != r.Start {
		previous, ok := r.CameFrom[current]
		if !ok {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// see: https://github.com/golang/go/wiki/SliceTricks#reversing
	for i := len(path)/2 - 1; i >= 0; i-- {
		opp := len(path) - 1 - i
		path[i], path[opp] = path[opp], path[i]
	}
	return path
}

func AStarFindPath[N comparable](
	open frontier.Frontier[Neighbor[N]],
	start N,
	coster NodeCoster[N],
	estimator NodeEstimator[N],
	isGoaler NodeIsGoaler[N],
	nGen NeighborGenerator[N],
) Result[N] {
	return WeightedAStarFindPath(open, start, 1, coster, estimator, isGoaler, nGen)
}

// WeightedAStarFindPath orders the frontier by g + weight*h. With an
// admissible estimator and weight >= 1 the returned cost is at most weight
// times the optimum.
func WeightedAStarFindPath[N comparable](
	open frontier.Frontier[Neighbor[N]],
	start N,
	weight float64,
	coster NodeCoster[N],
	estimator NodeEstimator[N],
	isGoaler NodeIsGoaler[N],
	nGen NeighborGenerator[N],
) Result[N] {
	priority := func(node N, costSoFar float64) float64 {
		return costSoFar + weight*estimator(node)
	}
	return bestFirst(open, start, priority, coster, isGoaler, nGen)
}

func bestFirst[N comparable](
	open frontier.Frontier[Neighbor[N]],
	start N,
	priority func(node N, costSoFar float64) float64,
	coster NodeCoster[N],
	isGoaler NodeIsGoaler[N],
	nGen NeighborGenerator[N],
) Result[N] {
	result := Result[N]{
		CameFrom:  make(map[N]N),
		CostSoFar: map[N]float64{start: 0},
		Start:     start,
	}

	open.Push(Neighbor[N]{value: start}, priority(start, 0))
	result.Pushes++

	for {
		current, ok := open.PopMin()
		if !ok {
			return result
		}

		// A cheaper copy of this node was pushed after this one.
		if current.cost > result.CostSoFar[current.value] {
			result.StaleDiscards++
			continue
		}

		if isGoaler(current.value) {
			result.Final = current.value
			result.Found = true
			return result
		}
		result.Expansions++

		for _, node := range nGen(current.value) {
			newCost := current.cost + coster(current.value, node)
			existingCost, found := result.CostSoFar[node]
			if found && newCost >= existingCost {
				continue
			}
			result.CostSoFar[node] = newCost
			result.CameFrom[node] = current.value
			open.Push(Neighbor[N]{value: node, cost: newCost}, priority(node, newCost))
			result.Pushes++
		}
	}
}
