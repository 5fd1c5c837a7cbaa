package planner

import (
	"github.com/sayotte/frontierdemo/frontier"
)

// DijkstraFindPath is best-first search on cost so far alone.
func DijkstraFindPath[N comparable](
	open frontier.Frontier[Neighbor[N]],
	start N,
	coster NodeCoster[N],
	isGoal NodeIsGoaler[N],
	nGen NeighborGenerator[N],
) Result[N] {
	priority := func(_ N, costSoFar float64) float64 {
		return costSoFar
	}
	return bestFirst(open, start, priority, coster, isGoal, nGen)
}
