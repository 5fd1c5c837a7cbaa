package maintenance

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/sayotte/frontierdemo/frontier"
	"github.com/sayotte/frontierdemo/internal/logger"
	"github.com/sayotte/frontierdemo/internal/miniprof"
	"github.com/sayotte/frontierdemo/planner"
)

// tieBreakWeight inflates the estimate just enough that, among candidates
// with equal g+h, the one further along its plan is expanded first. The
// estimate is exact on well-formed states and plan costs are integers, so
// plans stay optimal.
const tieBreakWeight = 1.001

// Planner finds the shortest sequence of maintenance actions that brings
// every node to a target software revision without taking more than one
// cluster out of the load balancer at a time.
type Planner struct {
	// Frontier selects the open-set variant; the zero value means a heap.
	Frontier frontier.Config
	Logger   logger.Logger

	expansions int
}

func (mp *Planner) PlanActionsForTargetRevision(startingState State, targetSoftwareRevision int) ([]MaintenanceAction, error) {
	cfg := mp.Frontier
	if cfg.Kind == "" {
		cfg = frontier.DefaultConfig()
	}
	open, err := frontier.New[planner.Neighbor[MaintenanceAction]](cfg)
	if err != nil {
		return nil, fmt.Errorf("maintenance planner frontier: %w", err)
	}
	lg := logger.OrNoop(mp.Logger)

	coster := func(src, dst MaintenanceAction) float64 {
		return 1.0
	}

	isGoaler := func(action MaintenanceAction) bool {
		for _, nodeState := range action.FinalState() {
			if nodeState.SoftwareRevision != targetSoftwareRevision {
				return false
			}
			if !nodeState.InLoadbalancerPool {
				return false
			}
		}
		return true
	}

	estimator := func(action MaintenanceAction) float64 {
		return estimateAction(action, targetSoftwareRevision)
	}

	neighborGen := func(action MaintenanceAction) []MaintenanceAction {
		mp.expansions++
		return nextActions(action.FinalState(), targetSoftwareRevision)
	}

	mp.expansions = 0
	timer := miniprof.Start(fmt.Sprintf("Plan with frontier %s", cfg), lg)
	result := planner.WeightedAStarFindPath[MaintenanceAction](
		open,
		&startAction{finalState: startingState},
		tieBreakWeight,
		coster,
		estimator,
		isGoaler,
		neighborGen,
	)
	runTime := timer.Stop()
	lg.Printf("Plan generated in %s; total expansions %d; frontier pushes %d; stale discards %d; total cost %f",
		runTime, mp.expansions, result.Pushes, result.StaleDiscards, result.Cost())

	// if it didn't find any workable path, exit early
	if !result.Found {
		return nil, nil
	}
	path := result.Path()
	// strip the initial startAction from the plan
	plan := make([]MaintenanceAction, 0, len(path)-1)
	plan = append(plan, path[1:]...)
	return plan, nil
}

type State []NodeState

func (s State) String() string {
	outB, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%#v", []NodeState(s))
	}
	return string(outB)
}

type NodeState struct {
	Name               string
	Cluster            int
	SoftwareRevision   int
	AppRunning         bool
	InLoadbalancerPool bool
	CacheWarmed        bool
}

type MaintenanceAction interface {
	fmt.Stringer
	FinalState() State
}

// ActionList prints one action per line.
type ActionList []MaintenanceAction

func (mal ActionList) String() string {
	outStrings := make([]string, 0, len(mal))
	for _, action := range mal {
		outStrings = append(outStrings, action.String())
	}
	return strings.Join(outStrings, "\n")
}

// startAction is the search root; it changes nothing.
type startAction struct {
	finalState State
}

func (sa *startAction) String() string {
	return "Start"
}

func (sa *startAction) FinalState() State {
	return sa.finalState
}

// A maintenanceStep moves a node from step N to step N+1 (see
// stepNumberForNode); maintenanceSteps is indexed by N.
type maintenanceStep struct {
	verb string
	// downableOnly limits the step to nodes of the cluster being taken down.
	downableOnly bool
	apply        func(nodeState *NodeState, targetRevision int)
}

var maintenanceSteps = []maintenanceStep{
	{
		verb:         "Drain node from pool",
		downableOnly: true,
		apply: func(ns *NodeState, _ int) {
			ns.InLoadbalancerPool = false
		},
	},
	{
		verb:         "Stop app",
		downableOnly: true,
		apply: func(ns *NodeState, _ int) {
			ns.AppRunning = false
			ns.CacheWarmed = false
		},
	},
	{
		verb: "Update software",
		apply: func(ns *NodeState, targetRevision int) {
			ns.SoftwareRevision = targetRevision
		},
	},
	{
		verb: "Start app",
		apply: func(ns *NodeState, _ int) {
			ns.AppRunning = true
			ns.CacheWarmed = false
		},
	},
	{
		verb: "Warm cache",
		apply: func(ns *NodeState, _ int) {
			ns.CacheWarmed = true
		},
	},
	{
		verb: "Add node to pool",
		apply: func(ns *NodeState, _ int) {
			ns.InLoadbalancerPool = true
		},
	},
}

// StepAction applies one maintenance step to one node.
type StepAction struct {
	step       int
	nodeName   string
	finalState State
}

func (sa *StepAction) String() string {
	return fmt.Sprintf("%s: %s", maintenanceSteps[sa.step].verb, sa.nodeName)
}

func (sa *StepAction) FinalState() State {
	return sa.finalState
}

// nextActions lists every action valid from startingState, grouped by step
// and in node order within a step. A node only advances once no node in its
// cluster is behind it.
func nextActions(startingState State, targetRevision int) []MaintenanceAction {
	var out []MaintenanceAction

	downableCluster := getDownableCluster(startingState, targetRevision)
	for step, def := range maintenanceSteps {
		for i, nodeState := range startingState {
			if stepNumberForNode(nodeState, targetRevision) != step {
				continue
			}
			if lowestStepForCluster(startingState, nodeState.Cluster, targetRevision) < step {
				continue
			}
			if def.downableOnly && nodeState.Cluster != downableCluster {
				continue
			}
			newNodeState := nodeState
			def.apply(&newNodeState, targetRevision)

			newState := make(State, len(startingState))
			copy(newState, startingState)
			newState[i] = newNodeState
			out = append(out, &StepAction{
				step:       step,
				nodeName:   newNodeState.Name,
				finalState: newState,
			})
		}
	}
	return out
}

func baseEstimateForNode(nodeState NodeState, targetRevision int) float64 {
	var cost float64

	// calculate base cost on how many steps this node must absolutely complete
	if nodeState.SoftwareRevision != targetRevision {
		// at minimum have to upgrade the app, start it, warm the cache, and add to the pool
		cost += 4

		// have to drain it from the pool before upgrading
		// note that this is independent from stopping the app; we might be given
		// a node which is stopped yet somehow (?!) still in the pool
		if nodeState.InLoadbalancerPool {
			cost += 1
		}

		// have to stop the app before upgrading
		if nodeState.AppRunning {
			cost += 1
		}
	} else {
		if !nodeState.AppRunning {
			cost += 1
		}
		if !nodeState.CacheWarmed {
			cost += 1
		}
		if !nodeState.InLoadbalancerPool {
			cost += 1
		}
	}

	return cost
}

func estimateAction(action MaintenanceAction, targetRevision int) float64 {
	var total float64
	for _, nodeState := range action.FinalState() {
		total += baseEstimateForNode(nodeState, targetRevision)
	}
	return total
}

// steps are these:
// 0- maintenance not started; node is in LB pool
// 1- maintenance started; node removed from LB pool
// 2- app stopped
// 3- software updated
// 4- app started
// 5- cache warmed
// 6- maintenance complete; node added back to LB pool
//
// Invalid states (e.g. the app isn't running but the node is in the LB pool)
// are treated as step 0/6; as step 0 the plan ends up skipping the stop.
func stepNumberForNode(nodeState NodeState, targetRevision int) int {
	if nodeState.SoftwareRevision != targetRevision && nodeState.InLoadbalancerPool {
		return 0
	}
	if nodeState.SoftwareRevision != targetRevision && nodeState.AppRunning {
		return 1
	}
	if nodeState.SoftwareRevision != targetRevision {
		return 2
	}
	if !nodeState.AppRunning {
		return 3
	}
	if !nodeState.CacheWarmed {
		return 4
	}
	if !nodeState.InLoadbalancerPool {
		return 5
	}
	return 6
}

func lowestStepForCluster(state State, clusterNum, targetRevision int) int {
	lowestStep := math.MaxInt
	for _, nodeState := range state {
		if nodeState.Cluster != clusterNum {
			continue
		}
		if nodeStep := stepNumberForNode(nodeState, targetRevision); nodeStep < lowestStep {
			lowestStep = nodeStep
		}
	}
	return lowestStep
}

// getDownableCluster returns the cluster maintenance may take nodes out of,
// or -1 when none may be (more than one cluster already down, or nothing
// left to upgrade).
func getDownableCluster(startingState State, targetRevision int) int {
	downClusters := make(map[int]bool)
	wrongRevClusters := make(map[int]bool)
	for _, nodeState := range startingState {
		if !nodeState.InLoadbalancerPool {
			downClusters[nodeState.Cluster] = true
		}
		if nodeState.SoftwareRevision != targetRevision {
			wrongRevClusters[nodeState.Cluster] = true
		}
	}
	if len(downClusters) > 1 {
		return -1
	}
	// prefer any cluster which already has down nodes
	for clusterNum := range downClusters {
		return clusterNum
	}
	// fall back to lowest numbered cluster which has at least one node not at
	// the target revision
	if len(wrongRevClusters) > 0 {
		wrongRevClusterSlice := make([]int, 0, len(wrongRevClusters))
		for clusterNum := range wrongRevClusters {
			wrongRevClusterSlice = append(wrongRevClusterSlice, clusterNum)
		}
		sort.Ints(wrongRevClusterSlice)
		return wrongRevClusterSlice[0]
	}
	return -1
}
