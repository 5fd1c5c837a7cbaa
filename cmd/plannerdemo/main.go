package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/sayotte/frontierdemo/frontier"
	"github.com/sayotte/frontierdemo/internal/logger"
	"github.com/sayotte/frontierdemo/maintenance"
)

type cliArgs struct {
	startingStateFile  string
	genStateFile       bool
	targetRevision     int
	frontierConfigFile string
	frontier           frontier.Config
}

func parseArgs() cliArgs {
	startingStateFile := flag.String("stateFile", "startingState.yaml", "File containing starting state for planner; use -genStateFile to produce an example")
	genStateFile := flag.Bool("genStateFile", false, "Generate an example stateFile, then exit")
	targetRevision := flag.Int("targetRevision", 2, "Software revision every node should end up running")
	frontierConfigFile := flag.String("frontierConfig", "", "YAML file selecting the frontier; overrides -frontier, -bucketWidth and -ringSize")
	kind := flag.String("frontier", string(frontier.KindBinaryHeap), "Frontier variant: heap, window or ring")
	bucketWidth := flag.Float64("bucketWidth", 1.0, "Bucket width for the window and ring frontiers")
	ringSize := flag.Int("ringSize", 64, "Number of buckets in the ring frontier")
	flag.Parse()

	return cliArgs{
		startingStateFile:  *startingStateFile,
		genStateFile:       *genStateFile,
		targetRevision:     *targetRevision,
		frontierConfigFile: *frontierConfigFile,
		frontier: frontier.Config{
			Kind:        frontier.Kind(*kind),
			BucketWidth: *bucketWidth,
			RingSize:    *ringSize,
		},
	}
}

func exampleState() maintenance.State {
	var state maintenance.State
	for _, n := range []struct {
		name                       string
		cluster, revision          int
		running, inPool, cacheWarm bool
	}{
		{"app1-1", 1, 1, true, true, true},
		{"app1-2", 1, 1, true, false, true},
		{"app1-3", 1, 1, false, false, false},
		{"app1-4", 1, 2, false, false, false},
		{"app1-5", 1, 2, true, false, false},
		{"app1-6", 1, 2, true, false, true},
		{"app1-7", 1, 2, true, true, true},
		{"app2-1", 2, 1, true, true, true},
		{"app2-2", 2, 1, true, true, true},
	} {
		state = append(state, maintenance.NodeState{
			Name:               n.name,
			Cluster:            n.cluster,
			SoftwareRevision:   n.revision,
			AppRunning:         n.running,
			InLoadbalancerPool: n.inPool,
			CacheWarmed:        n.cacheWarm,
		})
	}
	return state
}

func genStateFile(filename string) error {
	outBytes, err := yaml.Marshal(exampleState())
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}
	if err := os.WriteFile(filename, outBytes, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%q): %w", filename, err)
	}
	return nil
}

func parseYAMLFile(filename string, out interface{}) error {
	inBytes, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("os.ReadFile(%q): %w", filename, err)
	}
	if err := yaml.Unmarshal(inBytes, out); err != nil {
		return fmt.Errorf("yaml.Unmarshal(%q): %w", filename, err)
	}
	return nil
}

func main() {
	log.SetFlags(log.Lshortfile)

	args := parseArgs()

	if args.genStateFile {
		if err := genStateFile(args.startingStateFile); err != nil {
			log.Fatal(err)
		}
		return
	}

	var startingState maintenance.State
	if err := parseYAMLFile(args.startingStateFile, &startingState); err != nil {
		log.Fatal(err)
	}

	frontierConfig := args.frontier
	if args.frontierConfigFile != "" {
		frontierConfig = frontier.Config{}
		if err := parseYAMLFile(args.frontierConfigFile, &frontierConfig); err != nil {
			log.Fatal(err)
		}
	}
	if err := frontierConfig.Validate(); err != nil {
		log.Fatal(err)
	}

	mp := &maintenance.Planner{
		Frontier: frontierConfig,
		Logger:   logger.NewWriterLogger(os.Stderr, log.LstdFlags),
	}
	plan, err := mp.PlanActionsForTargetRevision(startingState, args.targetRevision)
	if err != nil {
		log.Fatal(err)
	}
	if len(plan) == 0 {
		log.Println("Empty plan returned.")
		return
	}
	fmt.Println(maintenance.ActionList(plan))
}
