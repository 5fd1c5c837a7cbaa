// Package bench times frontier variants on a shared random push/pop script
// and checks each variant's pop order against the exact heap.
package bench

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sayotte/frontierdemo/frontier"
	"github.com/sayotte/frontierdemo/internal/logger"
	"github.com/sayotte/frontierdemo/internal/miniprof"
)

type Config struct {
	Seed       int64 `yaml:"seed"`
	Operations int   `yaml:"operations"`
	// PopRatio is the share of operations that are pops; the rest are pushes.
	PopRatio float64 `yaml:"popRatio"`
	// Priorities are drawn uniformly from [MinPriority, MaxPriority).
	MinPriority float64           `yaml:"minPriority"`
	MaxPriority float64           `yaml:"maxPriority"`
	Frontiers   []frontier.Config `yaml:"frontiers"`
}

func DefaultConfig() Config {
	return Config{
		Seed:        1,
		Operations:  100_000,
		PopRatio:    0.4,
		MinPriority: 0,
		MaxPriority: 1000,
		Frontiers: []frontier.Config{
			{Kind: frontier.KindBinaryHeap},
			{Kind: frontier.KindWindowed, BucketWidth: 1},
			{Kind: frontier.KindRingBuckets, BucketWidth: 1, RingSize: 1024},
			{Kind: frontier.KindRingBuckets, BucketWidth: 1, RingSize: 64},
		},
	}
}

var ErrInvalidConfig = errors.New("bench: invalid config")

func (c Config) Validate() error {
	switch {
	case c.Operations <= 0:
		return fmt.Errorf("%w: operations must be positive, got %d", ErrInvalidConfig, c.Operations)
	case c.PopRatio < 0 || c.PopRatio >= 1:
		return fmt.Errorf("%w: popRatio must be in [0, 1), got %g", ErrInvalidConfig, c.PopRatio)
	case !(c.MaxPriority > c.MinPriority):
		return fmt.Errorf("%w: maxPriority must exceed minPriority", ErrInvalidConfig)
	case len(c.Frontiers) == 0:
		return fmt.Errorf("%w: no frontiers to run", ErrInvalidConfig)
	}
	for i, fc := range c.Frontiers {
		if err := fc.Validate(); err != nil {
			return fmt.Errorf("frontiers[%d]: %w", i, err)
		}
	}
	return nil
}

// VariantResult is one frontier's run of the script.
type VariantResult struct {
	Frontier frontier.Config
	Elapsed  time.Duration
	Pushes   int
	Pops     int
	// Mismatches counts pops whose priority differs from the heap's pop at
	// the same position.
	Mismatches int
}

func (vr VariantResult) MatchesBaseline() bool { return vr.Mismatches == 0 }

type Report struct {
	RunID   uuid.UUID
	Results []VariantResult
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Frontier bench %s\n", r.RunID)
	fmt.Fprintf(&sb, "%-28s %12s %8s %8s %10s\n", "frontier", "elapsed", "pushes", "pops", "mismatches")
	for _, vr := range r.Results {
		fmt.Fprintf(&sb, "%-28s %12s %8d %8d %10d\n", vr.Frontier, vr.Elapsed, vr.Pushes, vr.Pops, vr.Mismatches)
	}
	return sb.String()
}

type op struct {
	pop      bool
	priority float64
}

func script(cfg Config) []op {
	r := rand.New(rand.NewSource(cfg.Seed))
	ops := make([]op, cfg.Operations)
	for i := range ops {
		if r.Float64() < cfg.PopRatio {
			ops[i] = op{pop: true}
			continue
		}
		ops[i] = op{priority: cfg.MinPriority + r.Float64()*(cfg.MaxPriority-cfg.MinPriority)}
	}
	return ops
}

// play runs ops against f, then drains it, and returns the priorities in
// pop order.
func play(f frontier.Frontier[float64], ops []op) (pushes int, popped []float64) {
	for _, o := range ops {
		if !o.pop {
			f.Push(o.priority, o.priority)
			pushes++
			continue
		}
		if p, ok := f.PopMin(); ok {
			popped = append(popped, p)
		}
	}
	for !f.Empty() {
		p, _ := f.PopMin()
		popped = append(popped, p)
	}
	return pushes, popped
}

func Run(cfg Config, lg logger.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	lg = logger.OrNoop(lg)
	report := Report{RunID: uuid.New()}
	ops := script(cfg)

	_, baseline := play(frontier.NewBinaryHeap[float64](), ops)

	for _, fc := range cfg.Frontiers {
		f, err := frontier.New[float64](fc)
		if err != nil {
			return Report{}, err
		}
		timer := miniprof.Start(fmt.Sprintf("Bench %s: %s", report.RunID, fc), lg)
		pushes, popped := play(f, ops)
		elapsed := timer.Stop()

		vr := VariantResult{
			Frontier: fc,
			Elapsed:  elapsed,
			Pushes:   pushes,
			Pops:     len(popped),
		}
		for i := range popped {
			if i >= len(baseline) || popped[i] != baseline[i] {
				vr.Mismatches++
			}
		}
		lg.Printf("Bench %s: %s pushes %d pops %d mismatches %d", report.RunID, fc, vr.Pushes, vr.Pops, vr.Mismatches)
		report.Results = append(report.Results, vr)
	}
	return report, nil
}
