// Package sim plays many boards headlessly to measure how cascades behave
// under a configuration. Boards are independent and run on a worker pool;
// each board's outcome depends only on its seed.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

// ErrInvalidOptions is returned for non-positive board or swap counts.
var ErrInvalidOptions = errors.New("sim: invalid options")

// Policy chooses which swap a simulated player tries.
type Policy string

const (
	// PolicyRandom tries any legal swap, matching or not.
	PolicyRandom Policy = "random"
	// PolicyGreedy only tries swaps that produce a match.
	PolicyGreedy Policy = "greedy"
)

// ParsePolicy converts a flag value to a Policy. Empty selects random.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case "":
		return PolicyRandom, nil
	case PolicyRandom, PolicyGreedy:
		return p, nil
	default:
		return "", fmt.Errorf("sim: unknown policy %q", s)
	}
}

// Options configure a run.
type Options struct {
	Boards   int         // boards to play
	Swaps    int         // swaps attempted per board
	Workers  int         // concurrent boards; <= 0 uses one per CPU
	Seed     int64       // board i is dealt with Seed+i
	Policy   Policy      // swap choice
	Progress io.Writer   // progress bar output; nil hides it
	Logger   *log.Logger // nil discards
}

// BoardResult is the outcome of one simulated board.
type BoardResult struct {
	Index    int
	Seed     int64
	Attempts int // swaps tried
	Accepted int // swaps that matched
	Reverted int // swaps that were undone
	Stuck    bool

	Rounds      []int // clear rounds per accepted swap
	Cleared     []int // pieces cleared per accepted swap
	Refills     int
	Spawned     int
	TilesBroken int
	Fallbacks   int

	// Violations counts cycles that ended with a match or a hole left on
	// the board. Always zero for a correct resolver.
	Violations int

	Final match3.Snapshot
}

// Run plays opts.Boards boards of cfg and aggregates the results.
func Run(ctx context.Context, cfg config.Match3Config, opts Options) (Report, error) {
	if opts.Boards < 1 || opts.Swaps < 1 {
		return Report{}, fmt.Errorf("%w: boards=%d swaps=%d", ErrInvalidOptions, opts.Boards, opts.Swaps)
	}
	if opts.Policy == "" {
		opts.Policy = PolicyRandom
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	opts.Workers = min(opts.Workers, opts.Boards)
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	d, err := newDealer(cfg, opts.Logger)
	if err != nil {
		return Report{}, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := pb.New(opts.Boards)
	bar.SetWriter(progress)
	bar.Start()

	results := make([]BoardResult, opts.Boards)
	jobs := make(chan int, opts.Boards)
	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = playBoard(ctx, d, i, opts)
				bar.Increment()
			}
		}()
	}

	start := time.Now()
	for i := range opts.Boards {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := newReport(cfg.Name, opts.Policy, results, elapsed)
	opts.Logger.Info("simulation finished", "boards", opts.Boards, "swaps", rep.Attempts,
		"elapsed", elapsed, "violations", rep.Violations)
	return rep, nil
}

// dealer holds the parts of a config shared by every board.
type dealer struct {
	width, height int
	values        []match3.MatchValue
	overrides     []match3.TileOverride
	opts          []match3.Option
}

func newDealer(cfg config.Match3Config, lg *log.Logger) (*dealer, error) {
	values, err := cfg.Values()
	if err != nil {
		return nil, err
	}
	overrides, err := cfg.Overrides()
	if err != nil {
		return nil, err
	}
	return &dealer{
		width:     cfg.Board.Width,
		height:    cfg.Board.Height,
		values:    values,
		overrides: overrides,
		opts:      append(cfg.Options(), match3.WithLogger(lg)),
	}, nil
}

// deal builds a filled, settled board.
func (d *dealer) deal(seed int64) (*match3.Board, *match3.Resolver) {
	b := match3.NewBoard(d.width, d.height, d.overrides, d.opts...)
	gen := match3.NewGenerator(b, d.values, match3.NewSource(seed), d.opts...)
	gen.Fill()
	r := match3.NewResolver(b, gen, match3.InstantPresenter{}, d.opts...)
	r.Settle()
	return b, r
}

func playBoard(ctx context.Context, d *dealer, index int, opts Options) BoardResult {
	seed := opts.Seed + int64(index)
	b, r := d.deal(seed)
	// A separate stream so the policy does not shift piece draws.
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	res := BoardResult{Index: index, Seed: seed}

	for range opts.Swaps {
		if ctx.Err() != nil {
			break
		}
		matching := r.Detector().FindSwaps()
		if len(matching) == 0 {
			res.Stuck = true
			break
		}

		candidates := matching
		if opts.Policy == PolicyRandom {
			candidates = legalSwaps(b)
		}
		sw := candidates[rng.Intn(len(candidates))]

		rep, ok := r.Swap(sw.A, sw.B)
		if !ok {
			opts.Logger.Warn("swap refused", "board", index, "swap", sw.String())
			continue
		}
		res.Attempts++
		if rep.Reverted {
			res.Reverted++
		} else {
			res.Accepted++
			res.Rounds = append(res.Rounds, rep.Rounds)
			res.Cleared = append(res.Cleared, rep.Cleared)
		}
		res.Refills += rep.Refills
		res.Spawned += rep.Spawned
		res.TilesBroken += rep.TilesBroken
		res.Fallbacks += rep.Fallbacks

		if !r.Detector().AllMatches().Empty() || len(b.EmptyCells()) > 0 {
			res.Violations++
			opts.Logger.Error("cascade left the board unsettled", "board", index, "swap", sw.String())
		}
	}

	res.Final = b.Snapshot()
	opts.Logger.Debug("board finished", "board", index, "seed", seed,
		"accepted", res.Accepted, "reverted", res.Reverted, "stuck", res.Stuck)
	return res
}

// legalSwaps lists every swap the board accepts, matching or not.
func legalSwaps(b *match3.Board) []match3.Swap {
	var out []match3.Swap
	for _, a := range b.Cells() {
		for _, c := range []match3.Cell{a.Add(1, 0), a.Add(0, 1)} {
			if b.CanSwap(a, c) {
				out = append(out, match3.Swap{A: a, B: c})
			}
		}
	}
	return out
}
