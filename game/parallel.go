package game

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/pthm-cable/skirmish/config"
)

// BatchRun is the outcome of one battle in a batch.
type BatchRun struct {
	Index  int
	Seed   uint64
	Result Result
	Battle *Battle // finished battle, for records and telemetry
	Err    error
}

// batchJob is one battle for a worker to play.
type batchJob struct {
	index int
	seed  uint64
}

// Batch plays the same setup under many seeds on a pool of workers.
// Each battle owns its simulation, so workers share only the read-only config.
type Batch struct {
	cfg      *config.Config
	setup    Setup
	maxTicks int64
	workers  int
}

// NewBatch creates a batch runner. workers <= 0 uses GOMAXPROCS.
func NewBatch(cfg *config.Config, setup Setup, maxTicks int64, workers int) *Batch {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Batch{cfg: cfg, setup: setup, maxTicks: maxTicks, workers: workers}
}

// Run plays one battle per seed and returns the runs in seed order.
// opts is applied to every battle except its Seed and Output; CSV sinks are
// not shared between workers. A StatsCallback must be safe for concurrent use.
func (bt *Batch) Run(seeds []uint64, opts Options) []BatchRun {
	runs := make([]BatchRun, len(seeds))
	if len(seeds) == 0 {
		return runs
	}

	workers := min(bt.workers, len(seeds))
	jobs := make(chan batchJob, len(seeds))
	for i, seed := range seeds {
		jobs <- batchJob{index: i, seed: seed}
	}
	close(jobs)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				// Each index is written by exactly one worker.
				runs[job.index] = bt.play(job, opts)
			}
		}()
	}
	wg.Wait()
	return runs
}

func (bt *Batch) play(job batchJob, opts Options) BatchRun {
	run := BatchRun{Index: job.index, Seed: job.seed}
	opts.Seed = job.seed
	opts.Output = nil

	b, err := NewBattle(bt.cfg, opts)
	if err != nil {
		run.Err = fmt.Errorf("battle %d: %w", job.index, err)
		return run
	}
	if err := b.Start(bt.setup); err != nil {
		run.Err = fmt.Errorf("battle %d: %w", job.index, err)
		return run
	}
	run.Result = RunHeadless(b, bt.maxTicks)
	run.Battle = b
	return run
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// Tally counts wins per team and draws over successful runs.
type Tally struct {
	Wins      map[string]int
	Draws     int
	Undecided int
	Failed    int
}

// TallyRuns summarizes a batch.
func TallyRuns(runs []BatchRun) Tally {
	t := Tally{Wins: make(map[string]int)}
	for _, r := range runs {
		switch {
		case r.Err != nil:
			t.Failed++
		case !r.Result.Decided:
			t.Undecided++
		case r.Result.Draw():
			t.Draws++
		default:
			t.Wins[r.Result.Winner.String()]++
		}
	}
	return t
}
