// Package work coordinates the delegator and worker goroutines that
// together enumerate polycubes above the spawn threshold: one
// delegator walks the shallow part of the search tree and publishes
// spawn_n-sized shapes as jobs, while a pool of workers each finish
// exploring one job's subtree at a time.
package work

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/maemo32/polycubes/internal/enum"
	"github.com/maemo32/polycubes/internal/errs"
	"github.com/maemo32/polycubes/internal/polycube"
)

const (
	submitQueueCapacity = 256
	resultQueueCapacity = 256
)

// Config describes one run (or resumed run) of the search.
type Config struct {
	N       int // target maximum size
	SpawnN  int // size at which the delegator hands work to workers; ignored when Threads is 0
	Threads int // 0 runs a single goroutine with no delegator; otherwise the worker count
	Resume  *ResumeState
}

// ResumeState carries everything a resumed run needs instead of
// starting the delegator from a single seed cube.
type ResumeState struct {
	Counts       enum.Counts
	Frontier     [][]polycube.Pos
	PriorElapsed time.Duration
}

// Report is what a completed (or halted) run produced.
type Report struct {
	Counts   enum.Counts
	Elapsed  time.Duration
	Frontier []*polycube.Polycube // non-nil only when the run was halted
}

// Supervisor owns the shared halt/done state and the running count
// vector for one invocation of the search: an atomic flag pair plus a
// mutex-guarded accumulator for state one goroutine owns and many
// read or occasionally mutate.
type Supervisor struct {
	cfg Config

	halt atomic.Bool
	done atomic.Bool

	mu     sync.Mutex
	counts enum.Counts

	pool *polyPool
}

// NewSupervisor prepares a Supervisor for cfg. Call Run to execute it.
// On a fresh (non-resumed) run, the size-1 seed cube is counted here,
// since no later stage of the search ever counts its own starting
// shape.
func NewSupervisor(cfg Config) *Supervisor {
	s := &Supervisor{cfg: cfg, pool: newPolyPool()}
	if cfg.Resume != nil {
		s.counts = cfg.Resume.Counts
	} else {
		s.counts[1] = 1
	}
	return s
}

// RequestHalt asks a running search to stop as soon as possible. Safe
// to call from any goroutine, any number of times.
func (s *Supervisor) RequestHalt() {
	s.halt.Store(true)
}

// Done reports whether the search has finished (successfully or via
// halt).
func (s *Supervisor) Done() bool {
	return s.done.Load()
}

func (s *Supervisor) haltRequested() bool {
	return s.halt.Load()
}

func (s *Supervisor) addCounts(delta enum.Counts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.counts {
		s.counts[k] += delta[k]
	}
}

func (s *Supervisor) snapshotCounts() enum.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts
}

type jobResult struct {
	job    *polycube.Polycube
	counts enum.Counts
	halted bool
}

// Run executes the search to completion or until RequestHalt is
// called, whichever comes first. It returns errs.ErrHaltedDelegator,
// and no usable Report, if a fresh run's delegator was interrupted
// before it finished producing jobs — at that point the frontier is
// unknowable, so no checkpoint can be written.
func (s *Supervisor) Run() (Report, error) {
	started := time.Now()
	defer s.done.Store(true)

	if s.cfg.Threads == 0 && s.cfg.Resume == nil {
		return s.runSingleThreaded(started)
	}

	threads := s.cfg.Threads
	if threads <= 0 {
		threads = 1
	}

	submit := make(chan *polycube.Polycube, submitQueueCapacity)
	results := make(chan jobResult, resultQueueCapacity)

	var workers sync.WaitGroup
	for i := 0; i < threads; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			s.runWorker(submit, results)
		}()
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	var frontier []*polycube.Polycube
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		for r := range results {
			if r.halted {
				frontier = append(frontier, r.job)
				continue
			}
			s.addCounts(r.counts)
		}
	}()

	var haltedDelegation bool
	if s.cfg.Resume != nil {
		for _, positions := range s.cfg.Resume.Frontier {
			submit <- polycube.FromPositions(positions)
		}
		close(submit)
	} else {
		var delegated enum.Counts
		haltedDelegation = enum.Delegate(polycube.NewSeeded(), s.cfg.SpawnN, &delegated, s.haltRequested, func(job *polycube.Polycube) bool {
			submit <- job
			return true
		})
		close(submit)
		if !haltedDelegation {
			s.addCounts(delegated)
		}
	}

	<-collectDone

	priorElapsed := time.Duration(0)
	if s.cfg.Resume != nil {
		priorElapsed = s.cfg.Resume.PriorElapsed
	}
	elapsed := priorElapsed + time.Since(started)

	if haltedDelegation {
		return Report{}, errs.ErrHaltedDelegator
	}
	return Report{Counts: s.snapshotCounts(), Elapsed: elapsed, Frontier: frontier}, nil
}

// runSingleThreaded walks straight from the seed cube to N on the
// calling goroutine, with no delegator and no worker pool. There is no
// spawnN-sized job to split off, so spawn_n is never consulted.
func (s *Supervisor) runSingleThreaded(started time.Time) (Report, error) {
	seed := polycube.NewSeeded()
	var delta enum.Counts
	halted := enum.Extend(seed, s.cfg.N, &delta, s.haltRequested)
	elapsed := time.Since(started)
	if halted {
		return Report{Counts: s.snapshotCounts(), Elapsed: elapsed, Frontier: []*polycube.Polycube{seed}}, nil
	}
	s.addCounts(delta)
	return Report{Counts: s.snapshotCounts(), Elapsed: elapsed}, nil
}

func (s *Supervisor) runWorker(submit <-chan *polycube.Polycube, results chan<- jobResult) {
	for job := range submit {
		if s.haltRequested() {
			results <- jobResult{job: job, halted: true}
			continue
		}
		var delta enum.Counts
		halted := enum.Extend(job, s.cfg.N, &delta, s.haltRequested)
		if halted {
			results <- jobResult{job: job, halted: true}
			continue
		}
		results <- jobResult{job: job, counts: delta}
		s.pool.Put(job)
	}
}
