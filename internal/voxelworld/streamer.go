package voxelworld

import (
	"context"
	"runtime"
	"sync"

	"sailworld/internal/gamelog"
)

// stageKey coalesces queued work: only one job per (coord, stage) is ever
// queued at a time. A worker removes the key when it dequeues the job, so
// a job for the same key can be queued, and run, while an earlier one is
// still running.
type stageKey struct {
	coord ChunkCoord
	stage Stage
}

// stageJob is one unit of streaming work: advance coord to stage, then —
// once it lands — keep chaining toward target if stage < target.
type stageJob struct {
	coord        ChunkCoord
	stage        Stage
	target       Stage
	highPriority bool // priority this job was originally requested at
}

// Streamer is the Streaming Engine (spec C6): a bounded worker pool that
// advances chunks through the generation pipeline, respecting each
// stage's dependency graph, coalescing duplicate requests and dropping
// low-priority work under backpressure rather than growing unbounded.
// Grounded on the teacher's ChunkStreamer in chunk_streamer.go,
// generalized from a single populate-then-done job to a five-stage
// pipeline with inter-chunk dependencies.
type Streamer struct {
	store *ChunkStore
	gen   *Generator

	jobsHigh chan stageJob
	jobsLow  chan stageJob

	pendingMu sync.Mutex
	pending   map[stageKey]struct{}
	maxQueued int

	// closeMu guards jobsHigh/jobsLow against a send racing Close's close():
	// enqueue holds the read side while sending, Close takes the write side
	// before closing, so no send can land on an already-closed channel.
	closeMu sync.RWMutex
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	debug func(msg string, args ...any)
	warn  func(msg string, args ...any)
}

// NewStreamer starts a Streamer with CPU_count-2 workers (floored at 1),
// the worker count spec §5 requires to leave headroom for the render and
// physics threads on the same machine.
func NewStreamer(store *ChunkStore, gen *Generator) *Streamer {
	ctx, cancel := context.WithCancel(context.Background())
	workers := runtime.NumCPU() - 2
	if workers < 1 {
		workers = 1
	}

	l := gamelog.For("streaming")
	s := &Streamer{
		store:     store,
		gen:       gen,
		jobsHigh:  make(chan stageJob, 4096),
		jobsLow:   make(chan stageJob, 4096),
		pending:   make(map[stageKey]struct{}),
		maxQueued: 16384,
		ctx:       ctx,
		cancel:    cancel,
		debug:     l.Debug,
		warn:      l.Warn,
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Close cancels all in-flight work and waits for workers to drain. After
// Close returns no worker goroutine is still running.
func (s *Streamer) Close() {
	s.cancel()
	s.closeMu.Lock()
	s.closed = true
	close(s.jobsHigh)
	close(s.jobsLow)
	s.closeMu.Unlock()
	s.wg.Wait()
}

func (s *Streamer) worker() {
	defer s.wg.Done()
	for {
		var job stageJob
		var ok bool
		select {
		case job, ok = <-s.jobsHigh:
			if !ok {
				return
			}
		default:
			select {
			case job, ok = <-s.jobsHigh:
				if !ok {
					return
				}
			case job, ok = <-s.jobsLow:
				if !ok {
					return
				}
			case <-s.ctx.Done():
				return
			}
		}

		s.pendingMu.Lock()
		delete(s.pending, stageKey{job.coord, job.stage})
		s.pendingMu.Unlock()

		if s.ctx.Err() != nil {
			return
		}
		s.runJobRecovered(job)
	}
}

// runJobRecovered contains a panicking stage within the one chunk that
// triggered it instead of taking down the whole worker pool: a single bad
// column shouldn't stop every other chunk's streaming.
func (s *Streamer) runJobRecovered(job stageJob) {
	defer func() {
		if r := recover(); r != nil {
			s.warn("recovered panic in streaming worker", "cx", job.coord.CX, "cz", job.coord.CZ, "stage", job.stage.String(), "panic", r)
		}
	}()
	s.runStage(job)
}

// unmetDependencies returns the neighbor coordinates that have not yet
// reached the stage this one depends on (spec §5): Features needs all 8
// neighbors at Terrain+, Meshed needs the 4 cardinal neighbors at Lit+.
func (s *Streamer) unmetDependencies(coord ChunkCoord, stage Stage) (neighbors []ChunkCoord, requiredStage Stage) {
	switch stage {
	case StageFeatures:
		requiredStage = StageTerrain
		for dx := int32(-1); dx <= 1; dx++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if dx == 0 && dz == 0 {
					continue
				}
				n := ChunkCoord{CX: coord.CX + dx, CZ: coord.CZ + dz}
				nb := s.store.Get(n)
				if nb == nil || nb.Stage() < requiredStage {
					neighbors = append(neighbors, n)
				}
			}
		}
	case StageMeshed:
		requiredStage = StageLit
		candidates := [4]ChunkCoord{
			{CX: coord.CX + 1, CZ: coord.CZ},
			{CX: coord.CX - 1, CZ: coord.CZ},
			{CX: coord.CX, CZ: coord.CZ + 1},
			{CX: coord.CX, CZ: coord.CZ - 1},
		}
		for _, n := range candidates {
			nb := s.store.Get(n)
			if nb == nil || nb.Stage() < requiredStage {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors, requiredStage
}

func (s *Streamer) runStage(job stageJob) {
	c := s.store.GetOrCreate(job.coord)
	if c.Stage() >= job.stage {
		return
	}
	if unmet, required := s.unmetDependencies(job.coord, job.stage); len(unmet) > 0 {
		// Kick the missing neighbors toward the stage this one depends on,
		// then requeue self at its original priority to re-check once they
		// land: a high-priority request (e.g. the chunk under a teleported
		// ship) must not be silently demoted just because its first check
		// found unmet dependencies, which is the common case on first load.
		for _, n := range unmet {
			s.RequestStage(n, required, job.highPriority)
		}
		s.enqueue(job, job.highPriority)
		return
	}

	switch job.stage {
	case StageTerrain:
		s.gen.GenerateTerrain(c)
	case StageFeatures:
		s.gen.GenerateFeatures(c)
	case StageLit:
		PropagateLight(c)
	case StageMeshed:
		BuildMesh(c, s.store)
	}
	s.debug("chunk stage advanced", "cx", job.coord.CX, "cz", job.coord.CZ, "stage", job.stage.String())

	if job.stage < job.target {
		s.enqueue(stageJob{coord: job.coord, stage: job.stage + 1, target: job.target, highPriority: job.highPriority}, job.highPriority)
	}
}

// enqueue coalesces job into the pending set and pushes it onto the
// appropriate priority channel, dropping it under backpressure (spec §5:
// "low-priority jobs are dropped rather than queued unboundedly").
func (s *Streamer) enqueue(job stageJob, highPriority bool) bool {
	key := stageKey{job.coord, job.stage}

	s.pendingMu.Lock()
	if _, dup := s.pending[key]; dup {
		s.pendingMu.Unlock()
		return false
	}
	if len(s.pending) >= s.maxQueued && !highPriority {
		s.pendingMu.Unlock()
		return false
	}
	s.pending[key] = struct{}{}
	s.pendingMu.Unlock()

	ch := s.jobsLow
	if highPriority {
		ch = s.jobsHigh
	}

	s.closeMu.RLock()
	defer s.closeMu.RUnlock()
	if s.closed {
		s.pendingMu.Lock()
		delete(s.pending, key)
		s.pendingMu.Unlock()
		return false
	}
	select {
	case ch <- job:
		return true
	default:
		s.pendingMu.Lock()
		delete(s.pending, key)
		s.pendingMu.Unlock()
		return false
	}
}

// RequestStage asks the Streaming Engine to advance coord to at least
// stage, at the given priority. Intermediate stages are chained
// automatically: each completed stage enqueues the next one toward the
// requested target.
func (s *Streamer) RequestStage(coord ChunkCoord, stage Stage, highPriority bool) {
	c := s.store.GetOrCreate(coord)
	if c.Stage() >= stage {
		return
	}
	next := c.Stage() + 1
	if next > StageMeshed {
		return
	}
	s.enqueue(stageJob{coord: coord, stage: next, target: stage, highPriority: highPriority}, highPriority)
}
