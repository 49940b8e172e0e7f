package meshing

import (
	"context"
	"sync"

	"maze3d/internal/chunk"
)

// MeshJob asks for the vertices of one chunk.
type MeshJob struct {
	// Tag is copied to the result so stale results can be told apart.
	Tag   string
	Chunk *chunk.Chunk
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult holds the interleaved vertices of a chunk.
type MeshResult struct {
	Tag     string
	ChunkID int
	Walls   []float32
	Floor   []float32
}

// WorkerPool manages goroutines for mesh generation
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  max(workers, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	for range pool.workers {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	walls := NewBuilder()
	floor := NewBuilder()

	for {
		select {
		case job := <-p.jobQueue:
			walls.Reset()
			floor.Reset()
			job.Chunk.BuildMesh(walls, floor)

			// the builders are reused, hand out copies
			result := MeshResult{
				Tag:     job.Tag,
				ChunkID: job.Chunk.ID,
				Walls:   append([]float32(nil), walls.Vertices()...),
				Floor:   append([]float32(nil), floor.Vertices()...),
			}

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them. Queued jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
