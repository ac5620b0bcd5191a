package concurrent

import (
	"context"
	"sync"
)

// JobFunc runs one job on worker workerID. The id lets a job function keep
// worker-scoped state (one baseline-oracle handle per worker).
type JobFunc[T any, G any] func(workerID int, job T) G

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, id int, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if ctx.Err() != nil {
			// deadline hit: abandon the remaining queue, results already
			// emitted stay valid
			continue
		}
		res := jobFunc(id, job)
		wp.results <- res
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i, jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}
