package concurrent

import (
	"context"
	"sync"
	"testing"
)

func TestWorkerPoolProcessesAllJobs(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	wp.Start(context.Background(), func(workerID int, job int) int {
		return job * 2
	})

	go func() {
		for i := 0; i < 100; i++ {
			wp.AddJob(i)
		}
		wp.Close()
	}()
	go wp.Wait()

	sum := 0
	count := 0
	for res := range wp.CollectResults() {
		sum += res
		count++
	}

	if count != 100 {
		t.Fatalf("got %d results, want 100", count)
	}
	if want := 99 * 100; sum != want {
		t.Errorf("sum = %d, want %d", sum, want)
	}
}

func TestWorkerPoolWorkerIDsAreStable(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 50)

	var mu sync.Mutex
	seen := map[int]bool{}

	wp.Start(context.Background(), func(workerID int, job int) int {
		mu.Lock()
		seen[workerID] = true
		mu.Unlock()
		return workerID
	})

	go func() {
		for i := 0; i < 50; i++ {
			wp.AddJob(i)
		}
		wp.Close()
	}()
	go wp.Wait()

	for res := range wp.CollectResults() {
		if res < 1 || res > 3 {
			t.Fatalf("worker id %d outside 1..numWorkers", res)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for id := range seen {
		if id < 1 || id > wp.NumWorkers() {
			t.Errorf("unexpected worker id %d", id)
		}
	}
}

func TestWorkerPoolAbandonsQueueOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool[int, int](2, 10)
	wp.Start(ctx, func(workerID int, job int) int {
		t.Error("job executed after cancellation")
		return job
	})

	go func() {
		for i := 0; i < 10; i++ {
			wp.AddJob(i)
		}
		wp.Close()
	}()
	go wp.Wait()

	for range wp.CollectResults() {
		t.Error("no results expected after cancellation")
	}
}
