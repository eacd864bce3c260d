package extrude

import (
	"sync"
)

// Queue runs jobs on a fixed number of goroutines.
type Queue struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
	once    sync.Once
}

func NewQueue(workers int) *Queue {
	if workers < 1 {
		workers = 1
	}

	q := &Queue{
		workers: workers,
		jobs:    make(chan func(), workers),
	}

	for i := 0; i < workers; i++ {
		go func() {
			for job := range q.jobs {
				job()

				q.wg.Done()
			}
		}()
	}

	Logger().Debug("queue ready", "workers", workers)

	return q
}

func (q *Queue) Work(fn func()) {
	q.wg.Add(1)

	q.jobs <- fn
}

// Wait blocks until every submitted job has finished.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Close stops the workers once pending jobs are drained. Work must not be
// called afterwards.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.jobs)
	})
}
