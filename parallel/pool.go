package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted tasks on a fixed set of workers. Tasks submitted between
// two Wait calls form a batch, so one pool can serve many kernel launches.
type Pool struct {
	workers sync.WaitGroup
	batch   sync.WaitGroup
	size    int
	work    chan func()
	Close   func()
}

// Start launches numWorkers workers, GOMAXPROCS when numWorkers < 1. A pool of
// one runs tasks inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		size:  numWorkers,
		Close: func() {},
	}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range pool.work {
					f()
					pool.batch.Done()
				}
			})
		}

		pool.Close = sync.OnceFunc(func() {
			close(pool.work)
			pool.workers.Wait()
		})
	}

	return pool
}

func (p *Pool) Size() int {
	return p.size
}

// Do submits f to the current batch. It blocks while every worker is busy.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.batch.Add(1)
	p.work <- f
}

// Wait blocks until every task of the current batch has returned.
func (p *Pool) Wait() {
	p.batch.Wait()
}
