package workerpool

import (
	"context"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// Pool runs submitted tasks on a fixed number of goroutines. Call Run before
// Submit, Close after the last Submit, then drain the channel returned by Run.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *Pool) Workers() int {
	if p == nil {
		return 0
	}
	return p.workers
}

func (p *Pool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers*4)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// RunAll submits every task, waits for completion and returns the first
// error, or ctx.Err() if the context ended before all tasks reported.
func RunAll(ctx context.Context, workers int, tasks []Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := New(workers, workers*2)
	results := p.Run(ctx)

	go func() {
		defer p.Close()
		for _, t := range tasks {
			if t == nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case p.tasks <- t:
			}
		}
	}()

	var firstErr error
	done := 0
	for r := range results {
		done++
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
	}
	if firstErr != nil {
		return firstErr
	}
	if done < len(tasks) {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
