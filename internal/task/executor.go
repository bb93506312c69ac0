package task

// Handle lets a caller block until a started task has finished all of its
// reporting and dispatched its callback.
type Handle interface {
	Wait()
}

// Executor decides how a task body runs. It decouples the concurrency strategy
// from what the task body does, so production code can run bodies on their own
// goroutine while tests run them inline and observe results deterministically.
type Executor interface {
	Execute(fn func()) Handle
}

// Threaded runs each body on a new goroutine. The returned handle blocks the
// calling goroutine (and only that one) until the body finishes.
type Threaded struct{}

func (Threaded) Execute(fn func()) Handle {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return waitHandle(done)
}

type waitHandle <-chan struct{}

func (h waitHandle) Wait() { <-h }

// Sync runs the body inline before Execute returns. The returned handle is
// already resolved, waiting on it is a no-op.
type Sync struct{}

func (Sync) Execute(fn func()) Handle {
	fn()
	return completedHandle{}
}

type completedHandle struct{}

func (completedHandle) Wait() {}
