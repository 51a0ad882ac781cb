package store

import "sync"

// queue выполняет операции одной коллекции строго по очереди (FIFO),
// не более одной операции одновременно.
type queue struct {
	in        chan func()
	work      chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newQueue() *queue {
	q := &queue{
		in:   make(chan func()),
		work: make(chan func()),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.dispatch()
	go q.worker()
	return q
}

// submit ставит операцию в очередь. Порядок выполнения совпадает
// с порядком вызовов submit.
func (q *queue) submit(job func()) error {
	select {
	case q.in <- job:
		return nil
	case <-q.quit:
		return ErrClosed
	}
}

// dispatch накапливает операции и передает их worker по одной
func (q *queue) dispatch() {
	defer close(q.work)

	var backlog []func()
	for {
		var out chan func()
		var head func()
		if len(backlog) > 0 {
			out = q.work
			head = backlog[0]
		}

		select {
		case job := <-q.in:
			backlog = append(backlog, job)
		case out <- head:
			backlog = backlog[1:]
		case <-q.quit:
			// Дорабатываем уже принятые операции
			for _, job := range backlog {
				q.work <- job
			}
			return
		}
	}
}

func (q *queue) worker() {
	defer close(q.done)
	for job := range q.work {
		job()
	}
}

// close перестает принимать операции и ждет завершения принятых
func (q *queue) close() {
	q.closeOnce.Do(func() {
		close(q.quit)
	})
	<-q.done
}
