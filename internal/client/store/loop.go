package store

import "sync"

// Loop выполняет изменения состояния в одной горутине.
// Все мутации коллекций проходят через Do, поэтому состояние
// не требует блокировок.
type Loop struct {
	tasks     chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop создает и запускает Loop
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case task := <-l.tasks:
			task()
		case <-l.quit:
			return
		}
	}
}

// Do выполняет fn в горутине Loop и ждет ее завершения.
// Возвращает ErrClosed, если Loop уже остановлен.
func (l *Loop) Do(fn func()) error {
	applied := make(chan struct{})
	task := func() {
		defer close(applied)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.quit:
		return ErrClosed
	}

	<-applied
	return nil
}

// Close останавливает Loop. Повторный вызов безопасен.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.quit)
	})
	<-l.done
}
