package store

import "context"

// Pending результат асинхронной операции.
// Операция выполняется до конца независимо от того, ждет ли ее кто-нибудь.
type Pending[R any] struct {
	done  chan struct{}
	err   error
	value R
}

func newPending[R any]() *Pending[R] {
	return &Pending[R]{done: make(chan struct{})}
}

func (p *Pending[R]) resolve(value R, err error) {
	p.value = value
	p.err = err
	close(p.done)
}

// Done закрывается после завершения операции
func (p *Pending[R]) Done() <-chan struct{} {
	return p.done
}

// Wait ждет завершения операции. ctx ограничивает только ожидание:
// отмена ctx не отменяет саму операцию.
func (p *Pending[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
