package app

import (
	"context"
	"fmt"

	"github.com/iudanet/contactdesk/internal/client/store"
)

// Pending результат действия, переданного в Dispatch.
// Действие выполняется до конца, даже если результат никто не ждет.
type Pending struct {
	done  chan struct{}
	value any
	err   error
}

// Done закрывается после завершения действия
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait ждет завершения действия. ctx ограничивает только ожидание.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Await ждет результат действия и приводит его к типу R
func Await[R any](ctx context.Context, p *Pending) (R, error) {
	var zero R
	value, err := p.Wait(ctx)
	if err != nil {
		return zero, err
	}
	result, ok := value.(R)
	if !ok {
		return zero, fmt.Errorf("unexpected result type %T", value)
	}
	return result, nil
}

func settled(value any, err error) *Pending {
	p := &Pending{done: make(chan struct{}), value: value, err: err}
	close(p.done)
	return p
}

// wrap переводит типизированный store.Pending в Pending
func wrap[R any](sp *store.Pending[R]) *Pending {
	return run(func() (any, error) {
		return sp.Wait(context.Background())
	})
}

// run выполняет fn в отдельной горутине
func run(fn func() (any, error)) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = fn()
	}()
	return p
}
