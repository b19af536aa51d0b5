package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/idgen"
	"pos_service/internal/latency"
	"pos_service/internal/state"
)

// collection runs the load and mutation sequence shared by the products,
// orders and reports containers: mark loading, wait, compute, persist, dispatch.
// Compute, persist and dispatch happen under mu; the wait does not.
type collection[T state.Keyed] struct {
	mu    sync.Mutex
	state state.Collection[T]
	store domain.Store
	key   string
	name  string
	delay latency.Simulator
	ids   idgen.Generator
	log   *logrus.Logger
}

func newCollection[T state.Keyed](key, name string, deps Deps) *collection[T] {
	return &collection[T]{
		state: state.NewCollection[T](),
		store: deps.Store,
		key:   key,
		name:  name,
		delay: deps.Delay,
		ids:   deps.IDs,
		log:   deps.Log,
	}
}

func (c *collection[T]) snapshot() state.Collection[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *collection[T]) dispatch(a state.Action[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(a)
}

func (c *collection[T]) dispatchLocked(a state.Action[T]) bool {
	next, ok := state.Reduce(c.state, a)
	c.state = next
	return ok
}

func (c *collection[T]) wait(ctx context.Context, d time.Duration) error {
	if err := c.delay.Wait(ctx, d); err != nil {
		c.dispatch(state.SetLoading[T](false))
		c.log.Warnf("Use Case: %s operation abandoned: %v", c.name, err)
		return err
	}
	return nil
}

func (c *collection[T]) load(ctx context.Context, d time.Duration) error {
	c.dispatch(state.SetLoading[T](true))
	if err := c.wait(ctx, d); err != nil {
		return err
	}

	var items []T
	if !c.store.Get(ctx, c.key, &items) {
		items = nil
	}

	if obs, ok := c.ids.(idgen.Observer); ok {
		for _, item := range items {
			obs.Observe(item.Key())
		}
	}

	c.mu.Lock()
	c.dispatchLocked(state.SetAll(items))
	c.mu.Unlock()
	c.log.Infof("Use Case: Loaded %d %s from storage", len(items), c.name)
	return nil
}

// commit applies the action built by op to the current items. op runs under
// the lock and must not block.
func (c *collection[T]) commit(ctx context.Context, d time.Duration, op func(current []T) (state.Action[T], error)) error {
	c.dispatch(state.SetLoading[T](true))
	if err := c.wait(ctx, d); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	action, err := op(c.state.Items)
	if err != nil {
		c.dispatchLocked(state.SetLoading[T](false))
		return err
	}
	next, found := state.Reduce(c.state, action)
	if !found {
		c.dispatchLocked(state.SetLoading[T](false))
		return domain.ErrNotFound
	}

	saved := c.store.Set(ctx, c.key, next.Items)
	c.state = next
	c.dispatchLocked(state.SetLoading[T](false))
	if !saved {
		c.log.Warnf("Use Case: %s changed in memory but could not be persisted", c.name)
		c.dispatchLocked(state.SetError[T](fmt.Sprintf("%s changes could not be saved", c.name)))
		return nil
	}
	c.dispatchLocked(state.SetError[T](""))
	c.log.Debugf("Use Case: %s %s committed (%d items)", c.name, action.Type, len(next.Items))
	return nil
}
