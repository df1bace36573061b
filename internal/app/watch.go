package app

import (
	"context"

	"github.com/josephgoksu/TaskBoard/store"
)

// Watch streams store snapshots. The current state is sent first. A reader
// that falls behind skips intermediate states and receives the latest one.
// The channel is closed when ctx is done.
func (a *TaskApp) Watch(ctx context.Context) <-chan *store.AppState {
	out := make(chan *store.AppState)
	latest := make(chan *store.AppState, 1)

	// push replaces whatever is waiting in latest.
	push := func(state *store.AppState) {
		for {
			select {
			case latest <- state:
				return
			default:
			}
			select {
			case <-latest:
			default:
			}
		}
	}

	unsubscribe := a.store.Subscribe(push)
	push(a.store.GetState())

	go func() {
		defer close(out)
		defer unsubscribe()

		var pending *store.AppState
		for {
			if pending == nil {
				select {
				case <-ctx.Done():
					return
				case pending = <-latest:
				}
			}
			select {
			case <-ctx.Done():
				return
			case state := <-latest:
				pending = state
			case out <- pending:
				pending = nil
			}
		}
	}()
	return out
}
