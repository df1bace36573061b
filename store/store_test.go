package store

import (
	"sync"
	"testing"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DispatchNotifiesInOrder(t *testing.T) {
	s := New()
	var calls []string
	var seen *AppState

	s.Subscribe(func(state *AppState) { calls = append(calls, "first"); seen = state })
	s.Subscribe(func(*AppState) { calls = append(calls, "second") })

	s.Dispatch(AddTask{Task: models.Task{ID: "1", Title: "A"}})

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Same(t, s.GetState(), seen)
	require.Len(t, seen.Tasks, 1)
}

func TestStore_NoOpStillNotifies(t *testing.T) {
	s := New()
	before := s.GetState()
	notified := 0
	s.Subscribe(func(*AppState) { notified++ })

	s.Dispatch(DeleteTask{ID: "missing"})

	assert.Equal(t, 1, notified)
	assert.Same(t, before, s.GetState())
}

func TestStore_UnsubscribeIsIdempotent(t *testing.T) {
	s := New()
	a, b := 0, 0
	unsubA := s.Subscribe(func(*AppState) { a++ })
	s.Subscribe(func(*AppState) { b++ })

	unsubA()
	unsubA()
	s.Dispatch(SetTasks{})

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestStore_SubscribeDuringNotification(t *testing.T) {
	s := New()
	late := 0
	var unsub func()
	unsub = s.Subscribe(func(*AppState) {
		unsub()
		s.Subscribe(func(*AppState) { late++ })
	})

	s.Dispatch(SetTasks{})
	assert.Equal(t, 0, late, "listener added during notification waits for the next dispatch")

	s.Dispatch(SetTasks{})
	assert.Equal(t, 1, late)
}

func TestStore_ReentrantDispatch(t *testing.T) {
	s := New()
	s.Subscribe(func(state *AppState) {
		if len(state.Tasks) == 1 {
			s.Dispatch(AddTask{Task: models.Task{ID: "2"}})
		}
	})

	s.Dispatch(AddTask{Task: models.Task{ID: "1"}})

	assert.Len(t, s.GetState().Tasks, 2)
}

func TestStore_WithInitialState(t *testing.T) {
	seed := &AppState{Tasks: []models.Task{{ID: "x"}}}
	s := New(WithInitialState(seed))
	assert.Same(t, seed, s.GetState())

	assert.NotNil(t, New(WithInitialState(nil)).GetState())
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(AddTask{Task: models.Task{Title: "t"}})
		}()
	}
	wg.Wait()

	assert.Len(t, s.GetState().Tasks, 50)
}
