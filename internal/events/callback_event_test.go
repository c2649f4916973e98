package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileNotice struct {
	Rider string
	Path  string
}

func TestNewCallbackEvent(t *testing.T) {
	event := NewCallbackEvent[string]()
	require.NotNil(t, event)
	assert.Equal(t, 0, event.ListenerCount())
}

func TestCallbackEvent_ListenNotify(t *testing.T) {
	event := NewCallbackEvent[fileNotice]()

	var received []fileNotice
	unsubscribe := event.Listen(func(n fileNotice) {
		received = append(received, n)
	})
	assert.Equal(t, 1, event.ListenerCount())

	event.Notify(fileNotice{Rider: "Alice", Path: "out/Alice_TTT_Workout.zwo"})
	event.Notify(fileNotice{Rider: "Alice", Path: "out/Alice_TTT_Workout.png"})

	require.Len(t, received, 2)
	assert.Equal(t, "out/Alice_TTT_Workout.zwo", received[0].Path)
	assert.Equal(t, "out/Alice_TTT_Workout.png", received[1].Path)

	unsubscribe()
	assert.Equal(t, 0, event.ListenerCount())

	event.Notify(fileNotice{Rider: "Bob"})
	assert.Len(t, received, 2)
}

func TestCallbackEvent_RegistrationOrder(t *testing.T) {
	event := NewCallbackEvent[int]()

	var order []string
	event.Listen(func(int) { order = append(order, "first") })
	event.Listen(func(int) { order = append(order, "second") })
	event.Listen(func(int) { order = append(order, "third") })

	event.Notify(1)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestCallbackEvent_UnsubscribeOnlyRemovesOwnListener(t *testing.T) {
	event := NewCallbackEvent[int]()

	var a, b int
	unsubscribeA := event.Listen(func(v int) { a += v })
	event.Listen(func(v int) { b += v })

	unsubscribeA()
	unsubscribeA()
	event.Notify(5)

	assert.Equal(t, 0, a)
	assert.Equal(t, 5, b)
	assert.Equal(t, 1, event.ListenerCount())
}

func TestCallbackEvent_UnsubscribeDuringNotify(t *testing.T) {
	event := NewCallbackEvent[string]()

	var received []string
	var unsubscribe func()
	unsubscribe = event.Listen(func(v string) {
		received = append(received, v)
		if v == "stop" {
			unsubscribe()
		}
	})

	event.Notify("a")
	event.Notify("stop")
	event.Notify("b")

	assert.Equal(t, []string{"a", "stop"}, received)
	assert.Equal(t, 0, event.ListenerCount())
}

func TestCallbackEvent_ConcurrentNotify(t *testing.T) {
	event := NewCallbackEvent[int]()

	var mu sync.Mutex
	total := 0
	for i := 0; i < 4; i++ {
		event.Listen(func(v int) {
			mu.Lock()
			total += v
			mu.Unlock()
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event.Notify(1)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 100, total)
}

func TestCallbackEvent_NilCallbackPanics(t *testing.T) {
	event := NewCallbackEvent[string]()
	assert.Panics(t, func() {
		event.Listen(nil)
	})
}
