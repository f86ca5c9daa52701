package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Dispatched records one action observed by a host dispatcher.
type Dispatched struct {
	Action  string
	Payload map[string]any
}

// RunStateSourceContract verifies that a StateSource implementation adheres
// to the interface contract. The factory receives the values the source must
// expose.
func RunStateSourceContract(t *testing.T, build func(seed map[string]any) StateSource) {
	t.Run("Seeded values are readable", func(t *testing.T) {
		src := build(map[string]any{"title": "Settings", "count": 3})

		v, ok := src.Value("title")
		require.True(t, ok, "seeded value should be present")
		assert.Equal(t, "Settings", v)

		v, ok = src.Value("count")
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("Unknown name reports absent", func(t *testing.T) {
		src := build(map[string]any{"title": "Settings"})

		_, ok := src.Value("missing")
		assert.False(t, ok, "unknown name must report ok=false, not a zero value")
	})

	t.Run("Empty source", func(t *testing.T) {
		src := build(nil)

		_, ok := src.Value("anything")
		assert.False(t, ok)
	})
}

// RunDispatcherContract verifies that a Dispatcher implementation adheres to
// the interface contract. The factory returns the dispatcher plus an observer
// over the actions it delivered, in order.
func RunDispatcherContract(t *testing.T, build func() (Dispatcher, func() []Dispatched)) {
	ctx := context.Background()

	t.Run("Actions are delivered in order", func(t *testing.T) {
		d, observe := build()

		require.NoError(t, d.Dispatch(ctx, "save", map[string]any{"id": "a"}))
		require.NoError(t, d.Dispatch(ctx, "close", nil))

		got := observe()
		require.Len(t, got, 2)
		assert.Equal(t, "save", got[0].Action)
		assert.Equal(t, "a", got[0].Payload["id"])
		assert.Equal(t, "close", got[1].Action)
	})

	t.Run("Payload is not aliased", func(t *testing.T) {
		d, observe := build()

		payload := map[string]any{"id": "a"}
		require.NoError(t, d.Dispatch(ctx, "save", payload))
		payload["id"] = "mutated"

		got := observe()
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Payload["id"], "dispatcher must copy the payload")
	})
}
