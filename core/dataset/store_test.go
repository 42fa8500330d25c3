package dataset

import (
	"errors"
	"testing"

	"netviz/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id, label string) graph.Element {
	return graph.NewElement(id, graph.Attributes{"label": label})
}

func TestStore_BatchEmitsEventsAfterCommit(t *testing.T) {
	s := NewStore()
	var events []Event
	s.Subscribe(func(ev Event) {
		// Listeners may read the store; the lock is released by now.
		assert.Equal(t, 2, s.Nodes().Len())
		events = append(events, ev)
	})

	err := s.Batch(func(tx *Tx) error {
		return tx.Add(graph.KindNode, node("1", "x"), node("2", "y"))
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, OpAdd, events[0].Op)
	assert.Equal(t, graph.KindNode, events[0].Kind)
	assert.Equal(t, []string{"1", "2"}, events[0].IDs)
}

func TestStore_UpdateKeepsLiveIdentity(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(graph.NewSnapshot([]graph.Element{node("1", "x")}, nil)))

	before, ok := s.Nodes().LiveID("1")
	require.True(t, ok)

	require.NoError(t, s.Batch(func(tx *Tx) error {
		return tx.Update(graph.KindNode, node("1", "z"))
	}))

	after, _ := s.Nodes().LiveID("1")
	assert.Equal(t, before, after)

	e, _ := s.Nodes().Get("1")
	assert.Equal(t, graph.Attributes{"label": "z"}, e.Attrs)
}

func TestStore_RemoveThenAddAssignsNewIdentity(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(graph.NewSnapshot([]graph.Element{node("1", "x")}, nil)))
	before, _ := s.Nodes().LiveID("1")

	require.NoError(t, s.Batch(func(tx *Tx) error {
		if err := tx.Remove(graph.KindNode, "1"); err != nil {
			return err
		}
		return tx.Add(graph.KindNode, node("1", "x"))
	}))

	after, _ := s.Nodes().LiveID("1")
	assert.NotEqual(t, before, after)
}

func TestStore_BatchRollback(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(graph.NewSnapshot(
		[]graph.Element{node("1", "x"), node("2", "y")},
		[]graph.Element{graph.NewEdge("e", "1", "2", nil)},
	)))
	before := s.Snapshot()
	liveBefore, _ := s.Nodes().LiveID("2")

	emitted := 0
	s.Subscribe(func(Event) { emitted++ })

	boom := errors.New("boom")
	err := s.Batch(func(tx *Tx) error {
		require.NoError(t, tx.Remove(graph.KindEdge, "e"))
		require.NoError(t, tx.Add(graph.KindNode, node("3", "w")))
		require.NoError(t, tx.Update(graph.KindNode, node("2", "changed")))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, emitted)

	after := s.Snapshot()
	assert.Equal(t, before.Nodes.Elements(), after.Nodes.Elements())
	assert.Equal(t, before.Edges.Elements(), after.Edges.Elements())

	liveAfter, _ := s.Nodes().LiveID("2")
	assert.Equal(t, liveBefore, liveAfter)
}

func TestTx_Errors(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(graph.NewSnapshot([]graph.Element{node("1", "x")}, nil)))

	tests := []struct {
		name string
		fn   func(tx *Tx) error
		want error
	}{
		{"add existing", func(tx *Tx) error { return tx.Add(graph.KindNode, node("1", "x")) }, ErrExists},
		{"add twice in one call", func(tx *Tx) error { return tx.Add(graph.KindNode, node("9", "a"), node("9", "b")) }, ErrExists},
		{"remove missing", func(tx *Tx) error { return tx.Remove(graph.KindNode, "404") }, ErrNotFound},
		{"update missing", func(tx *Tx) error { return tx.Update(graph.KindEdge, graph.NewEdge("x", "1", "1", nil)) }, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Batch(tt.fn)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, []string{"1"}, s.Nodes().IDs())
		})
	}
}

func TestView_ReturnsCopies(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(graph.NewSnapshot([]graph.Element{node("1", "x")}, nil)))

	e, _ := s.Nodes().Get("1")
	e.Attrs["label"] = "mutated"

	fresh, _ := s.Nodes().Get("1")
	assert.Equal(t, "x", fresh.Label())
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore()
	calls := 0
	unsubscribe := s.Subscribe(func(Event) { calls++ })

	require.NoError(t, s.Load(graph.NewSnapshot([]graph.Element{node("1", "x")}, nil)))
	unsubscribe()
	require.NoError(t, s.Load(graph.NewSnapshot([]graph.Element{node("2", "y")}, nil)))

	assert.Equal(t, 1, calls)
}
