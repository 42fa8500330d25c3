package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_Cases(t *testing.T) {
	tests := []struct {
		name string
		a, b Element
		want bool
	}{
		{
			name: "same id and attributes",
			a:    NewElement("1", Attributes{"label": "x"}),
			b:    NewElement("1", Attributes{"label": "x"}),
			want: true,
		},
		{
			name: "same id different label",
			a:    NewElement("1", Attributes{"label": "x"}),
			b:    NewElement("1", Attributes{"label": "z"}),
			want: false,
		},
		{
			name: "different id same attributes",
			a:    NewElement("1", Attributes{"label": "x"}),
			b:    NewElement("2", Attributes{"label": "x"}),
			want: false,
		},
		{
			name: "numbers compare by value",
			a:    NewElement("1", Attributes{"value": 3}),
			b:    NewElement("1", Attributes{"value": 3.0}),
			want: true,
		},
		{
			name: "large integers stay distinct",
			a:    NewElement("1", Attributes{"value": int64(9007199254740993)}),
			b:    NewElement("1", Attributes{"value": int64(9007199254740992)}),
			want: false,
		},
		{
			name: "large integer against nearest float",
			a:    NewElement("1", Attributes{"value": int64(9007199254740993)}),
			b:    NewElement("1", Attributes{"value": float64(9007199254740992)}),
			want: false,
		},
		{
			name: "decoded json number matches go integer",
			a:    NewElement("1", Attributes{"value": json.Number("9007199254740993")}),
			b:    NewElement("1", Attributes{"value": uint64(9007199254740993)}),
			want: true,
		},
		{
			name: "nested maps ignore key order",
			a:    NewElement("1", Attributes{"font": map[string]any{"size": 12, "color": "red"}}),
			b:    NewElement("1", Attributes{"font": map[string]any{"color": "red", "size": 12.0}}),
			want: true,
		},
		{
			name: "slices keep order",
			a:    NewElement("1", Attributes{"tags": []any{"a", "b"}}),
			b:    NewElement("1", Attributes{"tags": []any{"b", "a"}}),
			want: false,
		},
		{
			name: "missing key",
			a:    NewElement("1", Attributes{"label": "x", "group": "g"}),
			b:    NewElement("1", Attributes{"label": "x"}),
			want: false,
		},
		{
			name: "nil and empty attributes",
			a:    Element{ID: "1"},
			b:    NewElement("1", nil),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestNewCollection_RecordsDuplicates(t *testing.T) {
	c := NewCollection(KindNode,
		NewElement("1", Attributes{"label": "first"}),
		NewElement("2", nil),
		NewElement("1", Attributes{"label": "second"}),
	)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"1", "2"}, c.IDs())
	assert.Equal(t, []string{"1"}, c.Duplicates())

	first, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "first", first.Label())
}

func TestCollection_Add(t *testing.T) {
	c := NewCollection(KindEdge)
	require.NoError(t, c.Add(NewEdge("e1", "1", "2", nil)))

	err := c.Add(NewEdge("e1", "2", "3", nil))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_NilSafe(t *testing.T) {
	var c *Collection
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("x"))
	assert.Nil(t, c.Elements())
	assert.Nil(t, c.Clone())
}

func TestCollection_CloneIsDeep(t *testing.T) {
	c := NewCollection(KindNode, NewElement("1", Attributes{"font": map[string]any{"size": 12}}))
	clone := c.Clone()

	e, _ := clone.Get("1")
	e.Attrs["font"].(map[string]any)["size"] = 40

	orig, _ := c.Get("1")
	assert.Equal(t, 12, orig.Attrs["font"].(map[string]any)["size"])
}

func TestSnapshot_UnmarshalJSONDerivesEdgeIDs(t *testing.T) {
	raw := `{
	  "nodes": [{"id": 1, "label": "x"}, {"id": "b", "label": "y"}],
	  "edges": [
	    {"from": 1, "to": "b"},
	    {"from": 1, "to": "b", "label": "again"},
	    {"id": "explicit", "from": "b", "to": 1}
	  ]
	}`

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, []string{"1", "b"}, s.Nodes.IDs())
	assert.Equal(t, []string{"1->b", "1->b#2", "explicit"}, s.Edges.IDs())

	e, ok := s.Edges.Get("explicit")
	require.True(t, ok)
	assert.Equal(t, "b", e.Source())
	assert.Equal(t, "1", e.Target())
}

func TestSnapshot_UnmarshalJSONNodeWithoutID(t *testing.T) {
	var s Snapshot
	err := json.Unmarshal([]byte(`{"nodes":[{"label":"orphan"}],"edges":[]}`), &s)
	assert.Error(t, err)
}

func TestSnapshot_UnmarshalJSONKeepsDuplicates(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"nodes":[{"id":1},{"id":1}],"edges":[]}`), &s))
	assert.Equal(t, []string{"1"}, s.Nodes.Duplicates())
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	s := NewSnapshot(
		[]Element{NewElement("1", Attributes{"label": "x"})},
		nil,
	)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[{"id":"1","label":"x"}],"edges":[]}`, string(out))
}

func TestSnapshot_UnmarshalJSONKeepsLargeIDs(t *testing.T) {
	raw := `{"nodes":[{"id":9007199254740993,"weight":9007199254740993},{"id":9007199254740992}],
	  "edges":[{"from":9007199254740993,"to":9007199254740992}]}`

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, []string{"9007199254740993", "9007199254740992"}, s.Nodes.IDs())
	assert.Empty(t, s.Nodes.Duplicates())
	assert.Equal(t, []string{"9007199254740993->9007199254740992"}, s.Edges.IDs())

	n, ok := s.Nodes.Get("9007199254740993")
	require.True(t, ok)
	assert.False(t, Equal(n, NewElement("9007199254740993", Attributes{"weight": int64(9007199254740992)})))
	assert.True(t, Equal(n, NewElement("9007199254740993", Attributes{"weight": int64(9007199254740993)})))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"weight":9007199254740993`)
}

func TestSnapshot_UnmarshalJSONRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`null`, `[]`, `1`, `"nodes"`} {
		var s Snapshot
		assert.Error(t, json.Unmarshal([]byte(raw), &s), raw)
	}
}
