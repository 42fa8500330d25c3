package graph

import (
	"encoding/json"
	"fmt"
)

// Snapshot is one generation of node/edge input data.
type Snapshot struct {
	Generation uint64
	Nodes      *Collection
	Edges      *Collection
}

// NewSnapshot wraps node and edge elements into a snapshot.
func NewSnapshot(nodes, edges []Element) Snapshot {
	return Snapshot{
		Nodes: NewCollection(KindNode, nodes...),
		Edges: NewCollection(KindEdge, edges...),
	}
}

// Empty returns a snapshot with no elements.
func Empty() Snapshot {
	return NewSnapshot(nil, nil)
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Generation: s.Generation, Nodes: s.Nodes.Clone(), Edges: s.Edges.Clone()}
}

type snapshotJSON struct {
	Generation uint64    `json:"generation,omitempty"`
	Nodes      []Element `json:"nodes"`
	Edges      []Element `json:"edges"`
}

// MarshalJSON writes the snapshot in the {"nodes":[],"edges":[]} shape.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Generation: s.Generation,
		Nodes:      s.Nodes.Elements(),
		Edges:      s.Edges.Elements(),
	}
	if out.Nodes == nil {
		out.Nodes = []Element{}
	}
	if out.Edges == nil {
		out.Edges = []Element{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the {"nodes":[],"edges":[]} shape. The document must
// be an object; null is rejected rather than read as an empty snapshot.
// Node ids are required; edges without an id get one from DeriveEdgeIDs.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in *snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in == nil {
		return fmt.Errorf("snapshot must be a JSON object")
	}
	for i, n := range in.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node at index %d has no id", i)
		}
	}
	DeriveEdgeIDs(in.Edges)
	s.Generation = in.Generation
	s.Nodes = NewCollection(KindNode, in.Nodes...)
	s.Edges = NewCollection(KindEdge, in.Edges...)
	return nil
}

// DeriveEdgeID returns the id given to the n-th (1-based) edge between two endpoints.
func DeriveEdgeID(from, to string, n int) string {
	if n <= 1 {
		return from + "->" + to
	}
	return fmt.Sprintf("%s->%s#%d", from, to, n)
}

// DeriveEdgeIDs fills in missing edge ids in place. Repeated endpoint pairs
// are numbered in arrival order, so the same input always yields the same ids.
func DeriveEdgeIDs(edges []Element) {
	seen := make(map[string]int)
	for i := range edges {
		if edges[i].ID != "" {
			continue
		}
		from, to := edges[i].Source(), edges[i].Target()
		pair := from + "\x00" + to
		seen[pair]++
		edges[i].ID = DeriveEdgeID(from, to, seen[pair])
	}
}
