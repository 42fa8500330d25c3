package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"netviz/core/graph"
	"netviz/core/utils"
)

// ErrNoColumns is returned for results without any column.
var ErrNoColumns = errors.New("results have no columns")

// Term is one bound value in a SPARQL JSON results row.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Results is the SPARQL 1.1 JSON results document.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Term `json:"bindings"`
	} `json:"results"`
}

// DecodeResults parses a SPARQL JSON results document into a snapshot.
func DecodeResults(data []byte) (graph.Snapshot, error) {
	var r Results
	if err := json.Unmarshal(data, &r); err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode results: %w", err)
	}
	return FromResults(r)
}

// FromResults converts SPARQL results into a snapshot.
func FromResults(r Results) (graph.Snapshot, error) {
	cols := r.Head.Vars
	if len(cols) == 0 {
		return graph.Snapshot{}, ErrNoColumns
	}
	b := newBuilder()
	for _, row := range r.Results.Bindings {
		subject, ok := row[cols[0]]
		if !ok || subject.Value == "" {
			continue
		}
		b.node(subject.Value, cols[0], termLabel(subject))
		for _, col := range cols[1:] {
			obj, ok := row[col]
			if !ok || obj.Value == "" {
				continue
			}
			b.node(obj.Value, col, termLabel(obj))
			b.edge(subject.Value, obj.Value, col)
		}
	}
	return b.snapshot(), nil
}

// FromRows converts database rows into a snapshot. columns fixes the column
// order; nil values are skipped.
func FromRows(columns []string, rows []map[string]any) (graph.Snapshot, error) {
	if len(columns) == 0 {
		return graph.Snapshot{}, ErrNoColumns
	}
	b := newBuilder()
	for _, row := range rows {
		subject := cell(row, columns[0])
		if subject == "" {
			continue
		}
		b.node(subject, columns[0], subject)
		for _, col := range columns[1:] {
			obj := cell(row, col)
			if obj == "" {
				continue
			}
			b.node(obj, col, obj)
			b.edge(subject, obj, col)
		}
	}
	return b.snapshot(), nil
}

func cell(row map[string]any, col string) string {
	v, ok := row[col]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

// termLabel shortens IRIs to their last fragment or path segment.
func termLabel(t Term) string {
	if t.Type != "uri" {
		return t.Value
	}
	v := strings.TrimRight(t.Value, "/#")
	if i := strings.LastIndexAny(v, "/#"); i >= 0 && i < len(v)-1 {
		return v[i+1:]
	}
	return t.Value
}

type builder struct {
	nodes   []graph.Element
	seen    map[string]struct{}
	edges   []graph.Element
	triples map[string]struct{}
	pairs   map[string]int
}

func newBuilder() *builder {
	return &builder{
		seen:    make(map[string]struct{}),
		triples: make(map[string]struct{}),
		pairs:   make(map[string]int),
	}
}

func (b *builder) node(id, group, label string) {
	if _, ok := b.seen[id]; ok {
		return
	}
	b.seen[id] = struct{}{}
	attrs := graph.Attributes{graph.AttrLabel: label, graph.AttrGroup: group}
	if label != id {
		attrs[graph.AttrTitle] = id
	}
	b.nodes = append(b.nodes, graph.NewElement(id, attrs))
}

func (b *builder) edge(from, to, column string) {
	triple := from + "\x00" + column + "\x00" + to
	if _, ok := b.triples[triple]; ok {
		return
	}
	b.triples[triple] = struct{}{}
	pair := from + "\x00" + to
	b.pairs[pair]++
	id := graph.DeriveEdgeID(from, to, b.pairs[pair])
	b.edges = append(b.edges, graph.NewEdge(id, from, to, graph.Attributes{graph.AttrLabel: column}))
}

func (b *builder) snapshot() graph.Snapshot {
	return graph.NewSnapshot(b.nodes, b.edges)
}
