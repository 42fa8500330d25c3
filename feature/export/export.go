// Package export renders a graph snapshot as a standalone go-echarts page.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"netviz/core/graph"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Options controls the rendered page.
type Options struct {
	Title     string
	Width     string
	Height    string
	Repulsion float32
}

// DefaultOptions fills the page viewport.
func DefaultOptions() Options {
	return Options{Title: "netviz", Width: "100vw", Height: "100vh", Repulsion: 400}
}

// Render writes the snapshot as an HTML page.
func Render(w io.Writer, snap graph.Snapshot, o Options) error {
	page := components.NewPage()
	page.AddCharts(Chart(snap, o))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderToFile writes the page to path, adding .html when missing.
func RenderToFile(path string, snap graph.Snapshot, o Options) (string, error) {
	if !strings.HasSuffix(path, ".html") {
		path += ".html"
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := Render(f, snap, o); err != nil {
		return "", err
	}
	return path, nil
}

// Chart builds the force-directed graph chart. Node groups become
// categories; edges whose endpoints are missing are dropped.
func Chart(snap graph.Snapshot, o Options) *charts.Graph {
	nodes, links, categories := series(snap)

	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Height:    o.Height,
			Width:     o.Width,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(categories) > 1),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	chart.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:     "force",
				Draggable:  opts.Bool(true),
				Roam:       opts.Bool(true),
				Force:      &opts.GraphForce{Repulsion: o.Repulsion},
				Categories: categories,
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return chart
}

func series(snap graph.Snapshot) ([]opts.GraphNode, []opts.GraphLink, []*opts.GraphCategory) {
	var categories []*opts.GraphCategory
	index := make(map[string]int)

	nodes := make([]opts.GraphNode, 0, snap.Nodes.Len())
	known := make(map[string]struct{}, snap.Nodes.Len())
	for _, n := range snap.Nodes.Elements() {
		known[n.ID] = struct{}{}
		node := opts.GraphNode{Name: n.ID}
		if group, ok := n.Attrs[graph.AttrGroup].(string); ok && group != "" {
			i, seen := index[group]
			if !seen {
				i = len(categories)
				index[group] = i
				categories = append(categories, &opts.GraphCategory{Name: group})
			}
			node.Category = i
		}
		nodes = append(nodes, node)
	}

	links := make([]opts.GraphLink, 0, snap.Edges.Len())
	for _, e := range snap.Edges.Elements() {
		from, to := e.Source(), e.Target()
		if _, ok := known[from]; !ok {
			continue
		}
		if _, ok := known[to]; !ok {
			continue
		}
		links = append(links, opts.GraphLink{Source: from, Target: to})
	}
	return nodes, links, categories
}
